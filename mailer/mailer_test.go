package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/shoplane-dev/storefront-api/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:          7,
		OrderRef:    "ORD-20260831-abc123",
		Email:       "buyer@example.com",
		TotalAmount: 25,
		Status:      models.OrderStatusAccepted,
		Items: []models.OrderItem{
			{ProductName: "Walnut Desk", Quantity: 2, OrderedProductPrice: 10},
			{ProductName: "Desk Lamp", Quantity: 1, OrderedProductPrice: 5},
		},
	}
}

func TestOrderConfirmationHTML(t *testing.T) {
	body := orderConfirmationHTML(sampleOrder(), "14 Baker Street, London, UK")

	assert.Contains(t, body, "ORD-20260831-abc123")
	assert.Contains(t, body, "Walnut Desk")
	assert.Contains(t, body, "Desk Lamp")
	assert.Contains(t, body, "25.00")
	assert.Contains(t, body, "14 Baker Street, London, UK")
	// Line totals are unit price times quantity.
	assert.Contains(t, body, "20.00")
}

func TestOrderStatusHTML(t *testing.T) {
	order := sampleOrder()
	order.Status = models.OrderStatusShipped

	body := orderStatusHTML(order)
	assert.Contains(t, body, "ORD-20260831-abc123")
	assert.Contains(t, body, "shipped")
}

// With no SMTP_HOST the gateway must be a safe no-op: the order workflow
// calls it unconditionally after every commit.
func TestGateway_NoHostIsNoOp(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	g := New(zap.NewNop())

	assert.NotPanics(t, func() {
		g.OrderPlaced(sampleOrder(), "somewhere")
		g.OrderStatusChanged(sampleOrder())
	})
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_FROM", "")

	g := New(zap.NewNop())
	assert.Equal(t, 587, g.port)
	assert.Equal(t, "noreply@shoplane.dev", g.from)
}

// Package mailer is the notification gateway: one delivery attempt per event,
// failures logged and swallowed, never propagated to the order workflow.
package mailer

import (
	"fmt"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/shoplane-dev/storefront-api/models"
)

// Notifier is what the order workflow sees. Implementations must not block
// order processing on delivery problems.
type Notifier interface {
	OrderPlaced(order *models.Order, shippingAddress string)
	OrderStatusChanged(order *models.Order)
}

// Gateway sends order emails over SMTP. With no SMTP_HOST configured it
// degrades to logging the skipped dispatch.
type Gateway struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      *zap.Logger
}

func New(log *zap.Logger) *Gateway {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@shoplane.dev"
	}
	return &Gateway{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
		log:      log,
	}
}

func (g *Gateway) OrderPlaced(order *models.Order, shippingAddress string) {
	body := orderConfirmationHTML(order, shippingAddress)
	g.send(order.Email, "Your Order Confirmation", body,
		zap.Uint("order_id", order.ID))
}

func (g *Gateway) OrderStatusChanged(order *models.Order) {
	subject := fmt.Sprintf("Your Order Is %s", order.Status)
	body := orderStatusHTML(order)
	g.send(order.Email, subject, body,
		zap.Uint("order_id", order.ID), zap.String("status", string(order.Status)))
}

func (g *Gateway) send(to, subject, htmlBody string, fields ...zap.Field) {
	if g.host == "" {
		g.log.Info("smtp not configured, skipping email", append(fields, zap.String("to", to))...)
		return
	}

	msg := mail.NewMsg()
	if err := msg.From(g.from); err != nil {
		g.log.Warn("email dispatch failed", append(fields, zap.Error(err))...)
		return
	}
	if err := msg.To(to); err != nil {
		g.log.Warn("email dispatch failed", append(fields, zap.Error(err))...)
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(g.host,
		mail.WithPort(g.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(g.username),
		mail.WithPassword(g.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		g.log.Warn("email dispatch failed", append(fields, zap.Error(err))...)
		return
	}
	if err := client.DialAndSend(msg); err != nil {
		g.log.Warn("email dispatch failed", append(fields, zap.Error(err))...)
		return
	}
	g.log.Info("email sent", append(fields, zap.String("to", to))...)
}

func orderConfirmationHTML(order *models.Order, shippingAddress string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f</td>
				<td>%.2f</td>
			</tr>`, item.ProductName, item.Quantity, item.OrderedProductPrice,
			item.OrderedProductPrice*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Thank you for your order</h2>
	<p>Order reference: %s</p>
	<table style="width: 100%%; border-collapse: collapse;">
		<thead>
			<tr>
				<th>Product</th><th>Quantity</th><th>Unit price</th><th>Total</th>
			</tr>
		</thead>
		<tbody>%s</tbody>
	</table>
	<p>Order total: %.2f</p>
	<p>Shipping to: %s</p>
</body>
</html>`, order.OrderRef, itemsHTML, order.TotalAmount, shippingAddress)
}

func orderStatusHTML(order *models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Order update</h2>
	<p>Your order %s is now <strong>%s</strong>.</p>
</body>
</html>`, order.OrderRef, order.Status)
}

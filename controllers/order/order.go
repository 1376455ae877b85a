package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shoplane-dev/storefront-api/apperr"
	"github.com/shoplane-dev/storefront-api/mailer"
	"github.com/shoplane-dev/storefront-api/models"
)

// -------- Request / Response Structs --------

type PlaceOrderRequest struct {
	AddressID         uint   `json:"address_id" binding:"required"`
	PgName            string `json:"pg_name"`
	PgPaymentID       string `json:"pg_payment_id"`
	PgStatus          string `json:"pg_status"`
	PgResponseMessage string `json:"pg_response_message"`
}

type OrderConfirmation struct {
	OrderID uint               `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
	Message string             `json:"message"`
}

// -------- Helpers --------

// generateOrderRef returns a unique human-traceable order reference.
func generateOrderRef() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()
}

// lockForUpdate takes a row lock on dialects that support it. sqlite has no
// row locks; its single-writer transaction already serializes these updates.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// loadOwnedOrder fetches an order with its items and enforces the stored-email
// ownership check applied uniformly to every order operation.
func loadOwnedOrder(db *gorm.DB, email string, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").Preload("Payment").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order", "orderId", orderID)
		}
		return nil, apperr.Internal(err)
	}
	if order.Email != email {
		return nil, apperr.Forbidden("order %d does not belong to the user with email: %s", orderID, email)
	}
	return &order, nil
}

// -------- Core Logic --------

// PlaceOrder converts the buyer's cart into an immutable order. Every write
// (payment, order, items, inventory decrements, cart clearing) commits in one
// transaction or not at all. Notification and the live feed run strictly
// after commit.
func PlaceOrder(db *gorm.DB, notify mailer.Notifier, email, paymentMethod string, req PlaceOrderRequest) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_email = ?", email).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cart", "email", email)
		}
		return nil, apperr.Internal(err)
	}
	// Validated before any side effect; an empty cart must leave no rows behind.
	if len(cart.Items) == 0 {
		return nil, apperr.InvalidState("cart is empty")
	}

	var address models.Address
	if err := db.First(&address, "id = ?", req.AddressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Address", "addressId", req.AddressID)
		}
		return nil, apperr.Internal(err)
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		payment := models.Payment{
			PaymentMethod:     paymentMethod,
			PgName:            req.PgName,
			PgPaymentID:       req.PgPaymentID,
			PgStatus:          req.PgStatus,
			PgResponseMessage: req.PgResponseMessage,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return apperr.Internal(err)
		}

		order = models.Order{
			OrderRef:    generateOrderRef(),
			Email:       email,
			OrderDate:   time.Now().UTC().Truncate(24 * time.Hour),
			TotalAmount: cart.TotalPrice,
			Status:      models.OrderStatusAccepted,
			AddressID:   address.ID,
			PaymentID:   payment.ID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperr.Internal(err)
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			items = append(items, models.OrderItem{
				OrderID:             order.ID,
				ProductID:           ci.ProductID,
				ProductName:         ci.ProductName,
				Quantity:            ci.Quantity,
				Discount:            ci.Discount,
				OrderedProductPrice: ci.ProductPrice,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return apperr.Internal(err)
		}

		for _, ci := range cart.Items {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", ci.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Product", "productId", ci.ProductID)
				}
				return apperr.Internal(err)
			}
			if product.Quantity < ci.Quantity {
				return apperr.InvalidState("insufficient stock for product: %s", product.ProductName)
			}
			product.Quantity -= ci.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return apperr.Internal(err)
			}
			if err := tx.Delete(&models.CartItem{}, ci.ID).Error; err != nil {
				return apperr.Internal(err)
			}
		}

		if err := tx.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).
			Update("total_price", 0).Error; err != nil {
			return apperr.Internal(err)
		}

		order.Items = items
		order.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify.OrderPlaced(&order, address.FullAddress())
	broadcastOrderEvent(&order)

	return &order, nil
}

// GetOrderByID returns an order scoped to its owner.
func GetOrderByID(db *gorm.DB, email string, orderID uint) (*models.Order, error) {
	order, err := loadOwnedOrder(db, email, orderID)
	if err != nil {
		return nil, err
	}
	// Data-integrity guard: a placed order always carries line items.
	if len(order.Items) == 0 {
		return nil, apperr.InvalidState("no items found for order with id: %d", orderID)
	}
	return order, nil
}

// CancelOrder cancels an accepted order, credits every line item's quantity
// back onto inventory and clears the buyer's whole cart. The full cart clear
// (not just this order's items) is deliberate, carried over from the original
// behavior.
func CancelOrder(db *gorm.DB, notify mailer.Notifier, email string, orderID uint) (*OrderConfirmation, error) {
	order, err := loadOwnedOrder(db, email, orderID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Re-read the status under the lock so two concurrent cancels cannot
		// both credit inventory.
		var current models.Order
		if err := lockForUpdate(tx).First(&current, "id = ?", order.ID).Error; err != nil {
			return apperr.Internal(err)
		}
		if current.Status != models.OrderStatusAccepted {
			return apperr.InvalidState("order %d cannot be cancelled in status %q", order.ID, current.Status)
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			return apperr.Internal(err)
		}

		for _, item := range order.Items {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Product", "productId", item.ProductID)
				}
				return apperr.Internal(err)
			}
			product.Quantity += item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return apperr.Internal(err)
			}
		}

		var cart models.Cart
		if err := tx.Where("user_email = ?", email).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return apperr.Internal(err)
		}
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return apperr.Internal(err)
		}
		if err := tx.Model(&cart).Update("total_price", 0).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCancelled
	notify.OrderStatusChanged(order)
	broadcastOrderEvent(order)

	return &OrderConfirmation{
		OrderID: order.ID,
		Status:  models.OrderStatusCancelled,
		Message: fmt.Sprintf("Order with ID: %d has been cancelled successfully.", order.ID),
	}, nil
}

// transitionOrder moves an owned order to the next status, validated against
// the transition table.
func transitionOrder(db *gorm.DB, notify mailer.Notifier, email string, orderID uint, next models.OrderStatus) (*OrderConfirmation, error) {
	order, err := loadOwnedOrder(db, email, orderID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var current models.Order
		if err := lockForUpdate(tx).First(&current, "id = ?", order.ID).Error; err != nil {
			return apperr.Internal(err)
		}
		if !current.Status.CanTransitionTo(next) {
			return apperr.InvalidState("order %d cannot move from %q to %q", order.ID, current.Status, next)
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", next).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = next
	notify.OrderStatusChanged(order)
	broadcastOrderEvent(order)

	return &OrderConfirmation{
		OrderID: order.ID,
		Status:  next,
		Message: fmt.Sprintf("Order with ID: %d is now %s.", order.ID, next),
	}, nil
}

// MarkOrderShipped transitions an accepted order to shipped.
func MarkOrderShipped(db *gorm.DB, notify mailer.Notifier, email string, orderID uint) (*OrderConfirmation, error) {
	return transitionOrder(db, notify, email, orderID, models.OrderStatusShipped)
}

// MarkOrderDelivered transitions a shipped order to delivered.
func MarkOrderDelivered(db *gorm.DB, notify mailer.Notifier, email string, orderID uint) (*OrderConfirmation, error) {
	return transitionOrder(db, notify, email, orderID, models.OrderStatusDelivered)
}

// -------- Handlers --------

func parseOrderID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err == nil && id > 0
}

// Place order (user)
func PlaceOrderHandler(db *gorm.DB, notify mailer.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		paymentMethod := c.Param("paymentMethod")

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, notify, email, paymentMethod, req)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// Get a single order, scoped to the caller
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		orderID, ok := parseOrderID(c.Query("orderId"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
			return
		}

		order, err := GetOrderByID(db, email, orderID)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func CancelOrderHandler(db *gorm.DB, notify mailer.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		orderID, ok := parseOrderID(c.Param("orderId"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
			return
		}

		confirmation, err := CancelOrder(db, notify, email, orderID)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, confirmation)
	}
}

func ShipOrderHandler(db *gorm.DB, notify mailer.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		orderID, ok := parseOrderID(c.Param("orderId"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
			return
		}

		confirmation, err := MarkOrderShipped(db, notify, email, orderID)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, confirmation)
	}
}

func DeliverOrderHandler(db *gorm.DB, notify mailer.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		orderID, ok := parseOrderID(c.Param("orderId"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
			return
		}

		confirmation, err := MarkOrderDelivered(db, notify, email, orderID)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, confirmation)
	}
}

package models

import "time"

type OrderStatus string

const (
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions is the closed set of legal status moves. Cancelled and
// delivered are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusAccepted: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:  {OrderStatusDelivered},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Order is the immutable record of a completed checkout. Only Status changes
// after creation; items, totals and payment are frozen at placement time.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderRef    string      `gorm:"uniqueIndex" json:"order_ref"`
	Email       string      `gorm:"index;not null" json:"email"`
	OrderDate   time.Time   `json:"order_date"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'accepted'" json:"status"`
	AddressID   uint        `json:"address_id"`
	PaymentID   uint        `json:"-"`
	Payment     Payment     `gorm:"foreignKey:PaymentID" json:"payment"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderItem is a frozen copy of a cart item at placement time; never
// recomputed from live product data.
type OrderItem struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	OrderID             uint    `gorm:"index" json:"order_id"`
	ProductID           uint    `json:"product_id"`
	ProductName         string  `json:"product_name"`
	Quantity            int     `json:"quantity"`
	Discount            float64 `json:"discount"`
	OrderedProductPrice float64 `json:"ordered_product_price"`
}

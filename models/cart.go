package models

import "time"

type Cart struct {
	CartID    uint   `gorm:"primaryKey" json:"cart_id"`
	UserEmail string `gorm:"uniqueIndex;not null" json:"user_email"` // one cart per user
	// TotalPrice is the cached sum of item price snapshots times quantity,
	// maintained by the cart controllers and copied verbatim onto orders.
	TotalPrice float64    `json:"total_price"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem snapshots price and discount at the time the product was added;
// later product updates do not alter items already in a cart.
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CartID       uint      `gorm:"index" json:"cart_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Discount     float64   `json:"discount"`
	ProductPrice float64   `json:"product_price"`
	AddedAt      time.Time `json:"added_at"`
}

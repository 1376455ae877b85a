package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string `gorm:"not null" json:"product_name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	// Quantity is the sellable inventory. It is mutated only by the order
	// workflow (decrement on placement, credit on cancellation) and by
	// seller-initiated quantity updates.
	Quantity     int            `json:"quantity"`
	Price        float64        `gorm:"not null" json:"price"`
	Discount     float64        `json:"discount"` // percentage
	SpecialPrice float64        `json:"special_price"`
	CategoryID   uint           `gorm:"index" json:"category_id"`
	Category     *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SellerID     uint           `json:"seller_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ApplyDiscount recomputes the special price from the list price and discount.
func (p *Product) ApplyDiscount() {
	p.SpecialPrice = p.Price * (1 - p.Discount/100)
}

package models

import "time"

// Payment records an already-settled payment supplied to order placement;
// this service never calls out to a payment gateway itself.
type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	PaymentMethod     string    `gorm:"not null" json:"payment_method"`
	PgName            string    `json:"pg_name"`
	PgPaymentID       string    `json:"pg_payment_id"`
	PgStatus          string    `json:"pg_status"`
	PgResponseMessage string    `json:"pg_response_message"`
	CreatedAt         time.Time `json:"created_at"`
}

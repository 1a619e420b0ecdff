// File: internal/model/order.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a snapshot of a product at the time the order was placed.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentResult is what the payment provider reported when the order was paid.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

type Order struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	UserID          uuid.UUID       `db:"user_id" json:"user_id"`
	Items           []OrderItem     `db:"items" json:"items"`
	ShippingAddress ShippingAddress `db:"shipping_address" json:"shipping_address"`
	PaymentMethod   string          `db:"payment_method" json:"payment_method"`
	PaymentResult   *PaymentResult  `db:"payment_result" json:"payment_result,omitempty"`
	ItemsPrice      float64         `db:"items_price" json:"items_price"`
	TaxPrice        float64         `db:"tax_price" json:"tax_price"`
	ShippingPrice   float64         `db:"shipping_price" json:"shipping_price"`
	TotalPrice      float64         `db:"total_price" json:"total_price"`
	IsPaid          bool            `db:"is_paid" json:"is_paid"`
	PaidAt          *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
	IsDelivered     bool            `db:"is_delivered" json:"is_delivered"`
	DeliveredAt     *time.Time      `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

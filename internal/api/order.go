package api

import "github.com/google/uuid"

// swagger:model api.OrderItemRequest
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required" example:"5f0d2c4e-8a8e-4a55-9b55-1b2f3c4d5e6f"`
	Qty       int       `json:"qty" validate:"required,min=1" example:"1"`
}

// swagger:model api.ShippingAddressRequest
type ShippingAddressRequest struct {
	Address    string `json:"address" validate:"required" example:"1 Main St"`
	City       string `json:"city" validate:"required" example:"Taipei"`
	PostalCode string `json:"postal_code" validate:"required" example:"100"`
	Country    string `json:"country" validate:"required" example:"TW"`
}

// CreateOrderRequest 價格由伺服器依商品資料計算，不接受客戶端傳入
// swagger:model api.CreateOrderRequest
type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"order_items" validate:"dive"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method" validate:"required" example:"PayPal"`
}

// PayOrderRequest 付款服務商回傳的結果
// swagger:model api.PayOrderRequest
type PayOrderRequest struct {
	ID           string `json:"id" validate:"required" example:"8TX12345AB678901C"`
	Status       string `json:"status" example:"COMPLETED"`
	UpdateTime   string `json:"update_time" example:"2025-05-01T15:04:05Z"`
	EmailAddress string `json:"email_address" validate:"omitempty,email" example:"buyer@example.com"`
}

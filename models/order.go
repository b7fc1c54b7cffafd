package models

import (
	"encoding/json"
	"time"
)

// Order lifecycle: created -> paid on a verified payment, created -> failed
// on a gateway or signature failure, paid -> refunded out of band.
const (
	OrderStatusCreated  = "created"
	OrderStatusPaid     = "paid"
	OrderStatusFailed   = "failed"
	OrderStatusRefunded = "refunded"
)

type Order struct {
	ID              string          `json:"id"`
	UserID          int             `json:"user_id"`
	Amount          int64           `json:"amount"` // minor currency units (paise)
	Currency        string          `json:"currency"`
	ReceiptID       string          `json:"receipt_id"`
	GatewayOrderID  string          `json:"razorpay_order_id"`
	PaymentID       string          `json:"razorpay_payment_id,omitempty"`
	ShippingAddress json.RawMessage `json:"shipping_address,omitempty"`
	BillingAddress  json.RawMessage `json:"billing_address,omitempty"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID        int    `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // unit price at checkout, minor units
}

package models

import "encoding/json"

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type CreateProductRequest struct {
	Name             string   `json:"name" form:"name" binding:"required"`
	Price            int64    `json:"price" form:"price" binding:"required,gt=0"`
	Category         string   `json:"category" form:"category" binding:"required"`
	Gender           string   `json:"gender" form:"gender"`
	Description      string   `json:"description" form:"description"`
	ImageURL         string   `json:"image_url" form:"image_url"`
	AdditionalImages []string `json:"additional_images" form:"additional_images"`
	VideoURL         string   `json:"video_url" form:"video_url"`
	IsNewArrival     bool     `json:"is_new_arrival" form:"is_new_arrival"`
	IsSoldOut        bool     `json:"is_sold_out" form:"is_sold_out"`
}

type UpdateProductRequest struct {
	Name             string   `json:"name" form:"name"`
	Price            int64    `json:"price" form:"price"`
	Category         string   `json:"category" form:"category"`
	Gender           string   `json:"gender" form:"gender"`
	Description      string   `json:"description" form:"description"`
	ImageURL         string   `json:"image_url" form:"image_url"`
	AdditionalImages []string `json:"additional_images" form:"additional_images"`
	VideoURL         string   `json:"video_url" form:"video_url"`
	IsNewArrival     *bool    `json:"is_new_arrival" form:"is_new_arrival"`
	IsSoldOut        *bool    `json:"is_sold_out" form:"is_sold_out"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type SaveItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Price     int64  `json:"price" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Amount          int64              `json:"amount" binding:"required,gt=0"`
	Currency        string             `json:"currency" binding:"required"`
	ShippingAddress json.RawMessage    `json:"shipping_address" binding:"required"`
	BillingAddress  json.RawMessage    `json:"billing_address"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ReceiptID       string             `json:"receipt_id"`
}

type CreateOrderResponse struct {
	ID              string `json:"id"`
	RazorpayOrderID string `json:"razorpay_order_id"`
	Key             string `json:"key"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Receipt         string `json:"receipt"`
}

type VerifyPaymentRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

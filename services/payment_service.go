package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrOrderNotFound    = errors.New("order not found")
	ErrNotOrderOwner    = errors.New("order does not belong to this user")
)

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	CreateItems(ctx context.Context, orderID string, items []models.OrderItem) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID int) ([]models.Order, error)
	MarkPaid(ctx context.Context, id, paymentID string) error
	MarkFailed(ctx context.Context, id string) error
}

// PaymentGateway creates an order handle at the payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
}

type cartClearer interface {
	Clear(ctx context.Context, userID int) error
}

type orderMailer interface {
	SendOrderConfirmationEmail(toEmail, receiptID string, amount int64, currency string) error
}

// PaymentService runs the two-phase checkout: create a pending order against
// the gateway, then verify the signed callback and flip it to paid.
type PaymentService struct {
	orders  OrderStore
	carts   cartClearer
	gateway PaymentGateway

	keyID     string
	keySecret string

	mailer orderMailer // optional
}

func NewPaymentService(orders OrderStore, carts cartClearer, gateway PaymentGateway, keyID, keySecret string) *PaymentService {
	return &PaymentService{
		orders:    orders,
		carts:     carts,
		gateway:   gateway,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (s *PaymentService) WithMailer(mailer orderMailer) *PaymentService {
	s.mailer = mailer
	return s
}

// SignPayment computes the gateway signature: hex HMAC-SHA256 over
// "<gatewayOrderID>|<gatewayPaymentID>" keyed by the secret.
func SignPayment(gatewayOrderID, gatewayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateOrder is phase one: obtain a gateway order handle, persist the order
// as created, then persist its items. An item insert failure is logged and
// does not undo the order; the payment can still complete against it.
func (s *PaymentService) CreateOrder(ctx context.Context, userID int, req models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	receipt := req.ReceiptID
	if receipt == "" {
		receipt = "rcpt_" + uuid.NewString()
	}

	gatewayOrderID, err := s.gateway.CreateOrder(ctx, req.Amount, req.Currency, receipt)
	if err != nil {
		return nil, err
	}

	billing := req.BillingAddress
	if billing == nil {
		billing = req.ShippingAddress
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		ReceiptID:       receipt,
		GatewayOrderID:  gatewayOrderID,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  billing,
		Status:          models.OrderStatusCreated,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	if err := s.orders.CreateItems(ctx, order.ID, items); err != nil {
		// Order exists without its items; recoverable from gateway records.
		log.Printf("Failed to store items for order %s: %v", order.ID, err)
	}

	return &models.CreateOrderResponse{
		ID:              order.ID,
		RazorpayOrderID: gatewayOrderID,
		Key:             s.keyID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Receipt:         receipt,
	}, nil
}

// VerifyPayment is phase two. Signature mismatch or ownership mismatch is a
// hard failure with no order mutation. After a successful flip to paid, a
// cart-clear failure is logged, not surfaced: the payment outcome wins.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID int, userEmail string, req models.VerifyPaymentRequest) (*models.Order, error) {
	expected := SignPayment(req.RazorpayOrderID, req.RazorpayPaymentID, s.keySecret)
	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		return nil, ErrInvalidSignature
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}

	if err := s.orders.MarkPaid(ctx, order.ID, req.RazorpayPaymentID); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusPaid
	order.PaymentID = req.RazorpayPaymentID

	if err := s.carts.Clear(ctx, userID); err != nil {
		log.Printf("Failed to clear cart for user %d after payment %s: %v", userID, req.RazorpayPaymentID, err)
	}

	if s.mailer != nil && userEmail != "" {
		if err := s.mailer.SendOrderConfirmationEmail(userEmail, order.ReceiptID, order.Amount, order.Currency); err != nil {
			log.Printf("Failed to send confirmation email for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// MarkOrderFailed records a gateway-declined payment against the order.
func (s *PaymentService) MarkOrderFailed(ctx context.Context, userID int, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotFound
	}
	if order.UserID != userID {
		return ErrNotOrderOwner
	}
	return s.orders.MarkFailed(ctx, orderID)
}

func (s *PaymentService) GetOrder(ctx context.Context, userID int, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *PaymentService) ListOrders(ctx context.Context, userID int) []models.Order {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Error fetching orders for user %d: %v", userID, err)
		return []models.Order{}
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders
}

package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrSavedItemNotFound = errors.New("saved item not found")
	ErrQuantityLimit     = errors.New("cart quantity limit reached")
)

// CartStore persists per-user line items. AddItem increments the quantity of
// an existing (user, product) row instead of inserting a duplicate; maxQty
// caps the increment when positive, 0 means unbounded.
type CartStore interface {
	ListItems(ctx context.Context, userID int) ([]models.CartItem, error)
	AddItem(ctx context.Context, userID int, productID string, maxQty int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int) error
	Clear(ctx context.Context, userID int) error
	MoveToSaved(ctx context.Context, userID, itemID int, expiresAt time.Time) error
}

type SavedStore interface {
	ListItems(ctx context.Context, userID int) ([]models.SavedItem, error)
	SaveItem(ctx context.Context, userID int, productID string, expiresAt time.Time) (bool, error)
	RemoveItem(ctx context.Context, userID, itemID int) error
	MoveToCart(ctx context.Context, userID, itemID, maxQty int) error
}

// CartService applies the quantity policy on top of the stores. The bound is
// business-configurable rather than hardcoded.
type CartService struct {
	carts       CartStore
	saved       SavedStore
	maxQuantity int
	savedTTL    time.Duration
}

func NewCartService(carts CartStore, saved SavedStore, maxQuantity, savedTTLDays int) *CartService {
	return &CartService{
		carts:       carts,
		saved:       saved,
		maxQuantity: maxQuantity,
		savedTTL:    time.Duration(savedTTLDays) * 24 * time.Hour,
	}
}

// GetCartItems degrades to an empty list on storage failure; the cart page
// renders empty rather than erroring.
func (s *CartService) GetCartItems(ctx context.Context, userID int) []models.CartItem {
	items, err := s.carts.ListItems(ctx, userID)
	if err != nil {
		log.Printf("Error fetching cart items for user %d: %v", userID, err)
		return []models.CartItem{}
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items
}

func (s *CartService) AddToCart(ctx context.Context, userID int, productID string) (*models.CartItem, error) {
	item, err := s.carts.AddItem(ctx, userID, productID, s.maxQuantity)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity enforces the quantity policy; a quantity below 1 removes
// the row.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	if quantity < 1 {
		return s.carts.RemoveItem(ctx, userID, itemID)
	}
	if s.maxQuantity > 0 && quantity > s.maxQuantity {
		return ErrQuantityLimit
	}
	return s.carts.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID int) error {
	return s.carts.RemoveItem(ctx, userID, itemID)
}

func (s *CartService) ClearCart(ctx context.Context, userID int) error {
	return s.carts.Clear(ctx, userID)
}

func (s *CartService) MoveToSaved(ctx context.Context, userID, itemID int) error {
	return s.carts.MoveToSaved(ctx, userID, itemID, time.Now().Add(s.savedTTL))
}

func (s *CartService) GetSavedItems(ctx context.Context, userID int) []models.SavedItem {
	items, err := s.saved.ListItems(ctx, userID)
	if err != nil {
		log.Printf("Error fetching saved items for user %d: %v", userID, err)
		return []models.SavedItem{}
	}
	if items == nil {
		items = []models.SavedItem{}
	}
	return items
}

// SaveItem is idempotent: saving an already-saved product reports
// alreadySaved instead of duplicating the row.
func (s *CartService) SaveItem(ctx context.Context, userID int, productID string) (alreadySaved bool, err error) {
	inserted, err := s.saved.SaveItem(ctx, userID, productID, time.Now().Add(s.savedTTL))
	if err != nil {
		return false, err
	}
	return !inserted, nil
}

func (s *CartService) RemoveSavedItem(ctx context.Context, userID, itemID int) error {
	return s.saved.RemoveItem(ctx, userID, itemID)
}

func (s *CartService) MoveToCart(ctx context.Context, userID, itemID int) error {
	return s.saved.MoveToCart(ctx, userID, itemID, s.maxQuantity)
}

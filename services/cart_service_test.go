package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

// fakeCartStore mirrors the storage semantics: one row per (user, product),
// AddItem increments with an optional cap.
type fakeCartStore struct {
	nextID int
	items  []models.CartItem
	saved  *fakeSavedStore
	err    error
}

func (f *fakeCartStore) ListItems(ctx context.Context, userID int) ([]models.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.CartItem
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartStore) AddItem(ctx context.Context, userID int, productID string, maxQty int) (*models.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ProductID == productID {
			if maxQty <= 0 || f.items[i].Quantity < maxQty {
				f.items[i].Quantity++
			}
			it := f.items[i]
			return &it, nil
		}
	}
	f.nextID++
	item := models.CartItem{ID: f.nextID, UserID: userID, ProductID: productID, Quantity: 1}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeCartStore) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == itemID {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (f *fakeCartStore) RemoveItem(ctx context.Context, userID, itemID int) error {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (f *fakeCartStore) Clear(ctx context.Context, userID int) error {
	if f.err != nil {
		return f.err
	}
	var kept []models.CartItem
	for _, it := range f.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeCartStore) MoveToSaved(ctx context.Context, userID, itemID int, expiresAt time.Time) error {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == itemID {
			if f.saved != nil {
				f.saved.SaveItem(ctx, userID, f.items[i].ProductID, expiresAt)
			}
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

type fakeSavedStore struct {
	nextID int
	items  []models.SavedItem
	cart   *fakeCartStore
	err    error
}

func (f *fakeSavedStore) ListItems(ctx context.Context, userID int) ([]models.SavedItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SavedItem
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeSavedStore) SaveItem(ctx context.Context, userID int, productID string, expiresAt time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, it := range f.items {
		if it.UserID == userID && it.ProductID == productID {
			return false, nil
		}
	}
	f.nextID++
	f.items = append(f.items, models.SavedItem{ID: f.nextID, UserID: userID, ProductID: productID, ExpiresAt: expiresAt})
	return true, nil
}

func (f *fakeSavedStore) RemoveItem(ctx context.Context, userID, itemID int) error {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrSavedItemNotFound
}

func (f *fakeSavedStore) MoveToCart(ctx context.Context, userID, itemID, maxQty int) error {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == itemID {
			if f.cart != nil {
				f.cart.AddItem(ctx, userID, f.items[i].ProductID, maxQty)
			}
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrSavedItemNotFound
}

func newTestCartService(maxQty int) (*CartService, *fakeCartStore, *fakeSavedStore) {
	carts := &fakeCartStore{}
	saved := &fakeSavedStore{cart: carts}
	carts.saved = saved
	return NewCartService(carts, saved, maxQty, 90), carts, saved
}

func TestAddToCartTwiceKeepsOneRow(t *testing.T) {
	svc, carts, _ := newTestCartService(10)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, 1, "p1"); err != nil {
		t.Fatal(err)
	}
	item, err := svc.AddToCart(ctx, 1, "p1")
	if err != nil {
		t.Fatal(err)
	}

	if len(carts.items) != 1 {
		t.Fatalf("got %d rows, want one row per (user, product)", len(carts.items))
	}
	if item.Quantity != 2 {
		t.Errorf("quantity is %d, want 2", item.Quantity)
	}
}

func TestAddToCartClampsAtLimit(t *testing.T) {
	svc, carts, _ := newTestCartService(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.AddToCart(ctx, 1, "p1"); err != nil {
			t.Fatal(err)
		}
	}

	if carts.items[0].Quantity != 3 {
		t.Errorf("quantity is %d, want it clamped at 3", carts.items[0].Quantity)
	}
}

func TestUpdateQuantityBelowOneRemovesItem(t *testing.T) {
	svc, carts, _ := newTestCartService(10)
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, 1, "p1")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateQuantity(ctx, 1, item.ID, 0); err != nil {
		t.Fatal(err)
	}
	if len(carts.items) != 0 {
		t.Error("row survived a zero-quantity update")
	}
}

func TestUpdateQuantityAboveLimitRejected(t *testing.T) {
	svc, carts, _ := newTestCartService(10)
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, 1, "p1")
	if err != nil {
		t.Fatal(err)
	}

	err = svc.UpdateQuantity(ctx, 1, item.ID, 11)
	if !errors.Is(err, ErrQuantityLimit) {
		t.Errorf("got %v, want ErrQuantityLimit", err)
	}
	if carts.items[0].Quantity != 1 {
		t.Errorf("quantity changed to %d despite rejection", carts.items[0].Quantity)
	}
}

func TestUpdateQuantityUnboundedWhenLimitZero(t *testing.T) {
	svc, carts, _ := newTestCartService(0)
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, 1, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateQuantity(ctx, 1, item.ID, 500); err != nil {
		t.Fatal(err)
	}
	if carts.items[0].Quantity != 500 {
		t.Errorf("quantity is %d, want 500", carts.items[0].Quantity)
	}
}

func TestGetCartItemsDegradesToEmptyOnOutage(t *testing.T) {
	svc, carts, _ := newTestCartService(10)
	carts.err = errors.New("connection refused")

	items := svc.GetCartItems(context.Background(), 1)
	if items == nil || len(items) != 0 {
		t.Errorf("got %v, want an empty slice", items)
	}
}

func TestMoveToSavedTransfersItem(t *testing.T) {
	svc, carts, saved := newTestCartService(10)
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, 1, "p1")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.MoveToSaved(ctx, 1, item.ID); err != nil {
		t.Fatal(err)
	}
	if len(carts.items) != 0 {
		t.Error("item still in cart after move")
	}
	if len(saved.items) != 1 || saved.items[0].ProductID != "p1" {
		t.Errorf("saved items %v, want the moved product", saved.items)
	}
	if saved.items[0].ExpiresAt.IsZero() {
		t.Error("saved item has no expiry")
	}
}

func TestMoveToCartTransfersItem(t *testing.T) {
	svc, carts, saved := newTestCartService(10)
	ctx := context.Background()

	already, err := svc.SaveItem(ctx, 1, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if already {
		t.Fatal("first save reported as duplicate")
	}

	if err := svc.MoveToCart(ctx, 1, saved.items[0].ID); err != nil {
		t.Fatal(err)
	}
	if len(saved.items) != 0 {
		t.Error("item still saved after move")
	}
	if len(carts.items) != 1 || carts.items[0].ProductID != "p1" {
		t.Errorf("cart items %v, want the moved product", carts.items)
	}
}

func TestSaveItemIsIdempotent(t *testing.T) {
	svc, _, saved := newTestCartService(10)
	ctx := context.Background()

	if _, err := svc.SaveItem(ctx, 1, "p1"); err != nil {
		t.Fatal(err)
	}
	already, err := svc.SaveItem(ctx, 1, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if !already {
		t.Error("second save not reported as already saved")
	}
	if len(saved.items) != 1 {
		t.Errorf("got %d saved rows, want 1", len(saved.items))
	}
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc, _, _ := newTestCartService(10)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, 1, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddToCart(ctx, 2, "p2"); err != nil {
		t.Fatal(err)
	}

	if err := svc.ClearCart(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if items := svc.GetCartItems(ctx, 2); len(items) != 1 {
		t.Errorf("user 2 has %d items after user 1's clear, want 1", len(items))
	}
	if items := svc.GetCartItems(ctx, 1); len(items) != 0 {
		t.Errorf("user 1 has %d items after clear, want 0", len(items))
	}
}

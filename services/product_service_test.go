package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

type fakeProductStore struct {
	products  []models.Product
	listCalls int
	listErr   error
	created   []*models.Product
	updated   []*models.Product
	deleted   []string
}

func (f *fakeProductStore) List(ctx context.Context) ([]models.Product, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	p.ID = "p-new"
	f.created = append(f.created, p)
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductStore) Update(ctx context.Context, p *models.Product) error {
	f.updated = append(f.updated, p)
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = *p
		}
	}
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Gold Hoop Earrings", Price: 450000, Category: "earrings", Gender: "women"},
		{ID: "p2", Name: "Silver Chain", Price: 120000, Category: "chains", Gender: "unisex"},
	}
}

func newTestProductService(store *fakeProductStore, ttl time.Duration) (*ProductService, *time.Time) {
	cache := NewCacheService(NewMemoryStore(), ttl)
	now := time.Unix(1700000000, 0)
	cache.now = func() time.Time { return now }
	return NewProductService(store, cache), &now
}

func TestGetProductsReadsThroughCache(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, _ := newTestProductService(store, 30*time.Minute)
	ctx := context.Background()

	first := svc.GetProducts(ctx, false)
	second := svc.GetProducts(ctx, false)

	if store.listCalls != 1 {
		t.Errorf("storage hit %d times, want 1", store.listCalls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("got %d then %d products, want 2 each", len(first), len(second))
	}
}

func TestGetProductsForceRefreshBypassesCache(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, _ := newTestProductService(store, 30*time.Minute)
	ctx := context.Background()

	svc.GetProducts(ctx, false)
	store.products = append(store.products, models.Product{ID: "p3", Name: "Ruby Ring", Category: "rings", Gender: "women"})

	refreshed := svc.GetProducts(ctx, true)
	if store.listCalls != 2 {
		t.Errorf("storage hit %d times, want 2", store.listCalls)
	}
	if len(refreshed) != 3 {
		t.Errorf("got %d products after force refresh, want 3", len(refreshed))
	}
}

func TestGetProductsRefetchesAfterTTL(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, now := newTestProductService(store, 30*time.Minute)
	ctx := context.Background()

	svc.GetProducts(ctx, false)
	*now = now.Add(31 * time.Minute)
	svc.GetProducts(ctx, false)

	if store.listCalls != 2 {
		t.Errorf("storage hit %d times after expiry, want 2", store.listCalls)
	}
}

func TestGetProductsDegradesToEmptyListOnOutage(t *testing.T) {
	store := &fakeProductStore{listErr: errors.New("connection refused")}
	svc, _ := newTestProductService(store, time.Minute)

	products := svc.GetProducts(context.Background(), false)
	if products == nil {
		t.Fatal("got nil, want an empty slice")
	}
	if len(products) != 0 {
		t.Errorf("got %d products, want none", len(products))
	}
}

func TestGetProductsServesStaleDuringOutage(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, now := newTestProductService(store, 30*time.Minute)
	ctx := context.Background()

	svc.GetProducts(ctx, false)
	*now = now.Add(2 * time.Hour)
	store.listErr = errors.New("connection refused")

	products := svc.GetProducts(ctx, false)
	if len(products) != 2 {
		t.Errorf("got %d products, want the 2 stale ones", len(products))
	}
}

func TestCreateProductDefaultsGenderAndRefreshesCache(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, _ := newTestProductService(store, 30*time.Minute)
	ctx := context.Background()

	svc.GetProducts(ctx, false)

	created, err := svc.CreateProduct(ctx, models.CreateProductRequest{
		Name:     "Pearl Pendant",
		Price:    89000,
		Category: "pendants",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Gender != "unisex" {
		t.Errorf("gender defaulted to %q, want unisex", created.Gender)
	}

	products := svc.GetProducts(ctx, false)
	if len(products) != 3 {
		t.Errorf("cache serves %d products after create, want 3", len(products))
	}
}

func TestUpdateProductMergesOnlyProvidedFields(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, _ := newTestProductService(store, time.Minute)
	ctx := context.Background()

	soldOut := true
	updated, err := svc.UpdateProduct(ctx, "p1", models.UpdateProductRequest{
		Price:     500000,
		IsSoldOut: &soldOut,
	})
	if err != nil {
		t.Fatal(err)
	}

	if updated.Name != "Gold Hoop Earrings" {
		t.Errorf("name changed to %q, want it untouched", updated.Name)
	}
	if updated.Price != 500000 {
		t.Errorf("price is %d, want 500000", updated.Price)
	}
	if !updated.IsSoldOut {
		t.Error("sold-out flag not applied")
	}
}

func TestUpdateProductUnknownID(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, _ := newTestProductService(store, time.Minute)

	_, err := svc.UpdateProduct(context.Background(), "missing", models.UpdateProductRequest{Name: "x"})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("got %v, want ErrProductNotFound", err)
	}
}

func TestDeleteProductRefreshesCache(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, _ := newTestProductService(store, 30*time.Minute)
	ctx := context.Background()

	svc.GetProducts(ctx, false)

	store.products = store.products[:1]
	if err := svc.DeleteProduct(ctx, "p2"); err != nil {
		t.Fatal(err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "p2" {
		t.Errorf("deleted %v, want [p2]", store.deleted)
	}

	products := svc.GetProducts(ctx, false)
	if len(products) != 1 {
		t.Errorf("cache serves %d products after delete, want 1", len(products))
	}
}

func TestGetProductByIDBypassesCache(t *testing.T) {
	store := &fakeProductStore{products: sampleProducts()}
	svc, _ := newTestProductService(store, time.Hour)
	ctx := context.Background()

	svc.GetProducts(ctx, false)

	p, err := svc.GetProductByID(ctx, "p2")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Silver Chain" {
		t.Errorf("got %q", p.Name)
	}
	if store.listCalls != 1 {
		t.Errorf("single lookup hit List %d times, want the cached list untouched", store.listCalls)
	}
}

package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

const productsCacheKey = "products"

var ErrProductNotFound = errors.New("product not found")

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

type ProductService struct {
	repo  ProductStore
	cache *CacheService

	mu          sync.Mutex
	stopRefresh chan struct{}
}

func NewProductService(repo ProductStore, cache *CacheService) *ProductService {
	return &ProductService{repo: repo, cache: cache}
}

func (s *ProductService) fetchAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].WarnOnUnknownEnums()
	}
	return products, nil
}

// GetProducts serves the catalog through the cache; forceRefresh bypasses it
// and writes through. A storage outage with nothing cached degrades to an
// empty list rather than an error, so the storefront renders empty instead
// of breaking.
func (s *ProductService) GetProducts(ctx context.Context, forceRefresh bool) []models.Product {
	var products []models.Product
	var err error
	if forceRefresh {
		products, err = RefreshCachedData(ctx, s.cache, productsCacheKey, s.fetchAll)
	} else {
		products, err = GetCachedData(ctx, s.cache, productsCacheKey, s.fetchAll)
	}
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		return []models.Product{}
	}
	if products == nil {
		products = []models.Product{}
	}
	return products
}

// GetProductByID always reads storage directly; single records are not
// served from the list cache.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.WarnOnUnknownEnums()
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	gender := req.Gender
	if gender == "" {
		gender = "unisex"
	}

	product := &models.Product{
		Name:             req.Name,
		Price:            req.Price,
		Category:         req.Category,
		Gender:           gender,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		AdditionalImages: req.AdditionalImages,
		VideoURL:         req.VideoURL,
		IsNewArrival:     req.IsNewArrival,
		IsSoldOut:        req.IsSoldOut,
	}
	product.WarnOnUnknownEnums()

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.GetProducts(ctx, true)
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Gender != "" {
		product.Gender = req.Gender
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}
	if req.AdditionalImages != nil {
		product.AdditionalImages = req.AdditionalImages
	}
	if req.VideoURL != "" {
		product.VideoURL = req.VideoURL
	}
	if req.IsNewArrival != nil {
		product.IsNewArrival = *req.IsNewArrival
	}
	if req.IsSoldOut != nil {
		product.IsSoldOut = *req.IsSoldOut
	}
	product.WarnOnUnknownEnums()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.GetProducts(ctx, true)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.GetProducts(ctx, true)
	return nil
}

func (s *ProductService) ClearCache(ctx context.Context) error {
	return s.cache.ClearAllCache(ctx)
}

// StartPeriodicRefresh force-refreshes the catalog cache on an interval.
// It runs alongside the on-demand invalidation after mutations; whichever
// refresh finishes last wins the cache write.
func (s *ProductService) StartPeriodicRefresh(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopRefresh != nil {
		close(s.stopRefresh)
	}
	stop := make(chan struct{})
	s.stopRefresh = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.GetProducts(context.Background(), true)
			case <-stop:
				return
			}
		}
	}()

	log.Printf("Products cache refresh scheduled every %s", interval)
}

func (s *ProductService) StopPeriodicRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopRefresh != nil {
		close(s.stopRefresh)
		s.stopRefresh = nil
	}
}

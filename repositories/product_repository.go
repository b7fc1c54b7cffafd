package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

var ErrNotFound = errors.New("not found")

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `id, name, price, category, gender, description, image_url,
	additional_images, video_url, is_new_arrival, is_sold_out, created_at, updated_at`

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.Gender, &p.Description, &p.ImageURL,
		&p.AdditionalImages, &p.VideoURL, &p.IsNewArrival, &p.IsSoldOut, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := models.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	err := scanProduct(models.DB.QueryRow(ctx, query, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, price, category, gender, description, image_url,
			additional_images, video_url, is_new_arrival, is_sold_out)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	if p.AdditionalImages == nil {
		p.AdditionalImages = []string{}
	}
	return models.DB.QueryRow(ctx, query,
		p.Name, p.Price, p.Category, p.Gender, p.Description, p.ImageURL,
		p.AdditionalImages, p.VideoURL, p.IsNewArrival, p.IsSoldOut,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products SET name = $1, price = $2, category = $3, gender = $4,
			description = $5, image_url = $6, additional_images = $7, video_url = $8,
			is_new_arrival = $9, is_sold_out = $10, updated_at = now()
		WHERE id = $11
		RETURNING updated_at
	`
	if p.AdditionalImages == nil {
		p.AdditionalImages = []string{}
	}
	err := models.DB.QueryRow(ctx, query,
		p.Name, p.Price, p.Category, p.Gender, p.Description, p.ImageURL,
		p.AdditionalImages, p.VideoURL, p.IsNewArrival, p.IsSoldOut, p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := models.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

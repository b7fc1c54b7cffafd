package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) ListItems(ctx context.Context, userID int) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
			p.id, p.name, p.price, p.category, p.gender, p.description, p.image_url,
			p.additional_images, p.video_url, p.is_new_arrival, p.is_sold_out, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at DESC
	`
	rows, err := models.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		var p models.Product
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Gender, &p.Description, &p.ImageURL,
			&p.AdditionalImages, &p.VideoURL, &p.IsNewArrival, &p.IsSoldOut, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddItem upserts the (user, product) row: an existing row has its quantity
// incremented, clamped to maxQty when positive, instead of growing a
// duplicate.
func (r *CartRepository) AddItem(ctx context.Context, userID int, productID string, maxQty int) (*models.CartItem, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = CASE
				WHEN $3 > 0 THEN LEAST(cart_items.quantity + 1, $3)
				ELSE cart_items.quantity + 1
			END,
			updated_at = now()
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`
	var item models.CartItem
	err := models.DB.QueryRow(ctx, query, userID, productID, maxQty).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	tag, err := models.DB.Exec(ctx,
		`UPDATE cart_items SET quantity = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
		quantity, itemID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, itemID int) error {
	tag, err := models.DB.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID int) error {
	_, err := models.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

// MoveToSaved shifts a cart row onto the saved shelf in one transaction, so
// a failure cannot leave the item in both places or neither.
func (r *CartRepository) MoveToSaved(ctx context.Context, userID, itemID int, expiresAt time.Time) error {
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var productID string
	err = tx.QueryRow(ctx,
		`SELECT product_id FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	).Scan(&productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO saved_items (user_id, product_id, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID, expiresAt,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type SavedItemRepository struct{}

func NewSavedItemRepository() *SavedItemRepository {
	return &SavedItemRepository{}
}

func (r *SavedItemRepository) ListItems(ctx context.Context, userID int) ([]models.SavedItem, error) {
	query := `
		SELECT si.id, si.user_id, si.product_id, si.created_at, si.expires_at,
			p.id, p.name, p.price, p.category, p.gender, p.description, p.image_url,
			p.additional_images, p.video_url, p.is_new_arrival, p.is_sold_out, p.created_at, p.updated_at
		FROM saved_items si
		JOIN products p ON si.product_id = p.id
		WHERE si.user_id = $1
		ORDER BY si.created_at DESC
	`
	rows, err := models.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.SavedItem{}
	for rows.Next() {
		var item models.SavedItem
		var p models.Product
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt, &item.ExpiresAt,
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Gender, &p.Description, &p.ImageURL,
			&p.AdditionalImages, &p.VideoURL, &p.IsNewArrival, &p.IsSoldOut, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, rows.Err()
}

// SaveItem reports whether a new row was inserted; a duplicate save leaves
// the existing row untouched.
func (r *SavedItemRepository) SaveItem(ctx context.Context, userID int, productID string, expiresAt time.Time) (bool, error) {
	tag, err := models.DB.Exec(ctx,
		`INSERT INTO saved_items (user_id, product_id, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID, expiresAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SavedItemRepository) RemoveItem(ctx context.Context, userID, itemID int) error {
	tag, err := models.DB.Exec(ctx,
		`DELETE FROM saved_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MoveToCart shifts a saved row into the cart in one transaction, applying
// the same quantity clamp as AddItem.
func (r *SavedItemRepository) MoveToCart(ctx context.Context, userID, itemID, maxQty int) error {
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var productID string
	err = tx.QueryRow(ctx,
		`SELECT product_id FROM saved_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	).Scan(&productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, product_id) DO UPDATE
		 SET quantity = CASE
				WHEN $3 > 0 THEN LEAST(cart_items.quantity + 1, $3)
				ELSE cart_items.quantity + 1
			END,
			updated_at = now()`,
		userID, productID, maxQty,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM saved_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

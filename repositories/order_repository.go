package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const orderColumns = `id, user_id, amount, currency, receipt_id, razorpay_order_id,
	razorpay_payment_id, shipping_address, billing_address, status, created_at, updated_at`

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.Amount, &o.Currency, &o.ReceiptID, &o.GatewayOrderID,
		&o.PaymentID, &o.ShippingAddress, &o.BillingAddress, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	query := `
		INSERT INTO orders (id, user_id, amount, currency, receipt_id, razorpay_order_id,
			shipping_address, billing_address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return models.DB.QueryRow(ctx, query,
		o.ID, o.UserID, o.Amount, o.Currency, o.ReceiptID, o.GatewayOrderID,
		o.ShippingAddress, o.BillingAddress, o.Status,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *OrderRepository) CreateItems(ctx context.Context, orderID string, items []models.OrderItem) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
			orderID, item.ProductID, item.Quantity, item.Price,
		)
	}
	return models.DB.SendBatch(ctx, batch).Close()
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := scanOrder(models.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := models.DB.Query(ctx,
		`SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := models.DB.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) ListAll(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM orders`
	countArgs := []interface{}{}
	if status != "" {
		countQuery += ` WHERE status = $1`
		countArgs = append(countArgs, status)
	}
	if err := models.DB.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := models.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id, paymentID string) error {
	tag, err := models.DB.Exec(ctx,
		`UPDATE orders SET status = $1, razorpay_payment_id = $2, updated_at = now() WHERE id = $3`,
		models.OrderStatusPaid, paymentID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) MarkFailed(ctx context.Context, id string) error {
	tag, err := models.DB.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		models.OrderStatusFailed, id, models.OrderStatusCreated,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

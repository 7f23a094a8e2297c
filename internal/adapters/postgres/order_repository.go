package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/debipro/checkout-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// OrderRepository implements ports.OrderRepository over PostgreSQL.
// Orders live in an orders row plus an order_meta key/value table for the
// payment attempt metadata.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// GetByID loads an order with its metadata
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var (
		order domain.Order
		total string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, status, total::text, created_at, updated_at
		 FROM orders WHERE id = $1`,
		orderID,
	).Scan(&order.ID, &order.Status, &total, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	order.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}

	order.Metadata, err = r.loadMetadata(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// SetMetadata upserts one metadata key on the order
func (r *OrderRepository) SetMetadata(ctx context.Context, orderID, key, value string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO order_meta (order_id, meta_key, meta_value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (order_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`,
		orderID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set order metadata: %w", err)
	}
	return nil
}

// SetStatus transitions the order to the given status
func (r *OrderRepository) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, string(status),
	)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) loadMetadata(ctx context.Context, orderID string) (map[string]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT meta_key, meta_value FROM order_meta WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("load order metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan order metadata: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

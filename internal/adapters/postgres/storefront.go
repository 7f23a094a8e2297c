package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/debipro/checkout-service/internal/domain"
	"github.com/debipro/checkout-service/internal/session"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Product meta keys carrying the financing configuration
const (
	metaMonthlyInterestPercentage = "_monthly_interest_percentage"
	metaMaximumInstallments       = "_maximum_installments_allowed"
)

var errNoSession = errors.New("no shopper session in context")

// CartStore implements ports.CartProvider over the cart_items table.
// The shopper session id is carried in the request context.
type CartStore struct {
	pool *pgxpool.Pool
}

// NewCartStore creates a new cart store
func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

// LineItems returns the cart lines for the current session
func (s *CartStore) LineItems(ctx context.Context) ([]domain.LineItem, error) {
	sessionID, ok := session.ID(ctx)
	if !ok {
		return nil, errNoSession
	}

	rows, err := s.pool.Query(ctx,
		`SELECT product_id, title FROM cart_items WHERE session_id = $1 ORDER BY added_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ProductID, &item.Title); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Total returns the cart total for the current session
func (s *CartStore) Total(ctx context.Context) (decimal.Decimal, error) {
	sessionID, ok := session.ID(ctx)
	if !ok {
		return decimal.Zero, errNoSession
	}

	var total string
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(line_total), 0)::text FROM cart_items WHERE session_id = $1`,
		sessionID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cart total: %w", err)
	}
	return decimal.NewFromString(total)
}

// Empty removes every cart line for the current session
func (s *CartStore) Empty(ctx context.Context) error {
	sessionID, ok := session.ID(ctx)
	if !ok {
		return errNoSession
	}

	if _, err := s.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE session_id = $1`, sessionID,
	); err != nil {
		return fmt.Errorf("empty cart: %w", err)
	}
	return nil
}

// CustomerProfileStore implements ports.CustomerProfileProvider over the
// customer_profiles table.
type CustomerProfileStore struct {
	pool *pgxpool.Pool
}

// NewCustomerProfileStore creates a new customer profile store
func NewCustomerProfileStore(pool *pgxpool.Pool) *CustomerProfileStore {
	return &CustomerProfileStore{pool: pool}
}

// BillingName returns the billing first and last name for the current session
func (s *CustomerProfileStore) BillingName(ctx context.Context) (string, string, error) {
	sessionID, ok := session.ID(ctx)
	if !ok {
		return "", "", errNoSession
	}

	var first, last string
	err := s.pool.QueryRow(ctx,
		`SELECT billing_first_name, billing_last_name FROM customer_profiles WHERE session_id = $1`,
		sessionID,
	).Scan(&first, &last)
	if err != nil {
		return "", "", fmt.Errorf("billing name: %w", err)
	}
	return first, last, nil
}

// BillingEmail returns the billing email for the current session
func (s *CustomerProfileStore) BillingEmail(ctx context.Context) (string, error) {
	sessionID, ok := session.ID(ctx)
	if !ok {
		return "", errNoSession
	}

	var email string
	err := s.pool.QueryRow(ctx,
		`SELECT billing_email FROM customer_profiles WHERE session_id = $1`,
		sessionID,
	).Scan(&email)
	if err != nil {
		return "", fmt.Errorf("billing email: %w", err)
	}
	return email, nil
}

// ProductFinancingRepository implements ports.ProductFinancingStore over the
// product_meta key/value table. Missing or non-numeric configuration falls
// back to the defaults {0, 12} instead of erroring.
type ProductFinancingRepository struct {
	pool *pgxpool.Pool
}

// NewProductFinancingRepository creates a new product financing repository
func NewProductFinancingRepository(pool *pgxpool.Pool) *ProductFinancingRepository {
	return &ProductFinancingRepository{pool: pool}
}

// MonthlyInterestPercentage returns the product's monthly interest rate
func (r *ProductFinancingRepository) MonthlyInterestPercentage(ctx context.Context, productID string) (decimal.Decimal, error) {
	raw, err := r.meta(ctx, productID, metaMonthlyInterestPercentage)
	if err != nil {
		return decimal.Zero, err
	}

	rate, parseErr := decimal.NewFromString(raw)
	if raw == "" || parseErr != nil || rate.IsNegative() {
		return decimal.Zero, nil
	}
	return rate, nil
}

// MaxInstallments returns the product's maximum offered installment count
func (r *ProductFinancingRepository) MaxInstallments(ctx context.Context, productID string) (int, error) {
	raw, err := r.meta(ctx, productID, metaMaximumInstallments)
	if err != nil {
		return 0, err
	}

	max, parseErr := decimal.NewFromString(raw)
	if raw == "" || parseErr != nil || max.IntPart() < 1 {
		return domain.DefaultMaxInstallments, nil
	}
	return int(max.IntPart()), nil
}

func (r *ProductFinancingRepository) meta(ctx context.Context, productID, key string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT meta_value FROM product_meta WHERE product_id = $1 AND meta_key = $2`,
		productID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("product meta %s: %w", key, err)
	}
	return value, nil
}

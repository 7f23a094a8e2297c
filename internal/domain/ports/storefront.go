package ports

import (
	"context"

	"github.com/debipro/checkout-service/internal/domain"
	"github.com/shopspring/decimal"
)

// CartProvider exposes the shopper's current cart to the checkout flow
type CartProvider interface {
	LineItems(ctx context.Context) ([]domain.LineItem, error)
	Total(ctx context.Context) (decimal.Decimal, error)
	Empty(ctx context.Context) error
}

// CustomerProfileProvider exposes the billing identity of the shopper
type CustomerProfileProvider interface {
	BillingName(ctx context.Context) (first, last string, err error)
	BillingEmail(ctx context.Context) (string, error)
}

// ProductFinancingStore reads per-product financing configuration.
// Implementations apply the defaults {0, 12} for products with missing or
// non-numeric configuration rather than returning an error.
type ProductFinancingStore interface {
	MonthlyInterestPercentage(ctx context.Context, productID string) (decimal.Decimal, error)
	MaxInstallments(ctx context.Context, productID string) (int, error)
}

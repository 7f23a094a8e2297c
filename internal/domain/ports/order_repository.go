package ports

import (
	"context"

	"github.com/debipro/checkout-service/internal/domain"
)

// OrderRepository persists order state and payment attempt metadata.
// GetByID returns domain.ErrOrderNotFound (wrapped) when the order does not
// exist.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	SetMetadata(ctx context.Context, orderID, key, value string) error
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

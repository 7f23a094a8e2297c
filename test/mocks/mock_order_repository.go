package mocks

import (
	"context"

	"github.com/debipro/checkout-service/internal/domain"
)

// MetadataWrite is one captured SetMetadata call
type MetadataWrite struct {
	OrderID string
	Key     string
	Value   string
}

// MockOrderRepository is an in-memory implementation of OrderRepository
// that records every write for assertions.
type MockOrderRepository struct {
	Orders map[string]*domain.Order

	MetadataWrites []MetadataWrite
	StatusWrites   map[string]domain.OrderStatus

	SetMetadataError error
	SetStatusError   error
}

// NewMockOrderRepository creates an empty in-memory order repository
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		Orders:       make(map[string]*domain.Order),
		StatusWrites: make(map[string]domain.OrderStatus),
	}
}

// Add stores an order for later lookup
func (m *MockOrderRepository) Add(order *domain.Order) {
	m.Orders[order.ID] = order
}

// GetByID returns the stored order or ErrOrderNotFound
func (m *MockOrderRepository) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	order, ok := m.Orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// SetMetadata records the write and applies it to the stored order
func (m *MockOrderRepository) SetMetadata(_ context.Context, orderID, key, value string) error {
	if m.SetMetadataError != nil {
		return m.SetMetadataError
	}
	m.MetadataWrites = append(m.MetadataWrites, MetadataWrite{OrderID: orderID, Key: key, Value: value})
	if order, ok := m.Orders[orderID]; ok {
		if order.Metadata == nil {
			order.Metadata = make(map[string]string)
		}
		order.Metadata[key] = value
	}
	return nil
}

// SetStatus records the transition and applies it to the stored order
func (m *MockOrderRepository) SetStatus(_ context.Context, orderID string, status domain.OrderStatus) error {
	if m.SetStatusError != nil {
		return m.SetStatusError
	}
	m.StatusWrites[orderID] = status
	if order, ok := m.Orders[orderID]; ok {
		order.Status = status
	}
	return nil
}

// Metadata returns the metadata value written for an order, if any
func (m *MockOrderRepository) Metadata(orderID, key string) (string, bool) {
	for _, w := range m.MetadataWrites {
		if w.OrderID == orderID && w.Key == key {
			return w.Value, true
		}
	}
	return "", false
}

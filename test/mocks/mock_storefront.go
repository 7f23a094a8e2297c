package mocks

import (
	"context"

	"github.com/debipro/checkout-service/internal/domain"
	"github.com/shopspring/decimal"
)

// MockCart is an in-memory CartProvider
type MockCart struct {
	Items      []domain.LineItem
	CartTotal  decimal.Decimal
	EmptyCalls int
	EmptyError error
}

// LineItems returns the configured cart lines
func (m *MockCart) LineItems(_ context.Context) ([]domain.LineItem, error) {
	return m.Items, nil
}

// Total returns the configured cart total
func (m *MockCart) Total(_ context.Context) (decimal.Decimal, error) {
	return m.CartTotal, nil
}

// Empty records the call
func (m *MockCart) Empty(_ context.Context) error {
	if m.EmptyError != nil {
		return m.EmptyError
	}
	m.EmptyCalls++
	return nil
}

// MockCustomerProfile is a static CustomerProfileProvider
type MockCustomerProfile struct {
	FirstName string
	LastName  string
	Email     string
}

// BillingName returns the configured name
func (m *MockCustomerProfile) BillingName(_ context.Context) (string, string, error) {
	return m.FirstName, m.LastName, nil
}

// BillingEmail returns the configured email
func (m *MockCustomerProfile) BillingEmail(_ context.Context) (string, error) {
	return m.Email, nil
}

// MockFinancingStore is a per-product ProductFinancingStore
type MockFinancingStore struct {
	Rates map[string]decimal.Decimal
	Max   map[string]int
}

// MonthlyInterestPercentage returns the configured rate or zero
func (m *MockFinancingStore) MonthlyInterestPercentage(_ context.Context, productID string) (decimal.Decimal, error) {
	if rate, ok := m.Rates[productID]; ok {
		return rate, nil
	}
	return decimal.Zero, nil
}

// MaxInstallments returns the configured maximum or the default
func (m *MockFinancingStore) MaxInstallments(_ context.Context, productID string) (int, error) {
	if max, ok := m.Max[productID]; ok {
		return max, nil
	}
	return domain.DefaultMaxInstallments, nil
}

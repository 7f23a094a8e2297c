package mocks

import (
	"context"

	"github.com/debipro/checkout-service/internal/domain/ports"
)

// MockProviderGateway is a mock implementation of ProviderGateway for testing
type MockProviderGateway struct {
	CustomerResponse      *ports.Customer
	CustomerError         error
	PaymentMethodResponse *ports.PaymentMethod
	PaymentMethodError    error
	SubscriptionResponse  *ports.Subscription
	SubscriptionError     error

	// Call tracking
	CreateCustomerCalls     int
	TokenizeCardCalls       int
	CreateSubscriptionCalls int

	// Last request received
	LastCustomerReq     ports.CreateCustomerRequest
	LastTokenizeReq     ports.TokenizeCardRequest
	LastSubscriptionReq ports.CreateSubscriptionRequest
}

// NewMockProviderGateway creates a mock gateway that succeeds by default
func NewMockProviderGateway() *MockProviderGateway {
	return &MockProviderGateway{
		CustomerResponse:      &ports.Customer{ID: "cus_mock"},
		PaymentMethodResponse: &ports.PaymentMethod{ID: "pm_mock"},
		SubscriptionResponse:  &ports.Subscription{ID: "sub_mock"},
	}
}

// CreateCustomer captures the request and returns the configured response
func (m *MockProviderGateway) CreateCustomer(_ context.Context, req ports.CreateCustomerRequest) (*ports.Customer, error) {
	m.CreateCustomerCalls++
	m.LastCustomerReq = req
	if m.CustomerError != nil {
		return nil, m.CustomerError
	}
	return m.CustomerResponse, nil
}

// TokenizeCard captures the request and returns the configured response
func (m *MockProviderGateway) TokenizeCard(_ context.Context, req ports.TokenizeCardRequest) (*ports.PaymentMethod, error) {
	m.TokenizeCardCalls++
	m.LastTokenizeReq = req
	if m.PaymentMethodError != nil {
		return nil, m.PaymentMethodError
	}
	return m.PaymentMethodResponse, nil
}

// CreateSubscription captures the request and returns the configured response
func (m *MockProviderGateway) CreateSubscription(_ context.Context, req ports.CreateSubscriptionRequest) (*ports.Subscription, error) {
	m.CreateSubscriptionCalls++
	m.LastSubscriptionReq = req
	if m.SubscriptionError != nil {
		return nil, m.SubscriptionError
	}
	return m.SubscriptionResponse, nil
}

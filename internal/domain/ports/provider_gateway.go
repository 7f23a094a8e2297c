package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest creates a customer record at the payment provider
type CreateCustomerRequest struct {
	Name                 string
	Email                string
	IdentificationNumber string
}

// Customer is the provider-side customer entity
type Customer struct {
	ID string
}

// TokenizeCardRequest exchanges a raw card number for a provider payment
// method token. CardNumber must already be sanitized to digits only.
type TokenizeCardRequest struct {
	CardNumber string
}

// PaymentMethod is the provider-side tokenized payment method
type PaymentMethod struct {
	ID string
}

// CreateSubscriptionRequest schedules the recurring installment charges.
// Amount is the per-installment charge; DayOfMonth anchors each monthly
// charge; Count limits the schedule to the financed installment count.
type CreateSubscriptionRequest struct {
	Amount          decimal.Decimal
	Description     string
	PaymentMethodID string
	CustomerID      string
	DayOfMonth      int
	Count           int
}

// Subscription is the provider-side recurring charge schedule. ID may be
// empty when the provider accepted the request without materializing the
// subscription; callers must treat that as an incomplete subscription.
type Subscription struct {
	ID string
}

// ProviderGateway is the three-call payment provider protocol. The calls are
// data-dependent and must be issued sequentially: the customer id feeds the
// subscription, the payment method id feeds the subscription.
type ProviderGateway interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	TokenizeCard(ctx context.Context, req TokenizeCardRequest) (*PaymentMethod, error)
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error)
}

package domain

import "github.com/shopspring/decimal"

// CheckoutSubmission is the raw, untrusted checkout form input for one payment
// attempt. Field values are exactly what the shopper submitted; nothing here
// has been sanitized yet.
type CheckoutSubmission struct {
	OrderID                 string
	RawInstallmentCount     string
	RawCardNumber           string
	RawIdentificationNumber string
}

// ValidatedSubmission is a CheckoutSubmission that passed validation.
// CardNumber contains digits only.
type ValidatedSubmission struct {
	Order                *Order
	CardNumber           string
	CardLastFour         string
	IdentificationNumber string
	InstallmentCount     int
}

// LineItem is one cart line as seen by the checkout flow
type LineItem struct {
	ProductID string
	Title     string
}

// PaymentAttemptResult is the financial outcome persisted onto the order as
// metadata. SubscriptionID is empty unless the attempt completed.
type PaymentAttemptResult struct {
	FinalPrice        decimal.Decimal
	InstallmentAmount decimal.Decimal
	CardLastFour      string
	SubscriptionID    string
	InstallmentCount  int
}

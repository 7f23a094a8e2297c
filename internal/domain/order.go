package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the order lifecycle state
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Metadata keys written onto the order by a payment attempt. The key names are
// part of the persisted contract and must not change.
const (
	MetaFinalPrice        = "final_price"
	MetaInstallmentCount  = "installment_count"
	MetaInstallmentAmount = "installment_amount"
	MetaCardLastFour      = "card_last_four"
	MetaSubscriptionID    = "subscription_id"
)

// Order is the order record a payment attempt runs against. Total is the base
// amount before financing interest; Metadata holds the persisted key/value
// pairs written by previous attempts.
type Order struct {
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Metadata  map[string]string `json:"metadata"`
	ID        string            `json:"id"`
	Status    OrderStatus       `json:"status"`
	Total     decimal.Decimal   `json:"total"`
}

// IsPaid returns true once a payment attempt has completed for this order
func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusProcessing || o.Status == OrderStatusCompleted
}

// SubscriptionID returns the provider subscription id persisted by a
// successful attempt, or empty if none succeeded yet.
func (o *Order) SubscriptionID() string {
	if o.Metadata == nil {
		return ""
	}
	return o.Metadata[MetaSubscriptionID]
}

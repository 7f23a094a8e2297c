package checkout

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/debipro/checkout-service/internal/domain"
	"github.com/debipro/checkout-service/internal/domain/ports"
)

// Card number digit-length bounds after stripping separators
const (
	minCardDigits = 13
	maxCardDigits = 19
)

// Validator sanitizes and validates a raw checkout submission. Every rule is
// a hard rejection surfaced as a DomainError with a user-facing message; no
// provider call happens until validation passed.
type Validator struct {
	orders ports.OrderRepository
}

// NewValidator creates a checkout validator
func NewValidator(orders ports.OrderRepository) *Validator {
	return &Validator{orders: orders}
}

// Validate checks the submission in order: order existence, installment
// count, card number. The identification number is sanitized as free text
// only; format validation is the provider's concern.
func (v *Validator) Validate(ctx context.Context, submission domain.CheckoutSubmission) (*domain.ValidatedSubmission, error) {
	order, err := v.orders.GetByID(ctx, submission.OrderID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeOrderNotFound, "order not found", err).
			WithDetail("order_id", submission.OrderID)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	count, err := parseInstallmentCount(submission.RawInstallmentCount)
	if err != nil {
		return nil, err
	}

	digits := stripNonDigits(submission.RawCardNumber)
	if digits == "" {
		return nil, domain.ErrMissingCardNumber
	}
	if len(digits) < minCardDigits || len(digits) > maxCardDigits {
		return nil, domain.NewDomainError(domain.ErrorCodeInvalidCardNumber, "card number length out of range").
			WithDetail("digits", len(digits))
	}

	return &domain.ValidatedSubmission{
		Order:                order,
		InstallmentCount:     count,
		CardNumber:           digits,
		CardLastFour:         digits[len(digits)-4:],
		IdentificationNumber: sanitizeText(submission.RawIdentificationNumber),
	}, nil
}

// parseInstallmentCount parses the submitted count as a non-negative integer
// and rejects anything below 1.
func parseInstallmentCount(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	count, err := strconv.Atoi(trimmed)
	if err != nil || count < 1 {
		return 0, domain.NewDomainError(domain.ErrorCodeInvalidInstallmentCount, "installment count must be a positive integer").
			WithDetail("raw", raw)
	}
	return count, nil
}

// stripNonDigits removes everything but ASCII digits
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeText trims whitespace and drops control characters
func sanitizeText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

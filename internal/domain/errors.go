package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Order errors (ORDER_*)
	ErrorCodeOrderNotFound ErrorCode = "ORDER_NOT_FOUND"

	// Validation errors (VALIDATION_*)
	ErrorCodeInvalidInstallmentCount ErrorCode = "VALIDATION_INSTALLMENT_COUNT"
	ErrorCodeMissingCardNumber       ErrorCode = "VALIDATION_CARD_MISSING"
	ErrorCodeInvalidCardNumber       ErrorCode = "VALIDATION_CARD_INVALID"

	// Payment provider errors (PROVIDER_*)
	ErrorCodeProviderError         ErrorCode = "PROVIDER_ERROR"
	ErrorCodeProviderTimeout       ErrorCode = "PROVIDER_TIMEOUT"
	ErrorCodeProviderEntityMissing ErrorCode = "PROVIDER_ENTITY_MISSING"

	// Subscription errors (SUBSCRIPTION_*)
	ErrorCodeIncompleteSubscription ErrorCode = "SUBSCRIPTION_INCOMPLETE"

	// Internal errors (INTERNAL_*)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeDatabaseError ErrorCode = "INTERNAL_DATABASE_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// GetErrorCode extracts the error code from an error, returns empty string if
// not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// IsValidationError checks if an error is a checkout validation rejection
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeInvalidInstallmentCount ||
		code == ErrorCodeMissingCardNumber ||
		code == ErrorCodeInvalidCardNumber
}

// IsProviderError checks if an error originated at the payment provider
func IsProviderError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeProviderError ||
		code == ErrorCodeProviderTimeout ||
		code == ErrorCodeProviderEntityMissing
}

// UserMessage returns the shopper-facing text for an error. Internal detail
// never leaks here; anything unrecognized collapses to the generic payment
// failure message.
func UserMessage(err error) string {
	switch GetErrorCode(err) {
	case ErrorCodeOrderNotFound:
		return "Order not found."
	case ErrorCodeInvalidInstallmentCount:
		return "Invalid number of installments selected."
	case ErrorCodeMissingCardNumber:
		return "Card number is required."
	case ErrorCodeInvalidCardNumber:
		return "Invalid card number."
	default:
		return "Your payment could not be processed. Please try again."
	}
}

// Structured error instances
var (
	ErrOrderNotFound           = NewDomainError(ErrorCodeOrderNotFound, "order not found")
	ErrInvalidInstallmentCount = NewDomainError(ErrorCodeInvalidInstallmentCount, "invalid number of installments")
	ErrMissingCardNumber       = NewDomainError(ErrorCodeMissingCardNumber, "card number is required")
	ErrInvalidCardNumber       = NewDomainError(ErrorCodeInvalidCardNumber, "invalid card number")
	ErrIncompleteSubscription  = NewDomainError(ErrorCodeIncompleteSubscription, "provider returned no subscription id")
	ErrInternalError           = NewDomainError(ErrorCodeInternalError, "internal error")
	ErrDatabaseError           = NewDomainError(ErrorCodeDatabaseError, "database error")
)

package errors

import "fmt"

// Provider error codes
const (
	CodeNetworkError      = "NETWORK_ERROR"
	CodeTimeout           = "TIMEOUT"
	CodeGatewayError      = "GATEWAY_ERROR"
	CodeRequestRejected   = "REQUEST_REJECTED"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeEntityIDMissing   = "ENTITY_ID_MISSING"
)

// ProviderError represents a failed call to the payment provider with enough
// raw context for operational diagnosis. RawBody is never shown to shoppers.
type ProviderError struct {
	Code        string
	Resource    string
	Message     string
	RawBody     string
	StatusCode  int
	IsTimeout   bool
	IsRetriable bool
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s %s (status %d)", e.Code, e.Resource, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s", e.Code, e.Resource, e.Message)
}

// NewProviderError creates a provider error for a non-2xx response
func NewProviderError(code, resource, message string, statusCode int, rawBody string) *ProviderError {
	return &ProviderError{
		Code:        code,
		Resource:    resource,
		Message:     message,
		StatusCode:  statusCode,
		RawBody:     rawBody,
		IsRetriable: statusCode >= 500,
	}
}

// NewProviderTimeout creates a provider error for a timed-out call
func NewProviderTimeout(resource string) *ProviderError {
	return &ProviderError{
		Code:        CodeTimeout,
		Resource:    resource,
		Message:     "request to payment provider timed out",
		IsTimeout:   true,
		IsRetriable: true,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

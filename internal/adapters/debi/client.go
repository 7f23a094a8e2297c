package debi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/debipro/checkout-service/internal/domain/ports"
	pkgerrors "github.com/debipro/checkout-service/pkg/errors"
	"github.com/debipro/checkout-service/pkg/observability"
)

// Base endpoints for the two Debi environments. Tokens are environment
// specific; a sandbox token is rejected by the live host and vice versa.
const (
	liveBaseURL    = "https://api.debi.pro/v1"
	sandboxBaseURL = "https://api.debi-test.pro/v1"
)

// API resources
const (
	resourceCustomers      = "customers"
	resourcePaymentMethods = "payment_methods"
	resourceSubscriptions  = "subscriptions"
)

// Client implements ports.ProviderGateway against the Debi REST API
type Client struct {
	token      string
	baseURL    string
	httpClient ports.HTTPClient
	logger     ports.Logger
}

// NewClient creates a Debi client for the environment selected by sandbox
func NewClient(token string, sandbox bool, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	baseURL := liveBaseURL
	if sandbox {
		baseURL = sandboxBaseURL
	}
	return NewClientWithBaseURL(token, baseURL, httpClient, logger)
}

// NewClientWithBaseURL creates a Debi client against an explicit base URL
func NewClientWithBaseURL(token, baseURL string, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	return &Client{
		token:      token,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// createCustomerRequest represents the API request structure
type createCustomerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	IdentificationNumber string `json:"identification_number"`
}

// createPaymentMethodRequest represents the API request structure
type createPaymentMethodRequest struct {
	Type string `json:"type"`
	Card struct {
		Number string `json:"number"`
	} `json:"card"`
}

// createSubscriptionRequest represents the API request structure.
// Amount is serialized as a JSON number rounded to cents.
type createSubscriptionRequest struct {
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	PaymentMethodID string  `json:"payment_method_id"`
	IntervalUnit    string  `json:"interval_unit"`
	Interval        int     `json:"interval"`
	DayOfMonth      int     `json:"day_of_month"`
	Count           int     `json:"count"`
	CustomerID      string  `json:"customer_id"`
}

// envelope is the response wrapper every Debi resource uses
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// entity is the common shape of a created resource
type entity struct {
	ID string `json:"id"`
}

// CreateCustomer implements ProviderGateway.CreateCustomer
func (c *Client) CreateCustomer(ctx context.Context, req ports.CreateCustomerRequest) (*ports.Customer, error) {
	apiReq := createCustomerRequest{
		Name:                 req.Name,
		Email:                req.Email,
		IdentificationNumber: req.IdentificationNumber,
	}

	var ent entity
	if err := c.request(ctx, resourceCustomers, apiReq, &ent); err != nil {
		return nil, err
	}

	// A 2xx response without an id must not flow into the next step.
	if ent.ID == "" {
		return nil, &pkgerrors.ProviderError{
			Code:     pkgerrors.CodeEntityIDMissing,
			Resource: resourceCustomers,
			Message:  "response contained no customer id",
		}
	}

	return &ports.Customer{ID: ent.ID}, nil
}

// TokenizeCard implements ProviderGateway.TokenizeCard
func (c *Client) TokenizeCard(ctx context.Context, req ports.TokenizeCardRequest) (*ports.PaymentMethod, error) {
	apiReq := createPaymentMethodRequest{Type: "card"}
	apiReq.Card.Number = req.CardNumber

	var ent entity
	if err := c.request(ctx, resourcePaymentMethods, apiReq, &ent); err != nil {
		return nil, err
	}

	if ent.ID == "" {
		return nil, &pkgerrors.ProviderError{
			Code:     pkgerrors.CodeEntityIDMissing,
			Resource: resourcePaymentMethods,
			Message:  "response contained no payment method id",
		}
	}

	return &ports.PaymentMethod{ID: ent.ID}, nil
}

// CreateSubscription implements ProviderGateway.CreateSubscription.
// Unlike the other resources, a missing id is returned to the caller rather
// than rejected here: the service classifies it as an incomplete subscription.
func (c *Client) CreateSubscription(ctx context.Context, req ports.CreateSubscriptionRequest) (*ports.Subscription, error) {
	apiReq := createSubscriptionRequest{
		Amount:          req.Amount.Round(2).InexactFloat64(),
		Description:     req.Description,
		PaymentMethodID: req.PaymentMethodID,
		IntervalUnit:    "monthly",
		Interval:        1,
		DayOfMonth:      req.DayOfMonth,
		Count:           req.Count,
		CustomerID:      req.CustomerID,
	}

	var ent entity
	if err := c.request(ctx, resourceSubscriptions, apiReq, &ent); err != nil {
		return nil, err
	}

	return &ports.Subscription{ID: ent.ID}, nil
}

// request POSTs one resource and decodes the {data:{...}} envelope into out.
// Every call is attempted exactly once; there is no retry at this layer.
func (c *Client) request(ctx context.Context, resource string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", resource, err)
	}

	url := c.baseURL + "/" + resource
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", resource, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	if c.logger != nil {
		c.logger.Debug("making request to Debi",
			ports.String("resource", resource),
		)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observability.RecordProviderRequest(resource, "network_error", time.Since(start))
		if isTimeout(err) {
			return pkgerrors.NewProviderTimeout(resource)
		}
		return &pkgerrors.ProviderError{
			Code:        pkgerrors.CodeNetworkError,
			Resource:    resource,
			Message:     "failed to reach payment provider",
			IsRetriable: true,
		}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		observability.RecordProviderRequest(resource, "read_error", time.Since(start))
		return fmt.Errorf("read %s response: %w", resource, err)
	}

	observability.RecordProviderRequest(resource, strconv.Itoa(httpResp.StatusCode), time.Since(start))

	if httpResp.StatusCode >= 500 {
		return pkgerrors.NewProviderError(pkgerrors.CodeGatewayError, resource,
			"payment provider error", httpResp.StatusCode, string(raw))
	}
	if httpResp.StatusCode >= 400 {
		return pkgerrors.NewProviderError(pkgerrors.CodeRequestRejected, resource,
			"payment provider rejected the request", httpResp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Data == nil {
		return pkgerrors.NewProviderError(pkgerrors.CodeMalformedResponse, resource,
			"malformed provider response", httpResp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return pkgerrors.NewProviderError(pkgerrors.CodeMalformedResponse, resource,
			"malformed provider response data", httpResp.StatusCode, string(raw))
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

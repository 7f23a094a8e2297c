package debi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/debipro/checkout-service/internal/domain/ports"
	pkgerrors "github.com/debipro/checkout-service/pkg/errors"
	"github.com/debipro/checkout-service/test/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClientWithBaseURL("tok_test", server.URL, server.Client(), mocks.NewMockLogger())
	return client, server
}

func respondData(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"data":` + data + `}`))
}

func TestCreateCustomer(t *testing.T) {
	var captured createCustomerRequest
	var gotAuth, gotPath, gotMethod string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		respondData(w, `{"id":"cus_123"}`)
	})

	customer, err := client.CreateCustomer(context.Background(), ports.CreateCustomerRequest{
		Name:                 "Doe, Jane",
		Email:                "jane@example.com",
		IdentificationNumber: "20-12345678",
	})

	require.NoError(t, err)
	assert.Equal(t, "cus_123", customer.ID)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/customers", gotPath)
	assert.Equal(t, "Bearer tok_test", gotAuth)
	assert.Equal(t, "Doe, Jane", captured.Name)
	assert.Equal(t, "jane@example.com", captured.Email)
	assert.Equal(t, "20-12345678", captured.IdentificationNumber)
}

func TestCreateCustomer_MissingID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondData(w, `{}`)
	})

	customer, err := client.CreateCustomer(context.Background(), ports.CreateCustomerRequest{Name: "Doe, Jane"})

	require.Error(t, err)
	assert.Nil(t, customer)
	var provErr *pkgerrors.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, pkgerrors.CodeEntityIDMissing, provErr.Code)
	assert.Equal(t, "customers", provErr.Resource)
}

func TestTokenizeCard(t *testing.T) {
	var captured createPaymentMethodRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_methods", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		respondData(w, `{"id":"pm_456"}`)
	})

	paymentMethod, err := client.TokenizeCard(context.Background(), ports.TokenizeCardRequest{
		CardNumber: "4111111111111111",
	})

	require.NoError(t, err)
	assert.Equal(t, "pm_456", paymentMethod.ID)
	assert.Equal(t, "card", captured.Type)
	assert.Equal(t, "4111111111111111", captured.Card.Number)
}

func TestTokenizeCard_MissingID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondData(w, `{"token":"legacy"}`)
	})

	_, err := client.TokenizeCard(context.Background(), ports.TokenizeCardRequest{CardNumber: "4111111111111111"})

	require.Error(t, err)
	var provErr *pkgerrors.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, pkgerrors.CodeEntityIDMissing, provErr.Code)
}

func TestCreateSubscription(t *testing.T) {
	var captured createSubscriptionRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subscriptions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		respondData(w, `{"id":"sub_789"}`)
	})

	subscription, err := client.CreateSubscription(context.Background(), ports.CreateSubscriptionRequest{
		Amount:          decimal.RequireFromString("353.333333"),
		Description:     "Order ord_1 - Product 42 - Guitar",
		PaymentMethodID: "pm_456",
		CustomerID:      "cus_123",
		DayOfMonth:      10,
		Count:           3,
	})

	require.NoError(t, err)
	assert.Equal(t, "sub_789", subscription.ID)
	assert.Equal(t, 353.33, captured.Amount)
	assert.Equal(t, "Order ord_1 - Product 42 - Guitar", captured.Description)
	assert.Equal(t, "pm_456", captured.PaymentMethodID)
	assert.Equal(t, "cus_123", captured.CustomerID)
	assert.Equal(t, "monthly", captured.IntervalUnit)
	assert.Equal(t, 1, captured.Interval)
	assert.Equal(t, 10, captured.DayOfMonth)
	assert.Equal(t, 3, captured.Count)
}

func TestCreateSubscription_EmptyID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondData(w, `{}`)
	})

	// A missing subscription id is not an error at this layer; the caller
	// decides what an incomplete subscription means.
	subscription, err := client.CreateSubscription(context.Background(), ports.CreateSubscriptionRequest{
		Amount: decimal.NewFromInt(100),
		Count:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, "", subscription.ID)
}

func TestRequest_Rejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"invalid identification number"}`))
	})

	_, err := client.CreateCustomer(context.Background(), ports.CreateCustomerRequest{Name: "Doe, Jane"})

	require.Error(t, err)
	var provErr *pkgerrors.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, pkgerrors.CodeRequestRejected, provErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, provErr.StatusCode)
	assert.Equal(t, `{"error":"invalid identification number"}`, provErr.RawBody)
	assert.False(t, provErr.IsRetriable)
}

func TestRequest_GatewayError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.TokenizeCard(context.Background(), ports.TokenizeCardRequest{CardNumber: "4111111111111111"})

	require.Error(t, err)
	var provErr *pkgerrors.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, pkgerrors.CodeGatewayError, provErr.Code)
	assert.True(t, provErr.IsRetriable)
	assert.Equal(t, "upstream exploded", provErr.RawBody)
}

func TestRequest_MalformedResponse(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway timeout</html>"},
		{"missing data key", `{"result":{"id":"cus_1"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})

			_, err := client.CreateCustomer(context.Background(), ports.CreateCustomerRequest{Name: "Doe, Jane"})

			require.Error(t, err)
			var provErr *pkgerrors.ProviderError
			require.True(t, errors.As(err, &provErr))
			assert.Equal(t, pkgerrors.CodeMalformedResponse, provErr.Code)
		})
	}
}

func TestRequest_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		respondData(w, `{"id":"cus_late"}`)
	}))
	t.Cleanup(server.Close)

	httpClient := &http.Client{Timeout: 20 * time.Millisecond}
	client := NewClientWithBaseURL("tok_test", server.URL, httpClient, mocks.NewMockLogger())

	_, err := client.CreateCustomer(context.Background(), ports.CreateCustomerRequest{Name: "Doe, Jane"})

	require.Error(t, err)
	var provErr *pkgerrors.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, pkgerrors.CodeTimeout, provErr.Code)
	assert.True(t, provErr.IsTimeout)
	assert.True(t, provErr.IsRetriable)
}

func TestNewClient_EnvironmentSelection(t *testing.T) {
	live := NewClient("tok_live", false, http.DefaultClient, mocks.NewMockLogger())
	sandbox := NewClient("tok_sandbox", true, http.DefaultClient, mocks.NewMockLogger())

	assert.Equal(t, liveBaseURL, live.baseURL)
	assert.Equal(t, sandboxBaseURL, sandbox.baseURL)
}

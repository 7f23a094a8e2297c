package checkout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/debipro/checkout-service/internal/domain"
	"github.com/debipro/checkout-service/internal/domain/ports"
	"github.com/debipro/checkout-service/pkg/observability"
	"github.com/debipro/checkout-service/pkg/timeutil"
	"github.com/google/uuid"
)

// Outcome results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Outcome is the result of a payment attempt handed back to the surrounding
// checkout flow. Redirect is the same target for success and failure.
type Outcome struct {
	Result   string `json:"result"`
	Redirect string `json:"redirect"`
	Message  string `json:"message,omitempty"`
}

// ReturnURLFunc builds the post-payment redirect target for an order
type ReturnURLFunc func(order *domain.Order) string

// Service orchestrates a checkout payment attempt: validation, installment
// pricing, the three sequential Debi calls, and persistence of the result
// onto the order.
//
// The provider calls are data-dependent (customer id and payment method id
// feed the subscription) and must not be parallelized. There is no retry and
// no compensation: entities already created at the provider when a later step
// fails are logged and left in place.
type Service struct {
	orders    ports.OrderRepository
	cart      ports.CartProvider
	profile   ports.CustomerProfileProvider
	financing ports.ProductFinancingStore
	gateway   ports.ProviderGateway
	validator *Validator
	logger    ports.Logger
	returnURL ReturnURLFunc

	// now is swapped in tests to pin the billing-day rule
	now func() time.Time
}

// NewService creates a checkout service
func NewService(
	orders ports.OrderRepository,
	cart ports.CartProvider,
	profile ports.CustomerProfileProvider,
	financing ports.ProductFinancingStore,
	gateway ports.ProviderGateway,
	logger ports.Logger,
	returnURL ReturnURLFunc,
) *Service {
	return &Service{
		orders:    orders,
		cart:      cart,
		profile:   profile,
		financing: financing,
		gateway:   gateway,
		validator: NewValidator(orders),
		logger:    logger,
		returnURL: returnURL,
		now:       timeutil.Now,
	}
}

// ProcessPayment runs one payment attempt end to end.
//
// Validation failures return an error and leave the order untouched with zero
// provider calls made. Provider failures after validation return a failure
// Outcome (nil error): the shopper gets the generic payment failure message
// while the raw provider error is logged for diagnosis.
func (s *Service) ProcessPayment(ctx context.Context, submission domain.CheckoutSubmission) (*Outcome, error) {
	attemptID := uuid.New().String()

	validated, err := s.validator.Validate(ctx, submission)
	if err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeRejected)
		s.logger.Warn("checkout submission rejected",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", submission.OrderID),
			ports.Err(err))
		return nil, err
	}
	order := validated.Order

	productID, productTitle, terms, err := s.cartFinancing(ctx)
	if err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		s.logger.Error("failed to read cart financing terms",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", order.ID),
			ports.Err(err))
		return s.failure(order), nil
	}

	// The canonical final price is recomputed from the order total; the
	// client-side option list is presentation only.
	quote := domain.Quote(order.Total, terms.MonthlyInterestPercentage, validated.InstallmentCount)

	// Financial metadata is persisted before any provider call and kept on
	// failure as an audit trail of the attempt.
	if err := s.persistAttempt(ctx, order.ID, quote, validated.CardLastFour); err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		s.logger.Error("failed to persist attempt metadata",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", order.ID),
			ports.Err(err))
		return s.failure(order), nil
	}

	first, last, err := s.profile.BillingName(ctx)
	if err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		return s.failure(order), nil
	}
	email, err := s.profile.BillingEmail(ctx)
	if err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		return s.failure(order), nil
	}

	// Step 1: create the provider customer
	customer, err := s.gateway.CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:                 last + ", " + first,
		Email:                email,
		IdentificationNumber: validated.IdentificationNumber,
	})
	if err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		s.logger.Error("provider customer creation failed",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", order.ID),
			ports.Err(err))
		return s.failure(order), nil
	}
	s.logger.Info("provider customer created",
		ports.String("attempt_id", attemptID),
		ports.String("order_id", order.ID),
		ports.String("customer_id", customer.ID))

	// Step 2: tokenize the card
	paymentMethod, err := s.gateway.TokenizeCard(ctx, ports.TokenizeCardRequest{
		CardNumber: validated.CardNumber,
	})
	if err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		s.logger.Error("card tokenization failed",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", order.ID),
			ports.String("customer_id", customer.ID),
			ports.Err(err))
		return s.failure(order), nil
	}
	s.logger.Info("payment method tokenized",
		ports.String("attempt_id", attemptID),
		ports.String("order_id", order.ID),
		ports.String("payment_method_id", paymentMethod.ID))

	// Step 3: create the recurring subscription
	subscription, err := s.gateway.CreateSubscription(ctx, ports.CreateSubscriptionRequest{
		Amount:          quote.PerInstallmentAmount,
		Description:     fmt.Sprintf("Order %s - Product %s - %s", order.ID, productID, productTitle),
		PaymentMethodID: paymentMethod.ID,
		CustomerID:      customer.ID,
		DayOfMonth:      domain.BillingDayOfMonth(s.now()),
		Count:           validated.InstallmentCount,
	})
	if err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		s.logger.Error("subscription creation failed",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", order.ID),
			ports.String("customer_id", customer.ID),
			ports.String("payment_method_id", paymentMethod.ID),
			ports.Err(err))
		return s.failure(order), nil
	}

	if subscription.ID == "" {
		// Provider accepted the request but returned no subscription id.
		// Order status stays unchanged; the attempt metadata already written
		// is deliberately left in place.
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		s.logger.Warn("subscription request returned no id",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", order.ID),
			ports.String("customer_id", customer.ID),
			ports.String("payment_method_id", paymentMethod.ID),
			ports.Err(domain.ErrIncompleteSubscription))
		return s.failure(order), nil
	}

	if err := s.finalize(ctx, order, subscription.ID); err != nil {
		observability.RecordCheckoutAttempt(observability.OutcomeFailure)
		s.logger.Error("failed to finalize paid order",
			ports.String("attempt_id", attemptID),
			ports.String("order_id", order.ID),
			ports.String("subscription_id", subscription.ID),
			ports.Err(err))
		return s.failure(order), nil
	}

	observability.RecordCheckoutAttempt(observability.OutcomeSuccess)
	s.logger.Info("checkout payment completed",
		ports.String("attempt_id", attemptID),
		ports.String("order_id", order.ID),
		ports.String("subscription_id", subscription.ID),
		ports.Int("installment_count", validated.InstallmentCount))

	return &Outcome{
		Result:   ResultSuccess,
		Redirect: s.returnURL(order),
	}, nil
}

// InstallmentOptions returns the financing options for the current cart,
// one quote per installment count up to the product's maximum.
func (s *Service) InstallmentOptions(ctx context.Context) ([]domain.InstallmentQuote, error) {
	total, err := s.cart.Total(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeInternalError, "read cart total", err)
	}

	_, _, terms, err := s.cartFinancing(ctx)
	if err != nil {
		return nil, err
	}

	return domain.InstallmentOptions(total, terms), nil
}

// cartFinancing walks the cart and resolves the financing terms. When the
// cart holds multiple products the last line's terms win, matching the
// behavior of the settings this flow replaced.
func (s *Service) cartFinancing(ctx context.Context) (productID, productTitle string, terms domain.FinancingTerms, err error) {
	items, err := s.cart.LineItems(ctx)
	if err != nil {
		return "", "", terms, domain.WrapError(domain.ErrorCodeInternalError, "read cart line items", err)
	}

	for _, item := range items {
		productID = item.ProductID
		productTitle = item.Title

		rate, err := s.financing.MonthlyInterestPercentage(ctx, item.ProductID)
		if err != nil {
			return "", "", terms, domain.WrapError(domain.ErrorCodeInternalError, "read product interest rate", err)
		}
		maxInstallments, err := s.financing.MaxInstallments(ctx, item.ProductID)
		if err != nil {
			return "", "", terms, domain.WrapError(domain.ErrorCodeInternalError, "read product max installments", err)
		}

		terms.MonthlyInterestPercentage = rate
		terms.MaxInstallments = maxInstallments
	}

	return productID, productTitle, terms.Normalize(), nil
}

// persistAttempt writes the financial metadata for this attempt
func (s *Service) persistAttempt(ctx context.Context, orderID string, quote domain.InstallmentQuote, cardLastFour string) error {
	writes := []struct{ key, value string }{
		{domain.MetaFinalPrice, quote.TotalAmount.String()},
		{domain.MetaInstallmentCount, strconv.Itoa(quote.Count)},
		{domain.MetaInstallmentAmount, quote.PerInstallmentAmount.StringFixed(2)},
		{domain.MetaCardLastFour, cardLastFour},
	}
	for _, w := range writes {
		if err := s.orders.SetMetadata(ctx, orderID, w.key, w.value); err != nil {
			return domain.WrapError(domain.ErrorCodeDatabaseError, "persist attempt metadata", err)
		}
	}
	return nil
}

// finalize records the subscription, moves the order to processing and
// empties the cart.
func (s *Service) finalize(ctx context.Context, order *domain.Order, subscriptionID string) error {
	if err := s.orders.SetMetadata(ctx, order.ID, domain.MetaSubscriptionID, subscriptionID); err != nil {
		return domain.WrapError(domain.ErrorCodeDatabaseError, "persist subscription id", err)
	}
	if err := s.orders.SetStatus(ctx, order.ID, domain.OrderStatusProcessing); err != nil {
		return domain.WrapError(domain.ErrorCodeDatabaseError, "update order status", err)
	}
	if err := s.cart.Empty(ctx); err != nil {
		// The payment went through; a cart that failed to clear is not worth
		// failing the attempt over.
		s.logger.Warn("failed to empty cart after payment",
			ports.String("order_id", order.ID),
			ports.Err(err))
	}
	return nil
}

func (s *Service) failure(order *domain.Order) *Outcome {
	return &Outcome{
		Result:   ResultFailure,
		Redirect: s.returnURL(order),
		Message:  "Your payment could not be processed. Please try again.",
	}
}

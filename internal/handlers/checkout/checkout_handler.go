package checkout

import (
	"errors"
	"net/http"

	"github.com/debipro/checkout-service/internal/domain"
	"github.com/debipro/checkout-service/internal/domain/ports"
	checkoutsvc "github.com/debipro/checkout-service/internal/services/checkout"
	"github.com/debipro/checkout-service/internal/session"
	"github.com/gin-gonic/gin"
)

// Form field names submitted by the checkout page
const (
	fieldInstallmentCount     = "installment-count"
	fieldCardNumber           = "card-number"
	fieldIdentificationNumber = "identification-number"
)

// sessionHeader carries the shopper session id on every checkout request
const sessionHeader = "X-Session-ID"

// Handler exposes the checkout payment flow over HTTP
type Handler struct {
	service *checkoutsvc.Service
	logger  ports.Logger
}

// NewHandler creates a checkout handler
func NewHandler(service *checkoutsvc.Service, logger ports.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the checkout routes on the router
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/checkout/:order_id/pay", h.Pay)
	r.GET("/checkout/installments", h.InstallmentOptions)
}

// Pay processes a checkout payment submission
func (h *Handler) Pay(c *gin.Context) {
	ctx := session.WithID(c.Request.Context(), c.GetHeader(sessionHeader))

	submission := domain.CheckoutSubmission{
		OrderID:                 c.Param("order_id"),
		RawInstallmentCount:     c.PostForm(fieldInstallmentCount),
		RawCardNumber:           c.PostForm(fieldCardNumber),
		RawIdentificationNumber: c.PostForm(fieldIdentificationNumber),
	}

	outcome, err := h.service.ProcessPayment(ctx, submission)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"result":  checkoutsvc.ResultFailure,
			"message": domain.UserMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// installmentOption is the response shape for one financing option
type installmentOption struct {
	Label                string `json:"label"`
	TotalAmount          string `json:"total_amount"`
	PerInstallmentAmount string `json:"per_installment_amount"`
	Count                int    `json:"count"`
	HasInterest          bool   `json:"has_interest"`
}

// InstallmentOptions returns the financing options for the current cart
func (h *Handler) InstallmentOptions(c *gin.Context) {
	ctx := session.WithID(c.Request.Context(), c.GetHeader(sessionHeader))

	quotes, err := h.service.InstallmentOptions(ctx)
	if err != nil {
		h.logger.Error("failed to compute installment options", ports.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Installment options are unavailable right now.",
		})
		return
	}

	options := make([]installmentOption, len(quotes))
	for i, q := range quotes {
		options[i] = installmentOption{
			Label:                q.Label(),
			TotalAmount:          q.TotalAmount.StringFixed(2),
			PerInstallmentAmount: q.PerInstallmentAmount.StringFixed(2),
			Count:                q.Count,
			HasInterest:          q.HasInterest,
		}
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}

func statusForError(err error) int {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	switch {
	case domainErr.Code == domain.ErrorCodeOrderNotFound:
		return http.StatusNotFound
	case domain.IsValidationError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

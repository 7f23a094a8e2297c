package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_payment_attempts_total",
			Help: "Total number of checkout payment attempts by outcome",
		},
		[]string{"outcome"},
	)

	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "debi_provider_requests_total",
			Help: "Total number of requests to the Debi API",
		},
		[]string{"resource", "status"},
	)

	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "debi_provider_request_duration_seconds",
			Help:    "Duration of Debi API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)
)

// Checkout attempt outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// RecordCheckoutAttempt records one completed checkout payment attempt
func RecordCheckoutAttempt(outcome string) {
	checkoutAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordProviderRequest records one round trip to the Debi API
func RecordProviderRequest(resource, status string, duration time.Duration) {
	providerRequestsTotal.WithLabelValues(resource, status).Inc()
	providerRequestDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

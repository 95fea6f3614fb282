// Package metrics registers the Prometheus collectors of the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harumnesia_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "harumnesia_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "harumnesia_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// RecommendationsTotal counts recommendation outcomes by flow
	// ("similarity", "preference") and result ("ml", "fallback", "error").
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harumnesia_recommendations_total",
			Help: "Recommendation requests by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)

	MLRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harumnesia_ml_request_duration_seconds",
			Help:    "Latency of calls to the ML recommendation service",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harumnesia_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harumnesia_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// Package telemetry holds the service's prometheus collectors. Everything is
// registered on the default registry and exposed through /metrics.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat request outcomes used as label values.
const (
	OutcomeOK           = "ok"
	OutcomeBadRequest   = "bad_request"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

var (
	// ChatRequests counts chat requests by outcome.
	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retail_chat_requests_total",
		Help: "Chat requests handled, labelled by outcome.",
	}, []string{"outcome"})

	// ChatDuration tracks end-to-end chat request latency.
	ChatDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "retail_chat_request_duration_seconds",
		Help:    "End-to-end chat request latency.",
		Buckets: prometheus.DefBuckets,
	})

	// ProviderCalls tracks latency of outbound model provider calls.
	ProviderCalls = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "retail_provider_call_duration_seconds",
		Help:    "Latency of embedding and completion provider calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// RetrievalResults tracks how many catalog rows each retrieval returned.
	RetrievalResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "retail_retrieval_results",
		Help:    "Number of catalog rows returned per retrieval.",
		Buckets: prometheus.LinearBuckets(0, 1, 11),
	})
)

// ObserveProviderCall records one outbound provider call.
func ObserveProviderCall(operation string, d time.Duration) {
	ProviderCalls.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveChat records one handled chat request.
func ObserveChat(outcome string, d time.Duration) {
	ChatRequests.WithLabelValues(outcome).Inc()
	ChatDuration.Observe(d.Seconds())
}

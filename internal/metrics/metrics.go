// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

// Package metrics provides Prometheus instrumentation for the fetch
// pipeline: API request outcomes, cache efficiency, rate-limit retries, and
// circuit breaker state. Metrics are registered on the default registry and
// optionally served on a /metrics listener when enabled by config.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rfmoraes/genealogia/internal/logging"
)

var (
	// FetchRequests counts MGP API requests by endpoint and outcome
	// (success, failure, rejected).
	FetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genealogia_fetch_requests_total",
			Help: "Total MGP API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// FetchDuration tracks MGP API request latency by endpoint.
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genealogia_fetch_duration_seconds",
			Help:    "Duration of MGP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// RateLimitRetries counts HTTP 429 backoff retries.
	RateLimitRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genealogia_rate_limit_retries_total",
			Help: "Total retries caused by HTTP 429 responses",
		},
	)

	// CacheOperations counts cache lookups by result (hit, miss) and writes.
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genealogia_cache_operations_total",
			Help: "Total cache operations by type and result",
		},
		[]string{"operation", "result"},
	)

	// RecordsSkipped counts records dropped as malformed.
	RecordsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genealogia_records_skipped_total",
			Help: "Total records skipped because their shape was invalid",
		},
	)

	// CircuitBreakerState tracks breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "genealogia_circuit_breaker_state",
			Help: "Circuit breaker state: 0=closed, 1=half-open, 2=open",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitions counts breaker state transitions.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genealogia_circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// Serve starts the /metrics listener in a background goroutine. Intended
// for long analytics runs where scraping progress is useful; errors are
// logged, not fatal.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", addr).Msg("Serving Prometheus metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error().Err(err).Msg("Metrics listener failed")
		}
	}()
}

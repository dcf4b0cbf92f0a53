// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rfmoraes/genealogia/internal/logging"
	"github.com/rfmoraes/genealogia/internal/metrics"
	"github.com/rfmoraes/genealogia/internal/models/mgp"
)

// CircuitBreakerClient wraps Client with the circuit breaker pattern so a
// sustained MGP outage fails fast instead of burning the retry budget of
// every remaining ID in the batch.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout calculations. Tests should mock the underlying client rather
// than the breaker.
type CircuitBreakerClient struct {
	client ClientInterface
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client with a circuit breaker.
// Configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 30 second timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(client ClientInterface) *CircuitBreakerClient {
	cbName := "mgp-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening MGP circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("MGP circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps an API call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Warn().Err(err).Msg("MGP request rejected by circuit breaker")
		}
		return nil, err
	}
	return result, nil
}

// castResult safely type-casts the circuit breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// SearchCountry implements ClientInterface with breaker protection.
func (cbc *CircuitBreakerClient) SearchCountry(ctx context.Context, country string) ([]int64, error) {
	return castResult[[]int64](cbc.execute(func() (interface{}, error) {
		return cbc.client.SearchCountry(ctx, country)
	}))
}

// GetAcademic implements ClientInterface with breaker protection.
// A malformed record does not count as a breaker failure: the service
// answered, the payload is just unusable.
func (cbc *CircuitBreakerClient) GetAcademic(ctx context.Context, id int64) (*mgp.Academic, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		academic, err := cbc.client.GetAcademic(ctx, id)
		if errors.Is(err, ErrMalformedRecord) {
			return (*mgp.Academic)(nil), nil
		}
		return academic, err
	})

	academic, err := castResult[*mgp.Academic](result, err)
	if err != nil {
		return nil, err
	}
	if academic == nil {
		return nil, fmt.Errorf("%w: ID %d", ErrMalformedRecord, id)
	}
	return academic, nil
}

// GetAcademicRange implements ClientInterface with breaker protection.
func (cbc *CircuitBreakerClient) GetAcademicRange(ctx context.Context, start, stop, step int64) ([]*mgp.Academic, error) {
	return castResult[[]*mgp.Academic](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetAcademicRange(ctx, start, stop, step)
	}))
}

// State returns the current breaker state, exposed for logging and tests.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

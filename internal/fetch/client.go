// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

/*
client.go - Core MGP API Client

This file provides the core Client struct and HTTP communication layer for
the Mathematics Genealogy Project API.

Client features:
  - API key authentication via the x-access-token header
  - Configurable request timeout
  - Client-side request throttling shared across workers (x/time/rate)
  - Automatic HTTP 429 handling with exponential backoff and Retry-After
  - JSON response parsing with typed response structs
  - Context support for cancellation and timeouts

Related files:
  - circuit_breaker.go: breaker-wrapped client for sustained outages
  - orchestrator.go: cache-aware batch fetching on top of the client
*/

//nolint:staticcheck // File documentation, not package doc
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/rfmoraes/genealogia/internal/config"
	"github.com/rfmoraes/genealogia/internal/metrics"
	"github.com/rfmoraes/genealogia/internal/models/mgp"
)

// apiKeyHeader carries the MGP API credential.
const apiKeyHeader = "x-access-token"

// maxErrorBodySize limits how much of an error response body is read for
// diagnostics, preventing unbounded allocation on large error pages.
const maxErrorBodySize = 64 * 1024 // 64KB

// ErrMalformedRecord marks a response whose shape does not contain a usable
// academic record. Such records are skipped with a warning, not fatal.
var ErrMalformedRecord = errors.New("fetch: malformed academic record")

// readBodyForError reads the response body for error reporting (max 64KB).
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// ClientInterface defines the MGP API operations used by the orchestrator.
// Implemented by Client for production and by mocks in tests.
//
// All methods accept a context for cancellation, return typed structs from
// internal/models/mgp, and are safe for concurrent use.
type ClientInterface interface {
	// SearchCountry returns the IDs of mathematicians trained in country.
	SearchCountry(ctx context.Context, country string) ([]int64, error)

	// GetAcademic returns the full academic record for one mathematician.
	GetAcademic(ctx context.Context, id int64) (*mgp.Academic, error)

	// GetAcademicRange returns academic records for an ID range in one
	// request, the bulk alternative to per-ID fetching.
	GetAcademicRange(ctx context.Context, start, stop, step int64) ([]*mgp.Academic, error)
}

// Client handles communication with the MGP HTTP API.
//
// Thread safety: safe for concurrent use; each call creates its own HTTP
// request and the rate limiter is shared deliberately so the worker pool
// respects one global request budget.
type Client struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	maxRetries     int           // maximum retries for HTTP 429
	retryBaseDelay time.Duration // base delay for exponential backoff
	limiter        *rate.Limiter
}

// NewClient creates an MGP API client from configuration. The API key is
// passed separately because it is loaded from the credential file, never
// stored in config.
func NewClient(cfg *config.MGPConfig, apiKey string) *Client {
	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		baseURL:        cfg.URL,
		apiKey:         apiKey,
		client:         &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		limiter:        rate.NewLimiter(limit, burst),
	}
}

// doRequestWithRateLimit performs a GET with client-side throttling and
// automatic HTTP 429 handling. Backoff doubles per attempt
// (1s, 2s, 4s, 8s, 16s by default) and honors Retry-After (RFC 6585).
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited - close body and retry with backoff
		_ = resp.Body.Close()
		metrics.RateLimitRetries.Inc()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				delay = time.Duration(seconds) * time.Second
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// makeRequest handles the common MGP request boilerplate: URL construction,
// throttled request execution, status checking, and JSON decoding.
func (c *Client) makeRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	metrics.FetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchRequests.WithLabelValues(endpoint, "failure").Inc()
		return fmt.Errorf("failed to make %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.FetchRequests.WithLabelValues(endpoint, "failure").Inc()
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%s request failed with status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.FetchRequests.WithLabelValues(endpoint, "failure").Inc()
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	metrics.FetchRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// SearchCountry returns the IDs of mathematicians trained in country. The
// endpoint returns either a flat ID array or [id, name] tuples depending on
// server version; both shapes are absorbed by mgp.IDList.
func (c *Client) SearchCountry(ctx context.Context, country string) ([]int64, error) {
	params := url.Values{}
	params.Set("country", country)

	var ids mgp.IDList
	if err := c.makeRequest(ctx, "search", params, &ids); err != nil {
		return nil, err
	}

	return ids, nil
}

// GetAcademic returns the full academic record for one mathematician.
// A response without the MGP_academic wrapper is reported as
// ErrMalformedRecord.
func (c *Client) GetAcademic(ctx context.Context, id int64) (*mgp.Academic, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))

	var resp mgp.AcademicResponse
	if err := c.makeRequest(ctx, "acad", params, &resp); err != nil {
		return nil, err
	}

	if resp.Academic == nil {
		return nil, fmt.Errorf("%w: ID %d has no MGP_academic payload", ErrMalformedRecord, id)
	}

	return resp.Academic, nil
}

// GetAcademicRange returns academic records for IDs in [start, stop] with
// the given step. Entries without a usable record are dropped.
func (c *Client) GetAcademicRange(ctx context.Context, start, stop, step int64) ([]*mgp.Academic, error) {
	if step < 1 {
		step = 1
	}

	params := url.Values{}
	params.Set("start", strconv.FormatInt(start, 10))
	params.Set("stop", strconv.FormatInt(stop, 10))
	params.Set("step", strconv.FormatInt(step, 10))

	var resp mgp.RangeResponse
	if err := c.makeRequest(ctx, "acad/range", params, &resp); err != nil {
		return nil, err
	}

	academics := make([]*mgp.Academic, 0, len(resp.Academics))
	for _, wrapped := range resp.Academics {
		if wrapped.Academic == nil {
			continue
		}
		academics = append(academics, wrapped.Academic)
	}

	return academics, nil
}

// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package fetch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rfmoraes/genealogia/internal/cache"
	"github.com/rfmoraes/genealogia/internal/config"
	"github.com/rfmoraes/genealogia/internal/logging"
	"github.com/rfmoraes/genealogia/internal/metrics"
	"github.com/rfmoraes/genealogia/internal/models"
)

// Result is the outcome of a batch fetch. The record map content is
// deterministic for a given ID set and API state, regardless of worker
// count or fetch mode.
type Result struct {
	// Records maps mathematician ID to record for every ID that resolved,
	// whether from cache or network.
	Records map[int64]*models.Mathematician

	// Misses lists IDs whose fetch failed, sorted ascending. Missing
	// records are tolerated downstream: the graph keeps them as edge-only
	// nodes when other records reference them.
	Misses []int64

	// CacheHits is how many IDs were served from the cache.
	CacheHits int

	// Fetched is how many records were retrieved over the network.
	Fetched int

	// Skipped is how many fetched payloads were dropped as malformed.
	Skipped int
}

// Orchestrator coordinates cache-aware batch fetching. Fetches run either
// sequentially or on a bounded worker pool; results converge through a
// single collector loop so there is exactly one merge point and no shared
// mutable state between workers.
type Orchestrator struct {
	client ClientInterface
	store  cache.Store
	cfg    config.FetchConfig
}

// NewOrchestrator creates an orchestrator over the given client and cache.
func NewOrchestrator(client ClientInterface, store cache.Store, cfg config.FetchConfig) *Orchestrator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Orchestrator{
		client: client,
		store:  store,
		cfg:    cfg,
	}
}

// FetchCountry searches for all IDs trained in the configured country and
// fetches their records.
func (o *Orchestrator) FetchCountry(ctx context.Context) (*Result, error) {
	ids, err := o.client.SearchCountry(ctx, o.cfg.Country)
	if err != nil {
		return nil, fmt.Errorf("searching IDs for %s: %w", o.cfg.Country, err)
	}

	logging.Info().Str("country", o.cfg.Country).Int("ids", len(ids)).Msg("Country search complete")

	return o.FetchAll(ctx, ids)
}

// FetchAll resolves every target ID to a record, consulting the cache
// first. Already-cached IDs cause zero network calls. A failed fetch is
// recorded as a miss and does not abort the batch; a malformed payload is
// skipped with a warning. New records are written to the cache as they
// arrive; callers flush at the process boundary.
func (o *Orchestrator) FetchAll(ctx context.Context, ids []int64) (*Result, error) {
	ids = models.SortIDs(append([]int64(nil), ids...))

	result := &Result{
		Records: make(map[int64]*models.Mathematician, len(ids)),
	}

	var uncached []int64
	for _, id := range ids {
		rec, ok, err := o.store.Get(id)
		if err != nil {
			return nil, fmt.Errorf("cache lookup for %d: %w", id, err)
		}
		if ok {
			metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
			result.Records[id] = rec
			result.CacheHits++
			continue
		}
		metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
		uncached = append(uncached, id)
	}

	if len(uncached) == 0 {
		logging.Info().Int("records", len(result.Records)).Msg("All IDs served from cache")
		return result, nil
	}

	mode := "parallel"
	workers := o.cfg.Workers
	if o.cfg.Sequential {
		mode = "sequential"
		workers = 1
	}
	logging.Info().
		Str("mode", mode).
		Int("workers", workers).
		Int("uncached", len(uncached)).
		Int("cached", result.CacheHits).
		Msg("Fetching records")

	if err := o.fetchBatch(ctx, uncached, workers, result); err != nil {
		return nil, err
	}

	result.Misses = models.SortIDs(result.Misses)

	logging.Info().
		Int("fetched", result.Fetched).
		Int("misses", len(result.Misses)).
		Int("skipped", result.Skipped).
		Msg("Fetch complete")

	return result, nil
}

// outcome is one worker's report for a single ID, consumed by the
// collector loop.
type outcome struct {
	id        int64
	rec       *models.Mathematician
	malformed bool
	err       error
}

// fetchBatch fans the uncached IDs out over a bounded worker pool and
// merges all outcomes in the calling goroutine. With workers=1 this
// degrades to strictly sequential, in-order fetching.
func (o *Orchestrator) fetchBatch(ctx context.Context, ids []int64, workers int, result *Result) error {
	outcomes := make(chan outcome)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	go func() {
		defer close(outcomes)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				out := o.fetchOne(gctx, id)
				select {
				case outcomes <- out:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		// The collector stops reading only once every worker reported.
		_ = g.Wait()
	}()

	// Single merge point: only this loop touches the result and the cache.
	// A cache write error must not break out of the loop: workers block on
	// the unbuffered channel until every outcome is consumed, so keep
	// draining and surface the first error afterwards.
	var putErr error
	for out := range outcomes {
		switch {
		case out.malformed:
			result.Skipped++
			metrics.RecordsSkipped.Inc()
			logging.Warn().Int64("id", out.id).Err(out.err).Msg("Skipping malformed record")
		case out.err != nil:
			result.Misses = append(result.Misses, out.id)
			logging.Warn().Int64("id", out.id).Err(out.err).Msg("Fetch failed, recording miss")
		default:
			result.Records[out.id] = out.rec
			result.Fetched++
			if putErr != nil {
				continue
			}
			if err := o.store.Put(out.rec); err != nil {
				putErr = fmt.Errorf("caching record %d: %w", out.id, err)
				continue
			}
			metrics.CacheOperations.WithLabelValues("put", "ok").Inc()
		}
	}

	if putErr != nil {
		return putErr
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return ctx.Err()
}

// fetchOne retrieves and normalizes a single record.
func (o *Orchestrator) fetchOne(ctx context.Context, id int64) outcome {
	academic, err := o.client.GetAcademic(ctx, id)
	if err != nil {
		return outcome{id: id, malformed: errors.Is(err, ErrMalformedRecord), err: err}
	}

	rec := academic.Record(o.cfg.Country)
	if err := rec.Validate(); err != nil {
		return outcome{id: id, malformed: true, err: err}
	}

	// The API occasionally answers with a different ID than requested;
	// key the record by what it claims to be and miss the requested ID.
	if rec.ID != id {
		return outcome{id: id, malformed: true, err: fmt.Errorf("requested ID %d, got record for %d", id, rec.ID)}
	}

	return outcome{id: id, rec: rec}
}

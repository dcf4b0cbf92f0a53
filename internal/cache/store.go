// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

// Package cache persists fetched mathematician records between runs.
//
// The cache is an idempotent key-value mapping from mathematician ID to
// record: create-or-skip semantics, no eviction, no expiry. Invalidation is
// user-driven (decline the reuse prompt, or delete the cache path).
//
// Two backends implement Store:
//
//   - FileStore: a single JSON document mapping decimal ID strings to record
//     objects, read in full at startup and written in full at Flush. This is
//     the default and matches the on-disk contract of the cache file.
//   - BadgerStore: a BadgerDB directory for large runs where rewriting one
//     JSON document per flush is wasteful.
//
// The backend is selected by configuration through New.
package cache

import (
	"errors"

	"github.com/rfmoraes/genealogia/internal/models"
)

// ErrCorrupt is returned when an existing cache cannot be decoded. The user
// must delete or regenerate the cache; the run does not proceed.
var ErrCorrupt = errors.New("cache: corrupt cache data")

// Store is the record cache contract used by the fetch orchestrator.
//
// Implementations must be safe for concurrent use; the orchestrator merges
// results through a single collector goroutine, but analytics reads may
// overlap with metric scrapes.
type Store interface {
	// Get returns the cached record for id, or ok=false when absent.
	Get(id int64) (rec *models.Mathematician, ok bool, err error)

	// Put stores a record under its ID, overwriting any previous entry.
	Put(rec *models.Mathematician) error

	// All returns a copy of the full record map.
	All() (map[int64]*models.Mathematician, error)

	// Len returns the number of cached records.
	Len() (int, error)

	// Flush persists all entries to disk.
	Flush() error

	// Close releases backend resources. Close does not imply Flush.
	Close() error
}

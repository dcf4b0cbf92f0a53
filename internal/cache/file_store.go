// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package cache

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/goccy/go-json"

	"github.com/rfmoraes/genealogia/internal/models"
)

// FileStore keeps the full record map in memory and persists it as a single
// JSON document on Flush. The on-disk format maps decimal ID strings to
// record objects:
//
//	{"12345": {"id": 12345, "name": "...", ...}, ...}
//
// The write is not crash-safe beyond a same-directory rename; a crash
// mid-run loses only the unflushed increment.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	records map[int64]*models.Mathematician
}

// NewFileStore opens a JSON file cache at path. When reuse is true and the
// file exists it is read in full; a file that cannot be decoded fails with
// ErrCorrupt. When reuse is false any existing contents are discarded and
// the store starts empty.
func NewFileStore(path string, reuse bool) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		records: make(map[int64]*models.Mathematician),
	}

	if !reuse {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: reading %s: %w", path, err)
	}

	var raw map[string]*models.Mathematician
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	for key, rec := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || rec == nil {
			return nil, fmt.Errorf("%w: %s: bad entry key %q", ErrCorrupt, path, key)
		}
		if rec.ID == 0 {
			rec.ID = id
		}
		if rec.ID != id {
			return nil, fmt.Errorf("%w: %s: key %q does not match record ID %d", ErrCorrupt, path, key, rec.ID)
		}
		s.records[id] = rec
	}

	return s, nil
}

// Get returns the cached record for id, or ok=false when absent.
func (s *FileStore) Get(id int64) (*models.Mathematician, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok, nil
}

// Put stores a record under its ID.
func (s *FileStore) Put(rec *models.Mathematician) error {
	if rec == nil || rec.ID == 0 {
		return fmt.Errorf("cache: refusing to store record without ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// All returns a copy of the full record map.
func (s *FileStore) All() (map[int64]*models.Mathematician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]*models.Mathematician, len(s.records))
	for id, rec := range s.records {
		out[id] = rec
	}
	return out, nil
}

// Len returns the number of cached records.
func (s *FileStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Flush writes the full record map to the cache file. The document is
// written to a temp file first and renamed into place.
func (s *FileStore) Flush() error {
	s.mu.RLock()
	raw := make(map[string]*models.Mathematician, len(s.records))
	for id, rec := range s.records {
		raw[strconv.FormatInt(id, 10)] = rec
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encoding %s: %w", s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("cache: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("cache: replacing %s: %w", s.path, err)
	}

	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}

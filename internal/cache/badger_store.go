// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package cache

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/rfmoraes/genealogia/internal/models"
)

// recordKeyPrefix namespaces record keys in BadgerDB.
const recordKeyPrefix = "record:"

// BadgerStore implements Store on a BadgerDB directory. Entries are durable
// as soon as Put returns; Flush only forces an fsync.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB cache at dir. When reuse is
// false any existing contents are dropped.
func NewBadgerStore(dir string, reuse bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: opening badger at %s: %w", dir, err)
	}

	if !reuse {
		if err := db.DropAll(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("cache: discarding badger cache at %s: %w", dir, err)
		}
	}

	return &BadgerStore{db: db}, nil
}

func recordKey(id int64) []byte {
	return []byte(recordKeyPrefix + strconv.FormatInt(id, 10))
}

// Get returns the cached record for id, or ok=false when absent.
func (s *BadgerStore) Get(id int64) (*models.Mathematician, bool, error) {
	var rec models.Mathematician

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %d: %w", id, err)
	}

	return &rec, true, nil
}

// Put stores a record under its ID.
func (s *BadgerStore) Put(rec *models.Mathematician) error {
	if rec == nil || rec.ID == 0 {
		return fmt.Errorf("cache: refusing to store record without ID")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: marshal record %d: %w", rec.ID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.ID), data)
	})
	if err != nil {
		return fmt.Errorf("cache: put %d: %w", rec.ID, err)
	}

	return nil
}

// All returns a copy of the full record map.
func (s *BadgerStore) All() (map[int64]*models.Mathematician, error) {
	out := make(map[int64]*models.Mathematician)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec models.Mathematician
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("%w: key %s: %v", ErrCorrupt, it.Item().Key(), err)
			}
			r := rec
			out[r.ID] = &r
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Len returns the number of cached records.
func (s *BadgerStore) Len() (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cache: counting records: %w", err)
	}

	return count, nil
}

// Flush forces an fsync of pending writes.
func (s *BadgerStore) Flush() error {
	if err := s.db.Sync(); err != nil {
		return fmt.Errorf("cache: syncing badger: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package cache

import (
	"reflect"
	"testing"
)

func newTestBadgerStore(t *testing.T, reuse bool, dir string) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(dir, reuse)
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing badger store: %v", err)
		}
	})
	return s
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := newTestBadgerStore(t, true, dir)

	want := sampleRecord(42)
	if err := s.Put(want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(42)
	if err != nil || !ok {
		t.Fatalf("Get(42) = %v, %v, %v", got, ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}

	if _, ok, _ := s.Get(43); ok {
		t.Error("Get(43) found a record that was never stored")
	}
}

func TestBadgerStoreAllAndLen(t *testing.T) {
	s := newTestBadgerStore(t, true, t.TempDir())

	want := map[int64]bool{}
	for _, id := range []int64{1, 2, 3, 4} {
		want[id] = true
		if err := s.Put(sampleRecord(id)); err != nil {
			t.Fatalf("Put(%d): %v", id, err)
		}
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != len(want) {
		t.Fatalf("All returned %d records, want %d", len(all), len(want))
	}
	for id := range want {
		rec, ok := all[id]
		if !ok || rec.ID != id {
			t.Errorf("record %d missing or mislabeled in All()", id)
		}
	}

	n, err := s.Len()
	if err != nil || n != 4 {
		t.Errorf("Len = %d (%v), want 4", n, err)
	}
}

func TestBadgerStoreDiscard(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBadgerStore(dir, true)
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	if err := s.Put(sampleRecord(7)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// reuse=false drops existing contents
	fresh := newTestBadgerStore(t, false, dir)
	if n, _ := fresh.Len(); n != 0 {
		t.Errorf("discarded store has %d records, want 0", n)
	}
}

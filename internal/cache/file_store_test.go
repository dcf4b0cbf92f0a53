// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package cache

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rfmoraes/genealogia/internal/models"
)

func sampleRecord(id int64) *models.Mathematician {
	return &models.Mathematician{
		ID:       id,
		Name:     "Test Mathematician",
		Advisors: []int64{id + 1000},
		Schools:  []string{"IMPA, Brazil"},
		Country:  "Brazil",
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s, err := NewFileStore(path, true)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	want := map[int64]*models.Mathematician{}
	for _, id := range []int64{1, 2, 42} {
		rec := sampleRecord(id)
		want[id] = rec
		if err := s.Put(rec); err != nil {
			t.Fatalf("Put(%d): %v", id, err)
		}
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// Reload and compare the full map: flush then reload must reproduce an
	// identical record map.
	reloaded, err := NewFileStore(path, true)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}

	got, err := reloaded.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded map differs:\ngot  %+v\nwant %+v", got, want)
	}

	n, err := reloaded.Len()
	if err != nil || n != 3 {
		t.Errorf("Len = %d (%v), want 3", n, err)
	}
}

func TestFileStoreGetAbsent(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), true)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	rec, ok, err := s.Get(999)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || rec != nil {
		t.Errorf("expected absent record, got ok=%v rec=%+v", ok, rec)
	}
}

func TestFileStoreDiscard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s, err := NewFileStore(path, true)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Put(sampleRecord(7)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// reuse=false starts empty despite the file on disk
	fresh, err := NewFileStore(path, false)
	if err != nil {
		t.Fatalf("NewFileStore(reuse=false): %v", err)
	}
	if n, _ := fresh.Len(); n != 0 {
		t.Errorf("discarded store has %d records, want 0", n)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json"},
		{"wrong shape", `[1, 2, 3]`},
		{"bad key", `{"abc": {"id": 1, "name": "x"}}`},
		{"key id mismatch", `{"5": {"id": 6, "name": "x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("writing cache file: %v", err)
			}

			_, err := NewFileStore(path, true)
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestFileStoreKeyWithoutEmbeddedID(t *testing.T) {
	// Records whose JSON lacks an id field inherit the map key.
	path := filepath.Join(t.TempDir(), "cache.json")
	content := `{"31415": {"name": "Keyed Only"}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing cache file: %v", err)
	}

	s, err := NewFileStore(path, true)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	rec, ok, err := s.Get(31415)
	if err != nil || !ok {
		t.Fatalf("Get(31415) = %v, %v, %v", rec, ok, err)
	}
	if rec.ID != 31415 {
		t.Errorf("record did not inherit key ID, got %d", rec.ID)
	}
}

func TestFileStorePutRejectsZeroID(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), true)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Put(&models.Mathematician{Name: "No ID"}); err == nil {
		t.Error("expected error for record without ID")
	}
	if err := s.Put(nil); err == nil {
		t.Error("expected error for nil record")
	}
}

// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rfmoraes/genealogia/internal/config"
)

func TestNewSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := New(config.CacheConfig{
		Backend: config.CacheBackendFile,
		Path:    filepath.Join(dir, "cache.json"),
	}, true)
	if err != nil {
		t.Fatalf("New(file): %v", err)
	}
	if _, ok := fileStore.(*FileStore); !ok {
		t.Errorf("expected *FileStore, got %T", fileStore)
	}

	badgerStore, err := New(config.CacheConfig{
		Backend: config.CacheBackendBadger,
		Path:    filepath.Join(dir, "badger"),
	}, true)
	if err != nil {
		t.Fatalf("New(badger): %v", err)
	}
	defer badgerStore.Close()
	if _, ok := badgerStore.(*BadgerStore); !ok {
		t.Errorf("expected *BadgerStore, got %T", badgerStore)
	}

	if _, err := New(config.CacheConfig{Backend: "redis", Path: "x"}, true); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	fileCfg := config.CacheConfig{
		Backend: config.CacheBackendFile,
		Path:    filepath.Join(dir, "cache.json"),
	}
	if Exists(fileCfg) {
		t.Error("Exists true for missing file")
	}

	if err := os.WriteFile(fileCfg.Path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if !Exists(fileCfg) {
		t.Error("Exists false for present non-empty file")
	}

	badgerCfg := config.CacheConfig{
		Backend: config.CacheBackendBadger,
		Path:    filepath.Join(dir, "badger"),
	}
	if Exists(badgerCfg) {
		t.Error("Exists true for missing badger dir")
	}

	if err := os.MkdirAll(badgerCfg.Path, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if Exists(badgerCfg) {
		t.Error("Exists true for empty badger dir")
	}

	if err := os.WriteFile(filepath.Join(badgerCfg.Path, "KEYREGISTRY"), []byte("x"), 0o600); err != nil {
		t.Fatalf("writing marker: %v", err)
	}
	if !Exists(badgerCfg) {
		t.Error("Exists false for populated badger dir")
	}
}

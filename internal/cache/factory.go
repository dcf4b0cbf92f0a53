// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package cache

import (
	"fmt"
	"os"

	"github.com/rfmoraes/genealogia/internal/config"
	"github.com/rfmoraes/genealogia/internal/logging"
)

// New creates the configured cache backend. reuse=false discards any
// existing cache contents and starts fresh.
func New(cfg config.CacheConfig, reuse bool) (Store, error) {
	switch cfg.Backend {
	case config.CacheBackendFile:
		logging.Debug().Str("path", cfg.Path).Bool("reuse", reuse).Msg("Opening file cache")
		return NewFileStore(cfg.Path, reuse)
	case config.CacheBackendBadger:
		logging.Debug().Str("path", cfg.Path).Bool("reuse", reuse).Msg("Opening badger cache")
		return NewBadgerStore(cfg.Path, reuse)
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}

// Exists reports whether a previous cache is present at the configured
// path. Used to decide whether to prompt the user about reuse.
func Exists(cfg config.CacheConfig) bool {
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return false
	}

	if cfg.Backend == config.CacheBackendBadger {
		if !info.IsDir() {
			return false
		}
		entries, err := os.ReadDir(cfg.Path)
		return err == nil && len(entries) > 0
	}

	return !info.IsDir() && info.Size() > 0
}

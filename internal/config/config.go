// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables (Koanf v2).
//
// Loading order (highest priority wins):
//  1. Built-in defaults
//  2. Config file (config.yaml)
//  3. Environment variables (MGP_URL, FETCH_WORKERS, CACHE_BACKEND, ...)
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	MGP       MGPConfig       `koanf:"mgp"`
	Fetch     FetchConfig     `koanf:"fetch"`
	Cache     CacheConfig     `koanf:"cache"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Export    ExportConfig    `koanf:"export"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// MGPConfig configures the Mathematics Genealogy Project API client.
type MGPConfig struct {
	// URL is the API base URL, e.g. https://mathgenealogy.org:8000/api/v2/MGP
	URL string `koanf:"url"`

	// APIKeyFile is the path to a single-line file holding the API key sent
	// in the x-access-token header. The key file is required; the run aborts
	// before any network activity when it cannot be read.
	APIKeyFile string `koanf:"api_key_file"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `koanf:"timeout"`

	// MaxRetries bounds retries for HTTP 429 responses.
	MaxRetries int `koanf:"max_retries"`

	// RetryBaseDelay is the base delay for exponential backoff on HTTP 429.
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`

	// RequestsPerSecond throttles outgoing requests across all workers.
	// Zero disables client-side throttling.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// Burst is the rate limiter burst size.
	Burst int `koanf:"burst"`
}

// FetchConfig configures the batch fetch orchestrator.
type FetchConfig struct {
	// Country selects the training country for the ID search.
	Country string `koanf:"country"`

	// Workers is the parallel fetch pool size.
	Workers int `koanf:"workers"`

	// Sequential forces one-request-at-a-time fetching, the fallback mode
	// when parallel fetching is unreliable.
	Sequential bool `koanf:"sequential"`
}

// Cache backend identifiers.
const (
	CacheBackendFile   = "file"
	CacheBackendBadger = "badger"
)

// CacheConfig configures the record cache.
type CacheConfig struct {
	// Backend selects the store implementation: "file" (single JSON
	// document) or "badger" (BadgerDB directory).
	Backend string `koanf:"backend"`

	// Path is the JSON cache file path (file backend) or the BadgerDB
	// directory (badger backend).
	Path string `koanf:"path"`
}

// AnalyticsConfig configures graph analytics reporting.
type AnalyticsConfig struct {
	// TopN is the ranking size for advisors and universities.
	TopN int `koanf:"top_n"`

	// GiantComponentShare is the vertex share above which the largest
	// connected component is reported as a giant component.
	GiantComponentShare float64 `koanf:"giant_component_share"`

	// TopComponents is how many of the largest components to report.
	TopComponents int `koanf:"top_components"`
}

// ExportConfig configures result export paths.
type ExportConfig struct {
	// CSVPath receives one row per fetched mathematician.
	CSVPath string `koanf:"csv_path"`

	// JSONPath receives the full analytics summary. Empty disables it.
	JSONPath string `koanf:"json_path"`
}

// MetricsConfig configures the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level: trace, debug, info, warn, error, fatal.
	Level string `koanf:"level"`

	// Format: json or console.
	Format string `koanf:"format"`
}

// Default returns a Config with all built-in defaults and no file or
// environment overrides applied.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		MGP: MGPConfig{
			URL:               "https://mathgenealogy.org:8000/api/v2/MGP",
			APIKeyFile:        "mgp_api_key.txt",
			Timeout:           30 * time.Second,
			MaxRetries:        5,
			RetryBaseDelay:    time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Fetch: FetchConfig{
			Country:    "Brazil",
			Workers:    10,
			Sequential: false,
		},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Path:    "cache_brazil_data.json",
		},
		Analytics: AnalyticsConfig{
			TopN:                10,
			GiantComponentShare: 0.5,
			TopComponents:       5,
		},
		Export: ExportConfig{
			CSVPath:  "matematicos_brasil.csv",
			JSONPath: "genealogy_summary.json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

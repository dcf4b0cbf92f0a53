// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// No config file, no env overrides
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.MGP.URL != "https://mathgenealogy.org:8000/api/v2/MGP" {
		t.Errorf("unexpected default MGP URL: %q", cfg.MGP.URL)
	}
	if cfg.Fetch.Workers != 10 {
		t.Errorf("expected default 10 workers, got %d", cfg.Fetch.Workers)
	}
	if cfg.Fetch.Country != "Brazil" {
		t.Errorf("expected default country Brazil, got %q", cfg.Fetch.Country)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("expected default file cache backend, got %q", cfg.Cache.Backend)
	}
	if cfg.MGP.Timeout != 30*time.Second {
		t.Errorf("expected default 30s timeout, got %s", cfg.MGP.Timeout)
	}
	if cfg.Analytics.TopN != 10 {
		t.Errorf("expected default top_n 10, got %d", cfg.Analytics.TopN)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("FETCH_WORKERS", "4")
	t.Setenv("FETCH_COUNTRY", "Portugal")
	t.Setenv("CACHE_BACKEND", "badger")
	t.Setenv("CACHE_PATH", "/tmp/genealogia-cache")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Fetch.Workers != 4 {
		t.Errorf("FETCH_WORKERS override not applied, got %d", cfg.Fetch.Workers)
	}
	if cfg.Fetch.Country != "Portugal" {
		t.Errorf("FETCH_COUNTRY override not applied, got %q", cfg.Fetch.Country)
	}
	if cfg.Cache.Backend != CacheBackendBadger {
		t.Errorf("CACHE_BACKEND override not applied, got %q", cfg.Cache.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("LOGGING_LEVEL override not applied, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
fetch:
  workers: 3
  country: Argentina
export:
  csv_path: out.csv
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Fetch.Workers != 3 {
		t.Errorf("file workers not applied, got %d", cfg.Fetch.Workers)
	}
	if cfg.Fetch.Country != "Argentina" {
		t.Errorf("file country not applied, got %q", cfg.Fetch.Country)
	}
	if cfg.Export.CSVPath != "out.csv" {
		t.Errorf("file csv_path not applied, got %q", cfg.Export.CSVPath)
	}
	// Untouched keys keep defaults
	if cfg.MGP.MaxRetries != 5 {
		t.Errorf("defaults lost after file load, max_retries = %d", cfg.MGP.MaxRetries)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty url", func(c *Config) { c.MGP.URL = "" }, "MGP_URL"},
		{"bad scheme", func(c *Config) { c.MGP.URL = "ftp://example.com" }, "http or https"},
		{"empty key file", func(c *Config) { c.MGP.APIKeyFile = "" }, "MGP_API_KEY_FILE"},
		{"zero timeout", func(c *Config) { c.MGP.Timeout = 0 }, "MGP_TIMEOUT"},
		{"negative retries", func(c *Config) { c.MGP.MaxRetries = -1 }, "MGP_MAX_RETRIES"},
		{"zero workers", func(c *Config) { c.Fetch.Workers = 0 }, "FETCH_WORKERS"},
		{"blank country", func(c *Config) { c.Fetch.Country = "  " }, "FETCH_COUNTRY"},
		{"bad backend", func(c *Config) { c.Cache.Backend = "redis" }, "CACHE_BACKEND"},
		{"empty cache path", func(c *Config) { c.Cache.Path = "" }, "CACHE_PATH"},
		{"zero top_n", func(c *Config) { c.Analytics.TopN = 0 }, "ANALYTICS_TOP_N"},
		{"share too big", func(c *Config) { c.Analytics.GiantComponentShare = 1.5 }, "GIANT_COMPONENT_SHARE"},
		{"empty csv path", func(c *Config) { c.Export.CSVPath = "" }, "EXPORT_CSV_PATH"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "LOGGING_LEVEL"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "LOGGING_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MGP_URL", "mgp.url"},
		{"MGP_API_KEY_FILE", "mgp.api_key_file"},
		{"FETCH_WORKERS", "fetch.workers"},
		{"ANALYTICS_TOP_N", "analytics.top_n"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

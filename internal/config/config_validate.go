// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateMGP(); err != nil {
		return err
	}

	if err := c.validateFetch(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateAnalytics(); err != nil {
		return err
	}

	if err := c.validateExport(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateMGP() error {
	if c.MGP.URL == "" {
		return fmt.Errorf("MGP_URL is required")
	}

	parsed, err := url.Parse(c.MGP.URL)
	if err != nil {
		return fmt.Errorf("MGP_URL is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("MGP_URL must use http or https, got %q", parsed.Scheme)
	}

	if c.MGP.APIKeyFile == "" {
		return fmt.Errorf("MGP_API_KEY_FILE is required")
	}

	if c.MGP.Timeout <= 0 {
		return fmt.Errorf("MGP_TIMEOUT must be positive, got %s", c.MGP.Timeout)
	}

	if c.MGP.MaxRetries < 0 {
		return fmt.Errorf("MGP_MAX_RETRIES must not be negative, got %d", c.MGP.MaxRetries)
	}

	if c.MGP.RequestsPerSecond < 0 {
		return fmt.Errorf("MGP_REQUESTS_PER_SECOND must not be negative, got %g", c.MGP.RequestsPerSecond)
	}

	return nil
}

func (c *Config) validateFetch() error {
	if strings.TrimSpace(c.Fetch.Country) == "" {
		return fmt.Errorf("FETCH_COUNTRY is required")
	}

	if c.Fetch.Workers < 1 {
		return fmt.Errorf("FETCH_WORKERS must be at least 1, got %d", c.Fetch.Workers)
	}

	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendBadger:
	default:
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q",
			CacheBackendFile, CacheBackendBadger, c.Cache.Backend)
	}

	if c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required")
	}

	return nil
}

func (c *Config) validateAnalytics() error {
	if c.Analytics.TopN < 1 {
		return fmt.Errorf("ANALYTICS_TOP_N must be at least 1, got %d", c.Analytics.TopN)
	}

	if c.Analytics.GiantComponentShare <= 0 || c.Analytics.GiantComponentShare > 1 {
		return fmt.Errorf("ANALYTICS_GIANT_COMPONENT_SHARE must be in (0, 1], got %g",
			c.Analytics.GiantComponentShare)
	}

	if c.Analytics.TopComponents < 1 {
		return fmt.Errorf("ANALYTICS_TOP_COMPONENTS must be at least 1, got %d", c.Analytics.TopComponents)
	}

	return nil
}

func (c *Config) validateExport() error {
	if c.Export.CSVPath == "" {
		return fmt.Errorf("EXPORT_CSV_PATH is required")
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOGGING_LEVEL must be a valid level, got %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOGGING_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

// Package credentials loads the MGP API key from a local key file.
//
// The key file contains a single line with the API key. A missing or empty
// key file is a fatal startup error: no network activity may begin without
// a credential.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyKey is returned when the key file exists but holds no key.
var ErrEmptyKey = errors.New("credentials: key file is empty")

// ReadAPIKey reads the API key from the given file path. Surrounding
// whitespace and a trailing newline are stripped.
func ReadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("credentials: reading key file %s: %w", path, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyKey, path)
	}

	// Keys are single-line; anything after the first line is ignored.
	if idx := strings.IndexAny(key, "\r\n"); idx >= 0 {
		key = strings.TrimSpace(key[:idx])
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyKey, path)
	}

	return key, nil
}

// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfmoraes/genealogia/internal/cache"
	"github.com/rfmoraes/genealogia/internal/fetch"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build the graph and write exports from cached records only",
	Long: `analyze runs the analytics and export steps over whatever the
cache already holds, without any network access. It fails when the cache
is empty; run "genealogia fetch" first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cache.Exists(cfg.Cache) {
			return errors.New("no cache found; run \"genealogia fetch\" first")
		}

		store, err := cache.New(cfg.Cache, true)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		records, err := store.All()
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}
		if len(records) == 0 {
			return errors.New("cache is empty; run \"genealogia fetch\" first")
		}

		result := &fetch.Result{
			Records:   records,
			CacheHits: len(records),
		}
		return analyzeAndExport(result)
	},
}

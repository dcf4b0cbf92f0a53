// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfmoraes/genealogia/internal/fetch"
	"github.com/rfmoraes/genealogia/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch records, build the graph, and write exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := fetchRecords(cmd)
		if err != nil {
			return err
		}
		return analyzeAndExport(result)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch records into the cache without analyzing",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := fetchRecords(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d records cached (%d fetched, %d misses)\n",
			len(result.Records), result.Fetched, len(result.Misses))
		return nil
	},
}

// fetchRecords runs the fetch half of the pipeline: open the cache, read
// the credential, search the country, resolve every ID, flush the cache.
func fetchRecords(cmd *cobra.Command) (*fetch.Result, error) {
	client, err := newFetchClient()
	if err != nil {
		return nil, err
	}

	store, err := openStore(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	orchestrator := fetch.NewOrchestrator(client, store, cfg.Fetch)
	result, err := orchestrator.FetchCountry(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}

	if err := store.Flush(); err != nil {
		return nil, fmt.Errorf("flushing cache: %w", err)
	}

	if len(result.Misses) > 0 {
		logging.Warn().Int("misses", len(result.Misses)).Msg("Some records could not be fetched")
	}
	return result, nil
}

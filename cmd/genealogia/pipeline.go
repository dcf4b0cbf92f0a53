// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rfmoraes/genealogia/internal/cache"
	"github.com/rfmoraes/genealogia/internal/credentials"
	"github.com/rfmoraes/genealogia/internal/export"
	"github.com/rfmoraes/genealogia/internal/fetch"
	"github.com/rfmoraes/genealogia/internal/graph"
	"github.com/rfmoraes/genealogia/internal/logging"
)

// openStore opens the record cache, deciding whether to reuse existing
// cached data. The --use-cache / --no-cache flags decide without asking;
// otherwise, when a cache exists, the user is prompted the way the
// original interactive workflow did.
func openStore(in io.Reader) (cache.Store, error) {
	reuse := true
	switch {
	case flagNoCache:
		reuse = false
	case flagUseCache:
		reuse = true
	case cache.Exists(cfg.Cache):
		reuse = promptYesNo(in, fmt.Sprintf("Reuse cached data in %s? [Y/n] ", cfg.Cache.Path))
	}

	store, err := cache.New(cfg.Cache, reuse)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	if reuse {
		cached, err := store.Len()
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("inspecting cache: %w", err)
		}
		logging.Info().Str("path", cfg.Cache.Path).Int("records", cached).Msg("Cache opened")
	} else {
		logging.Info().Str("path", cfg.Cache.Path).Msg("Starting with an empty cache")
	}
	return store, nil
}

// promptYesNo asks on stdout and reads one line. Empty answer and
// anything starting with y/Y means yes.
func promptYesNo(in io.Reader, question string) bool {
	fmt.Print(question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return true
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "" || strings.HasPrefix(answer, "y")
}

// newFetchClient builds the API client behind the circuit breaker. The
// credential is read before any network activity; a missing key file is
// fatal here rather than after a half-finished fetch.
func newFetchClient() (fetch.ClientInterface, error) {
	apiKey, err := credentials.ReadAPIKey(cfg.MGP.APIKeyFile)
	if err != nil {
		return nil, fmt.Errorf("reading API key: %w", err)
	}
	return fetch.NewCircuitBreakerClient(fetch.NewClient(&cfg.MGP, apiKey)), nil
}

// analyzeAndExport builds the genealogy graph over the fetch result and
// writes both export files.
func analyzeAndExport(result *fetch.Result) error {
	gg := graph.Build(result.Records)

	logging.Info().
		Int("vertices", gg.Order()).
		Int("edges", gg.EdgeCount()).
		Msg("Genealogy graph built")

	if err := export.WriteCSVFile(cfg.Export.CSVPath, gg); err != nil {
		return fmt.Errorf("writing CSV export: %w", err)
	}

	summary := export.BuildSummary(result, gg, cfg)
	if err := export.WriteSummaryFile(cfg.Export.JSONPath, summary); err != nil {
		return fmt.Errorf("writing JSON summary: %w", err)
	}

	logging.Info().
		Str("csv", cfg.Export.CSVPath).
		Str("json", cfg.Export.JSONPath).
		Msg("Exports written")

	reportRun(os.Stdout, summary)
	return nil
}

// reportRun prints the human-readable closing report.
func reportRun(w io.Writer, s *export.Summary) {
	fmt.Fprintf(w, "\n%d records (%d from cache, %d fetched, %d skipped)\n",
		s.Records, s.CacheHits, s.Fetched, s.Skipped)
	fmt.Fprintf(w, "Graph: %d vertices, %d edges, %d components (%d isolated)\n",
		s.Vertices, s.Edges, s.Connectivity.Components, s.Connectivity.Isolated)
	fmt.Fprintf(w, "Mathematicians with no reported students: %d\n", s.Connectivity.NoAdvisees)
	if s.Connectivity.HasGiant {
		fmt.Fprintf(w, "Giant component: %d vertices (%.1f%% of the graph)\n",
			s.Connectivity.GiantSize, s.Connectivity.GiantShare*100)
	}

	if len(s.TopAdvisors) > 0 {
		fmt.Fprintln(w, "\nTop advisors by direct students:")
		for _, rank := range s.TopAdvisors {
			name := rank.Name
			if name == "" {
				name = "(unknown)"
			}
			fmt.Fprintf(w, "  %8d  %-40s %d\n", rank.ID, name, rank.Students)
		}
	}

	if len(s.TopUniversities) > 0 {
		fmt.Fprintln(w, "\nTop universities by doctorates:")
		for _, rank := range s.TopUniversities {
			fmt.Fprintf(w, "  %-50s %d\n", rank.School, rank.Doctorates)
		}
	}

	if s.MostDescendants != nil {
		fmt.Fprintf(w, "\nMost reported descendants: %s (ID %d) with %d\n",
			s.MostDescendants.Name, s.MostDescendants.ID, s.MostDescendants.Descendants)
	}

	if len(s.Misses) > 0 {
		fmt.Fprintf(w, "\nWARNING: %d records could not be fetched: %v\n", len(s.Misses), s.Misses)
	}
}

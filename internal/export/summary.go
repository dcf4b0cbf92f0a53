// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package export

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/rfmoraes/genealogia/internal/config"
	"github.com/rfmoraes/genealogia/internal/fetch"
	"github.com/rfmoraes/genealogia/internal/graph"
)

// Summary is the JSON export: fetch counters, rankings, and component
// structure for one pipeline run.
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`
	Country     string    `json:"country"`

	Records   int     `json:"records"`
	CacheHits int     `json:"cache_hits"`
	Fetched   int     `json:"fetched"`
	Skipped   int     `json:"skipped"`
	Misses    []int64 `json:"misses"`

	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`

	TopAdvisors     []graph.AdvisorRank       `json:"top_advisors"`
	TopUniversities []graph.UniversityRank    `json:"top_universities"`
	MostDescendants *graph.DescendantHighlight `json:"most_reported_descendants,omitempty"`

	Connectivity graph.Connectivity `json:"connectivity"`
}

// BuildSummary assembles the summary document from a fetch result and the
// graph built over it.
func BuildSummary(result *fetch.Result, gg *graph.Genealogy, cfg *config.Config) *Summary {
	s := &Summary{
		GeneratedAt:     time.Now().UTC(),
		Country:         cfg.Fetch.Country,
		Records:         len(result.Records),
		CacheHits:       result.CacheHits,
		Fetched:         result.Fetched,
		Skipped:         result.Skipped,
		Misses:          result.Misses,
		Vertices:        gg.Order(),
		Edges:           gg.EdgeCount(),
		TopAdvisors:     gg.TopAdvisors(cfg.Analytics.TopN),
		TopUniversities: gg.TopUniversities(cfg.Analytics.TopN),
		Connectivity:    gg.Connect(cfg.Analytics.GiantComponentShare, cfg.Analytics.TopComponents),
	}
	if s.Misses == nil {
		s.Misses = []int64{}
	}
	if best, ok := gg.MostReportedDescendants(); ok {
		s.MostDescendants = &best
	}
	return s
}

// WriteSummary writes the summary as indented JSON.
func WriteSummary(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return nil
}

// WriteSummaryFile writes the summary JSON to path atomically.
func WriteSummaryFile(path string, s *Summary) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteSummary(w, s)
	})
}

// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

// Package export writes the analysis results to disk: a CSV of per-record
// counts and a JSON summary document.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rfmoraes/genealogia/internal/graph"
	"github.com/rfmoraes/genealogia/internal/logging"
)

var csvHeader = []string{"id", "name", "descendant_count", "direct_student_count"}

// WriteCSV writes one row per fetched record, ordered by ID. Descendant
// counts come from the graph traversal, not the API's self-reported
// figure; direct student counts are graph out-degrees.
func WriteCSV(w io.Writer, gg *graph.Genealogy) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	rows := 0
	for _, id := range gg.NodeIDs() {
		rec := gg.Record(id)
		if rec == nil {
			continue // edge-only vertex, nothing fetched to report
		}
		row := []string{
			strconv.FormatInt(id, 10),
			rec.Name,
			strconv.Itoa(gg.DescendantCount(id)),
			strconv.Itoa(gg.OutDegree(id)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %d: %w", id, err)
		}
		rows++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	logging.Debug().Int("rows", rows).Msg("CSV export written")
	return nil
}

// WriteCSVFile writes the CSV export to path atomically.
func WriteCSVFile(path string, gg *graph.Genealogy) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, gg)
	})
}

// writeFileAtomic writes through a sibling temp file and renames it into
// place, so a crash mid-write never leaves a truncated export behind.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}

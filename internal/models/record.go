// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

// Package models provides the normalized domain records for Genealogia.
//
// A Mathematician is the unit of the pipeline: fetched once from the MGP
// API, cached by ID, and never mutated within a run. The genealogy graph is
// derived from the full record map each run.
package models

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for record shape checks.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Mathematician is a normalized MGP genealogy record.
//
// Advisors may reference mathematicians outside the fetched set (foreign
// advisors); those IDs become edge-only graph nodes without records.
type Mathematician struct {
	// ID is the MGP identifier. Required and positive.
	ID int64 `json:"id" validate:"required,gt=0"`

	// Name is the full display name (given + family).
	Name string `json:"name"`

	// Advisors holds the IDs of everyone who advised this mathematician,
	// across all degrees. Sorted ascending, no duplicates.
	Advisors []int64 `json:"advisors,omitempty"`

	// AdvisorNames maps advisor ID to display name, as reported by the API.
	AdvisorNames map[int64]string `json:"advisor_names,omitempty"`

	// Schools lists the institutions that granted this mathematician's
	// degrees, in degree order.
	Schools []string `json:"schools,omitempty"`

	// Advisees holds the IDs of this mathematician's direct students as
	// reported by the API. Sorted ascending, no duplicates.
	Advisees []int64 `json:"advisees,omitempty"`

	// ReportedDescendants is the descendant count as reported by the API.
	// The exported descendant count is computed from the graph instead; the
	// reported value is kept for the "most descendants" highlight.
	ReportedDescendants int `json:"reported_descendants,omitempty"`

	// Country is the training country used for the search that found this
	// record.
	Country string `json:"country,omitempty"`
}

// Validate checks the record shape. A record failing validation is treated
// as malformed: skipped with a warning, never cached.
func (m *Mathematician) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid mathematician record: %w", err)
	}
	return nil
}

// University returns the first school on record, or "" when none is known.
func (m *Mathematician) University() string {
	if len(m.Schools) == 0 {
		return ""
	}
	return m.Schools[0]
}

// SortIDs sorts a slice of mathematician IDs ascending, in place, and
// removes duplicates. Returns the deduplicated slice.
func SortIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

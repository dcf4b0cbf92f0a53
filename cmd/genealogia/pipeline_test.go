// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rfmoraes/genealogia/internal/export"
	"github.com/rfmoraes/genealogia/internal/graph"
)

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"\n", true},
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"whatever\n", false},
		{"", true}, // EOF without input defaults to reuse
	}
	for _, tt := range tests {
		if got := promptYesNo(strings.NewReader(tt.answer), ""); got != tt.want {
			t.Errorf("promptYesNo(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestReportRun(t *testing.T) {
	s := &export.Summary{
		Records:   3,
		CacheHits: 1,
		Fetched:   2,
		Misses:    []int64{42},
		Vertices:  3,
		Edges:     2,
		TopAdvisors: []graph.AdvisorRank{
			{ID: 1, Name: "Ana", Students: 2},
		},
		TopUniversities: []graph.UniversityRank{
			{School: "IMPA, Brazil", Doctorates: 3},
		},
		MostDescendants: &graph.DescendantHighlight{ID: 1, Name: "Ana", Descendants: 7},
		Connectivity:    graph.Connectivity{Components: 1, NoAdvisees: 2, GiantSize: 3, GiantShare: 1.0, HasGiant: true},
	}

	var buf bytes.Buffer
	reportRun(&buf, s)
	out := buf.String()

	for _, want := range []string{
		"3 records",
		"Giant component: 3 vertices",
		"Mathematicians with no reported students: 2",
		"Ana",
		"IMPA, Brazil",
		"Most reported descendants",
		"WARNING: 1 records could not be fetched: [42]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q in:\n%s", want, out)
		}
	}
}

// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package graph

// Connectivity summarizes the component structure of the graph viewed as
// undirected.
type Connectivity struct {
	// Components is the number of connected components.
	Components int `json:"components"`

	// Isolated is the number of vertices with no edges at all.
	Isolated int `json:"isolated"`

	// NoAdvisees is the number of fetched records reporting no direct
	// students. Unlike Isolated it ignores incoming edges: a
	// mathematician with a registered advisor but no students counts.
	NoAdvisees int `json:"no_advisees"`

	// GiantSize is the vertex count of the largest component, 0 for an
	// empty graph.
	GiantSize int `json:"giant_size"`

	// GiantShare is GiantSize divided by the total vertex count, in
	// [0, 1]. 0 for an empty graph.
	GiantShare float64 `json:"giant_share"`

	// HasGiant reports whether the largest component covers more than
	// the configured share of all vertices.
	HasGiant bool `json:"has_giant"`

	// TopSizes lists the largest component sizes, descending, at most
	// the configured number of entries.
	TopSizes []int `json:"top_sizes"`
}

// Connect computes connectivity statistics. giantShare is the fraction
// of all vertices the largest component must exceed to count as a giant
// component; topN bounds TopSizes (0 keeps all).
func (gg *Genealogy) Connect(giantShare float64, topN int) Connectivity {
	components := gg.Components()

	stats := Connectivity{
		Components: len(components),
		Isolated:   gg.IsolatedCount(),
		NoAdvisees: gg.NoAdviseesCount(),
	}

	if len(components) == 0 {
		return stats
	}

	stats.GiantSize = len(components[0])
	if order := gg.Order(); order > 0 {
		stats.GiantShare = float64(stats.GiantSize) / float64(order)
	}
	stats.HasGiant = stats.GiantShare > giantShare

	sizes := make([]int, 0, len(components))
	for _, comp := range components {
		sizes = append(sizes, len(comp))
	}
	stats.TopSizes = truncate(sizes, topN)

	return stats
}

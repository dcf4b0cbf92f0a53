// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

// Package graph builds the genealogy graph and computes its analytics.
//
// The graph is directed: an edge (u, v) means "u advised v". It is built
// once from the full record map and read-only afterwards. Advisor IDs that
// reference mathematicians outside the fetched set stay in the graph as
// edge-only nodes without records; analytics tolerate them everywhere.
//
// Graph storage and traversal are delegated to gonum (graph/simple,
// graph/topo, graph/traverse).
package graph

import (
	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/rfmoraes/genealogia/internal/models"
)

// Genealogy is the advisor-student graph over a fetched record set.
type Genealogy struct {
	g       *simple.DirectedGraph
	records map[int64]*models.Mathematician
	names   map[int64]string
}

// Build constructs the genealogy graph from the merged record map. Every
// advisor ID becomes an edge advisor->student. Self-loops are dropped and
// duplicate edges collapse silently; every edge endpoint is materialized
// as a node even when no record was fetched for it.
func Build(records map[int64]*models.Mathematician) *Genealogy {
	gg := &Genealogy{
		g:       simple.NewDirectedGraph(),
		records: records,
		names:   make(map[int64]string),
	}

	for id, rec := range records {
		gg.ensureNode(id)
		if rec.Name != "" {
			gg.names[id] = rec.Name
		}

		for _, advisor := range rec.Advisors {
			if advisor == id {
				continue // malformed self-advising entry
			}
			gg.ensureNode(advisor)
			if name, ok := rec.AdvisorNames[advisor]; ok && name != "" {
				if _, known := gg.names[advisor]; !known {
					gg.names[advisor] = name
				}
			}
			gg.g.SetEdge(gg.g.NewEdge(gg.g.Node(advisor), gg.g.Node(id)))
		}
	}

	return gg
}

func (gg *Genealogy) ensureNode(id int64) {
	if gg.g.Node(id) == nil {
		gg.g.AddNode(simple.Node(id))
	}
}

// Order returns the number of vertices.
func (gg *Genealogy) Order() int {
	return gg.g.Nodes().Len()
}

// EdgeCount returns the number of advisor-student edges.
func (gg *Genealogy) EdgeCount() int {
	return gg.g.Edges().Len()
}

// NodeIDs returns all vertex IDs, sorted ascending.
func (gg *Genealogy) NodeIDs() []int64 {
	ids := make([]int64, 0, gg.Order())
	it := gg.g.Nodes()
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	return models.SortIDs(ids)
}

// HasNode reports whether id is a vertex.
func (gg *Genealogy) HasNode(id int64) bool {
	return gg.g.Node(id) != nil
}

// Record returns the fetched record for id, or nil for edge-only nodes.
func (gg *Genealogy) Record(id int64) *models.Mathematician {
	return gg.records[id]
}

// Name returns the best known display name for id: the record name when
// fetched, otherwise a name reported by a student record, otherwise "".
func (gg *Genealogy) Name(id int64) string {
	return gg.names[id]
}

// OutDegree returns the number of direct students of id.
func (gg *Genealogy) OutDegree(id int64) int {
	if gg.g.Node(id) == nil {
		return 0
	}
	return gg.g.From(id).Len()
}

// InDegree returns the number of advisors of id present in the graph.
func (gg *Genealogy) InDegree(id int64) int {
	if gg.g.Node(id) == nil {
		return 0
	}
	return gg.g.To(id).Len()
}

// DescendantCount returns the number of vertices reachable from id via
// outgoing edges, excluding id itself. The BFS visited set makes cycles
// (malformed advisor loops) terminate. Unknown IDs count zero.
func (gg *Genealogy) DescendantCount(id int64) int {
	node := gg.g.Node(id)
	if node == nil {
		return 0
	}

	visited := 0
	bfs := traverse.BreadthFirst{
		Visit: func(gograph.Node) { visited++ },
	}
	bfs.Walk(gg.g, node, nil)

	return visited - 1 // exclude the start vertex
}

// DescendantCounts computes DescendantCount for every vertex.
func (gg *Genealogy) DescendantCounts() map[int64]int {
	counts := make(map[int64]int, gg.Order())
	it := gg.g.Nodes()
	for it.Next() {
		id := it.Node().ID()
		counts[id] = gg.DescendantCount(id)
	}
	return counts
}

// Components returns the connected components of the graph treated as
// undirected. Each component is sorted ascending; components are ordered
// by size descending, ties by smallest member ID, so output is
// deterministic.
func (gg *Genealogy) Components() [][]int64 {
	raw := topo.ConnectedComponents(gograph.Undirect{G: gg.g})

	components := make([][]int64, 0, len(raw))
	for _, comp := range raw {
		ids := make([]int64, 0, len(comp))
		for _, node := range comp {
			ids = append(ids, node.ID())
		}
		components = append(components, models.SortIDs(ids))
	}

	sortComponents(components)
	return components
}

// IsolatedCount returns the number of vertices with no incoming and no
// outgoing edges.
func (gg *Genealogy) IsolatedCount() int {
	count := 0
	it := gg.g.Nodes()
	for it.Next() {
		id := it.Node().ID()
		if gg.g.From(id).Len() == 0 && gg.g.To(id).Len() == 0 {
			count++
		}
	}
	return count
}

// NoAdviseesCount returns the number of fetched records whose API-reported
// advisee list is empty. This uses the reported advisees rather than
// out-degree: a student advised outside the fetched set still makes the
// advisor a non-zero case here even though no edge exists for them.
func (gg *Genealogy) NoAdviseesCount() int {
	count := 0
	for _, rec := range gg.records {
		if len(rec.Advisees) == 0 {
			count++
		}
	}
	return count
}

// sortComponents orders components by size descending, breaking ties by
// the smallest member ID ascending. Components are already internally
// sorted, so element 0 is the smallest member.
func sortComponents(components [][]int64) {
	for i := 1; i < len(components); i++ {
		for j := i; j > 0 && componentLess(components[j], components[j-1]); j-- {
			components[j], components[j-1] = components[j-1], components[j]
		}
	}
}

func componentLess(a, b []int64) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a[0] < b[0]
}

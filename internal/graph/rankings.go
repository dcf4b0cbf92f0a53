// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package graph

import (
	"sort"
	"strings"
)

// AdvisorRank is one row of the top-advisors ranking.
type AdvisorRank struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	Students int    `json:"students"`
}

// UniversityRank is one row of the top-universities ranking.
type UniversityRank struct {
	School     string `json:"school"`
	Doctorates int    `json:"doctorates"`
}

// DescendantHighlight names the record with the largest self-reported
// descendant count.
type DescendantHighlight struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	Descendants int    `json:"descendants"`
}

// TopAdvisors ranks vertices by direct student count (out-degree),
// descending, ties broken by ascending ID. Vertices with no students are
// excluded. Edge-only advisors rank too; their names come from student
// records when available.
func (gg *Genealogy) TopAdvisors(n int) []AdvisorRank {
	var ranks []AdvisorRank
	it := gg.g.Nodes()
	for it.Next() {
		id := it.Node().ID()
		students := gg.OutDegree(id)
		if students == 0 {
			continue
		}
		ranks = append(ranks, AdvisorRank{
			ID:       id,
			Name:     gg.names[id],
			Students: students,
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Students != ranks[j].Students {
			return ranks[i].Students > ranks[j].Students
		}
		return ranks[i].ID < ranks[j].ID
	})

	return truncate(ranks, n)
}

// TopUniversities ranks Brazilian institutions by how many fetched
// records list them as a degree-granting school, descending, ties broken
// alphabetically. Record normalization dedupes schools across degrees,
// so each school counts at most once per mathematician.
func (gg *Genealogy) TopUniversities(n int) []UniversityRank {
	counts := make(map[string]int)
	for _, rec := range gg.records {
		for _, school := range rec.Schools {
			if isBrazilianSchool(school) {
				counts[school]++
			}
		}
	}

	ranks := make([]UniversityRank, 0, len(counts))
	for school, doctorates := range counts {
		ranks = append(ranks, UniversityRank{School: school, Doctorates: doctorates})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Doctorates != ranks[j].Doctorates {
			return ranks[i].Doctorates > ranks[j].Doctorates
		}
		return ranks[i].School < ranks[j].School
	})

	return truncate(ranks, n)
}

// MostReportedDescendants returns the record whose API-reported
// descendant count is largest. Ties resolve to the smallest ID. The
// second return is false when no records were fetched.
func (gg *Genealogy) MostReportedDescendants() (DescendantHighlight, bool) {
	var best DescendantHighlight
	found := false
	for id, rec := range gg.records {
		switch {
		case !found,
			rec.ReportedDescendants > best.Descendants,
			rec.ReportedDescendants == best.Descendants && id < best.ID:
			best = DescendantHighlight{
				ID:          id,
				Name:        rec.Name,
				Descendants: rec.ReportedDescendants,
			}
			found = true
		}
	}
	return best, found
}

// isBrazilianSchool mirrors the country filter used for degree schools:
// a case-sensitive substring match on the English or Portuguese spelling.
func isBrazilianSchool(school string) bool {
	return strings.Contains(school, "Brazil") || strings.Contains(school, "Brasil")
}

func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

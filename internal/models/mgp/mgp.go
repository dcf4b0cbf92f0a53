// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

// Package mgp provides data models for Mathematics Genealogy Project API
// responses.
//
// The MGP API v2 exposes two read-only endpoints consumed here:
//
//   - GET /search?country=<name>: IDs of mathematicians trained in a country.
//     Depending on server version the payload is a flat ID array or an array
//     of [id, name] tuples; IDList absorbs both.
//   - GET /acad?id=<id>: the full academic record, wrapped in an
//     "MGP_academic" object with nested student_data.
//
// Field shapes follow the live API, which is loosely typed: advisor and
// advisee collections arrive as {"id": "name"} objects but degrade to arrays
// (sometimes [""]) when empty. NameByID absorbs both shapes.
package mgp

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/rfmoraes/genealogia/internal/models"
)

// IDList is the payload of the search-by-country endpoint. It accepts both
// a flat array of IDs and an array of [id, ...] tuples, keeping the first
// element of each tuple.
type IDList []int64

// UnmarshalJSON implements the two search payload shapes.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var flat []int64
	if err := json.Unmarshal(data, &flat); err == nil {
		*l = flat
		return nil
	}

	var nested [][]json.RawMessage
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("search response is neither an ID array nor a tuple array: %w", err)
	}

	ids := make([]int64, 0, len(nested))
	for _, tuple := range nested {
		if len(tuple) == 0 {
			continue
		}
		var id int64
		if err := json.Unmarshal(tuple[0], &id); err != nil {
			return fmt.Errorf("search tuple has non-numeric ID %s: %w", tuple[0], err)
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

// NameByID maps a mathematician ID to a display name. The API encodes these
// as JSON objects with decimal-string keys, but empty collections sometimes
// arrive as arrays (including [""]); both decode to an empty map. Keys that
// do not parse as integers are dropped.
type NameByID map[int64]string

// UnmarshalJSON implements the object-or-array shapes.
func (n *NameByID) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err == nil {
		out := make(NameByID, len(raw))
		for key, name := range raw {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				continue
			}
			out[id] = name
		}
		*n = out
		return nil
	}

	// Empty-collection degenerate shape: any array decodes to no entries.
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("expected object or array: %w", err)
	}
	*n = NameByID{}
	return nil
}

// IDs returns the map's keys, sorted ascending.
func (n NameByID) IDs() []int64 {
	ids := make([]int64, 0, len(n))
	for id := range n {
		ids = append(ids, id)
	}
	return models.SortIDs(ids)
}

// AcademicResponse is the wrapper returned by the acad endpoint.
type AcademicResponse struct {
	Academic *Academic `json:"MGP_academic"`
}

// RangeResponse is the payload of the acad/range endpoint: one academic
// record per ID in the requested range.
type RangeResponse struct {
	Academics []AcademicResponse `json:"MGP_academics"`
}

// Academic is a single mathematician's academic record.
type Academic struct {
	ID          int64       `json:"ID"`
	GivenName   string      `json:"given_name"`
	FamilyName  string      `json:"family_name"`
	StudentData StudentData `json:"student_data"`
}

// StudentData holds degree and descendant information.
type StudentData struct {
	Degrees     []Degree    `json:"degrees"`
	Descendants Descendants `json:"descendants"`
}

// Degree is a single earned degree with its advisors and granting schools.
type Degree struct {
	AdvisedBy NameByID `json:"advised by"`
	Schools   []string `json:"schools"`
	Year      string   `json:"year,omitempty"`
}

// Descendants summarizes the subtree below a mathematician.
type Descendants struct {
	DescendantCount int      `json:"descendant_count"`
	Advisees        NameByID `json:"advisees"`
}

// Name returns the full display name.
func (a *Academic) Name() string {
	switch {
	case a.GivenName == "":
		return a.FamilyName
	case a.FamilyName == "":
		return a.GivenName
	default:
		return a.GivenName + " " + a.FamilyName
	}
}

// Record normalizes the academic record into the domain model. Advisors are
// merged across all degrees; schools keep degree order with duplicates
// removed.
func (a *Academic) Record(country string) *models.Mathematician {
	advisorNames := make(map[int64]string)
	var schools []string
	seenSchool := make(map[string]bool)

	for _, degree := range a.StudentData.Degrees {
		for id, name := range degree.AdvisedBy {
			advisorNames[id] = name
		}
		for _, school := range degree.Schools {
			if school == "" || seenSchool[school] {
				continue
			}
			seenSchool[school] = true
			schools = append(schools, school)
		}
	}

	advisors := make([]int64, 0, len(advisorNames))
	for id := range advisorNames {
		advisors = append(advisors, id)
	}

	return &models.Mathematician{
		ID:                  a.ID,
		Name:                a.Name(),
		Advisors:            models.SortIDs(advisors),
		AdvisorNames:        advisorNames,
		Schools:             schools,
		Advisees:            a.StudentData.Descendants.Advisees.IDs(),
		ReportedDescendants: a.StudentData.Descendants.DescendantCount,
		Country:             country,
	}
}

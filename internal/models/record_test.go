// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package models

import (
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	good := &Mathematician{ID: 42, Name: "Artur Avila"}
	if err := good.Validate(); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	for _, bad := range []*Mathematician{
		{ID: 0, Name: "No ID"},
		{ID: -7, Name: "Negative ID"},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("record with ID %d accepted", bad.ID)
		}
	}
}

func TestUniversity(t *testing.T) {
	m := &Mathematician{ID: 1, Schools: []string{"IMPA, Brazil", "USP, Brazil"}}
	if got := m.University(); got != "IMPA, Brazil" {
		t.Errorf("University() = %q, want first school", got)
	}

	empty := &Mathematician{ID: 2}
	if got := empty.University(); got != "" {
		t.Errorf("University() on schoolless record = %q, want empty", got)
	}
}

func TestSortIDs(t *testing.T) {
	tests := []struct {
		name string
		in   []int64
		want []int64
	}{
		{"nil", nil, nil},
		{"single", []int64{5}, []int64{5}},
		{"unsorted", []int64{3, 1, 2}, []int64{1, 2, 3}},
		{"duplicates", []int64{2, 1, 2, 3, 1}, []int64{1, 2, 3}},
		{"all equal", []int64{4, 4, 4}, []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortIDs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

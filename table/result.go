// comorbid: Comorbidity Classification and Scoring Library
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/ptra/blob/master/LICENSE.txt>.

package table

import (
	"sort"
	"strconv"
)

// Metadata keys attached to comorbidity results.
const (
	MetaScore           = "score"
	MetaCodingSystem    = "coding_system"
	MetaVariant         = "variant"
	MetaWeighting       = "weighting_variant"
	MetaApplyExclusions = "apply_exclusions"
)

// Result is a per-identifier output table: one row per identifier, numeric value columns.
type Result struct {
	Columns []string    // value columns; the identifier column is implicit
	IDs     []string    // row identifiers
	Values  [][]float64 // Values[row][column]
	Meta    map[string]string
}

// NewResult allocates a zeroed result for ids and columns.
func NewResult(ids, columns []string) *Result {
	values := make([][]float64, len(ids))
	cells := make([]float64, len(ids)*len(columns))
	for i := range values {
		values[i], cells = cells[:len(columns):len(columns)], cells[len(columns):]
	}
	return &Result{Columns: columns, IDs: ids, Values: values, Meta: map[string]string{}}
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.IDs)
}

// ColumnIndex returns the position of a value column, or -1.
func (r *Result) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of a value column.
func (r *Result) Column(name string) ([]float64, bool) {
	j := r.ColumnIndex(name)
	if j == -1 {
		return nil, false
	}
	col := make([]float64, len(r.Values))
	for i, row := range r.Values {
		col[i] = row[j]
	}
	return col, true
}

// Row returns the values of an identifier keyed by column name.
func (r *Result) Row(id string) (map[string]float64, bool) {
	for i, x := range r.IDs {
		if x == id {
			row := make(map[string]float64, len(r.Columns))
			for j, c := range r.Columns {
				row[c] = r.Values[i][j]
			}
			return row, true
		}
	}
	return nil, false
}

// MetaKeys returns the metadata keys in sorted order.
func (r *Result) MetaKeys() []string {
	keys := make([]string, 0, len(r.Meta))
	for k := range r.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders a value without trailing zeros, so flags print as 0 and 1.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

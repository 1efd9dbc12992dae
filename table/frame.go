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

// Package table holds the tabular input and output of the scorers and reads and writes them as CSV, Parquet and
// PostgreSQL tables.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IDColumn is the name of the identifier column of every result.
const IDColumn = "id"

// SchemaError reports input that does not have the columns (or column types) a computation needs.
type SchemaError struct {
	Missing   []string // required columns absent from the input
	Available []string
	Column    string // column with an invalid cell, if any
	Detail    string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing column(s) %s, input has %s",
			strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("column %s: %s", e.Column, e.Detail)
}

// Frame is a table of string cells with named columns. An empty cell is null.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// NewFrame creates an empty frame with the given columns.
func NewFrame(columns ...string) *Frame {
	return &Frame{Columns: columns}
}

// Append adds a row. Missing trailing cells are null.
func (f *Frame) Append(cells ...string) {
	f.Rows = append(f.Rows, cells)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Index returns the position of a column, or -1.
func (f *Frame) Index(column string) int {
	for i, c := range f.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Require checks that all columns are present.
func (f *Frame) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if f.Index(c) == -1 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing, Available: append([]string(nil), f.Columns...)}
	}
	return nil
}

// Cell returns the cell of row i in column j; cells beyond the end of a short row are null.
func (f *Frame) Cell(i, j int) string {
	row := f.Rows[i]
	if j < 0 || j >= len(row) {
		return ""
	}
	return row[j]
}

// Record is one diagnosis row. Empty ID or Code means null.
type Record struct {
	ID, Code string
	Age      int
	AgeValid bool
}

// Records extracts diagnosis records. ageColumn may be empty when ages are not needed. Null cells are kept; the
// scorers decide what to drop.
func (f *Frame) Records(idColumn, codeColumn, ageColumn string) ([]Record, error) {
	required := []string{idColumn, codeColumn}
	if ageColumn != "" {
		required = append(required, ageColumn)
	}
	if err := f.Require(required...); err != nil {
		return nil, err
	}
	idIdx, codeIdx, ageIdx := f.Index(idColumn), f.Index(codeColumn), -1
	if ageColumn != "" {
		ageIdx = f.Index(ageColumn)
	}
	records := make([]Record, len(f.Rows))
	for i := range f.Rows {
		r := Record{ID: f.Cell(i, idIdx), Code: f.Cell(i, codeIdx)}
		if ageIdx != -1 {
			if cell := strings.TrimSpace(f.Cell(i, ageIdx)); cell != "" {
				age, err := parseAge(cell)
				if err != nil {
					return nil, &SchemaError{Column: ageColumn, Detail: fmt.Sprintf("row %d: %v", i+1, err)}
				}
				r.Age, r.AgeValid = age, true
			}
		}
		records[i] = r
	}
	return records, nil
}

// parseAge accepts integers and integral floats such as "67.0", which dataframe exports produce for nullable ages.
func parseAge(cell string) (int, error) {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("age %q is not an integer", cell)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("age %q is out of range", cell)
	}
	return int(f), nil
}

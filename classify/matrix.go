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

package classify

import "comorbid/table"

// FlagMatrix holds one row of 0/1 category indicators per identifier.
type FlagMatrix struct {
	IDs        []string
	Categories []string
	Flags      [][]uint8 // Flags[row][category]
	rows       map[string]int
}

func newFlagMatrix(categories []string) *FlagMatrix {
	return &FlagMatrix{Categories: categories, rows: map[string]int{}}
}

// addID returns the row of an identifier, adding a zero row the first time it is seen.
func (m *FlagMatrix) addID(id string) int {
	if row, ok := m.rows[id]; ok {
		return row
	}
	row := len(m.IDs)
	m.rows[id] = row
	m.IDs = append(m.IDs, id)
	m.Flags = append(m.Flags, make([]uint8, len(m.Categories)))
	return row
}

// Len returns the number of identifiers.
func (m *FlagMatrix) Len() int {
	return len(m.IDs)
}

// Row returns the row of an identifier.
func (m *FlagMatrix) Row(id string) (int, bool) {
	row, ok := m.rows[id]
	return row, ok
}

// Has reports whether the identifier in row has category cat.
func (m *FlagMatrix) Has(row, cat int) bool {
	return m.Flags[row][cat] == 1
}

// Observed reports per category whether any identifier has it.
func (m *FlagMatrix) Observed() []bool {
	observed := make([]bool, len(m.Categories))
	for _, flags := range m.Flags {
		for j, f := range flags {
			if f == 1 {
				observed[j] = true
			}
		}
	}
	return observed
}

// ColumnPolicy decides which category columns a flag result carries.
type ColumnPolicy int

const (
	// AllColumns emits every category of the taxonomy, all-zero columns included.
	AllColumns ColumnPolicy = iota
	// ObservedColumns emits only the categories that at least one identifier has.
	ObservedColumns
)

func (p ColumnPolicy) String() string {
	switch p {
	case AllColumns:
		return "all"
	case ObservedColumns:
		return "observed"
	default:
		return "unknown"
	}
}

// columns returns the category positions kept under a policy.
func (m *FlagMatrix) columns(policy ColumnPolicy) []int {
	var keep []int
	observed := m.Observed()
	for j := range m.Categories {
		if policy == AllColumns || observed[j] {
			keep = append(keep, j)
		}
	}
	return keep
}

// Result converts the raw flags into a result with the category columns selected by policy followed by extra
// columns, which are left zero for the caller to fill.
func (m *FlagMatrix) Result(policy ColumnPolicy, extra ...string) *table.Result {
	keep := m.columns(policy)
	columns := make([]string, 0, len(keep)+len(extra))
	for _, j := range keep {
		columns = append(columns, m.Categories[j])
	}
	columns = append(columns, extra...)
	res := table.NewResult(append([]string(nil), m.IDs...), columns)
	parallelRange(m.Len(), func(low, high int) {
		for i := low; i < high; i++ {
			for k, j := range keep {
				res.Values[i][k] = float64(m.Flags[i][j])
			}
		}
	})
	return res
}

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

import "comorbid/taxonomy"

// ScoringFlags returns the flags used for scoring. With exclusions applied, the lesser category of each pair is
// cleared wherever the greater one is set. The matrix itself is never modified, so its raw flags keep both members.
func ScoringFlags(m *FlagMatrix, pairs []taxonomy.Pair, apply bool) [][]uint8 {
	scoring := make([][]uint8, m.Len())
	type position struct{ lesser, greater int }
	var positions []position
	if apply {
		for _, p := range pairs {
			lesser, greater := indexOf(m.Categories, p.Lesser), indexOf(m.Categories, p.Greater)
			if lesser >= 0 && greater >= 0 {
				positions = append(positions, position{lesser, greater})
			}
		}
	}
	parallelRange(m.Len(), func(low, high int) {
		for i := low; i < high; i++ {
			row := append([]uint8(nil), m.Flags[i]...)
			for _, p := range positions {
				if row[p.greater] == 1 {
					row[p.lesser] = 0
				}
			}
			scoring[i] = row
		}
	})
	return scoring
}

func indexOf(list []string, s string) int {
	for i, x := range list {
		if x == s {
			return i
		}
	}
	return -1
}

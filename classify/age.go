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

import (
	"fmt"
	"math"

	"comorbid/table"
	"comorbid/taxonomy"
	"comorbid/utils"
)

// DecadeScore is the age contribution to the Charlson index: one point per decade above 40, capped at 4.
func DecadeScore(age int) int {
	return utils.ClampInt(utils.FloorDiv(age-40, 10), 0, 4)
}

// Survival10yr estimates the 10-year survival probability for an age-adjusted Charlson score x.
func Survival10yr(x float64) float64 {
	return math.Pow(0.983, math.Exp(0.9*x))
}

// AgePolicy decides how conflicting ages of one identifier are resolved.
type AgePolicy int

const (
	// AgeMax takes the largest non-null age of an identifier.
	AgeMax AgePolicy = iota
	// AgeStrict rejects identifiers with more than one distinct age.
	AgeStrict
)

func (p AgePolicy) String() string {
	switch p {
	case AgeMax:
		return "max"
	case AgeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// resolveAges returns one age per matrix row, also taking ages from rows with a null code; rows without any non-null
// age are marked invalid.
func resolveAges(m *FlagMatrix, records []table.Record, policy AgePolicy) (ages []int, valid []bool, err error) {
	ages = make([]int, m.Len())
	valid = make([]bool, m.Len())
	conflicts := 0
	for _, r := range records {
		if !r.AgeValid {
			continue
		}
		row, ok := m.Row(r.ID)
		if !ok {
			continue
		}
		switch {
		case !valid[row]:
			ages[row], valid[row] = r.Age, true
		case ages[row] != r.Age:
			if policy == AgeStrict {
				return nil, nil, &taxonomy.DataIntegrityError{Category: "age",
					Detail: fmt.Sprintf("identifier %s has conflicting ages %d and %d", r.ID, ages[row], r.Age)}
			}
			conflicts++
			ages[row] = utils.MaxInt(ages[row], r.Age)
		}
	}
	if conflicts > 0 {
		logger.Printf("classify: %d conflicting age values resolved by taking the maximum", conflicts)
	}
	return ages, valid, nil
}

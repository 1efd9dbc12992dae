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

package cohort

import (
	"fmt"
	"math"
	"sort"
)

// Summary describes the distribution of one score column.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64 // population standard deviation
	Median float64
	Zero   int // identifiers scoring 0
}

// Summarize computes the summary of a score column. NaN values are skipped.
func Summarize(values []float64) Summary {
	var sorted []float64
	zero := 0
	sum := 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sorted = append(sorted, v)
		sum += v
		if v == 0 {
			zero++
		}
	}
	s := Summary{N: len(sorted), Zero: zero}
	if s.N == 0 {
		return s
	}
	s.Mean = sum / float64(s.N)
	stdDev := 0.0
	for _, v := range sorted {
		stdDev = stdDev + ((s.Mean - v) * (s.Mean - v))
	}
	s.StdDev = math.Sqrt(stdDev / float64(s.N))
	sort.Float64s(sorted)
	if mid := s.N / 2; s.N%2 == 1 {
		s.Median = sorted[mid]
	} else {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.3f sd=%.3f median=%.3f zero=%d", s.N, s.Mean, s.StdDev, s.Median, s.Zero)
}

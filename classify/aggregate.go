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

// weightVector lines the weights up with the category columns. A category without a weight is a mismatch between
// the mapping and weight tables.
func weightVector(categories []string, weights taxonomy.WeightTable, key, weighting string) ([]float64, error) {
	vector := make([]float64, len(categories))
	for j, c := range categories {
		w, ok := weights[c]
		if !ok {
			return nil, &taxonomy.DataIntegrityError{Key: key, Weighting: weighting, Category: c, Detail: "no weight"}
		}
		vector[j] = w
	}
	return vector, nil
}

// Aggregate sums flag × weight per row and floors the sum at 0: negative weights can push a sum below zero, which
// means no excess risk.
func Aggregate(flags [][]uint8, categories []string, weights taxonomy.WeightTable, key, weighting string) ([]float64, error) {
	vector, err := weightVector(categories, weights, key, weighting)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(flags))
	parallelRange(len(flags), func(low, high int) {
		for i := low; i < high; i++ {
			sum := 0.0
			for j, f := range flags[i] {
				if f == 1 {
					sum += vector[j]
				}
			}
			if sum < 0 {
				sum = 0
			}
			scores[i] = sum
		}
	})
	return scores, nil
}

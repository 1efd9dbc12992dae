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

package taxonomy

// Pair is an exclusion pair: when an identifier has Greater, Lesser does not contribute to its score.
type Pair struct {
	Lesser, Greater string
}

var exclusions = map[string][]Pair{
	Charlson: {
		{Lesser: "mld", Greater: "msld"},
		{Lesser: "diab", Greater: "diabwc"},
		{Lesser: "canc", Greater: "metacanc"},
	},
	Elixhauser: {
		{Lesser: "hypunc", Greater: "hypc"},
		{Lesser: "diabunc", Greater: "diabc"},
		{Lesser: "solidtum", Greater: "metacanc"},
	},
}

// Exclusions returns the fixed exclusion pairs of a score family. Families without pairs return nil.
func Exclusions(score string) []Pair {
	return exclusions[score]
}

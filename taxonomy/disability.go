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

// disabilityICD10 is the impairment and disability taxonomy. It is never weighted.
func disabilityICD10() []Category {
	return []Category{
		{"learning_disability", codes(span("F", 70, 79, 2), "Q90", "Q91", "Q93", "Q992")},
		{"autism", codes("F84")},
		{"visual_impairment", codes("H54", "H471", "H472")},
		{"hearing_impairment", codes("H90", "H91", "Z974", "Z461")},
		{"speech_impairment", codes("F80", "R47")},
		{"physical_disability", codes("G80", "G82", "Z993", "Z89", span("Q", 71, 73, 2))},
	}
}

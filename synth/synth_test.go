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

package synth

import (
	"testing"

	"comorbid/classify"
	"comorbid/taxonomy"
)

func TestPopulationReachesMaximum(t *testing.T) {
	tests := []struct {
		variant, weighting string
		want               float64
	}{
		{"shmi", taxonomy.WeightSHMI, 110},
		{"quan", taxonomy.WeightCharlson, 29},
		{"quan", taxonomy.WeightQuan, 24},
	}
	for _, test := range tests {
		ns, err := taxonomy.Default().Namespace(taxonomy.Charlson, taxonomy.ICD10, test.variant)
		if err != nil {
			t.Fatal(err)
		}
		for run := uint32(1); run <= 5; run++ {
			frame := Population(ns, run)
			p := classify.DefaultParams()
			p.Variant, p.Weighting, p.AgeColumn = test.variant, test.weighting, "age"
			res, err := classify.Comorbidity(frame, p)
			if err != nil {
				t.Fatal(err)
			}
			scores, _ := res.Column(classify.ScoreColumn)
			for i, s := range scores {
				if s != test.want {
					t.Fatalf("%s/%s seed %d: patient %s scores %v, want %v", test.variant, test.weighting, run,
						res.IDs[i], s, test.want)
				}
			}
		}
	}
}

func TestPopulationShape(t *testing.T) {
	ns, _ := taxonomy.Default().Namespace(taxonomy.Charlson, taxonomy.ICD10, "shmi")
	frame := Population(ns, 42)
	largest := 0
	for _, c := range ns.Categories {
		if len(c.Prefixes) > largest {
			largest = len(c.Prefixes)
		}
	}
	if frame.Len() != largest*len(ns.Categories) {
		t.Errorf("rows = %d, want %d", frame.Len(), largest*len(ns.Categories))
	}
	records, err := frame.Records("id", "code", "age")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if !r.AgeValid || r.Age < 0 || r.Age > 100 {
			t.Fatalf("age out of range: %+v", r)
		}
	}
	again := Population(ns, 42)
	for i := range frame.Rows {
		if frame.Rows[i][1] != again.Rows[i][1] {
			t.Fatal("the same seed produced a different population")
		}
	}
}

func TestCodes(t *testing.T) {
	ns, _ := taxonomy.Default().Namespace(taxonomy.Elixhauser, taxonomy.ICD10, "quan")
	frame := Codes(ns, 50, 1000, 7)
	if frame.Len() != 1000 {
		t.Fatalf("rows = %d, want 1000", frame.Len())
	}
	p := classify.DefaultParams()
	p.Score, p.Weighting = taxonomy.Elixhauser, ""
	res, err := classify.Comorbidity(frame, p)
	if err != nil {
		t.Fatal(err)
	}
	if res.Len() == 0 || res.Len() > 50 {
		t.Errorf("identifiers = %d, want between 1 and 50", res.Len())
	}
}

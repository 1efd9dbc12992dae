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
	"math"
	"testing"

	"comorbid/table"
)

func testFrame() *table.Frame {
	frame := table.NewFrame("id", "code", "age")
	frame.Append("1", "I21", "80")
	frame.Append("2", "C18", "60")
	frame.Append("1", "F00", "81")
	frame.Append("3", "J60", "")
	frame.Append("", "I50", "90")
	return frame
}

func TestPatients(t *testing.T) {
	records, err := testFrame().Records("id", "code", "age")
	if err != nil {
		t.Fatal(err)
	}
	patients := Patients(records)
	if len(patients) != 3 {
		t.Fatalf("got %d patients, want 3", len(patients))
	}
	if p := patients[0]; p.ID != "1" || p.Age != 81 || len(p.Codes) != 2 {
		t.Errorf("patient 1 = %+v", p)
	}
	if patients[2].AgeValid {
		t.Error("patient 3 has no age")
	}
}

func TestApplyPatientFilters(t *testing.T) {
	frame := testFrame()
	tests := []struct {
		name    string
		filters []PatientFilter
		rows    int
		kept    int
	}{
		{"identity", []PatientFilter{IdentityFilter()}, 4, 3},
		{"age75+", []PatientFilter{AgeAtLeast(75)}, 2, 1},
		{"age75-", []PatientFilter{AgeBelow(75)}, 1, 1},
		{"cancer", []PatientFilter{HasCodePrefix("C")}, 1, 1},
		{"combined", []PatientFilter{AgeAtLeast(75), HasCodePrefix("C")}, 0, 0},
	}
	for _, test := range tests {
		result, kept, err := ApplyPatientFilters(test.filters, frame, "id", "code", "age")
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if result.Len() != test.rows || kept != test.kept {
			t.Errorf("%s: %d rows, %d patients, want %d, %d", test.name, result.Len(), kept, test.rows, test.kept)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{0, 2, 4, math.NaN(), 0, 4})
	if s.N != 5 || s.Zero != 2 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.Mean-2) > 1e-12 || math.Abs(s.StdDev-math.Sqrt(3.2)) > 1e-12 || s.Median != 2 {
		t.Errorf("summary = %+v", s)
	}
	if even := Summarize([]float64{1, 2, 3, 4}); even.Median != 2.5 {
		t.Errorf("median = %v, want 2.5", even.Median)
	}
	if empty := Summarize(nil); empty.N != 0 || empty.Mean != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

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
	"testing"

	"comorbid/table"
	"comorbid/taxonomy"
)

func disabilityFrame() *table.Frame {
	frame := table.NewFrame("id", "code")
	frame.Append("1", "F840")
	frame.Append("1", "F841")
	frame.Append("2", "I21")
	frame.Append("3", "H544")
	return frame
}

func TestDisabilityAllColumns(t *testing.T) {
	res, err := Disability(disabilityFrame(), "id", "code")
	if err != nil {
		t.Fatal(err)
	}
	ns := taxonomy.Default().DisabilityNamespace()
	if len(res.Columns) != len(ns.Categories) {
		t.Fatalf("columns = %v, want all %d categories", res.Columns, len(ns.Categories))
	}
	row, _ := res.Row("1")
	if row["autism"] != 1 || row["visual_impairment"] != 0 {
		t.Errorf("row 1 = %v", row)
	}
	row, ok := res.Row("2")
	if !ok {
		t.Fatal("identifier without impairments missing")
	}
	for c, v := range row {
		if v != 0 {
			t.Errorf("row 2 %s = %v, want 0", c, v)
		}
	}
	if _, ok := res.Column(ScoreColumn); ok {
		t.Error("disability results are not scored")
	}
}

func TestDisabilityObservedColumns(t *testing.T) {
	res, err := Disability(disabilityFrame(), "id", "code", WithColumns(ObservedColumns))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Columns) != 2 || res.Columns[0] != "autism" || res.Columns[1] != "visual_impairment" {
		t.Errorf("columns = %v, want [autism visual_impairment]", res.Columns)
	}
	if res.Len() != 3 {
		t.Errorf("IDs = %v, want three identifiers", res.IDs)
	}
}

func TestDisabilityNormalizedCodes(t *testing.T) {
	frame := table.NewFrame("id", "code")
	frame.Append("1", "f84.0")
	res, err := Disability(frame, "id", "code", WithNormalizedCodes())
	if err != nil {
		t.Fatal(err)
	}
	if row, _ := res.Row("1"); row["autism"] != 1 {
		t.Errorf("row = %v", row)
	}
}

func TestDisabilityCustomRegistry(t *testing.T) {
	if _, err := Disability(disabilityFrame(), "id", "code", WithRegistry(taxonomy.NewRegistry())); err == nil {
		t.Error("expected an error for a registry without a disability taxonomy")
	}
}

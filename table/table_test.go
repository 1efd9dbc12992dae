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

package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSVFrom(t *testing.T) {
	in := "id,code,age\n1,I21,67\n2,,\n3,C77\n"
	frame, err := ReadCSVFrom(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if frame.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", frame.Len())
	}
	if got := frame.Cell(2, 2); got != "" {
		t.Errorf("short row cell = %q, want null", got)
	}
	records, err := frame.Records("id", "code", "age")
	if err != nil {
		t.Fatal(err)
	}
	if !records[0].AgeValid || records[0].Age != 67 {
		t.Errorf("records[0] = %+v, want age 67", records[0])
	}
	if records[1].Code != "" || records[1].AgeValid {
		t.Errorf("records[1] = %+v, want null code and age", records[1])
	}
}

func TestReadCSVFromEmpty(t *testing.T) {
	if _, err := ReadCSVFrom(strings.NewReader("")); err == nil {
		t.Error("expected an error for input without a header")
	}
}

func TestRecordsSchemaErrors(t *testing.T) {
	frame := NewFrame("id", "icd")
	frame.Append("1", "I21")
	_, err := frame.Records("id", "code", "")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "code" {
		t.Errorf("Missing = %v, want [code]", schemaErr.Missing)
	}

	frame = NewFrame("id", "code", "age")
	frame.Append("1", "I21", "67.0")
	frame.Append("2", "I21", "sixty")
	_, err = frame.Records("id", "code", "age")
	if !errors.As(err, &schemaErr) || schemaErr.Column != "age" {
		t.Errorf("expected SchemaError on age, got %v", err)
	}
}

func TestParseAge(t *testing.T) {
	for _, cell := range []string{"67", "67.0", "-3"} {
		if _, err := parseAge(cell); err != nil {
			t.Errorf("parseAge(%q) error: %v", cell, err)
		}
	}
	for _, cell := range []string{"67.5", "NaN", "x", "1e20", "-3000000000"} {
		if _, err := parseAge(cell); err == nil {
			t.Errorf("parseAge(%q) accepted", cell)
		}
	}
}

func testResult() *Result {
	res := NewResult([]string{"a", "b"}, []string{"ami", "comorbidity_score"})
	res.Values[0][0], res.Values[0][1] = 1, 5
	res.Values[1][1] = 2.5
	res.Meta[MetaScore] = "charlson"
	res.Meta[MetaApplyExclusions] = "true"
	return res
}

func TestWriteCSVTo(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSVTo(&buf, testResult()); err != nil {
		t.Fatal(err)
	}
	want := "id,ami,comorbidity_score\na,1,5\nb,0,2.5\n"
	if buf.String() != want {
		t.Errorf("WriteCSVTo =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestResultAccessors(t *testing.T) {
	res := testResult()
	col, ok := res.Column("comorbidity_score")
	if !ok || col[0] != 5 || col[1] != 2.5 {
		t.Errorf("Column = %v, %v", col, ok)
	}
	if _, ok := res.Column("chf"); ok {
		t.Error("Column(chf) should not exist")
	}
	row, ok := res.Row("a")
	if !ok || row["ami"] != 1 {
		t.Errorf("Row(a) = %v, %v", row, ok)
	}
	if got := strings.Join(res.MetaKeys(), ","); got != "apply_exclusions,score" {
		t.Errorf("MetaKeys = %s", got)
	}
}

func TestSaveCSVWithMeta(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := Save(path, testResult()); err != nil {
		t.Fatal(err)
	}
	meta, err := ReadMeta(path + MetaSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if meta[MetaScore] != "charlson" || meta[MetaApplyExclusions] != "true" {
		t.Errorf("sidecar metadata = %v", meta)
	}
	frame, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Len() != 2 || frame.Columns[0] != IDColumn {
		t.Errorf("reread frame = %+v", frame)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.parquet")
	res := testResult()
	if err := Save(path, res); err != nil {
		t.Fatal(err)
	}
	frame, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", frame.Len())
	}
	idIdx, scoreIdx := frame.Index(IDColumn), frame.Index("comorbidity_score")
	if idIdx == -1 || scoreIdx == -1 {
		t.Fatalf("columns = %v", frame.Columns)
	}
	if frame.Cell(0, idIdx) != "a" || frame.Cell(1, scoreIdx) != "2.5" {
		t.Errorf("rows = %v", frame.Rows)
	}
	meta, err := ReadParquetMeta(path)
	if err != nil {
		t.Fatal(err)
	}
	if meta[MetaScore] != "charlson" {
		t.Errorf("parquet metadata = %v", meta)
	}
}

func TestFrameParquetNulls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.parquet")
	frame := NewFrame("id", "code", "age")
	frame.Append("1", "I21", "70")
	frame.Append("2", "", "")
	if err := WriteFrameParquet(path, frame); err != nil {
		t.Fatal(err)
	}
	back, err := ReadParquet(path)
	if err != nil {
		t.Fatal(err)
	}
	records, err := back.Records("id", "code", "age")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].Code != "I21" || records[0].Age != 70 {
		t.Errorf("records = %+v", records)
	}
	if records[1].Code != "" || records[1].AgeValid {
		t.Errorf("null cells not preserved: %+v", records[1])
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open("scores.xlsx"); err == nil {
		t.Error("expected an error for .xlsx input")
	}
	if err := Save(filepath.Join(os.TempDir(), "scores.json"), testResult()); err == nil {
		t.Error("expected an error for .json output")
	}
}

func TestSaveFrameCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.csv")
	frame := NewFrame("id", "code", "age")
	frame.Append("1", "I21", "70")
	frame.Append("2", "", "")
	if err := SaveFrame(path, frame); err != nil {
		t.Fatal(err)
	}
	back, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != 2 || back.Cell(0, 1) != "I21" || back.Cell(1, 1) != "" {
		t.Errorf("rows = %v", back.Rows)
	}
}

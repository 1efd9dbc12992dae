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

import (
	"errors"
	"strings"
	"testing"
)

func TestSpan(t *testing.T) {
	got := span("C", 0, 3, 2)
	want := []string{"C00", "C01", "C02", "C03"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("span = %v, want %v", got, want)
	}
	if got := span("", 42, 44, 3); got[0] != "042" || got[2] != "044" {
		t.Errorf("span ICD-9 = %v, want leading zeros", got)
	}
}

func TestBuiltinCombinations(t *testing.T) {
	r, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	var keys []string
	for _, c := range r.Combinations() {
		keys = append(keys, c.Key())
	}
	want := "charlson_icd10_quan,charlson_icd10_shmi,charlson_icd9_quan,elixhauser_icd10_quan,elixhauser_icd9_quan"
	if got := strings.Join(keys, ","); got != want {
		t.Errorf("Combinations() = %s, want %s", got, want)
	}
	if got := strings.Join(r.WeightingVariants("charlson_icd10_quan"), ","); got != "charlson,quan,shmi" {
		t.Errorf("WeightingVariants(charlson) = %s", got)
	}
	if got := strings.Join(r.WeightingVariants("elixhauser_icd9_quan"), ","); got != "vw" {
		t.Errorf("WeightingVariants(elixhauser) = %s", got)
	}
	if len(r.HFRS()) != 109 {
		t.Errorf("HFRS table has %d entries, want 109", len(r.HFRS()))
	}
	for k := range r.HFRS() {
		if len(k) != 3 || strings.ToUpper(k) != k {
			t.Errorf("HFRS key %q is not a three-character upper-case category", k)
		}
	}
	if r.DisabilityNamespace() == nil || len(r.DisabilityNamespace().Categories) != 6 {
		t.Error("expected the six disability categories")
	}
}

func TestNamespaceMatch(t *testing.T) {
	ns, err := Default().Namespace(Charlson, ICD10, "quan")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		code, want string
	}{
		{"I252", "ami"},
		{"I2520", "ami"},
		{"E117", "diabwc"},
		{"E119", "diab"},
		{"C79", "metacanc"},
		{"C181", "canc"},
		{"G820", "hp"},
		{"K767", "msld"},
		{"K74", "mld"},
		{"B20", "aids"},
		{"N18", "rend"},
		{"X999", ""},
		{"I2", ""},
		{"", ""},
	}
	for _, tt := range tests {
		i, ok := ns.Match(tt.code)
		got := ""
		if ok {
			got = ns.Categories[i].Name
		}
		if got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLongestPrefixWins(t *testing.T) {
	ns, err := Default().Namespace(Charlson, ICD9, "quan")
	if err != nil {
		t.Fatal(err)
	}
	for code, want := range map[string]string{"4373": "pvd", "43731": "pvd", "4370": "cevd", "40403": "chf"} {
		i, ok := ns.Match(code)
		if !ok {
			t.Errorf("Match(%s) found nothing, want %s", code, want)
			continue
		}
		if got := ns.Categories[i].Name; got != want {
			t.Errorf("Match(%s) = %s, want %s", code, got, want)
		}
	}
}

func TestAmbiguities(t *testing.T) {
	for _, c := range []Combination{{Charlson, ICD10, "quan"}, {Charlson, ICD10, "shmi"}} {
		ns, err := Default().Namespace(c.Score, c.CodingSystem, c.Variant)
		if err != nil {
			t.Fatal(err)
		}
		if a := ns.Ambiguities(); len(a) != 0 {
			t.Errorf("%s: unexpected ambiguities %v", c.Key(), a)
		}
	}
	ns, err := Default().Namespace(Charlson, ICD9, "quan")
	if err != nil {
		t.Fatal(err)
	}
	var duplicate, nested bool
	for _, a := range ns.Ambiguities() {
		if a.Prefix == "40403" && !a.Nested && a.Winner == "chf" && a.Loser == "rend" {
			duplicate = true
		}
		if a.Prefix == "4373" && a.Nested && a.Winner == "pvd" && a.Loser == "cevd" {
			nested = true
		}
	}
	if !duplicate || !nested {
		t.Errorf("expected duplicate 40403 and nested 4373 in %v", ns.Ambiguities())
	}
}

func TestUnknownNamespace(t *testing.T) {
	_, err := Default().Namespace(Charlson, ICD10, "swedish")
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cerr.Key != "charlson_icd10_swedish" {
		t.Errorf("Key = %s", cerr.Key)
	}
	if !strings.Contains(cerr.Error(), "(charlson, icd10, quan)") {
		t.Errorf("error should enumerate valid combinations: %s", cerr.Error())
	}
	if _, err := Default().Weights("charlson_icd10_quan", "vw"); !errors.As(err, &cerr) {
		t.Errorf("expected ConfigurationError for unknown weighting, got %v", err)
	}
}

func TestRegisterWeightsValidation(t *testing.T) {
	r := NewRegistry()
	ns, err := NewNamespace("custom", ICD10, "test", []Category{{"a", []string{"A1"}}, {"b", []string{"B1"}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Register(ns); err != nil {
		t.Fatal(err)
	}
	var derr *DataIntegrityError
	if err := r.RegisterWeights(ns.Key(), "w", map[string]float64{"a": 1}); !errors.As(err, &derr) || derr.Category != "b" {
		t.Errorf("expected missing weight for b, got %v", err)
	}
	if err := r.RegisterWeights(ns.Key(), "w", map[string]float64{"a": 1, "b": 2, "c": 3}); !errors.As(err, &derr) {
		t.Errorf("expected DataIntegrityError for extra category, got %v", err)
	}
	if err := r.RegisterWeights(ns.Key(), "w", map[string]float64{"a": 1, "b": -2}); err != nil {
		t.Errorf("RegisterWeights() error: %v", err)
	}
	var cerr *ConfigurationError
	if err := r.RegisterWeights("nope", "w", nil); !errors.As(err, &cerr) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestRegisterRequiresExclusionCategories(t *testing.T) {
	ns, err := NewNamespace(Charlson, ICD10, "partial", []Category{{"diab", []string{"E10"}}})
	if err != nil {
		t.Fatal(err)
	}
	var derr *DataIntegrityError
	if err := NewRegistry().Register(ns); !errors.As(err, &derr) {
		t.Errorf("expected DataIntegrityError, got %v", err)
	}
}

func TestNewNamespaceRejectsDuplicates(t *testing.T) {
	if _, err := NewNamespace("x", ICD10, "v", []Category{{"a", nil}, {"a", nil}}); err == nil {
		t.Error("expected error for duplicate category")
	}
	if _, err := NewNamespace("", ICD10, "v", nil); err == nil {
		t.Error("expected error for empty score")
	}
}

const customTables = `
[[namespace]]
score = "custom"
coding_system = "icd10"
variant = "local"

  [[namespace.category]]
  name = "heart"
  prefixes = ["I21", "I50"]

  [[namespace.category]]
  name = "lung"
  prefixes = ["J44"]

  [namespace.weights.flat]
  heart = 1
  lung = 1

[[namespace]]
score = "charlson"
coding_system = "icd10"
variant = "quan"

  [namespace.weights.unit]
  ami = 1
  chf = 1
  pvd = 1
  cevd = 1
  dementia = 1
  copd = 1
  rheumd = 1
  pud = 1
  mld = 1
  diab = 1
  diabwc = 1
  hp = 1
  rend = 1
  canc = 1
  msld = 1
  metacanc = 1
  aids = 1

[hfrs]
f00 = 7.1
G81 = 4.4

[[disability]]
name = "autism"
prefixes = ["F84"]
`

func TestLoadTOML(t *testing.T) {
	r, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.LoadTOML(strings.NewReader(customTables)); err != nil {
		t.Fatalf("LoadTOML() error: %v", err)
	}
	ns, err := r.Namespace("custom", ICD10, "local")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(ns.Names(), ","); got != "heart,lung" {
		t.Errorf("Names() = %s", got)
	}
	if w, err := r.Weights(ns.Key(), "flat"); err != nil || w["lung"] != 1 {
		t.Errorf("Weights(flat) = %v, %v", w, err)
	}
	if _, err := r.Weights("charlson_icd10_quan", "unit"); err != nil {
		t.Errorf("unit weighting on built-in namespace: %v", err)
	}
	if _, err := r.Weights("charlson_icd10_quan", WeightCharlson); err != nil {
		t.Errorf("built-in weights lost: %v", err)
	}
	if w, ok := r.HFRS().Weight("F00"); !ok || w != 7.1 || len(r.HFRS()) != 2 {
		t.Errorf("HFRS() = %v", r.HFRS())
	}
	if got := r.DisabilityNamespace().Names(); len(got) != 1 || got[0] != "autism" {
		t.Errorf("disability = %v", got)
	}
}

func TestLoadTOMLRejectsBadHFRSKey(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadTOML(strings.NewReader("[hfrs]\nF0 = 1.0\n")); err == nil {
		t.Error("expected error for two-character HFRS key")
	}
}

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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// tablesFile is the TOML layout for custom lookup tables:
//
//	[[namespace]]
//	score = "charlson"
//	coding_system = "icd10"
//	variant = "local"
//	  [[namespace.category]]
//	  name = "ami"
//	  prefixes = ["I21", "I22", "I252"]
//	  [namespace.weights.charlson]
//	  ami = 1
//
//	[hfrs]
//	F00 = 7.1
//
//	[[disability]]
//	name = "autism"
//	prefixes = ["F84"]
//
// A namespace entry without categories only adds weighting variants to an already registered namespace.
type tablesFile struct {
	Namespaces []namespaceFile    `toml:"namespace"`
	HFRS       map[string]float64 `toml:"hfrs"`
	Disability []categoryFile     `toml:"disability"`
}

type namespaceFile struct {
	Score        string                        `toml:"score"`
	CodingSystem string                        `toml:"coding_system"`
	Variant      string                        `toml:"variant"`
	Categories   []categoryFile                `toml:"category"`
	Weights      map[string]map[string]float64 `toml:"weights"`
}

type categoryFile struct {
	Name     string   `toml:"name"`
	Prefixes []string `toml:"prefixes"`
}

// LoadTOMLFile registers the tables of a TOML file, see LoadTOML.
func (r *Registry) LoadTOMLFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tables: %w", err)
	}
	defer f.Close()
	if err := r.LoadTOML(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadTOML decodes custom namespaces, weighting variants, HFRS weights and a disability taxonomy and registers them.
// Registered tables replace built-in tables with the same key.
func (r *Registry) LoadTOML(in io.Reader) error {
	var file tablesFile
	md, err := toml.NewDecoder(in).Decode(&file)
	if err != nil {
		return fmt.Errorf("decode tables: %w", err)
	}
	for _, key := range md.Undecoded() {
		logger.Printf("taxonomy: ignoring unknown key %s", key)
	}
	for _, nf := range file.Namespaces {
		key := Key(nf.Score, nf.CodingSystem, nf.Variant)
		if len(nf.Categories) > 0 {
			ns, err := NewNamespace(nf.Score, nf.CodingSystem, nf.Variant, toCategories(nf.Categories))
			if err != nil {
				return err
			}
			if err := r.Register(ns); err != nil {
				return err
			}
		}
		for weighting, w := range nf.Weights {
			if err := r.RegisterWeights(key, weighting, w); err != nil {
				return err
			}
		}
	}
	if len(file.HFRS) > 0 {
		t := make(HFRSTable, len(file.HFRS))
		for k, w := range file.HFRS {
			if len(k) != 3 {
				return fmt.Errorf("hfrs key %q is not a three-character category", k)
			}
			t[strings.ToUpper(k)] = w
		}
		r.SetHFRS(t)
	}
	if len(file.Disability) > 0 {
		ns, err := NewNamespace(Disability, ICD10, "custom", toCategories(file.Disability))
		if err != nil {
			return err
		}
		r.SetDisability(ns)
	}
	return nil
}

func toCategories(in []categoryFile) []Category {
	result := make([]Category, len(in))
	for i, c := range in {
		result[i] = Category{Name: c.Name, Prefixes: c.Prefixes}
	}
	return result
}

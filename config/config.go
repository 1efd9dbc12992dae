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

// Package config holds the settings of a scoring run. Settings come from command-line flags and an optional TOML
// run file; flags given explicitly override the file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"comorbid/classify"
	"comorbid/taxonomy"
	"comorbid/utils"
)

// Modes of the command-line tool.
const (
	ModeComorbidity  = "comorbidity"
	ModeHFRS         = "hfrs"
	ModeDisability   = "disability"
	ModeCombinations = "combinations"
	ModeSynth        = "synth"
)

// Modes lists the valid modes.
var Modes = []string{ModeComorbidity, ModeHFRS, ModeDisability, ModeCombinations, ModeSynth}

// Run holds the settings of one invocation.
type Run struct {
	Mode   string `toml:"mode"`
	Input  string `toml:"input"`  // file path, or a query when Postgres is set
	Output string `toml:"output"` // file path, or a table name when Postgres is set

	IDColumn   string `toml:"id_column"`
	CodeColumn string `toml:"code_column"`
	AgeColumn  string `toml:"age_column"`

	Score           string `toml:"score"`
	CodingSystem    string `toml:"coding_system"`
	Variant         string `toml:"variant"`
	Weighting       string `toml:"weighting"`
	ApplyExclusions bool   `toml:"apply_exclusions"`
	NormalizeCodes  bool   `toml:"normalize_codes"`
	AgePolicy       string `toml:"age_policy"` // max or strict
	Columns         string `toml:"columns"`    // all or observed, disability only

	Tables        string `toml:"tables"` // TOML file with extra lookup tables
	PFilters      string `toml:"pfilters"`
	Postgres      string `toml:"postgres"` // connection string
	NrOfThreads   int    `toml:"threads"`
	HFRSCacheSize int    `toml:"hfrs_cache_size"`
	Seed          uint   `toml:"seed"` // synth mode, 0 is random
}

// Default returns the settings used when neither flags nor a run file say otherwise.
func Default() *Run {
	return &Run{
		Mode:            ModeComorbidity,
		IDColumn:        "id",
		CodeColumn:      "code",
		Score:           taxonomy.Charlson,
		CodingSystem:    taxonomy.ICD10,
		Variant:         "quan",
		ApplyExclusions: true,
		AgePolicy:       classify.AgeMax.String(),
		Columns:         classify.AllColumns.String(),
		PFilters:        "id",
		HFRSCacheSize:   classify.DefaultHFRSCacheSize,
	}
}

// LoadFile decodes a TOML run file into r. Keys absent from the file keep their current value.
func (r *Run) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, r)
	if err != nil {
		return fmt.Errorf("config: failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks the settings that do not depend on lookup tables.
func (r *Run) Validate() error {
	if !utils.MemberString(r.Mode, Modes) {
		return fmt.Errorf("config: unknown mode %q, valid modes: %s", r.Mode, strings.Join(Modes, ", "))
	}
	if r.Mode != ModeCombinations && r.Output == "" {
		return fmt.Errorf("config: mode %s needs an output", r.Mode)
	}
	if r.Mode != ModeCombinations && r.Mode != ModeSynth && r.Input == "" {
		return fmt.Errorf("config: mode %s needs an input", r.Mode)
	}
	if _, err := ParseAgePolicy(r.AgePolicy); err != nil {
		return err
	}
	if _, err := ParseColumnPolicy(r.Columns); err != nil {
		return err
	}
	if r.NrOfThreads < 0 {
		return fmt.Errorf("config: invalid number of threads %d", r.NrOfThreads)
	}
	return nil
}

// Params converts the settings into comorbidity parameters scored against reg.
func (r *Run) Params(reg *taxonomy.Registry) (classify.Params, error) {
	agePolicy, err := ParseAgePolicy(r.AgePolicy)
	if err != nil {
		return classify.Params{}, err
	}
	return classify.Params{
		IDColumn:        r.IDColumn,
		CodeColumn:      r.CodeColumn,
		AgeColumn:       r.AgeColumn,
		Score:           r.Score,
		CodingSystem:    r.CodingSystem,
		Variant:         r.Variant,
		Weighting:       r.Weighting,
		ApplyExclusions: r.ApplyExclusions,
		Registry:        reg,
		AgePolicy:       agePolicy,
		NormalizeCodes:  r.NormalizeCodes,
	}, nil
}

// ParseAgePolicy parses "max" or "strict".
func ParseAgePolicy(s string) (classify.AgePolicy, error) {
	for _, p := range []classify.AgePolicy{classify.AgeMax, classify.AgeStrict} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("config: unknown age policy %q, valid policies: max, strict", s)
}

// ParseColumnPolicy parses "all" or "observed".
func ParseColumnPolicy(s string) (classify.ColumnPolicy, error) {
	for _, p := range []classify.ColumnPolicy{classify.AllColumns, classify.ObservedColumns} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("config: unknown column policy %q, valid policies: all, observed", s)
}

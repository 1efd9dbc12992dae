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

// Package taxonomy holds the lookup data for comorbidity scoring: per (score, coding system, variant) category
// mapping tables, per (namespace, weighting variant) weight tables, the HFRS prefix weights and the disability
// taxonomy. Tables are immutable once registered and are shared process-wide through a Registry.
package taxonomy

import (
	"fmt"
	"log"
	"strings"
)

// Score families.
const (
	Charlson   = "charlson"
	Elixhauser = "elixhauser"
	Disability = "disability"
)

// Coding systems.
const (
	ICD9  = "icd9"
	ICD10 = "icd10"
)

// Weighting variants shipped with the package.
const (
	WeightCharlson = "charlson" // Charlson et al. 1987
	WeightQuan     = "quan"     // Quan et al. 2011 re-weighting
	WeightSHMI     = "shmi"     // NHS Summary Hospital-level Mortality Indicator
	WeightVW       = "vw"       // van Walraven et al. 2009
)

var logger = log.Default()

// SetLogger replaces the logger used for data-quality warnings.
func SetLogger(l *log.Logger) {
	logger = l
}

// Key builds the namespace key for a score, coding system and variant, e.g. "charlson_icd10_quan".
func Key(score, codingSystem, variant string) string {
	return score + "_" + codingSystem + "_" + variant
}

// Combination is a valid (score, coding system, variant) triple.
type Combination struct {
	Score, CodingSystem, Variant string
}

// Key returns the namespace key of the combination.
func (c Combination) Key() string {
	return Key(c.Score, c.CodingSystem, c.Variant)
}

func (c Combination) String() string {
	return fmt.Sprintf("(%s, %s, %s)", c.Score, c.CodingSystem, c.Variant)
}

// Category is a named taxonomy entry with the code prefixes that map onto it.
type Category struct {
	Name     string
	Prefixes []string
}

// Namespace is a category mapping table for one (score, coding system, variant) combination. The order of
// Categories is the column order of every flag matrix built from the namespace.
type Namespace struct {
	Combination
	Categories []Category

	index       *trie
	positions   map[string]int // category name -> column
	ambiguities []Ambiguity
}

// NewNamespace builds a namespace and its prefix index. Prefix collisions between categories are not an error:
// they are recorded as ambiguities and resolved deterministically (see Match).
func NewNamespace(score, codingSystem, variant string, categories []Category) (*Namespace, error) {
	if score == "" || codingSystem == "" || variant == "" {
		return nil, fmt.Errorf("namespace needs a score, coding system and variant, got %q, %q, %q",
			score, codingSystem, variant)
	}
	ns := &Namespace{
		Combination: Combination{Score: score, CodingSystem: codingSystem, Variant: variant},
		Categories:  categories,
		index:       newTrie(),
		positions:   make(map[string]int, len(categories)),
	}
	for i, c := range categories {
		if c.Name == "" {
			return nil, fmt.Errorf("namespace %s: category %d has no name", ns.Key(), i)
		}
		if _, ok := ns.positions[c.Name]; ok {
			return nil, fmt.Errorf("namespace %s: duplicate category %q", ns.Key(), c.Name)
		}
		ns.positions[c.Name] = i
	}
	for i, c := range categories {
		for _, p := range c.Prefixes {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if a, ok := ns.index.insert(p, i); ok {
				ns.ambiguities = append(ns.ambiguities, ns.describe(a))
			}
		}
	}
	for _, a := range ns.index.nested() {
		ns.ambiguities = append(ns.ambiguities, ns.describe(a))
	}
	return ns, nil
}

// Match returns the column of the category a code belongs to. The category owning the longest prefix of the code
// wins; when two categories list the identical prefix, the one defined first keeps it.
func (ns *Namespace) Match(code string) (int, bool) {
	return ns.index.match(code)
}

// Names returns the category names in column order.
func (ns *Namespace) Names() []string {
	names := make([]string, len(ns.Categories))
	for i, c := range ns.Categories {
		names[i] = c.Name
	}
	return names
}

// Position returns the column of a category.
func (ns *Namespace) Position(name string) (int, bool) {
	i, ok := ns.positions[name]
	return i, ok
}

// Ambiguities lists prefix collisions found while indexing. They are data-quality findings, not errors.
func (ns *Namespace) Ambiguities() []Ambiguity {
	return ns.ambiguities
}

// Ambiguity describes a prefix that can be claimed by more than one category.
type Ambiguity struct {
	Prefix string // the longer (or duplicated) prefix
	Winner string // category that receives codes starting with Prefix
	Loser  string // category whose shorter or duplicated prefix is shadowed
	Nested bool   // false: identical prefix listed twice; true: Loser owns a proper prefix of Prefix
}

func (a Ambiguity) String() string {
	if a.Nested {
		return fmt.Sprintf("prefix %s of %s shadows a shorter prefix of %s", a.Prefix, a.Winner, a.Loser)
	}
	return fmt.Sprintf("prefix %s listed by %s and %s, %s wins", a.Prefix, a.Winner, a.Loser, a.Winner)
}

func (ns *Namespace) describe(c collision) Ambiguity {
	return Ambiguity{
		Prefix: c.prefix,
		Winner: ns.Categories[c.winner].Name,
		Loser:  ns.Categories[c.loser].Name,
		Nested: c.nested,
	}
}

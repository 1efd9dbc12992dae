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
	"sort"
	"sync"
)

// WeightTable maps category name to weight for one (namespace, weighting variant) pair.
type WeightTable map[string]float64

// Registry is the process-wide store of lookup tables. Lookups are safe for concurrent use; registered tables must
// not be modified afterwards.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]*Namespace
	weights    map[string]map[string]WeightTable // namespace key -> weighting variant -> weights
	hfrs       HFRSTable
	disability *Namespace
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		namespaces: map[string]*Namespace{},
		weights:    map[string]map[string]WeightTable{},
		hfrs:       HFRSTable{},
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the registry with the built-in tables. It is built on first use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := Builtin()
		if err != nil {
			panic(err) // built-in tables are covered by tests
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Builtin builds a fresh registry holding the built-in Charlson, Elixhauser, HFRS and disability tables.
func Builtin() (*Registry, error) {
	r := NewRegistry()
	builtins := []struct {
		score, codingSystem, variant string
		categories                   []Category
		weights                      map[string]map[string]float64
	}{
		{Charlson, ICD10, "quan", charlsonICD10Quan(), charlsonWeights},
		{Charlson, ICD9, "quan", charlsonICD9Quan(), charlsonWeights},
		{Charlson, ICD10, "shmi", charlsonICD10SHMI(), charlsonWeights},
		{Elixhauser, ICD10, "quan", elixhauserICD10Quan(), elixhauserWeights},
		{Elixhauser, ICD9, "quan", elixhauserICD9Quan(), elixhauserWeights},
	}
	for _, b := range builtins {
		ns, err := NewNamespace(b.score, b.codingSystem, b.variant, b.categories)
		if err != nil {
			return nil, err
		}
		if err := r.Register(ns); err != nil {
			return nil, err
		}
		for weighting, w := range b.weights {
			if err := r.RegisterWeights(ns.Key(), weighting, w); err != nil {
				return nil, err
			}
		}
	}
	r.SetHFRS(hfrsGilbert2018)
	ns, err := NewNamespace(Disability, ICD10, "default", disabilityICD10())
	if err != nil {
		return nil, err
	}
	r.SetDisability(ns)
	return r, nil
}

// Register adds a namespace, replacing any namespace with the same key together with its weight tables. The
// exclusion pairs of the namespace's score family must name categories of the namespace.
func (r *Registry) Register(ns *Namespace) error {
	for _, p := range Exclusions(ns.Score) {
		for _, name := range []string{p.Lesser, p.Greater} {
			if _, ok := ns.Position(name); !ok {
				return &DataIntegrityError{Key: ns.Key(), Category: name,
					Detail: "exclusion pair category missing from namespace"}
			}
		}
	}
	logAmbiguities(ns)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[ns.Key()] = ns
	delete(r.weights, ns.Key())
	return nil
}

// RegisterWeights adds a weight table for a registered namespace. Every category of the namespace needs a weight;
// weights for unknown categories are rejected too, so drift between the tables shows up here instead of at scoring.
func (r *Registry) RegisterWeights(key, weighting string, weights map[string]float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ns, ok := r.namespaces[key]
	if !ok {
		return &ConfigurationError{What: "namespace", Key: key, Valid: r.validKeys()}
	}
	table := make(WeightTable, len(weights))
	for _, c := range ns.Categories {
		w, ok := weights[c.Name]
		if !ok {
			return &DataIntegrityError{Key: key, Weighting: weighting, Category: c.Name, Detail: "no weight"}
		}
		table[c.Name] = w
	}
	for name := range weights {
		if _, ok := ns.Position(name); !ok {
			return &DataIntegrityError{Key: key, Weighting: weighting, Category: name,
				Detail: "weight for a category outside the namespace"}
		}
	}
	if r.weights[key] == nil {
		r.weights[key] = map[string]WeightTable{}
	}
	r.weights[key][weighting] = table
	return nil
}

// Namespace looks up the category mapping table of a (score, coding system, variant) combination.
func (r *Registry) Namespace(score, codingSystem, variant string) (*Namespace, error) {
	key := Key(score, codingSystem, variant)
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns, ok := r.namespaces[key]
	if !ok {
		return nil, &ConfigurationError{What: "namespace", Key: key, Valid: r.validCombinations()}
	}
	return ns, nil
}

// Weights looks up the weight table of a namespace key and weighting variant.
func (r *Registry) Weights(key, weighting string) (WeightTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.weights[key][weighting]
	if !ok {
		valid := []string{}
		for _, v := range r.weightingVariants(key) {
			valid = append(valid, key+"/"+v)
		}
		return nil, &ConfigurationError{What: "weighting", Key: key + "/" + weighting, Valid: valid}
	}
	return w, nil
}

// Combinations lists the registered (score, coding system, variant) triples, sorted by key.
func (r *Registry) Combinations() []Combination {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Combination, 0, len(r.namespaces))
	for _, ns := range r.namespaces {
		result = append(result, ns.Combination)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key() < result[j].Key() })
	return result
}

// WeightingVariants lists the weighting variants registered for a namespace key, sorted.
func (r *Registry) WeightingVariants(key string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.weightingVariants(key)
}

func (r *Registry) weightingVariants(key string) []string {
	result := []string{}
	for v := range r.weights[key] {
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

func (r *Registry) validCombinations() []string {
	keys := r.validKeys()
	result := make([]string, len(keys))
	for i, k := range keys {
		result[i] = r.namespaces[k].Combination.String()
	}
	return result
}

func (r *Registry) validKeys() []string {
	keys := make([]string, 0, len(r.namespaces))
	for k := range r.namespaces {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HFRS returns the HFRS prefix weights.
func (r *Registry) HFRS() HFRSTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hfrs
}

// SetHFRS replaces the HFRS prefix weights. Keys are three-character upper-case ICD-10 categories.
func (r *Registry) SetHFRS(t HFRSTable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hfrs = t
}

// DisabilityNamespace returns the disability taxonomy.
func (r *Registry) DisabilityNamespace() *Namespace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disability
}

// SetDisability replaces the disability taxonomy.
func (r *Registry) SetDisability(ns *Namespace) {
	logAmbiguities(ns)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disability = ns
}

// Combinations lists the combinations of the default registry.
func Combinations() []Combination {
	return Default().Combinations()
}

// logAmbiguities reports a one line summary of the prefix collisions of a namespace.
func logAmbiguities(ns *Namespace) {
	if n := len(ns.Ambiguities()); n > 0 {
		logger.Printf("taxonomy: %s has %d ambiguous prefixes, first: %s", ns.Key(), n, ns.Ambiguities()[0])
	}
}

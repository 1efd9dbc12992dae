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

// Package classify maps diagnosis codes onto comorbidity categories and computes the Charlson and Elixhauser
// indices, the Hospital Frailty Risk Score and the disability flags. All entry points are pure batch transforms of an
// in-memory frame.
package classify

import (
	"log"
	"strings"

	"github.com/exascience/pargo/parallel"

	"comorbid/table"
	"comorbid/taxonomy"
)

var logger = log.Default()

// SetLogger replaces the logger used for data-quality warnings.
func SetLogger(l *log.Logger) {
	logger = l
}

// parallelRange runs f over [0, n) in parallel batches. Batches must only write disjoint slots.
func parallelRange(n int, f func(low, high int)) {
	if n == 0 {
		return
	}
	parallel.Range(0, n, 0, f)
}

// NormalizeCode trims a code, upper-cases it and removes dots, so "e11.9 " matches the prefix "E119".
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), ".", ""))
}

// Classifier resolves raw codes to categories of one namespace.
type Classifier struct {
	ns        *taxonomy.Namespace
	normalize bool
}

// NewClassifier creates a classifier for a namespace. With normalize set, codes go through NormalizeCode before
// matching; otherwise they are opaque tokens.
func NewClassifier(ns *taxonomy.Namespace, normalize bool) *Classifier {
	return &Classifier{ns: ns, normalize: normalize}
}

// Namespace returns the namespace the classifier matches against.
func (c *Classifier) Namespace() *taxonomy.Namespace {
	return c.ns
}

// Lookup returns the category position of a code, or false when no prefix matches.
func (c *Classifier) Lookup(code string) (int, bool) {
	if c.normalize {
		code = NormalizeCode(code)
	}
	return c.ns.Match(code)
}

// mapCodes resolves each distinct code once. The result holds -1 for unmatched codes.
func (c *Classifier) mapCodes(records []table.Record) map[string]int {
	index := map[string]int{}
	var distinct []string
	for _, r := range records {
		if r.Code == "" {
			continue
		}
		if _, ok := index[r.Code]; !ok {
			index[r.Code] = -1
			distinct = append(distinct, r.Code)
		}
	}
	matches := make([]int, len(distinct))
	parallelRange(len(distinct), func(low, high int) {
		for i := low; i < high; i++ {
			if cat, ok := c.Lookup(distinct[i]); ok {
				matches[i] = cat
			} else {
				matches[i] = -1
			}
		}
	})
	for i, code := range distinct {
		index[code] = matches[i]
	}
	return index
}

// Classify builds the flag matrix of a set of records. Records with a null identifier or code are dropped;
// identifiers whose codes all go unmatched still get an all-zero row. Rows follow the order in which identifiers
// first appear.
func (c *Classifier) Classify(records []table.Record) *FlagMatrix {
	codes := c.mapCodes(records)
	m := newFlagMatrix(c.ns.Names())
	for _, r := range records {
		if r.ID == "" || r.Code == "" {
			continue
		}
		row := m.addID(r.ID)
		if cat := codes[r.Code]; cat >= 0 {
			m.Flags[row][cat] = 1
		}
	}
	return m
}

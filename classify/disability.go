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
	"comorbid/table"
	"comorbid/taxonomy"
)

type options struct {
	registry  *taxonomy.Registry
	columns   ColumnPolicy
	normalize bool
}

// Option configures Disability.
type Option func(*options)

// WithRegistry uses the disability taxonomy of r instead of the default registry.
func WithRegistry(r *taxonomy.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithColumns selects the category columns of the result.
func WithColumns(p ColumnPolicy) Option {
	return func(o *options) { o.columns = p }
}

// WithNormalizedCodes normalises codes before matching.
func WithNormalizedCodes() Option {
	return func(o *options) { o.normalize = true }
}

// Disability flags the impairment categories of every identifier. There is no weighting, exclusion or age
// adjustment. By default every category is a column; ObservedColumns keeps only categories seen in the input.
func Disability(frame *table.Frame, idColumn, codeColumn string, opts ...Option) (*table.Result, error) {
	o := options{registry: taxonomy.Default(), columns: AllColumns}
	for _, opt := range opts {
		opt(&o)
	}
	records, err := frame.Records(idColumn, codeColumn, "")
	if err != nil {
		return nil, err
	}
	ns := o.registry.DisabilityNamespace()
	if ns == nil {
		return nil, &taxonomy.ConfigurationError{What: "namespace", Key: taxonomy.Key(taxonomy.Disability, taxonomy.ICD10, "default")}
	}
	m := NewClassifier(ns, o.normalize).Classify(records)
	res := m.Result(o.columns)
	res.Meta[table.MetaScore] = ns.Score
	res.Meta[table.MetaCodingSystem] = ns.CodingSystem
	res.Meta[table.MetaVariant] = ns.Variant
	return res, nil
}

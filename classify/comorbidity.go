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
	"strconv"

	"comorbid/table"
	"comorbid/taxonomy"
)

// Output columns besides the categories.
const (
	ScoreColumn       = "comorbidity_score"
	AgeAdjustedColumn = "age_adj_comorbidity_score"
	SurvivalColumn    = "survival_10yr"
	HFRSColumn        = "hfrs"
)

// Params configures a comorbidity run.
type Params struct {
	IDColumn   string
	CodeColumn string
	AgeColumn  string // empty when no age adjustment is wanted

	Score           string // taxonomy.Charlson or taxonomy.Elixhauser
	CodingSystem    string // taxonomy.ICD9 or taxonomy.ICD10
	Variant         string // mapping variant, e.g. "quan" or "shmi"
	Weighting       string // weighting variant; defaults to charlson or vw by score
	ApplyExclusions bool

	Registry       *taxonomy.Registry // defaults to taxonomy.Default()
	AgePolicy      AgePolicy
	NormalizeCodes bool
}

// DefaultParams returns the parameters of a Charlson ICD-10 run with Quan mapping, Charlson weights and exclusions.
func DefaultParams() Params {
	return Params{
		IDColumn:        "id",
		CodeColumn:      "code",
		Score:           taxonomy.Charlson,
		CodingSystem:    taxonomy.ICD10,
		Variant:         "quan",
		Weighting:       taxonomy.WeightCharlson,
		ApplyExclusions: true,
	}
}

// DefaultWeighting is the weighting variant used when none is given.
func DefaultWeighting(score string) string {
	if score == taxonomy.Elixhauser {
		return taxonomy.WeightVW
	}
	return taxonomy.WeightCharlson
}

func (p Params) registry() *taxonomy.Registry {
	if p.Registry != nil {
		return p.Registry
	}
	return taxonomy.Default()
}

// Comorbidity classifies the codes of a frame and scores every identifier. The result has the category flags in
// taxonomy order, comorbidity_score, age_adj_comorbidity_score when an age column is given, and survival_10yr for
// Charlson scores with Charlson weights. Identifiers without a non-null age get no age points, so their age-adjusted
// score equals their comorbidity score.
func Comorbidity(frame *table.Frame, params Params) (*table.Result, error) {
	records, err := frame.Records(params.IDColumn, params.CodeColumn, params.AgeColumn)
	if err != nil {
		return nil, err
	}
	if params.Weighting == "" {
		params.Weighting = DefaultWeighting(params.Score)
	}
	reg := params.registry()
	ns, err := reg.Namespace(params.Score, params.CodingSystem, params.Variant)
	if err != nil {
		return nil, err
	}
	weights, err := reg.Weights(ns.Key(), params.Weighting)
	if err != nil {
		return nil, err
	}

	m := NewClassifier(ns, params.NormalizeCodes).Classify(records)
	scoring := ScoringFlags(m, taxonomy.Exclusions(ns.Score), params.ApplyExclusions)
	scores, err := Aggregate(scoring, m.Categories, weights, ns.Key(), params.Weighting)
	if err != nil {
		return nil, err
	}

	withAge := params.AgeColumn != ""
	withSurvival := ns.Score == taxonomy.Charlson && params.Weighting == taxonomy.WeightCharlson
	extra := []string{ScoreColumn}
	if withAge {
		extra = append(extra, AgeAdjustedColumn)
	}
	if withSurvival {
		extra = append(extra, SurvivalColumn)
	}
	res := m.Result(AllColumns, extra...)

	var ages []int
	var valid []bool
	if withAge {
		if ages, valid, err = resolveAges(m, records, params.AgePolicy); err != nil {
			return nil, err
		}
	}
	scoreCol := len(m.Categories)
	parallelRange(res.Len(), func(low, high int) {
		for i := low; i < high; i++ {
			row := res.Values[i]
			row[scoreCol] = scores[i]
			x := scores[i]
			col := scoreCol + 1
			if withAge {
				if valid[i] {
					x += float64(DecadeScore(ages[i]))
				}
				row[col] = x
				col++
			}
			if withSurvival {
				row[col] = Survival10yr(x)
			}
		}
	})

	res.Meta[table.MetaScore] = ns.Score
	res.Meta[table.MetaCodingSystem] = ns.CodingSystem
	res.Meta[table.MetaVariant] = ns.Variant
	res.Meta[table.MetaWeighting] = params.Weighting
	res.Meta[table.MetaApplyExclusions] = strconv.FormatBool(params.ApplyExclusions)
	return res, nil
}

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
	"strings"
	"sync"
	"unicode"

	"comorbid/cache"
	"comorbid/table"
	"comorbid/taxonomy"
)

// DefaultHFRSCacheSize bounds the memo of an HFRS engine. It is sized for the distinct-code cardinality of ICD-10.
const DefaultHFRSCacheSize = 50000

type hfrsMatch struct {
	key    string
	weight float64
	ok     bool
}

// HFRSEngine computes the Hospital Frailty Risk Score. Code lookups are memoised in a bounded LRU cache owned by the
// engine. An engine is safe for concurrent use.
type HFRSEngine struct {
	weights taxonomy.HFRSTable
	memo    *cache.LRU[string, hfrsMatch]
}

// NewHFRSEngine creates an engine over a prefix weight table with a memo of cacheSize entries.
func NewHFRSEngine(weights taxonomy.HFRSTable, cacheSize int) *HFRSEngine {
	return &HFRSEngine{weights: weights, memo: cache.New[string, hfrsMatch](cacheSize)}
}

// HFRSKey normalises a code to its HFRS lookup key: leading whitespace removed, first three characters,
// upper-cased.
func HFRSKey(code string) string {
	code = strings.TrimLeftFunc(code, unicode.IsSpace)
	if r := []rune(code); len(r) > 3 {
		code = string(r[:3])
	}
	return strings.ToUpper(code)
}

func (e *HFRSEngine) lookup(code string) hfrsMatch {
	return e.memo.GetOrCompute(code, func(code string) hfrsMatch {
		key := HFRSKey(code)
		w, ok := e.weights.Weight(key)
		return hfrsMatch{key: key, weight: w, ok: ok}
	})
}

// CacheStats reports the memo statistics.
func (e *HFRSEngine) CacheStats() cache.Stats {
	return e.memo.Stats()
}

// Score computes the HFRS of every identifier. Each HFRS category counts once per identifier; identifiers without
// any matching code score 0.
func (e *HFRSEngine) Score(records []table.Record) *table.Result {
	var ids []string
	rows := map[string]int{}
	var keys [][]hfrsMatch
	for _, r := range records {
		if r.ID == "" || r.Code == "" {
			continue
		}
		row, ok := rows[r.ID]
		if !ok {
			row = len(ids)
			rows[r.ID] = row
			ids = append(ids, r.ID)
			keys = append(keys, nil)
		}
		match := e.lookup(r.Code)
		if !match.ok || containsKey(keys[row], match.key) {
			continue
		}
		keys[row] = append(keys[row], match)
	}
	res := table.NewResult(ids, []string{HFRSColumn})
	parallelRange(len(ids), func(low, high int) {
		for i := low; i < high; i++ {
			sum := 0.0
			for _, m := range keys[i] {
				sum += m.weight
			}
			res.Values[i][0] = sum
		}
	})
	return res
}

func containsKey(matches []hfrsMatch, key string) bool {
	for _, m := range matches {
		if m.key == key {
			return true
		}
	}
	return false
}

var (
	defaultHFRS     *HFRSEngine
	defaultHFRSOnce sync.Once
)

// DefaultHFRSEngine returns a shared engine over the HFRS table of the default registry.
func DefaultHFRSEngine() *HFRSEngine {
	defaultHFRSOnce.Do(func() {
		defaultHFRS = NewHFRSEngine(taxonomy.Default().HFRS(), DefaultHFRSCacheSize)
	})
	return defaultHFRS
}

// HFRS computes the Hospital Frailty Risk Score of every identifier in a frame with the default engine.
func HFRS(frame *table.Frame, idColumn, codeColumn string) (*table.Result, error) {
	return DefaultHFRSEngine().ScoreFrame(frame, idColumn, codeColumn)
}

// ScoreFrame computes the HFRS of every identifier in a frame.
func (e *HFRSEngine) ScoreFrame(frame *table.Frame, idColumn, codeColumn string) (*table.Result, error) {
	records, err := frame.Records(idColumn, codeColumn, "")
	if err != nil {
		return nil, err
	}
	return e.Score(records), nil
}

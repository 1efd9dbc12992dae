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

// Package synth generates synthetic diagnosis tables for testing and benchmarking the scorers.
package synth

import (
	"strconv"

	"github.com/valyala/fastrand"

	"comorbid/table"
	"comorbid/taxonomy"
)

// Population generates one patient per prefix of the largest category of a namespace. Every patient gets exactly one
// prefix of every category, cycling through a shuffled prefix list per category, and a random age in [0, 100]. On a
// namespace without ambiguous prefixes every patient therefore reaches the maximum score. A seed of 0 uses a random
// seed.
func Population(ns *taxonomy.Namespace, seed uint32) *table.Frame {
	var rng fastrand.RNG
	if seed == 0 {
		seed = fastrand.Uint32()
	}
	rng.Seed(seed)

	nofPatients := 0
	cycles := make([][]string, len(ns.Categories))
	for i, c := range ns.Categories {
		cycles[i] = shuffle(&rng, c.Prefixes)
		if len(c.Prefixes) > nofPatients {
			nofPatients = len(c.Prefixes)
		}
	}

	frame := table.NewFrame(table.IDColumn, "code", "age")
	for n := 0; n < nofPatients; n++ {
		id := strconv.Itoa(n)
		age := strconv.Itoa(int(rng.Uint32n(101)))
		for _, prefixes := range cycles {
			if len(prefixes) == 0 {
				continue
			}
			frame.Append(id, prefixes[n%len(prefixes)], age)
		}
	}
	return frame
}

// shuffle returns a Fisher-Yates shuffled copy of list.
func shuffle(rng *fastrand.RNG, list []string) []string {
	result := append([]string(nil), list...)
	for i := len(result) - 1; i > 0; i-- {
		j := int(rng.Uint32n(uint32(i + 1)))
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// Codes generates n random rows for nofPatients identifiers, drawing codes uniformly from the prefixes of a namespace
// plus unmatched noise codes. Useful to exercise the scorers on realistic, sparse inputs.
func Codes(ns *taxonomy.Namespace, nofPatients, n int, seed uint32) *table.Frame {
	var rng fastrand.RNG
	if seed == 0 {
		seed = fastrand.Uint32()
	}
	rng.Seed(seed)

	var pool []string
	for _, c := range ns.Categories {
		pool = append(pool, c.Prefixes...)
	}
	pool = append(pool, "Z000", "R69", "U999")

	ages := make([]string, nofPatients)
	for i := range ages {
		ages[i] = strconv.Itoa(int(rng.Uint32n(101)))
	}
	frame := table.NewFrame(table.IDColumn, "code", "age")
	if nofPatients == 0 {
		return frame
	}
	for i := 0; i < n; i++ {
		p := int(rng.Uint32n(uint32(nofPatients)))
		frame.Append(strconv.Itoa(p), pool[rng.Uint32n(uint32(len(pool)))], ages[p])
	}
	return frame
}

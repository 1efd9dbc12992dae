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

// Package cohort restricts a diagnosis table to a patient cohort before scoring and summarises score columns.
package cohort

import (
	"strings"

	"comorbid/table"
	"comorbid/utils"
)

// Patient groups the diagnosis records of one identifier. Age is the largest non-null age of its records.
type Patient struct {
	ID       string
	Age      int
	AgeValid bool
	Codes    []string
	rows     []int // rows of the source frame
}

// PatientFilter decides whether a patient belongs to a cohort, e.g. patients aged 75 and over.
type PatientFilter func(p *Patient) bool

// Patients groups records by identifier in order of first appearance. Records with a null identifier are skipped.
func Patients(records []table.Record) []*Patient {
	var patients []*Patient
	index := map[string]*Patient{}
	for i, r := range records {
		if r.ID == "" {
			continue
		}
		p, ok := index[r.ID]
		if !ok {
			p = &Patient{ID: r.ID}
			index[r.ID] = p
			patients = append(patients, p)
		}
		p.rows = append(p.rows, i)
		if r.Code != "" {
			p.Codes = append(p.Codes, r.Code)
		}
		if r.AgeValid {
			if p.AgeValid {
				p.Age = utils.MaxInt(p.Age, r.Age)
			} else {
				p.Age, p.AgeValid = r.Age, true
			}
		}
	}
	return patients
}

// IdentityFilter keeps every patient.
func IdentityFilter() PatientFilter {
	return func(p *Patient) bool { return true }
}

// AgeAtLeast keeps patients aged age or older. Patients without an age are removed.
func AgeAtLeast(age int) PatientFilter {
	return func(p *Patient) bool {
		return p.AgeValid && p.Age >= age
	}
}

// AgeBelow keeps patients younger than age. Patients without an age are removed.
func AgeBelow(age int) PatientFilter {
	return func(p *Patient) bool {
		return p.AgeValid && p.Age < age
	}
}

// HasCodePrefix keeps patients with at least one code starting with one of the prefixes.
func HasCodePrefix(prefixes ...string) PatientFilter {
	return func(p *Patient) bool {
		for _, c := range p.Codes {
			for _, prefix := range prefixes {
				if strings.HasPrefix(c, prefix) {
					return true
				}
			}
		}
		return false
	}
}

// ApplyPatientFilters returns a frame with the rows of the patients that pass all filters, and the number of patients
// kept. Rows with a null identifier are dropped.
func ApplyPatientFilters(filters []PatientFilter, frame *table.Frame, idColumn, codeColumn, ageColumn string) (*table.Frame, int, error) {
	records, err := frame.Records(idColumn, codeColumn, ageColumn)
	if err != nil {
		return nil, 0, err
	}
	result := table.NewFrame(frame.Columns...)
	kept := 0
	for _, p := range Patients(records) {
		res := true
		for _, filter := range filters {
			res = filter(p) && res
			if !res {
				break
			}
		}
		if !res {
			continue
		}
		kept++
		for _, row := range p.rows {
			result.Rows = append(result.Rows, frame.Rows[row])
		}
	}
	return result, kept, nil
}

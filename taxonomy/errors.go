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
	"strings"
)

// ConfigurationError reports a requested lookup-table combination that is not registered. Valid enumerates the
// combinations that are.
type ConfigurationError struct {
	What  string // "namespace" or "weighting"
	Key   string
	Valid []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s %q, valid options: %s", e.What, e.Key, strings.Join(e.Valid, ", "))
}

// DataIntegrityError reports a mismatch between a category mapping table and a weight table.
type DataIntegrityError struct {
	Key       string
	Weighting string
	Category  string
	Detail    string
}

func (e *DataIntegrityError) Error() string {
	msg := "data integrity"
	if e.Key != "" {
		msg += " in " + e.Key
	}
	if e.Weighting != "" {
		msg += "/" + e.Weighting
	}
	if e.Category != "" {
		msg += fmt.Sprintf(": category %q", e.Category)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

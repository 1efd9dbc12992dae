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

import "fmt"

// span expands an inclusive range of codes sharing a letter prefix, zero padding the numeric part to width digits:
// span("C", 0, 3, 2) is C00, C01, C02, C03.
func span(letter string, from, to, width int) []string {
	codes := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		codes = append(codes, fmt.Sprintf("%s%0*d", letter, width, i))
	}
	return codes
}

// codes flattens literal codes and expanded spans into one prefix list.
func codes(parts ...interface{}) []string {
	var result []string
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			result = append(result, v)
		case []string:
			result = append(result, v...)
		default:
			panic(fmt.Sprintf("taxonomy: unexpected code part %T", p))
		}
	}
	return result
}

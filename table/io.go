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

package table

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MetaSuffix is appended to a CSV output path to name its metadata sidecar.
const MetaSuffix = ".meta.toml"

// Open reads a CSV or Parquet file, chosen by extension.
func Open(path string) (*Frame, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(path)
	case ".parquet":
		return ReadParquet(path)
	default:
		return nil, fmt.Errorf("%s: unsupported input format %q", path, ext)
	}
}

// Save writes a result as CSV (plus a metadata sidecar when there is metadata) or Parquet, chosen by extension.
func Save(path string, res *Result) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		if err := WriteCSV(path, res); err != nil {
			return err
		}
		if len(res.Meta) > 0 {
			return WriteMeta(path+MetaSuffix, res.Meta)
		}
		return nil
	case ".parquet":
		return WriteParquet(path, res)
	default:
		return fmt.Errorf("%s: unsupported output format %q", path, ext)
	}
}

// SaveFrame writes a frame as CSV or Parquet, chosen by extension.
func SaveFrame(path string, frame *Frame) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return WriteFrameCSV(path, frame)
	case ".parquet":
		return WriteFrameParquet(path, frame)
	default:
		return fmt.Errorf("%s: unsupported output format %q", path, ext)
	}
}

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
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// ReadCSV parses a CSV file whose first line is the header.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	frame, err := ReadCSVFrom(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// ReadCSVFrom parses CSV input whose first record is the header. Rows may be shorter or longer than the header.
func ReadCSVFrom(in io.Reader) (*Frame, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty csv: no header")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	frame := NewFrame(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		frame.Append(record...)
	}
	return frame, nil
}

// WriteCSV writes a result as CSV with the identifier in the first column.
func WriteCSV(path string, res *Result) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return WriteCSVTo(file, res)
}

// WriteCSVTo writes a result as CSV.
func WriteCSVTo(out io.Writer, res *Result) error {
	writer := csv.NewWriter(out)
	header := append([]string{IDColumn}, res.Columns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(header))
	for i, id := range res.IDs {
		record[0] = id
		for j, v := range res.Values[i] {
			record[j+1] = FormatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFrameCSV writes a frame as CSV.
func WriteFrameCSV(path string, frame *Frame) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	writer := csv.NewWriter(file)
	if err := writer.Write(frame.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := writer.WriteAll(frame.Rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteMeta writes run metadata as a TOML file, used as a sidecar for formats without a metadata section.
func WriteMeta(path string, meta map[string]string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metadata: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := toml.NewEncoder(file).Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return nil
}

// ReadMeta reads a metadata sidecar written by WriteMeta.
func ReadMeta(path string) (map[string]string, error) {
	meta := map[string]string{}
	if _, err := toml.DecodeFile(path, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}

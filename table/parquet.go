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
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

const parquetReadBatch = 8192

// ReadParquet reads a flat Parquet file into a frame. Cells are rendered as strings; nulls become empty cells.
func ReadParquet(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer file.Close()

	reader := parquet.NewReader(file)
	defer reader.Close()

	schema := reader.Schema()
	fields := schema.Fields()
	if len(schema.Columns()) != len(fields) {
		return nil, fmt.Errorf("%s: nested parquet schemas are not supported", path)
	}
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name()
	}
	frame := NewFrame(columns...)

	rows := make([]parquet.Row, parquetReadBatch)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			cells := make([]string, len(columns))
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(cells) && !v.IsNull() {
					cells[c] = valueString(v)
				}
			}
			frame.Append(cells...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return frame, nil
}

func valueString(v parquet.Value) string {
	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	default:
		return v.String()
	}
}

// WriteParquet writes a result with a string identifier column and double value columns. Metadata is stored as
// Parquet key/value metadata.
func WriteParquet(path string, res *Result) error {
	group := parquet.Group{IDColumn: parquet.String()}
	for _, c := range res.Columns {
		group[c] = parquet.Leaf(parquet.DoubleType)
	}
	schema := parquet.NewSchema("result", group)
	index := columnIndexes(schema)

	options := []parquet.WriterOption{schema, parquet.Compression(&parquet.Snappy)}
	for _, k := range res.MetaKeys() {
		options = append(options, parquet.KeyValueMetadata(k, res.Meta[k]))
	}
	return writeParquetRows(path, options, res.Len(), func(i int) parquet.Row {
		row := make(parquet.Row, len(res.Columns)+1)
		row[index[IDColumn]] = parquet.ByteArrayValue([]byte(res.IDs[i])).Level(0, 0, index[IDColumn])
		for j, c := range res.Columns {
			row[index[c]] = parquet.DoubleValue(res.Values[i][j]).Level(0, 0, index[c])
		}
		return row
	})
}

// WriteFrameParquet writes a frame with every column as an optional string.
func WriteFrameParquet(path string, frame *Frame) error {
	group := parquet.Group{}
	for _, c := range frame.Columns {
		group[c] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("frame", group)
	index := columnIndexes(schema)

	options := []parquet.WriterOption{schema, parquet.Compression(&parquet.Snappy)}
	return writeParquetRows(path, options, frame.Len(), func(i int) parquet.Row {
		row := make(parquet.Row, len(frame.Columns))
		for j, c := range frame.Columns {
			col := index[c]
			if cell := frame.Cell(i, j); cell != "" {
				row[col] = parquet.ByteArrayValue([]byte(cell)).Level(0, 1, col)
			} else {
				row[col] = parquet.Value{}.Level(0, 0, col)
			}
		}
		return row
	})
}

// ReadParquetMeta returns the key/value metadata of a Parquet file.
func ReadParquetMeta(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet: %w", err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	meta := map[string]string{}
	for _, kv := range pf.Metadata().KeyValueMetadata {
		meta[kv.Key] = kv.Value
	}
	return meta, nil
}

// columnIndexes maps top-level field names to leaf column indexes. Groups order their fields by name.
func columnIndexes(schema *parquet.Schema) map[string]int {
	index := map[string]int{}
	for i, path := range schema.Columns() {
		index[path[0]] = i
	}
	return index
}

func writeParquetRows(path string, options []parquet.WriterOption, n int, row func(i int) parquet.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet: %w", err)
	}
	writer := parquet.NewWriter(file, options...)
	const batch = 1024
	rows := make([]parquet.Row, 0, batch)
	for i := 0; i < n; i++ {
		rows = append(rows, row(i))
		if len(rows) == batch || i == n-1 {
			if _, err := writer.WriteRows(rows); err != nil {
				file.Close()
				return fmt.Errorf("write parquet rows: %w", err)
			}
			rows = rows[:0]
		}
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}

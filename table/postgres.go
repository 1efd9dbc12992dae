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
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Connect opens a small connection pool and checks that the server is reachable.
func Connect(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// ReadPostgres runs a query and collects its result set into a frame. Values are rendered with their text form;
// NULL becomes an empty cell.
func ReadPostgres(ctx context.Context, db Querier, query string, args ...any) (*Frame, error) {
	// Text results keep numeric, uuid and date values in their Postgres spelling.
	args = append([]any{pgx.QueryResultFormats{pgx.TextFormatCode}}, args...)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	frame := NewFrame(columns...)
	for rows.Next() {
		values := rows.RawValues()
		cells := make([]string, len(values))
		for i, v := range values {
			if v != nil {
				cells[i] = string(v)
			}
		}
		frame.Append(cells...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return frame, nil
}

// ReadPostgresTable reads every row of a table.
func ReadPostgresTable(ctx context.Context, db Querier, table string) (*Frame, error) {
	return ReadPostgres(ctx, db, "SELECT * FROM "+pgx.Identifier(strings.Split(table, ".")).Sanitize())
}

// WritePostgres replaces a table with the contents of a result inside a single transaction. The identifier column is
// text, value columns are double precision, and the metadata is stored as the table comment.
func WritePostgres(ctx context.Context, db Querier, table string, res *Result) (int64, error) {
	ident := pgx.Identifier(strings.Split(table, "."))
	name := ident.Sanitize()

	defs := make([]string, 0, len(res.Columns)+1)
	defs = append(defs, pgx.Identifier{IDColumn}.Sanitize()+" text NOT NULL")
	for _, c := range res.Columns {
		defs = append(defs, pgx.Identifier{c}.Sanitize()+" double precision NOT NULL")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return 0, fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.Exec(ctx, "CREATE TABLE "+name+" ("+strings.Join(defs, ", ")+")"); err != nil {
		return 0, fmt.Errorf("create %s: %w", table, err)
	}

	columns := append([]string{IDColumn}, res.Columns...)
	copied, err := tx.CopyFrom(ctx, ident, columns, pgx.CopyFromSlice(res.Len(), func(i int) ([]any, error) {
		row := make([]any, 0, len(columns))
		row = append(row, res.IDs[i])
		for _, v := range res.Values[i] {
			row = append(row, v)
		}
		return row, nil
	}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}

	if len(res.Meta) > 0 {
		if _, err := tx.Exec(ctx, "COMMENT ON TABLE "+name+" IS "+quoteLiteral(metaComment(res))); err != nil {
			return 0, fmt.Errorf("comment on %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return copied, nil
}

// ReadPostgresMeta parses the metadata comment written by WritePostgres.
func ReadPostgresMeta(ctx context.Context, db Querier, table string) (map[string]string, error) {
	rows, err := db.Query(ctx, "SELECT coalesce(obj_description($1::text::regclass, 'pg_class'), '')", table)
	if err != nil {
		return nil, fmt.Errorf("query comment: %w", err)
	}
	comment, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("read comment: %w", err)
	}
	meta := map[string]string{}
	for _, line := range strings.Split(comment, "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			meta[k] = v
		}
	}
	return meta, nil
}

func metaComment(res *Result) string {
	var b strings.Builder
	for i, k := range res.MetaKeys() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(res.Meta[k])
	}
	return b.String()
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

package db

import (
	"fmt"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// MaxBindParams is the bind parameter limit shared by MySQL prepared
// statements and the PostgreSQL wire protocol.
const MaxBindParams = 65535

// insertStatement is one INSERT and its arguments.
type insertStatement struct {
	sql  string
	args []any
	rows int
}

// planInsert turns a batch into one or more INSERT statements, splitting only
// when the batch would exceed MaxBindParams. Empty cells bind as SQL NULL.
func planInsert(d Dialect, table string, columns []string, rows [][]string) ([]insertStatement, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to insert into %s: %w", table, rdsload.ErrWrite)
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i+1, len(row), len(columns), rdsload.ErrWrite)
		}
	}

	perStatement := max(MaxBindParams/len(columns), 1)

	var stmts []insertStatement
	for start := 0; start < len(rows); start += perStatement {
		end := min(start+perStatement, len(rows))
		chunk := rows[start:end]

		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			for _, v := range row {
				args = append(args, nullable(v))
			}
		}
		stmts = append(stmts, insertStatement{
			sql:  d.BuildInsert(table, columns, len(chunk)),
			args: args,
			rows: len(chunk),
		})
	}
	return stmts, nil
}

// nullable maps an empty CSV cell to NULL.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// SQLWriter appends batches through database/sql. Each batch runs in its own
// transaction, so a failure leaves earlier batches committed.
type SQLWriter struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLWriter creates a writer for db using dialect.
func NewSQLWriter(db *sql.DB, dialect Dialect) *SQLWriter {
	return &SQLWriter{db: db, dialect: dialect}
}

// WriteBatch inserts rows into table and commits.
func (w *SQLWriter) WriteBatch(ctx context.Context, table string, columns []string, rows [][]string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stmts, err := planInsert(w.dialect, table, columns, rows)
	if err != nil {
		return 0, err
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w: %w", rdsload.ErrWrite, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var written int64
	for _, stmt := range stmts {
		res, err := tx.ExecContext(ctx, stmt.sql, stmt.args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w: %w", table, rdsload.ErrWrite, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			n = int64(stmt.rows)
		}
		written += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch into %s: %w: %w", table, rdsload.ErrWrite, err)
	}
	return written, nil
}

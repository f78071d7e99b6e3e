package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// PgxPool is the subset of *pgxpool.Pool used by PgxWriter.
type PgxPool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// PgxWriter appends batches through a pgx pool, one transaction per batch.
// String arguments are sent in text format, so the server converts them to
// the column types.
type PgxWriter struct {
	pool PgxPool
}

// NewPgxWriter creates a writer for pool.
func NewPgxWriter(pool PgxPool) *PgxWriter {
	return &PgxWriter{pool: pool}
}

// WriteBatch inserts rows into table and commits.
func (w *PgxWriter) WriteBatch(ctx context.Context, table string, columns []string, rows [][]string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stmts, err := planInsert(PostgresDialect, table, columns, rows)
	if err != nil {
		return 0, err
	}

	tx, err := w.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w: %w", rdsload.ErrWrite, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	var written int64
	for _, stmt := range stmts {
		tag, err := tx.Exec(ctx, stmt.sql, stmt.args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w: %w", table, rdsload.ErrWrite, err)
		}
		written += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit batch into %s: %w: %w", table, rdsload.ErrWrite, err)
	}
	return written, nil
}

package db

import (
	"context"
	"database/sql"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/rdsload/internal/db/manager"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// HealthCheckQuery is the round trip used to prove a pool usable.
const HealthCheckQuery = "SELECT 1"

// SQLHandle is a database/sql pool plus its writer.
type SQLHandle struct {
	*SQLWriter
	db        *sql.DB
	tables    *manager.Manager
	closeOnce sync.Once
	closeErr  error
}

// NewSQLHandle wraps db.
func NewSQLHandle(db *sql.DB, dialect Dialect) *SQLHandle {
	flavor := manager.FlavorMySQL
	if dialect.Name == PostgresDialect.Name {
		flavor = manager.FlavorPostgres
	}
	return &SQLHandle{SQLWriter: NewSQLWriter(db, dialect), db: db, tables: manager.New(flavor)}
}

// EnsureTable creates table with TEXT columns when it does not exist.
func (h *SQLHandle) EnsureTable(ctx context.Context, table string, columns []string) (bool, error) {
	return h.tables.EnsureTable(ctx, sqlConn{h.db}, table, columns)
}

// Ping runs HealthCheckQuery.
func (h *SQLHandle) Ping(ctx context.Context) error {
	return pingSQL(ctx, h.db)
}

// Close releases the pool. Safe to call more than once.
func (h *SQLHandle) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = h.db.Close()
	})
	return h.closeErr
}

// DB exposes the underlying pool.
func (h *SQLHandle) DB() *sql.DB {
	return h.db
}

func pingSQL(ctx context.Context, db *sql.DB) error {
	var one int
	return db.QueryRowContext(ctx, HealthCheckQuery).Scan(&one)
}

// PgxHandle is a pgx pool plus its writer.
type PgxHandle struct {
	*PgxWriter
	pool      *pgxpool.Pool
	tables    *manager.Manager
	closeOnce sync.Once
}

// NewPgxHandle wraps pool.
func NewPgxHandle(pool *pgxpool.Pool) *PgxHandle {
	return &PgxHandle{PgxWriter: NewPgxWriter(pool), pool: pool, tables: manager.New(manager.FlavorPostgres)}
}

// EnsureTable creates table with TEXT columns when it does not exist.
func (h *PgxHandle) EnsureTable(ctx context.Context, table string, columns []string) (bool, error) {
	return h.tables.EnsureTable(ctx, pgxConn{h.pool}, table, columns)
}

// Ping runs HealthCheckQuery.
func (h *PgxHandle) Ping(ctx context.Context) error {
	return pingPgx(ctx, h.pool)
}

// Close releases the pool. Safe to call more than once.
func (h *PgxHandle) Close() error {
	h.closeOnce.Do(h.pool.Close)
	return nil
}

// Pool exposes the underlying pool.
func (h *PgxHandle) Pool() *pgxpool.Pool {
	return h.pool
}

func pingPgx(ctx context.Context, pool *pgxpool.Pool) error {
	var one int
	return pool.QueryRow(ctx, HealthCheckQuery).Scan(&one)
}

// sqlConn adapts *sql.DB to manager.Conn.
type sqlConn struct{ db *sql.DB }

func (c sqlConn) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

func (c sqlConn) QueryBool(ctx context.Context, query string, args ...any) (bool, error) {
	var b bool
	err := c.db.QueryRowContext(ctx, query, args...).Scan(&b)
	return b, err
}

// pgxConn adapts *pgxpool.Pool to manager.Conn.
type pgxConn struct{ pool *pgxpool.Pool }

func (c pgxConn) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.pool.Exec(ctx, query, args...)
	return err
}

func (c pgxConn) QueryBool(ctx context.Context, query string, args ...any) (bool, error) {
	var b bool
	err := c.pool.QueryRow(ctx, query, args...).Scan(&b)
	return b, err
}

var (
	_ rdsload.Handle       = (*SQLHandle)(nil)
	_ rdsload.Handle       = (*PgxHandle)(nil)
	_ rdsload.TableEnsurer = (*SQLHandle)(nil)
	_ rdsload.TableEnsurer = (*PgxHandle)(nil)
)

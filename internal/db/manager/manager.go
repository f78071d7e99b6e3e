package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Flavor selects the SQL dialect.
type Flavor int

const (
	FlavorMySQL Flavor = iota
	FlavorPostgres
)

const (
	queryTableExistsMySQL = `SELECT EXISTS(
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = COALESCE(?, DATABASE()) AND table_name = ?)`
	queryTableExistsPostgres = `SELECT EXISTS(
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = COALESCE($1, current_schema()) AND table_name = $2)`
)

// Conn is the minimal connection surface the manager needs.
type Conn interface {
	Exec(ctx context.Context, query string, args ...any) error
	QueryBool(ctx context.Context, query string, args ...any) (bool, error)
}

// Manager implements table lifecycle operations using the Conn abstraction.
type Manager struct {
	flavor Flavor
}

// New creates a Manager for flavor.
func New(flavor Flavor) *Manager {
	return &Manager{flavor: flavor}
}

// TableExists reports whether table (optionally schema-qualified) exists.
func (m *Manager) TableExists(ctx context.Context, conn Conn, table string) (bool, error) {
	schema, name := splitTable(table)

	query := queryTableExistsMySQL
	if m.flavor == FlavorPostgres {
		query = queryTableExistsPostgres
	}

	exists, err := conn.QueryBool(ctx, query, schema, name)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// CreateTable creates table with one nullable TEXT column per entry in columns.
func (m *Manager) CreateTable(ctx context.Context, conn Conn, table string, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("cannot create table %q without columns", table)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = m.quote(col) + " TEXT NULL"
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", m.quote(table), strings.Join(defs, ", "))

	if err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %q: %w", table, err)
	}
	return nil
}

// EnsureTable creates table when it does not exist yet. It reports whether
// the table was created.
func (m *Manager) EnsureTable(ctx context.Context, conn Conn, table string, columns []string) (bool, error) {
	exists, err := m.TableExists(ctx, conn, table)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := m.CreateTable(ctx, conn, table, columns); err != nil {
		return false, err
	}
	return true, nil
}

// quote quotes a possibly schema-qualified identifier.
func (m *Manager) quote(name string) string {
	parts := strings.Split(name, ".")
	if m.flavor == FlavorPostgres {
		return pgx.Identifier(parts).Sanitize()
	}
	for i, p := range parts {
		parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}

// splitTable separates an optional schema prefix. A nil schema means the
// connection's current database or schema.
func splitTable(table string) (any, string) {
	if i := strings.LastIndex(table, "."); i >= 0 {
		return table[:i], table[i+1:]
	}
	return nil, table
}

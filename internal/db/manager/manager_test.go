package manager_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vvka-141/rdsload/internal/db/manager"
)

// mockConn is a test double for manager.Conn
type mockConn struct {
	execFunc      func(ctx context.Context, query string, args ...any) error
	queryBoolFunc func(ctx context.Context, query string, args ...any) (bool, error)
	execs         []string
}

func (m *mockConn) Exec(ctx context.Context, query string, args ...any) error {
	m.execs = append(m.execs, query)
	if m.execFunc != nil {
		return m.execFunc(ctx, query, args...)
	}
	return nil
}

func (m *mockConn) QueryBool(ctx context.Context, query string, args ...any) (bool, error) {
	if m.queryBoolFunc != nil {
		return m.queryBoolFunc(ctx, query, args...)
	}
	return false, nil
}

func TestManager_CreateTable_QuotesIdentifiers(t *testing.T) {
	testCases := []struct {
		name     string
		flavor   manager.Flavor
		table    string
		columns  []string
		expected string
	}{
		{
			name:     "MySQL simple",
			flavor:   manager.FlavorMySQL,
			table:    "customers",
			columns:  []string{"Index", "Customer Id"},
			expected: "CREATE TABLE IF NOT EXISTS `customers` (`Index` TEXT NULL, `Customer Id` TEXT NULL)",
		},
		{
			name:     "MySQL backtick in name",
			flavor:   manager.FlavorMySQL,
			table:    "my`table",
			columns:  []string{"a"},
			expected: "CREATE TABLE IF NOT EXISTS `my``table` (`a` TEXT NULL)",
		},
		{
			name:     "Postgres schema-qualified",
			flavor:   manager.FlavorPostgres,
			table:    "sales.customers",
			columns:  []string{"id"},
			expected: `CREATE TABLE IF NOT EXISTS "sales"."customers" ("id" TEXT NULL)`,
		},
		{
			name:     "Postgres quotes and semicolons",
			flavor:   manager.FlavorPostgres,
			table:    `my"table;`,
			columns:  []string{"drop table x;--"},
			expected: `CREATE TABLE IF NOT EXISTS "my""table;" ("drop table x;--" TEXT NULL)`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &mockConn{}
			if err := manager.New(tc.flavor).CreateTable(context.Background(), conn, tc.table, tc.columns); err != nil {
				t.Fatalf("CreateTable() error = %v", err)
			}
			if len(conn.execs) != 1 || conn.execs[0] != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, conn.execs)
			}
		})
	}
}

func TestManager_CreateTable_NoColumns(t *testing.T) {
	conn := &mockConn{}
	err := manager.New(manager.FlavorMySQL).CreateTable(context.Background(), conn, "t", nil)
	if err == nil {
		t.Fatal("Expected error for empty column list")
	}
	if len(conn.execs) != 0 {
		t.Errorf("Expected no statements, got %v", conn.execs)
	}
}

func TestManager_TableExists_PassesSchemaAndName(t *testing.T) {
	testCases := []struct {
		name       string
		flavor     manager.Flavor
		table      string
		wantSchema any
		wantName   string
		wantMarker string
	}{
		{"MySQL unqualified", manager.FlavorMySQL, "customers", nil, "customers", "DATABASE()"},
		{"MySQL qualified", manager.FlavorMySQL, "crm.customers", "crm", "customers", "DATABASE()"},
		{"Postgres unqualified", manager.FlavorPostgres, "customers", nil, "customers", "current_schema()"},
		{"Postgres qualified", manager.FlavorPostgres, "sales.customers", "sales", "customers", "current_schema()"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &mockConn{
				queryBoolFunc: func(ctx context.Context, query string, args ...any) (bool, error) {
					if !strings.Contains(query, tc.wantMarker) {
						t.Errorf("Expected query to contain %q, got %q", tc.wantMarker, query)
					}
					if len(args) != 2 || args[0] != tc.wantSchema || args[1] != tc.wantName {
						t.Errorf("Expected args [%v %q], got %v", tc.wantSchema, tc.wantName, args)
					}
					return true, nil
				},
			}

			exists, err := manager.New(tc.flavor).TableExists(context.Background(), conn, tc.table)
			if err != nil {
				t.Fatalf("TableExists() error = %v", err)
			}
			if !exists {
				t.Error("Expected table to exist")
			}
		})
	}
}

func TestManager_TableExists_Error(t *testing.T) {
	expectedErr := errors.New("permission denied")
	conn := &mockConn{
		queryBoolFunc: func(ctx context.Context, query string, args ...any) (bool, error) {
			return false, expectedErr
		},
	}

	_, err := manager.New(manager.FlavorMySQL).TableExists(context.Background(), conn, "customers")
	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

func TestManager_EnsureTable(t *testing.T) {
	testCases := []struct {
		name        string
		exists      bool
		wantCreated bool
		wantExecs   int
	}{
		{"existing table untouched", true, false, 0},
		{"missing table created", false, true, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &mockConn{
				queryBoolFunc: func(ctx context.Context, query string, args ...any) (bool, error) {
					return tc.exists, nil
				},
			}

			created, err := manager.New(manager.FlavorMySQL).EnsureTable(context.Background(), conn, "customers", []string{"id"})
			if err != nil {
				t.Fatalf("EnsureTable() error = %v", err)
			}
			if created != tc.wantCreated {
				t.Errorf("created = %v, want %v", created, tc.wantCreated)
			}
			if len(conn.execs) != tc.wantExecs {
				t.Errorf("Expected %d statements, got %d", tc.wantExecs, len(conn.execs))
			}
		})
	}
}

func TestManager_EnsureTable_CreateFails(t *testing.T) {
	expectedErr := errors.New("disk full")
	conn := &mockConn{
		execFunc: func(ctx context.Context, query string, args ...any) error {
			return expectedErr
		},
	}

	created, err := manager.New(manager.FlavorPostgres).EnsureTable(context.Background(), conn, "customers", []string{"id"})
	if created {
		t.Error("Expected created=false on failure")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

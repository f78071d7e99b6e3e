// Package manager provides target table operations for MySQL and PostgreSQL.
//
// The manager package offers two operations used before a load:
//   - Checking whether the target table exists
//   - Creating it with one TEXT column per CSV header
//
// Identifiers are quoted per engine (pgx.Identifier.Sanitize for PostgreSQL,
// doubled backticks for MySQL), so table and column names with spaces, quotes
// or semicolons are safe.
//
// # Example Usage
//
//	mgr := manager.New(manager.FlavorMySQL)
//
//	created, err := mgr.EnsureTable(ctx, conn, "customers", []string{"id", "name"})
//
// # Thread Safety
//
// Manager is stateless and safe for concurrent use; thread safety depends on
// the injected Conn.
package manager

package rdsload

import "context"

// Connector establishes a pooled connection to the target database.
// Different implementations handle different database engines.
type Connector interface {
	// Connect builds the pool and proves it usable with a round-trip query.
	// The returned Handle must be closed by the caller.
	Connect(ctx context.Context) (Handle, error)
}

// BatchWriter appends rows to a table.
type BatchWriter interface {
	// WriteBatch inserts rows into table as one unit that commits on its own.
	// Each row must have len(columns) values. It returns the number of rows inserted.
	WriteBatch(ctx context.Context, table string, columns []string, rows [][]string) (int64, error)
}

// Handle is a pooled connection owned by one load run.
//
// Lifecycle:
//  1. Created by Connector.Connect
//  2. Used to write batches
//  3. Released via Close (idempotent) on every exit path
type Handle interface {
	BatchWriter

	// Ping checks that the pool can still reach the server.
	Ping(ctx context.Context) error

	// Close releases every pooled connection.
	Close() error
}

// TableEnsurer is implemented by handles that can create a missing target table.
type TableEnsurer interface {
	// EnsureTable creates table with one TEXT column per entry in columns when
	// it does not exist yet, and reports whether it did so.
	EnsureTable(ctx context.Context, table string, columns []string) (bool, error)
}

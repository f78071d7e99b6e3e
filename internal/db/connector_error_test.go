package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

func TestWrapConnectionError(t *testing.T) {
	tests := []struct {
		name         string
		errMsg       string
		host         string
		port         int
		database     string
		wantContains string
	}{
		{
			name:         "connection refused",
			errMsg:       "dial tcp 127.0.0.1:3306: connect: connection refused",
			host:         "127.0.0.1",
			port:         3306,
			database:     "crm",
			wantContains: "connection refused to 127.0.0.1:3306",
		},
		{
			name:         "actively refused (Windows)",
			errMsg:       "dial tcp 127.0.0.1:3306: connectex: No connection could be made because the target machine actively refused it",
			host:         "127.0.0.1",
			port:         3306,
			database:     "crm",
			wantContains: "connection refused to 127.0.0.1:3306",
		},
		{
			name:         "no such host",
			errMsg:       "dial tcp: lookup badhost.example.com: no such host",
			host:         "badhost.example.com",
			port:         3306,
			database:     "crm",
			wantContains: `cannot resolve host "badhost.example.com"`,
		},
		{
			name:         "mysql access denied",
			errMsg:       "Error 1045 (28000): Access denied for user 'loader'@'10.0.0.5' (using password: YES)",
			host:         "db.example.com",
			port:         3306,
			database:     "crm",
			wantContains: `authentication failed for user "loader" on database "crm"`,
		},
		{
			name:         "postgres password auth failed",
			errMsg:       `FATAL: password authentication failed for user "loader"`,
			host:         "localhost",
			port:         5432,
			database:     "crm",
			wantContains: `authentication failed for user "loader"`,
		},
		{
			name:         "mysql unknown database",
			errMsg:       "Error 1049 (42000): Unknown database 'nope'",
			host:         "localhost",
			port:         3306,
			database:     "nope",
			wantContains: `database "nope" does not exist`,
		},
		{
			name:         "postgres database does not exist",
			errMsg:       `database "nope" does not exist`,
			host:         "localhost",
			port:         5432,
			database:     "nope",
			wantContains: `database "nope" does not exist`,
		},
		{
			name:         "timeout",
			errMsg:       "dial tcp 10.0.0.1:3306: i/o timeout",
			host:         "10.0.0.1",
			port:         3306,
			database:     "crm",
			wantContains: "connection timed out to 10.0.0.1:3306",
		},
		{
			name:         "x509 error",
			errMsg:       "tls: failed to verify certificate: x509: certificate signed by unknown authority",
			host:         "localhost",
			port:         3306,
			database:     "crm",
			wantContains: "SSL/TLS connection error",
		},
		{
			name:         "too many connections",
			errMsg:       "Error 1040: Too many connections",
			host:         "localhost",
			port:         3306,
			database:     "busydb",
			wantContains: `too many connections to database "busydb"`,
		},
		{
			name:         "unknown error falls through to default",
			errMsg:       "something completely unexpected happened",
			host:         "localhost",
			port:         3306,
			database:     "crm",
			wantContains: "failed to connect to database",
		},
		{
			name:         "case insensitive matching",
			errMsg:       "CONNECTION REFUSED by firewall",
			host:         "firewall.host",
			port:         3307,
			database:     "crm",
			wantContains: "connection refused to firewall.host:3307",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &rdsload.LoadConfig{Host: tt.host, Port: tt.port, Database: tt.database, Username: "loader"}
			originalErr := errors.New(tt.errMsg)
			wrapped := wrapConnectionError(originalErr, cfg)

			if !strings.Contains(wrapped.Error(), tt.wantContains) {
				t.Errorf("wrapConnectionError() = %q, want it to contain %q", wrapped.Error(), tt.wantContains)
			}

			// Verify original error is wrapped (unwrappable)
			if !errors.Is(wrapped, originalErr) {
				t.Error("wrapped error does not unwrap to original error")
			}

			if !errors.Is(wrapped, rdsload.ErrDatabaseConnection) {
				t.Error("wrapped error does not chain rdsload.ErrDatabaseConnection")
			}
		})
	}
}

func TestWrapConnectionError_Interrupted(t *testing.T) {
	cfg := &rdsload.LoadConfig{Host: "db", Port: 3306, Database: "crm"}
	wrapped := wrapConnectionError(fmt.Errorf("ping: %w", context.Canceled), cfg)

	if !errors.Is(wrapped, context.Canceled) {
		t.Error("expected context.Canceled in chain")
	}
	if !errors.Is(wrapped, rdsload.ErrDatabaseConnection) {
		t.Error("expected rdsload.ErrDatabaseConnection in chain")
	}
	if !strings.Contains(wrapped.Error(), "interrupted") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// wrapConnectionError wraps raw driver errors with actionable guidance and
// rdsload.ErrDatabaseConnection.
func wrapConnectionError(err error, cfg *rdsload.LoadConfig) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("connection to %s interrupted: %w: %w", cfg.Address(), rdsload.ErrDatabaseConnection, err)
	}
	return fmt.Errorf("%w: %w", rdsload.ErrDatabaseConnection, describeConnectionError(err, cfg))
}

func describeConnectionError(err error, cfg *rdsload.LoadConfig) error {
	errStr := strings.ToLower(err.Error())
	addr := cfg.Address()

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - The database instance is stopped or still starting
  - Wrong host or port (check $DB_HOST and $DB_PORT)
  - Security group or firewall blocking the connection

Original error: %w`, addr, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - The instance endpoint is only resolvable inside its VPC

Original error: %w`, cfg.Host, err)

	case strings.Contains(errStr, "access denied") || strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`authentication failed for user "%s" on database "%s"

Possible causes:
  - The secret in $RDS_PASSWORD_SECRET_NAME holds a stale password
  - Wrong username (check $DB_USERNAME)
  - User does not have access to the database

Original error: %w`, cfg.Username, cfg.Database, err)

	case strings.Contains(errStr, "unknown database") || strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

Check $DB_NAME or create it first:
  CREATE DATABASE %s;

Original error: %w`, cfg.Database, cfg.Database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets

Original error: %w`, addr, err)

	case strings.Contains(errStr, "x509") || strings.Contains(errStr, "tls") || strings.Contains(errStr, "ssl"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - $RDS_SSL_CA_PATH does not contain the server's CA
  - Server does not accept TLS connections

Original error: %w`, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`too many connections to database "%s"

Possible causes:
  - max_connections limit reached on the server
  - Stale connections from previous runs

Original error: %w`, cfg.Database, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}

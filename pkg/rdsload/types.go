package rdsload

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Driver selects the target database engine.
type Driver string

const (
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
)

// ParseDriver maps a user-supplied name to a Driver. The empty string selects MySQL.
func ParseDriver(s string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mysql", "mariadb":
		return DriverMySQL, nil
	case "postgres", "postgresql", "pg":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported driver %q (valid: mysql, postgres): %w", s, ErrConfiguration)
	}
}

// LoadConfig contains every parameter needed for one load run.
type LoadConfig struct {
	// Host is the database server host name
	Host string

	// Port is the database server port (DefaultPort when unset)
	Port int

	// Database is the target database (schema) name
	Database string

	// Username is the database login
	Username string

	// SecretRef is the name or ARN of the secret holding the password
	SecretRef string

	// SSLCAPath optionally points at a PEM bundle used to verify the server certificate
	SSLCAPath string

	// Region is the secret store region
	Region string

	// Driver selects MySQL or PostgreSQL
	Driver Driver

	// CSVPath is the input file
	CSVPath string

	// Table is the append target
	Table string

	// ChunkSize is the number of records per insert batch
	ChunkSize int

	// Timeout bounds the whole run; zero means no limit
	Timeout time.Duration

	// CreateTable creates a missing target table with TEXT columns before writing
	CreateTable bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks that required fields are present and values are sane.
// Every failure is reported, joined into one error wrapping ErrConfiguration.
func (c *LoadConfig) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, EnvHost)
	}
	if c.Database == "" {
		missing = append(missing, EnvDatabase)
	}
	if c.Username == "" {
		missing = append(missing, EnvUsername)
	}
	if c.SecretRef == "" {
		missing = append(missing, EnvSecretRef)
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required config: %s: %w", strings.Join(missing, ", "), ErrConfiguration))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range: %w", c.Port, ErrConfiguration))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d: %w", c.ChunkSize, ErrConfiguration))
	}
	if c.Table == "" {
		errs = append(errs, fmt.Errorf("target table is required: %w", ErrConfiguration))
	}
	if c.CSVPath == "" {
		errs = append(errs, fmt.Errorf("CSV path is required: %w", ErrConfiguration))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrConfiguration))
	}

	return errors.Join(errs...)
}

// Address returns host:port, bracketing IPv6 literals.
func (c *LoadConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Credential is the resolved database password.
type Credential struct {
	Password string
}

// Validate fails when the credential cannot be used to log in.
func (c Credential) Validate() error {
	if c.Password == "" {
		return fmt.Errorf("no password found in secret: %w", ErrSecretResolution)
	}
	return nil
}

// String never reveals the password.
func (c Credential) String() string {
	if c.Password == "" {
		return "Credential(empty)"
	}
	return "Credential(****)"
}

// PoolSettings parameterizes the connection pool behind a Handle.
type PoolSettings struct {
	// PoolSize is the number of connections kept idle for reuse
	PoolSize int

	// MaxOverflow is how many connections may be opened beyond PoolSize
	MaxOverflow int

	// Recycle is the maximum lifetime of a pooled connection
	Recycle time.Duration

	// ConnectTimeout bounds a single dial
	ConnectTimeout time.Duration

	// PrePing validates a pooled connection before it is handed out
	PrePing bool
}

// DefaultPoolSettings returns the pool configuration used by the loader.
func DefaultPoolSettings() PoolSettings {
	return PoolSettings{
		PoolSize:       DefaultPoolSize,
		MaxOverflow:    DefaultMaxOverflow,
		Recycle:        DefaultPoolRecycle,
		ConnectTimeout: DefaultConnectTimeout,
		PrePing:        true,
	}
}

// MaxOpen is the hard cap on open connections.
func (p PoolSettings) MaxOpen() int {
	return p.PoolSize + p.MaxOverflow
}

// Table is a CSV file decoded into named columns and ordered rows.
// Values are passed through unchanged; an empty string stands for a missing value.
type Table struct {
	Columns []string
	Rows    [][]string

	// Checksum is the hex SHA-256 of the source bytes, empty when unknown
	Checksum string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Batches partitions the rows into consecutive chunks of at most size rows.
// The chunks share storage with t.Rows. A non-positive size yields one chunk.
func (t *Table) Batches(size int) [][][]string {
	if len(t.Rows) == 0 {
		return nil
	}
	if size <= 0 || size >= len(t.Rows) {
		return [][][]string{t.Rows}
	}

	batches := make([][][]string, 0, (len(t.Rows)+size-1)/size)
	for start := 0; start < len(t.Rows); start += size {
		end := min(start+size, len(t.Rows))
		batches = append(batches, t.Rows[start:end])
	}
	return batches
}

// Result summarizes a load run.
type Result struct {
	RunID       string
	Stage       Stage
	RowsRead    int
	RowsWritten int64
	Batches     int
	Duration    time.Duration
}

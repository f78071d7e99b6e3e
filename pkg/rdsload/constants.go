package rdsload

import "time"

// Exit codes. Every failure, including interrupts, usage errors and panics,
// maps to ExitFailure so schedulers only need to test for zero.
const (
	ExitSuccess = 0 // Every stage completed
	ExitFailure = 1 // Any stage failed or the run was interrupted
)

const (
	// DefaultPort is the MySQL port used when DB_PORT is unset or unparsable.
	DefaultPort = 3306

	// DefaultRegion is the secret store region used when none is configured.
	DefaultRegion = "us-east-1"

	// DefaultCSVPath is the input file, relative to the working directory.
	DefaultCSVPath = "customers-10000.csv"

	// DefaultTable is the append target.
	DefaultTable = "customers"

	// DefaultChunkSize is the number of CSV records written per batch.
	DefaultChunkSize = 1000

	// DefaultRunTimeout bounds an entire load, including retry waits.
	DefaultRunTimeout = 30 * time.Minute
)

const (
	// DefaultRetryMaxAttempts is the total number of attempts (first call included)
	// for secret retrieval and connection setup.
	DefaultRetryMaxAttempts = 3

	// DefaultRetryBaseDelay is the delay unit for linear backoff: the n-th retry
	// waits n * DefaultRetryBaseDelay.
	DefaultRetryBaseDelay = 5 * time.Second

	// DefaultRetryMaxDelay caps any single backoff wait.
	DefaultRetryMaxDelay = 1 * time.Minute
)

// Connection pool defaults.
const (
	DefaultPoolSize       = 5
	DefaultMaxOverflow    = 10
	DefaultPoolRecycle    = 3600 * time.Second
	DefaultConnectTimeout = 10 * time.Second
)

// Environment variable names read by the configuration resolver.
const (
	EnvHost      = "DB_HOST"
	EnvPort      = "DB_PORT"
	EnvDatabase  = "DB_NAME"
	EnvUsername  = "DB_USERNAME"
	EnvSecretRef = "RDS_PASSWORD_SECRET_NAME"
	EnvSSLCAPath = "RDS_SSL_CA_PATH"
	EnvRegion    = "AWS_REGION"
	EnvDriver    = "DB_DRIVER"
)

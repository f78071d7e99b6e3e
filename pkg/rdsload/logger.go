package rdsload

// Logger provides a pluggable structured logging interface.
// keysAndValues are alternating key/value pairs attached to the entry.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(msg string, keysAndValues ...any)

	// Info logs informational messages about normal operations.
	Info(msg string, keysAndValues ...any)

	// Warn logs recoverable problems, such as a defaulted setting or a retried call.
	Warn(msg string, keysAndValues ...any)

	// Error logs error messages.
	Error(msg string, keysAndValues ...any)

	// With returns a Logger that adds keysAndValues to every entry.
	With(keysAndValues ...any) Logger
}

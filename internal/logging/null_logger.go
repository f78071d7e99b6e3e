package logging

import "github.com/vvka-141/rdsload/pkg/rdsload"

// NullLogger is a no-op logger that discards all log messages.
// Safe for concurrent use by multiple goroutines.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Verbose is a no-op.
func (l *NullLogger) Verbose(msg string, keysAndValues ...any) {}

// Info is a no-op.
func (l *NullLogger) Info(msg string, keysAndValues ...any) {}

// Warn is a no-op.
func (l *NullLogger) Warn(msg string, keysAndValues ...any) {}

// Error is a no-op.
func (l *NullLogger) Error(msg string, keysAndValues ...any) {}

// With returns the same NullLogger.
func (l *NullLogger) With(keysAndValues ...any) rdsload.Logger { return l }

var (
	_ rdsload.Logger = (*NullLogger)(nil)
	_ rdsload.Logger = (*ConsoleLogger)(nil)
)

package logging

import (
	"io"
	"os"

	"github.com/vvka-141/rdsload/pkg/rdsload"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConsoleLogger writes human-readable structured entries to stderr.
// Verbose entries are emitted at debug level and only when verbose is enabled.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	sugar *zap.SugaredLogger
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, verbose bool) *ConsoleLogger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.CallerKey = zapcore.OmitKey
	encoderCfg.StacktraceKey = zapcore.OmitKey

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	return &ConsoleLogger{sugar: zap.New(core).Sugar()}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(msg string, keysAndValues ...any) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// With returns a child logger that attaches keysAndValues to every entry.
func (l *ConsoleLogger) With(keysAndValues ...any) rdsload.Logger {
	return &ConsoleLogger{sugar: l.sugar.With(keysAndValues...)}
}

// Sync flushes buffered entries.
func (l *ConsoleLogger) Sync() error {
	return l.sugar.Sync()
}

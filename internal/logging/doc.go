// Package logging provides concrete implementations of the rdsload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: zap console encoder writing to stderr (or any io.Writer)
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging

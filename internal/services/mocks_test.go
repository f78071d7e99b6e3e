package services

import (
	"context"
	"errors"
	"sync"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

type mockSource struct {
	cfg *rdsload.LoadConfig
	err error
}

func (m *mockSource) Resolve() (*rdsload.LoadConfig, error) {
	return m.cfg, m.err
}

type mockCredentials struct {
	cred  rdsload.Credential
	err   error
	calls int
	ref   string
	reg   string
}

func (m *mockCredentials) Resolve(_ context.Context, secretRef, region string) (rdsload.Credential, error) {
	m.calls++
	m.ref, m.reg = secretRef, region
	return m.cred, m.err
}

type mockReader struct {
	table *rdsload.Table
	err   error
	path  string
}

func (m *mockReader) ReadTable(path string) (*rdsload.Table, error) {
	m.path = path
	return m.table, m.err
}

// mockHandle records every batch. failAt is the 1-based batch that fails.
type mockHandle struct {
	mu       sync.Mutex
	batches  [][][]string
	failAt   int
	writeErr error
	closed   int
	closeErr error
}

func (m *mockHandle) WriteBatch(_ context.Context, _ string, _ []string, rows [][]string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAt == len(m.batches)+1 {
		return 0, m.writeErr
	}
	m.batches = append(m.batches, rows)
	return int64(len(rows)), nil
}

func (m *mockHandle) Ping(context.Context) error { return nil }

func (m *mockHandle) Close() error {
	m.closed++
	return m.closeErr
}

type mockEnsuringHandle struct {
	mockHandle
	created   bool
	ensureErr error
	ensured   []string
}

func (m *mockEnsuringHandle) EnsureTable(_ context.Context, table string, columns []string) (bool, error) {
	m.ensured = append(m.ensured, table)
	return m.created, m.ensureErr
}

type mockConnector struct {
	handle rdsload.Handle
	err    error
	calls  int
}

func (m *mockConnector) Connect(context.Context) (rdsload.Handle, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.handle, nil
}

func factoryFor(c *mockConnector) ConnectorFactory {
	return func(*rdsload.LoadConfig, rdsload.Credential, rdsload.PoolSettings, rdsload.Logger) (rdsload.Connector, error) {
		return c, nil
	}
}

func failingFactory(err error) ConnectorFactory {
	return func(*rdsload.LoadConfig, rdsload.Credential, rdsload.PoolSettings, rdsload.Logger) (rdsload.Connector, error) {
		return nil, err
	}
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

// recordingLogger captures entries; loggers derived via With share the sink.
type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	fields  []any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recordingLogger) record(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fields := map[string]any{}
	all := append(append([]any{}, l.fields...), kv...)
	for i := 0; i+1 < len(all); i += 2 {
		if k, ok := all[i].(string); ok {
			fields[k] = all[i+1]
		}
	}
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Verbose(msg string, kv ...any) { l.record("verbose", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...any)    { l.record("info", msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...any)    { l.record("warn", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...any)   { l.record("error", msg, kv) }

func (l *recordingLogger) With(kv ...any) rdsload.Logger {
	return &recordingLogger{mu: l.mu, entries: l.entries, fields: append(append([]any{}, l.fields...), kv...)}
}

func (l *recordingLogger) byLevel(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range *l.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

func (l *recordingLogger) byMessage(msg string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range *l.entries {
		if e.msg == msg {
			out = append(out, e)
		}
	}
	return out
}

var errBoom = errors.New("boom")

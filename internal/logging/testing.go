// pattern: Imperative Shell

package logging

import (
	"log/slog"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestLogManager logs every scope at debug level into a channel only, so
// tests can assert on what a component logged.
type TestLogManager struct {
	base  *zap.Logger
	level zap.AtomicLevel
	sink  *ChannelSink

	mu      sync.Mutex
	loggers map[string]*ScopedLogger
}

// NewTestLogManager returns a manager buffering up to bufferSize entries.
func NewTestLogManager(bufferSize int) *TestLogManager {
	sink := NewChannelSink(bufferSize)
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	return &TestLogManager{
		base:    zap.New(zapcore.NewCore(jsonEncoder(), sink, level)),
		level:   level,
		sink:    sink,
		loggers: make(map[string]*ScopedLogger),
	}
}

// For returns the cached logger for scope.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[scope]; ok {
		return l
	}
	l := &ScopedLogger{
		slog:  slog.New(newZapHandler(m.base.Named(scope), m.level)),
		scope: scope,
	}
	m.loggers[scope] = l
	return l
}

// Channel returns the captured entries.
func (m *TestLogManager) Channel() <-chan LogEntry {
	return m.sink.Entries()
}

// Close closes the channel.
func (m *TestLogManager) Close() error {
	return m.sink.Close()
}

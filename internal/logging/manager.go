// pattern: Imperative Shell

package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config configures a Manager.
type Config struct {
	FilePath       string // rotated JSON log file
	MaxSizeMB      int    // rotate after this many megabytes (default 10)
	MaxBackups     int    // rotated files to keep (default 5)
	MaxAgeDays     int    // days to keep rotated files (default 7)
	Level          string // debug, info, warn or error
	ChannelBufSize int    // entries buffered for the TUI log panel (default 500)
}

func (c *Config) applyDefaults() {
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 10
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 5
	}
	if c.MaxAgeDays == 0 {
		c.MaxAgeDays = 7
	}
	if c.ChannelBufSize == 0 {
		c.ChannelBufSize = 500
	}
}

// Manager writes every scope to a rotated file and to an in-memory channel
// the TUI drains for its log panel.
type Manager struct {
	base  *zap.Logger
	level zap.AtomicLevel
	sink  *ChannelSink
	file  *lumberjack.Logger

	mu      sync.RWMutex
	loggers map[string]*ScopedLogger
}

// NewManager opens the log file and builds the shared zap core.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, errors.New("logging: FilePath is required")
	}
	cfg.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	sink := NewChannelSink(cfg.ChannelBufSize)
	level := zap.NewAtomicLevelAt(parseZapLevel(cfg.Level))

	core := zapcore.NewTee(
		zapcore.NewCore(jsonEncoder(), zapcore.AddSync(file), level),
		zapcore.NewCore(jsonEncoder(), sink, level),
	)

	return &Manager{
		base:    zap.New(core),
		level:   level,
		sink:    sink,
		file:    file,
		loggers: make(map[string]*ScopedLogger),
	}, nil
}

// jsonEncoder is the encoder shared by the file and the channel; the sink
// parses the same JSON back into LogEntry values.
func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.EpochTimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// For returns the cached logger for scope, creating it on first use.
func (m *Manager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	l, ok := m.loggers[scope]
	m.mu.RUnlock()
	if ok {
		return l
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[scope]; ok {
		return l
	}
	l = &ScopedLogger{
		slog:  slog.New(newZapHandler(m.base.Named(scope), m.level)),
		scope: scope,
	}
	m.loggers[scope] = l
	return l
}

// SetLevel changes the minimum level of every scope at once. Unknown
// names select info.
func (m *Manager) SetLevel(level string) {
	m.level.SetLevel(parseZapLevel(level))
}

// Level returns the current minimum level name.
func (m *Manager) Level() string {
	return m.level.Level().String()
}

// Entries returns the channel the TUI drains.
func (m *Manager) Entries() <-chan LogEntry {
	return m.sink.Entries()
}

// Sync flushes buffered output.
func (m *Manager) Sync() error {
	return m.base.Sync()
}

// Close flushes and releases the file and the channel.
func (m *Manager) Close() error {
	_ = m.Sync()
	_ = m.sink.Close()
	return m.file.Close()
}

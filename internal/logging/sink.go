// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"
)

var errSinkClosed = errors.New("logging: write to closed channel sink")

// ChannelSink is a zapcore.WriteSyncer that decodes each JSON line zap
// writes into a LogEntry and queues it on a bounded channel. A full
// channel drops its oldest entry so logging never blocks the UI loop.
type ChannelSink struct {
	mu      sync.Mutex
	entries chan LogEntry
	closed  bool
	dropped int
}

// NewChannelSink returns a sink buffering up to size entries.
func NewChannelSink(size int) *ChannelSink {
	if size < 1 {
		size = 1
	}
	return &ChannelSink{entries: make(chan LogEntry, size)}
}

// Write queues one encoded entry. Lines that are not JSON are discarded
// without failing the write.
func (s *ChannelSink) Write(p []byte) (int, error) {
	entry, err := decodeEntry(p)
	if err != nil {
		return len(p), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errSinkClosed
	}

	for {
		select {
		case s.entries <- entry:
			return len(p), nil
		default:
		}
		select {
		case <-s.entries:
			s.dropped++
		default:
		}
	}
}

// Sync is a no-op.
func (s *ChannelSink) Sync() error {
	return nil
}

// Close closes the channel. Later calls do nothing.
func (s *ChannelSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	return nil
}

// Entries returns the queue.
func (s *ChannelSink) Entries() <-chan LogEntry {
	return s.entries
}

// Dropped returns how many entries were discarded because the queue was
// full.
func (s *ChannelSink) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func decodeEntry(data []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Scope:     "app",
		Fields:    make(map[string]any),
	}
	for k, v := range raw {
		switch k {
		case "msg":
			entry.Message, _ = v.(string)
		case "level":
			if s, ok := v.(string); ok {
				entry.Level = ParseLevel(s)
			}
		case "logger":
			if s, ok := v.(string); ok && s != "" {
				entry.Scope = s
			}
		case "ts":
			if ts, ok := v.(float64); ok {
				sec, frac := math.Modf(ts)
				entry.Timestamp = time.Unix(int64(sec), int64(frac*1e9))
			}
		case "caller", "stacktrace":
		default:
			entry.Fields[k] = v
		}
	}
	return entry, nil
}

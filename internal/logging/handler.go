// pattern: Imperative Shell

package logging

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapHandler is a slog.Handler that writes through a named zap logger.
// Groups become dotted key prefixes; the zap name stays the scope.
type zapHandler struct {
	zap    *zap.Logger
	level  zap.AtomicLevel
	fields []zap.Field
	prefix string
}

func newZapHandler(z *zap.Logger, level zap.AtomicLevel) *zapHandler {
	return &zapHandler{zap: z, level: level}
}

func (h *zapHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.level.Enabled(toZapLevel(level))
}

func (h *zapHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, len(h.fields)+r.NumAttrs())
	fields = append(fields, h.fields...)
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.field(a))
		return true
	})

	if ce := h.zap.Check(toZapLevel(r.Level), r.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *zapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = make([]zap.Field, 0, len(h.fields)+len(attrs))
	next.fields = append(next.fields, h.fields...)
	for _, a := range attrs {
		next.fields = append(next.fields, h.field(a))
	}
	return &next
}

func (h *zapHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *zapHandler) field(a slog.Attr) zap.Field {
	key := a.Key
	if h.prefix != "" {
		key = h.prefix + key
	}
	v := a.Value.Resolve()
	if err, ok := v.Any().(error); ok {
		return zap.String(key, err.Error())
	}
	return zap.Any(key, v.Any())
}

func toZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// parseZapLevel maps "debug", "info", "warn" and "error" onto zap levels,
// defaulting to info.
func parseZapLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

package logging

import (
	"fmt"
	"strconv"
)

// DefaultMaxValueLength bounds rendered field values when no limit
// is configured.
const DefaultMaxValueLength = 200

// TruncatingLogger is a decorator that shortens long field values
// before passing them on. Collection elements can be arbitrarily
// large and would otherwise flood test output.
type TruncatingLogger struct {
	inner Logger
	max   int
}

// NewTruncatingLogger wraps inner. A non-positive max selects
// DefaultMaxValueLength.
func NewTruncatingLogger(inner Logger, max int) *TruncatingLogger {
	if max <= 0 {
		max = DefaultMaxValueLength
	}
	return &TruncatingLogger{inner: inner, max: max}
}

// Truncate renders v with %v and cuts it to max bytes, noting how
// much was dropped.
func Truncate(v any, max int) string {
	s := fmt.Sprintf("%v", v)
	if len(s) <= max {
		return s
	}
	return s[:max] + "... (truncated " +
		strconv.Itoa(len(s)-max) + " chars)"
}

func (t *TruncatingLogger) shorten(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		switch f.Value.(type) {
		case nil, bool, int, int64, float64:
			out[i] = f
		default:
			out[i] = Field{Key: f.Key, Value: Truncate(f.Value, t.max)}
		}
	}
	return out
}

// Info logs a truncated informational message.
func (t *TruncatingLogger) Info(msg string, fields ...Field) {
	t.inner.Info(msg, t.shorten(fields)...)
}

// Warn logs a truncated warning message.
func (t *TruncatingLogger) Warn(msg string, fields ...Field) {
	t.inner.Warn(msg, t.shorten(fields)...)
}

// Error logs a truncated error message.
func (t *TruncatingLogger) Error(msg string, fields ...Field) {
	t.inner.Error(msg, t.shorten(fields)...)
}

// Debug logs a truncated debug message.
func (t *TruncatingLogger) Debug(msg string, fields ...Field) {
	t.inner.Debug(msg, t.shorten(fields)...)
}

// WithFields returns a TruncatingLogger wrapping a new inner
// logger with the shortened fields applied.
func (t *TruncatingLogger) WithFields(fields ...Field) Logger {
	return &TruncatingLogger{
		inner: t.inner.WithFields(t.shorten(fields)...),
		max:   t.max,
	}
}

// Close closes the inner logger.
func (t *TruncatingLogger) Close() error {
	return t.inner.Close()
}

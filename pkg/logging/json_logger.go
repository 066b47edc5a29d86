package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// jsonMarshal is a variable for dependency injection in tests.
var jsonMarshal = json.Marshal

// LogEntry represents a single JSON log entry.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LoggerConfig configures the JSONLogger.
type LoggerConfig struct {
	// OutputPath is the file entries are appended to. Empty
	// means stderr.
	OutputPath string
	Level      LogLevel
	Fields     map[string]any
}

// JSONLogger implements Logger with JSON Lines output, suited to
// CI systems that collect structured test logs.
type JSONLogger struct {
	mu     *sync.Mutex
	output io.Writer
	owned  bool
	level  LogLevel
	fields map[string]any
	closed *bool
}

// NewJSONLogger creates a new JSON logger.
func NewJSONLogger(config LoggerConfig) (*JSONLogger, error) {
	logger := &JSONLogger{
		mu:     &sync.Mutex{},
		output: os.Stderr,
		level:  config.Level,
		fields: mergeFields(config.Fields),
		closed: new(bool),
	}

	if config.OutputPath != "" {
		dir := filepath.Dir(config.OutputPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf(
				"failed to create log directory: %w", err,
			)
		}
		file, err := os.OpenFile(
			config.OutputPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0644,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to open log file: %w", err,
			)
		}
		logger.output = file
		logger.owned = true
	}

	return logger, nil
}

// NewJSONLoggerTo creates a JSON logger on an existing writer.
// The writer is not closed by Close.
func NewJSONLoggerTo(w io.Writer, level LogLevel) *JSONLogger {
	return &JSONLogger{
		mu:     &sync.Mutex{},
		output: w,
		level:  level,
		fields: make(map[string]any),
		closed: new(bool),
	}
}

func (l *JSONLogger) log(
	level LogLevel, msg string, fields ...Field,
) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if *l.closed {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Fields:    mergeFields(l.fields, fields...),
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return
	}

	fmt.Fprintln(l.output, string(data))
}

// Info logs an informational message.
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields...)
}

// Debug logs a debug message.
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields...)
}

// WithFields returns a new Logger with additional default
// fields. Both loggers share the same output.
func (l *JSONLogger) WithFields(fields ...Field) Logger {
	return &JSONLogger{
		mu:     l.mu,
		output: l.output,
		level:  l.level,
		fields: mergeFields(l.fields, fields...),
		closed: l.closed,
	}
}

// Close closes the output file when the logger opened it.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if *l.closed {
		return nil
	}
	*l.closed = true

	if closer, ok := l.output.(io.Closer); ok && l.owned {
		return closer.Close()
	}
	return nil
}

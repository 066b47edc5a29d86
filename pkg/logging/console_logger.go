package logging

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// ConsoleLogger writes colored, human-readable lines. It is the
// default destination for advisories during `go test`.
type ConsoleLogger struct {
	mu     *sync.Mutex
	output io.Writer
	level  LogLevel
	color  bool
	fields map[string]any
}

// NewConsoleLogger creates a console logger writing to stderr.
// When verbose is true, debug messages are emitted.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}
	return NewConsoleLoggerTo(os.Stderr, level, true)
}

// NewConsoleLoggerTo creates a console logger with an explicit
// writer, threshold and color setting.
func NewConsoleLoggerTo(
	w io.Writer, level LogLevel, color bool,
) *ConsoleLogger {
	return &ConsoleLogger{
		mu:     &sync.Mutex{},
		output: w,
		level:  level,
		color:  color,
		fields: make(map[string]any),
	}
}

func (c *ConsoleLogger) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + colorReset
}

func (c *ConsoleLogger) log(
	level LogLevel, color, msg string, fields ...Field,
) {
	if level < c.level {
		return
	}

	merged := mergeFields(c.fields, fields...)

	var fieldStr string
	if len(merged) > 0 {
		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, merged[k]))
		}
		fieldStr = " " + c.paint(
			colorGray, "{"+strings.Join(parts, ", ")+"}",
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(
		c.output, "%s [%s] %s%s\n",
		c.paint(colorGray, time.Now().Format("15:04:05")),
		c.paint(color, fmt.Sprintf("%-5s", level.String())),
		msg, fieldStr,
	)
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, colorBlue, msg, fields...)
}

// Warn logs a warning message.
func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, colorYellow, msg, fields...)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, colorRed, msg, fields...)
}

// Debug logs a debug message.
func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	c.log(LevelDebug, colorGray, msg, fields...)
}

// WithFields returns a new Logger with additional default
// fields. The writer and its lock are shared.
func (c *ConsoleLogger) WithFields(fields ...Field) Logger {
	return &ConsoleLogger{
		mu:     c.mu,
		output: c.output,
		level:  c.level,
		color:  c.color,
		fields: mergeFields(c.fields, fields...),
	}
}

// Close is a no-op for ConsoleLogger.
func (c *ConsoleLogger) Close() error {
	return nil
}

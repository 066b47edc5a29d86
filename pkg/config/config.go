// Package config loads the settings of the assertion helpers from
// YAML (or JSON) files and ITERABLES_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.iterables/pkg/logging"
)

// Log formats accepted in LogFormat.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Environment variables read by ApplyEnv.
const (
	EnvProbeLimit     = "ITERABLES_PROBE_LIMIT"
	EnvWarnEmpty      = "ITERABLES_WARN_EMPTY"
	EnvLogLevel       = "ITERABLES_LOG_LEVEL"
	EnvLogFormat      = "ITERABLES_LOG_FORMAT"
	EnvLogPath        = "ITERABLES_LOG_PATH"
	EnvMaxValueLength = "ITERABLES_MAX_VALUE_LENGTH"
)

// Config holds the settings of an assertion Checker.
type Config struct {
	// ProbeLimit is how many elements Single and Empty count
	// exactly on collections that have to be walked.
	ProbeLimit int `yaml:"probe_limit" json:"probe_limit"`

	// WarnOnEmptyExpectations enables the advisory logged when
	// Collection is called without expectations.
	WarnOnEmptyExpectations bool `yaml:"warn_on_empty_expectations" json:"warn_on_empty_expectations"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format" json:"log_format"`

	// LogPath, when set, sends JSON logs to a file instead of
	// stderr. Ignored for console output.
	LogPath string `yaml:"log_path" json:"log_path"`

	// MaxValueLength bounds rendered element values in logs.
	MaxValueLength int `yaml:"max_value_length" json:"max_value_length"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ProbeLimit:              2,
		WarnOnEmptyExpectations: true,
		LogLevel:                "warn",
		LogFormat:               FormatConsole,
		MaxValueLength:          logging.DefaultMaxValueLength,
	}
}

// Load reads a config file over the defaults. JSON files work too
// since YAML is a superset of JSON.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf(
			"failed to read config file %s: %w", path, err,
		)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ITERABLES_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvProbeLimit); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProbeLimit, err)
		}
		c.ProbeLimit = n
	}
	if v, ok := os.LookupEnv(EnvWarnEmpty); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWarnEmpty, err)
		}
		c.WarnOnEmptyExpectations = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		c.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvLogPath); ok {
		c.LogPath = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvMaxValueLength); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxValueLength, err)
		}
		c.MaxValueLength = n
	}
	return c.Validate()
}

// Validate checks field ranges and names.
func (c Config) Validate() error {
	if c.ProbeLimit < 1 {
		return fmt.Errorf(
			"probe_limit must be at least 1, got %d", c.ProbeLimit,
		)
	}
	if c.MaxValueLength < 0 {
		return fmt.Errorf(
			"max_value_length must not be negative, got %d",
			c.MaxValueLength,
		)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case FormatConsole, FormatJSON, "":
	default:
		return fmt.Errorf("unknown log format: %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the logger described by c. Element values are
// truncated to MaxValueLength.
func NewLogger(c Config) (logging.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, _ := logging.ParseLevel(c.LogLevel)

	var inner logging.Logger
	switch c.LogFormat {
	case FormatJSON:
		l, err := logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: c.LogPath,
			Level:      level,
		})
		if err != nil {
			return nil, err
		}
		inner = l
	default:
		inner = logging.NewConsoleLoggerTo(os.Stderr, level, false)
	}

	return logging.NewTruncatingLogger(inner, c.MaxValueLength), nil
}

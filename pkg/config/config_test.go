package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.iterables/pkg/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2, cfg.ProbeLimit)
	assert.True(t, cfg.WarnOnEmptyExpectations)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, FormatConsole, cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		check   func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name: "empty keeps defaults",
			data: "",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "yaml overrides",
			data: "probe_limit: 5\nwarn_on_empty_expectations: false\nlog_level: debug\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 5, cfg.ProbeLimit)
				assert.False(t, cfg.WarnOnEmptyExpectations)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, FormatConsole, cfg.LogFormat)
			},
		},
		{
			name: "json document",
			data: `{"log_format": "json", "max_value_length": 40}`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, FormatJSON, cfg.LogFormat)
				assert.Equal(t, 40, cfg.MaxValueLength)
				assert.Equal(t, 2, cfg.ProbeLimit)
			},
		},
		{
			name:    "unknown key",
			data:    "probe_limt: 3\n",
			wantErr: "failed to parse config",
		},
		{
			name:    "zero limit",
			data:    "probe_limit: 0\n",
			wantErr: "probe_limit must be at least 1",
		},
		{
			name:    "bad level",
			data:    "log_level: loud\n",
			wantErr: "unknown log level",
		},
		{
			name:    "bad format",
			data:    "log_format: xml\n",
			wantErr: "unknown log format",
		},
		{
			name:    "negative value length",
			data:    "max_value_length: -1\n",
			wantErr: "max_value_length must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iterables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("probe_limit: 4\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ProbeLimit)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("probe_limit: [\n"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvProbeLimit, " 7 ")
	t.Setenv(EnvWarnEmpty, "false")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvLogPath, "/tmp/iterables.log")
	t.Setenv(EnvMaxValueLength, "64")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 7, cfg.ProbeLimit)
	assert.False(t, cfg.WarnOnEmptyExpectations)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
	assert.Equal(t, "/tmp/iterables.log", cfg.LogPath)
	assert.Equal(t, 64, cfg.MaxValueLength)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvProbeLimit, "many"},
		{EnvProbeLimit, "0"},
		{EnvWarnEmpty, "sometimes"},
		{EnvMaxValueLength, "long"},
		{EnvLogLevel, "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := Default()
			assert.Error(t, cfg.ApplyEnv())
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.IsType(t, &logging.TruncatingLogger{}, logger)

	path := filepath.Join(t.TempDir(), "logs", "iterables.log")
	cfg.LogFormat = FormatJSON
	cfg.LogPath = path
	logger, err = NewLogger(cfg)
	require.NoError(t, err)

	logger.Warn("advice", logging.CategoryField("user"))
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"user"`)

	cfg.ProbeLimit = 0
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}

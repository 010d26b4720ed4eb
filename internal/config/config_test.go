package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1, cfg.DefaultDays)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, XDGDataDir(), cfg.HistoryDir)
	assert.False(t, cfg.Verbose)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "empty API URL", modify: func(c *Config) { c.APIBaseURL = "" }, want: ErrNoAPIBaseURL},
		{name: "relative API URL", modify: func(c *Config) { c.APIBaseURL = "/api" }, want: ErrInvalidAPIBaseURL},
		{name: "ftp API URL", modify: func(c *Config) { c.APIBaseURL = "ftp://example.com" }, want: ErrInvalidAPIBaseURL},
		{name: "negative timeout", modify: func(c *Config) { c.RequestTimeout = -time.Second }, want: ErrInvalidTimeout},
		{name: "zero days", modify: func(c *Config) { c.DefaultDays = 0 }, want: ErrInvalidDays},
		{name: "too many days", modify: func(c *Config) { c.DefaultDays = 31 }, want: ErrInvalidDays},
		{name: "negative history", modify: func(c *Config) { c.HistoryLimit = -1 }, want: ErrInvalidHistoryLimit},
		{name: "bad log format", modify: func(c *Config) { c.LogFormat = "xml" }, want: ErrInvalidLogFormat},
		{name: "zero timeout is allowed", modify: func(c *Config) { c.RequestTimeout = 0 }, want: nil},
		{name: "https is allowed", modify: func(c *Config) { c.APIBaseURL = "https://fire.example.vn" }, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("file overrides only the keys it sets", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "api_base_url: https://fire.example.vn\napi_key: secret\nrequest_timeout: 45s\ndefault_days: 7\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://fire.example.vn", cfg.APIBaseURL)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 7, cfg.DefaultDays)
		assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
		assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_days: [1, 2"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	err := cfg.LoadFile(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

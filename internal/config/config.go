// Package config holds the runtime configuration of the dashboard and CLI.
package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "fireguard"

	// DefaultAPIBaseURL is the address of a locally running prediction API.
	DefaultAPIBaseURL = "http://localhost:8000"

	// DefaultListenAddr is where the dashboard server listens.
	DefaultListenAddr = ":8080"

	// DefaultRequestTimeout bounds a single call to the prediction API.
	// Zero disables the bound.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultDays is the hotspot window loaded when the map opens.
	DefaultDays = 1

	// DefaultHistoryLimit is how many past predictions the predict tab lists.
	DefaultHistoryLimit = 10

	// DefaultWatchInterval is the refresh interval of `hotspots --watch`.
	DefaultWatchInterval = 300 * time.Second

	// MinWatchInterval is the lower bound enforced on watch intervals.
	MinWatchInterval = 30 * time.Second
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration options. It is populated from the config
// file, then from CLI flags, and passed down explicitly.
type Config struct {
	// APIBaseURL is the root of the prediction API, e.g. http://host:8000.
	APIBaseURL string `yaml:"api_base_url"`

	// APIKey is sent as X-API-Key when set. Never logged.
	APIKey string `yaml:"api_key"`

	// ListenAddr is the dashboard server address.
	ListenAddr string `yaml:"listen_addr"`

	// RequestTimeout bounds each API call. Zero means no timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// DefaultDays is the initial hotspot window of the map tab.
	DefaultDays int `yaml:"default_days"`

	// HistoryDir is where the prediction history database lives. Empty
	// disables history.
	HistoryDir string `yaml:"history_dir"`

	// HistoryLimit is the number of recent predictions shown.
	HistoryLimit int `yaml:"history_limit"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		ListenAddr:     DefaultListenAddr,
		RequestTimeout: DefaultRequestTimeout,
		DefaultDays:    DefaultDays,
		HistoryDir:     XDGDataDir(),
		HistoryLimit:   DefaultHistoryLimit,
		LogFormat:      LogFormatText,
	}
}

// XDGDataDir returns the XDG data directory, e.g. ~/.local/share/fireguard.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory, e.g. ~/.config/fireguard.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrNoAPIBaseURL
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIBaseURL
	}

	if c.RequestTimeout < 0 {
		return ErrInvalidTimeout
	}

	if c.DefaultDays < 1 || c.DefaultDays > 30 {
		return ErrInvalidDays
	}

	if c.HistoryLimit < 0 {
		return ErrInvalidHistoryLimit
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the per-directory configuration file name.
const DefaultConfigFile = ".fireguard"

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

// FindConfigFile searches for the configuration file in this order:
//  1. configPath, if given
//  2. .fireguard in the current directory
//  3. config.yaml in the XDG config directory
//
// It returns an empty string if nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}

// Load builds a Config from defaults and the configuration file. A missing
// file is only an error when configPath was given explicitly.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, ErrConfigNotFound
		}
		return cfg, nil
	}

	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package config loads the flowdeck configuration file.
//
// Config is stored at $XDG_CONFIG_HOME/flowdeck/config.yaml (defaults
// to ~/.config/flowdeck/config.yaml). The GEMINI_API_KEY environment
// variable always wins over the file's api_key.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the advisor credential and optional defaults.
type Config struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty"`
	Brief  string `yaml:"brief,omitempty"` // default campaign brief path
}

// Path returns the config file location. It respects XDG_CONFIG_HOME,
// falling back to ~/.config/flowdeck/config.yaml.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "flowdeck", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowdeck", "config.yaml")
}

// Load reads the config file. If the file does not exist, an empty
// Config is returned (not an error).
func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating directories as needed.
func (c *Config) Save() error {
	p := Path()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Credential resolves the advisor API key: GEMINI_API_KEY beats the
// file's api_key; an empty value in either place counts as absent.
func (c *Config) Credential() string {
	if env := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); env != "" {
		return env
	}
	return strings.TrimSpace(c.APIKey)
}

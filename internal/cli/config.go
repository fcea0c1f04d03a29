// Package cli implements catalogctl, a terminal browser for the catalog API.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

// Config is read from a TOML file; flags override it.
type Config struct {
	BaseURL  string  `toml:"base_url"`
	Token    string  `toml:"token"`
	PageSize int     `toml:"page_size"`
	Rate     float64 `toml:"rate"`
	LogLevel string  `toml:"log_level"`
}

// DefaultConfigPath is $XDG_CONFIG_HOME/catalogctl/config.toml, or the
// ~/.config equivalent.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "catalogctl", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "catalogctl", "config.toml")
}

// LoadConfig reads path. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{BaseURL: defaultBaseURL, LogLevel: "warn"}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg, nil
}

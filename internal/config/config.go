// Package config handles configuration loading from TOML files and
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	UI     UIConfig     `toml:"ui"`
	Editor EditorConfig `toml:"editor"`
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme used by the markup source view.
	// Defaults to "vulcan" if unset.
	SyntaxTheme string `toml:"syntax_theme"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "vulcan" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return "vulcan"
	}
	return u.SyntaxTheme
}

// EditorConfig holds editing-behavior settings.
type EditorConfig struct {
	// RefreshDebounceMs coalesces overlay refresh triggers to the
	// trailing event within this window.
	RefreshDebounceMs int `toml:"refresh_debounce_ms"`
}

// RefreshDebounceOrDefault returns the configured debounce or 150 ms if unset.
func (e EditorConfig) RefreshDebounceOrDefault() time.Duration {
	if e.RefreshDebounceMs <= 0 {
		return 150 * time.Millisecond
	}
	return time.Duration(e.RefreshDebounceMs) * time.Millisecond
}

// StoreConfig holds document-store settings.
type StoreConfig struct {
	Path string `toml:"path"`
}

// PathOrDefault returns the configured database path or the default
// under the data directory.
func (s StoreConfig) PathOrDefault() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "documents.db"), nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// LevelOrDefault returns the configured level or "warn" if unset.
func (l LogConfig) LevelOrDefault() string {
	if l.Level == "" {
		return "warn"
	}
	return l.Level
}

// PathOrDefault returns the configured log path or the default under
// the data directory. A TUI owns the terminal, so logs go to a file.
func (l LogConfig) PathOrDefault() (string, error) {
	if l.Path != "" {
		return l.Path, nil
	}
	dir, err := EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tabulon.log"), nil
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.RefreshDebounceMs < 0 {
		errs = append(errs, fmt.Errorf("editor.refresh_debounce_ms=%d must not be negative", c.Editor.RefreshDebounceMs))
	}
	switch c.Log.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level=%q is not a known level", c.Log.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"TABULON_STORE_PATH", func(v string) {
			if v != "" {
				cfg.Store.Path = v
			}
		}},
		{"TABULON_SYNTAX_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the tabulon data directory (~/.config/tabulon).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tabulon"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

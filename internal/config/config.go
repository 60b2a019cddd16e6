package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/lfm/pkg/lfm"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Config is the optional user configuration. Pointer fields distinguish
// "not set" from an explicit false.
type Config struct {
	CacheFile     string   `yaml:"cache_file,omitempty"`
	ShowHidden    *bool    `yaml:"show_hidden,omitempty"`
	ExcludedRoots []string `yaml:"excluded_roots,omitempty"`
	ConfirmDelete *bool    `yaml:"confirm_delete,omitempty"`
	LogFile       string   `yaml:"log_file,omitempty"`
}

const ConfigFileName = "config.yaml"

// DefaultPath returns <UserConfigDir>/lfm/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, lfm.AppDirName, ConfigFileName), nil
}

// DefaultCacheFile returns <UserCacheDir>/lfm/sizecache.bin.
func DefaultCacheFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return filepath.Join(dir, lfm.AppDirName, lfm.CacheFileName), nil
}

// DefaultLogFile returns $XDG_STATE_HOME/lfm/lfm.log, falling back to
// ~/.local/state when XDG_STATE_HOME is unset.
func DefaultLogFile() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine state directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, lfm.AppDirName, "lfm.log"), nil
}

// Load reads and validates the config file at path. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", lfm.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", lfm.ErrInvalidConfig, path, err)
	}
	return &cfg, nil
}

// Validate checks field values that YAML typing cannot.
func (c *Config) Validate() error {
	for _, root := range c.ExcludedRoots {
		if !filepath.IsAbs(root) {
			return fmt.Errorf("excluded_roots: %q is not an absolute path", root)
		}
	}
	return nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

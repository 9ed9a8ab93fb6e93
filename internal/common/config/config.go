package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCommand is the release-upgrade query tool
	DefaultCommand = "do-release-upgrade"
	// DefaultTimeoutSeconds bounds a single query
	DefaultTimeoutSeconds = 1.5
	// MinTimeoutSeconds is the shortest query timeout, one millisecond
	MinTimeoutSeconds = 0.001
	// MaxTimeoutSeconds caps the query timeout; the query runs at shell start
	MaxTimeoutSeconds = 300
	// StateFileName is the state file created beside the executable
	StateFileName = "release-upgrade-state.toml"
)

var (
	ErrEmptyCommand   = errors.New("query command is not configured")
	ErrInvalidTimeout = errors.New("query timeout must be between 1ms and 300s")
)

// DefaultArgs asks the query tool to check only, never to upgrade
var DefaultArgs = []string{"-c"}

// Config represents the application configuration
type Config struct {
	Query QueryConfig `yaml:"query"`
	State StateConfig `yaml:"state"`
}

// QueryConfig holds settings for the release-upgrade query
type QueryConfig struct {
	Command        string   `yaml:"command"`
	Args           []string `yaml:"args"`
	TimeoutSeconds float64  `yaml:"timeout_seconds"`
}

// StateConfig holds settings for the persisted notification state
type StateConfig struct {
	Path string `yaml:"path"` // Empty means beside the executable
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Query: QueryConfig{
			Command:        DefaultCommand,
			Args:           append([]string(nil), DefaultArgs...),
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/upgrade-notifier/config.yaml (XDG standard - priority)
// 2. ~/.upgrade-notifier/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "upgrade-notifier", "config.yaml"),
		filepath.Join(home, ".upgrade-notifier", "config.yaml"),
	}, nil
}

// FindConfigPath returns the first existing config file path.
// Returns the default path if no config file exists yet.
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		// No home directory: run with built-in defaults
		return Default(), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path.
// A missing file yields the defaults and is not created.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the query can be run
func (c *Config) Validate() error {
	if c.Query.Command == "" {
		return ErrEmptyCommand
	}
	seconds := c.Query.TimeoutSeconds
	if math.IsNaN(seconds) || seconds < MinTimeoutSeconds || seconds > MaxTimeoutSeconds {
		return fmt.Errorf("%w: got %g", ErrInvalidTimeout, seconds)
	}
	return nil
}

// Timeout returns the query timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Query.TimeoutSeconds * float64(time.Second))
}

// StatePath returns the state file path, resolving the default location
// beside the running executable.
func (c *Config) StatePath() (string, error) {
	if c.State.Path != "" {
		return expandHome(c.State.Path)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), StateFileName), nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// Package config handles XDG configuration directory, file paths and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// SessionFile is the stored credentials filename.
	SessionFile = "session.json"

	// ServerEnv overrides the server URL.
	ServerEnv = "TASKBOARD_SERVER"

	// DefaultServerURL is used when neither the file nor the environment set one.
	DefaultServerURL = "http://localhost:8080"

	// DefaultTimeout bounds every request to the task service.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the base URL of the task service.
	ServerURL string

	// Timeout bounds a single request.
	Timeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	ServerURL      string `toml:"server_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	LogLevel       string `toml:"log_level"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// Settings come from config.toml when present, then the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		ServerURL: DefaultServerURL,
		Timeout:   DefaultTimeout,
		LogLevel:  "info",
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	if env := strings.TrimSpace(os.Getenv(ServerEnv)); env != "" {
		cfg.ServerURL = env
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return cfg, nil
}

func (c *Config) load() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if fc.ServerURL != "" {
		c.ServerURL = fc.ServerURL
	}
	if fc.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

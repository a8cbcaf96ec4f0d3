// Package config manages the cuboid configuration file.
//
// The file is YAML, read from the --config flag, the CUBOID_CONFIG
// environment variable, or ~/.cuboid/config.yaml, in that order. A missing
// file is not an error: defaults apply.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cuboid"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "CUBOID_CONFIG"

// DirName is the per-user data directory under the home directory.
const DirName = ".cuboid"

// Config holds the persistent settings.
type Config struct {
	// DBPath is the solution history database. Empty means
	// ~/.cuboid/cuboid.db.
	DBPath string `yaml:"db_path,omitempty"`

	// Strategy is the default solving strategy: "two-phase" or "direct".
	Strategy string `yaml:"strategy"`

	// StrictLayers selects layer-by-layer search, which returns shortest
	// paths.
	StrictLayers bool `yaml:"strict_layers"`

	// MaxDepth limits each search side. 0 means unlimited.
	MaxDepth int `yaml:"max_depth"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Strategy: string(cuboid.StrategyTwoPhase),
		LogLevel: "warn",
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	if _, err := cuboid.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("strategy: %w", err))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth: must not be negative, got %d", c.MaxDepth))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// SolverOptions converts the settings into solver options.
func (c Config) SolverOptions() ([]cuboid.Option, error) {
	strategy, err := cuboid.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	return []cuboid.Option{
		cuboid.WithStrategy(strategy),
		cuboid.WithStrictSearch(c.StrictLayers),
		cuboid.WithSearchDepth(c.MaxDepth),
	}, nil
}

// ParseLevel converts a level name to a slog level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// Dir returns ~/.cuboid, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the config file path used when no flag is given.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// File manages a config file on disk.
type File struct {
	path   string
	config Config
}

// Open loads the config file at path. A missing file yields defaults.
func Open(path string) (*File, error) {
	f := &File{path: path, config: Default()}

	if err := f.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return f, nil
}

// OpenDefault opens the file at DefaultPath.
func OpenDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Load reads the file. Fields missing from the file keep their current
// values.
func (f *File) Load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	cfg := f.config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", f.path, err)
	}
	f.config = cfg
	return nil
}

// Save writes the file, creating its directory.
func (f *File) Save() error {
	data, err := yaml.Marshal(f.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Config returns the current settings.
func (f *File) Config() Config {
	return f.config
}

// Set replaces the settings after validating them. Call Save to persist.
func (f *File) Set(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f.config = c
	return nil
}

// SetDBPath records the database path and saves the file.
func (f *File) SetDBPath(path string) error {
	f.config.DBPath = path
	return f.Save()
}

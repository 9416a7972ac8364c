// Package config provides reading and writing of redline configuration.
// Supports both global (~/.redline/config.yaml) and local (.redline/config.yaml).
// Reading: uses local if it exists, otherwise global. Pointer fields
// distinguish "not configured" from an explicit zero so defaults can apply.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrInvalidValue is returned when a config value is out of bounds.
	ErrInvalidValue = errors.New("invalid config value")
)

// Retention holds the lifecycle windows for the two prunable version kinds.
type Retention struct {
	AutosaveHours *int `yaml:"autosave_hours,omitempty"`
	RejectedDays  *int `yaml:"rejected_days,omitempty"`
}

// Diff holds default comparison settings.
type Diff struct {
	Algorithm    *string `yaml:"algorithm,omitempty"`
	ContextLines *int    `yaml:"context_lines,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultAutosaveHours = 24
	DefaultRejectedDays  = 7
	DefaultAlgorithm     = "character"
	DefaultContextLines  = 3
	DefaultMaxContent    = 10 * 1024 * 1024 // 10 MB
)

// Validation bounds for configuration values.
const (
	MaxAutosaveHours = 24 * 365
	MaxRejectedDays  = 365
	MaxContextLines  = 1000
	MaxMaxContent    = 1024 * 1024 * 1024 // 1 GB
)

// Config contains configuration for redline.
type Config struct {
	Retention Retention `yaml:"retention,omitempty"`
	Diff      Diff      `yaml:"diff,omitempty"`
	Limits    Limits    `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path string
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if v := c.Retention.AutosaveHours; v != nil && (*v < 1 || *v > MaxAutosaveHours) {
		return fmt.Errorf("%w: retention.autosave_hours must be between 1 and %d, got %d",
			ErrInvalidValue, MaxAutosaveHours, *v)
	}
	if v := c.Retention.RejectedDays; v != nil && (*v < 1 || *v > MaxRejectedDays) {
		return fmt.Errorf("%w: retention.rejected_days must be between 1 and %d, got %d",
			ErrInvalidValue, MaxRejectedDays, *v)
	}
	if v := c.Diff.Algorithm; v != nil {
		switch *v {
		case "character", "line", "word":
		default:
			return fmt.Errorf("%w: diff.algorithm must be character, line, or word, got %q",
				ErrInvalidValue, *v)
		}
	}
	if v := c.Diff.ContextLines; v != nil && (*v < 0 || *v > MaxContextLines) {
		return fmt.Errorf("%w: diff.context_lines must be between 0 and %d, got %d",
			ErrInvalidValue, MaxContextLines, *v)
	}
	if v := c.Limits.MaxContent; v != nil && (*v < 1 || *v > MaxMaxContent) {
		return fmt.Errorf("%w: limits.max_content must be between 1 and %d, got %d",
			ErrInvalidValue, MaxMaxContent, *v)
	}
	return nil
}

// AutosaveRetention returns the auto-save retention window.
func (c *Config) AutosaveRetention() time.Duration {
	hours := DefaultAutosaveHours
	if c.Retention.AutosaveHours != nil {
		hours = *c.Retention.AutosaveHours
	}
	return time.Duration(hours) * time.Hour
}

// RejectedRetention returns the rejected-suggestion retention window.
func (c *Config) RejectedRetention() time.Duration {
	days := DefaultRejectedDays
	if c.Retention.RejectedDays != nil {
		days = *c.Retention.RejectedDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// Algorithm returns the default diff algorithm name.
func (c *Config) Algorithm() string {
	if c.Diff.Algorithm == nil {
		return DefaultAlgorithm
	}
	return *c.Diff.Algorithm
}

// ContextLines returns the unified-diff context line count.
func (c *Config) ContextLines() int {
	if c.Diff.ContextLines == nil {
		return DefaultContextLines
	}
	return *c.Diff.ContextLines
}

// MaxContent returns the maximum version content size in bytes.
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// localPath returns ./.redline/config.yaml relative to the working directory.
func localPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigPath, err)
	}
	return filepath.Join(wd, ".redline", "config.yaml"), nil
}

// globalPath returns ~/.redline/config.yaml.
func globalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigPath, err)
	}
	return filepath.Join(home, ".redline", "config.yaml"), nil
}

// Load reads configuration, preferring local over global. A missing file is
// not an error; the zero Config (all defaults) is returned with the path it
// would save to.
func Load() (*Config, error) {
	local, err := localPath()
	if err == nil {
		if cfg, err := loadFile(local); err == nil {
			return cfg, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	global, err := globalPath()
	if err != nil {
		return nil, err
	}
	cfg, err := loadFile(global)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: global}, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration back to the file it was loaded from,
// creating the directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return ErrNoConfigPath
	}
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

// Package config loads tourguide configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all tourguide configuration.
type Config struct {
	Tour    TourConfig    `yaml:"tour"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// TourConfig points at the tour definition and controls auto-start.
type TourConfig struct {
	// Definition is the path to the tour YAML file.
	Definition string `yaml:"definition"`

	// AutoStart runs the tour on launch when the persistence gate allows
	// it. The decision is taken once at mount, never re-evaluated.
	AutoStart bool `yaml:"auto_start"`

	// Watch reloads the definition file on change (authoring mode).
	Watch bool `yaml:"watch"`
}

// StorageConfig selects the completion-record backend.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the state directory (file backend) or database file
	// (sqlite backend). Defaults under <workspace>/.tourguide.
	Path string `yaml:"path"`
}

// LoggingConfig controls the file logger.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the defaults for the given workspace.
func DefaultConfig(workspace string) *Config {
	return &Config{
		Tour: TourConfig{
			Definition: filepath.Join(workspace, "tour.yaml"),
			AutoStart:  true,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join(workspace, ".tourguide"),
		},
	}
}

// Load reads tourguide.yaml from the workspace, falling back to defaults
// when the file does not exist, then applies environment overrides.
func Load(workspace string) (*Config, error) {
	cfg := DefaultConfig(workspace)

	path := filepath.Join(workspace, "tourguide.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.Storage.Backend != "file" && cfg.Storage.Backend != "sqlite" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("TOURGUIDE_DEFINITION"); path != "" {
		c.Tour.Definition = path
	}
	if backend := os.Getenv("TOURGUIDE_STORAGE"); backend != "" {
		c.Storage.Backend = backend
	}
	if path := os.Getenv("TOURGUIDE_STATE_PATH"); path != "" {
		c.Storage.Path = path
	}
	if os.Getenv("TOURGUIDE_VERBOSE") == "1" {
		c.Logging.Verbose = true
	}
	if os.Getenv("TOURGUIDE_NO_AUTOSTART") == "1" {
		c.Tour.AutoStart = false
	}
}

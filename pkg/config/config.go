// Package config provides configuration loading and management for the
// subdivide pipeline. Settings come from built-in defaults, overridden by an
// optional YAML file, overridden by command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/minc"
)

// Config represents the settings of one pipeline run. It is assembled at
// process startup and not mutated after the run begins.
type Config struct {
	// InputDir is the root of the tree searched for input volumes.
	// It comes from the command line, never from the config file.
	InputDir string `yaml:"-"`

	// OutputDir is the root that mirrors InputDir for outputs.
	// It comes from the command line, never from the config file.
	OutputDir string `yaml:"-"`

	// Pattern is the glob, relative to InputDir, selecting input volumes
	Pattern string `yaml:"pattern"`

	// Divisions is the number of cuts along each voxel edge and must be
	// a positive power of 2
	Divisions int `yaml:"divisions"`

	// Workers bounds the number of concurrently running jobs;
	// 0 means one per CPU core
	Workers int `yaml:"workers"`

	// Verbose enables debug logging and passes tool output through
	Verbose bool `yaml:"verbose"`

	// Tools names the MINC toolkit executables, overridable for
	// nonstandard installations
	Tools minc.Toolkit `yaml:"tools"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Pattern:   "**/*.mnc",
		Divisions: 2,
		Workers:   0,
		Verbose:   false,
		Tools:     minc.DefaultToolkit(),
	}
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate rejects settings that would otherwise fail only after work has
// started.
func (c *Config) Validate() error {
	if !isPowerOfTwo(c.Divisions) {
		return fmt.Errorf("divisions=%d is not a power of 2", c.Divisions)
	}
	return nil
}

// WorkerCount resolves the worker setting to a concrete pool size.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// isPowerOfTwo reports whether d is in {1, 2, 4, 8, ...}.
func isPowerOfTwo(d int) bool {
	return d >= 1 && d&(d-1) == 0
}

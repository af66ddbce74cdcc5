// Package config loads and validates the optional .attacksim YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for simulation configuration.
const (
	DefaultTimeout     = 5 * time.Minute
	DefaultMaxOutput   = 1 << 20 // 1 MB
	DefaultConcurrency = 1       // sequential

	DefaultCatalogPath = "commands.json"
	DefaultReportPath  = "report.html"
)

// DefaultShell is the shell argv prefix used when none is configured.
var DefaultShell = []string{"sh", "-c"}

// Config holds the parsed .attacksim configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version        int            `yaml:"version"`
	RawTimeout     string         `yaml:"timeout"`     // e.g. "5m", "30s", per command
	RawMaxOutput   int            `yaml:"max_output"`  // bytes of captured output per command
	RawShell       []string       `yaml:"shell"`       // e.g. ["sh", "-c"] or ["powershell", "-Command"]
	RawConcurrency int            `yaml:"concurrency"` // worker count; 1 = sequential
	RawCatalog     string         `yaml:"catalog"`     // default catalog path
	RawReport      string         `yaml:"report"`      // default report output path
	Classify       ClassifyConfig `yaml:"classify"`
}

// ClassifyConfig extends the built-in failure-pattern tables. New AV
// products emit new block messages; adding them here avoids a rebuild.
type ClassifyConfig struct {
	AccessDenied []string `yaml:"access_denied"` // extra access-denied substrings
	Blocked      []string `yaml:"blocked"`       // extra AV/EDR-block substrings
}

// Timeout returns the configured per-command timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured output cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// Shell returns the configured shell argv prefix or the default.
func (c *Config) Shell() []string {
	if len(c.RawShell) > 0 {
		return c.RawShell
	}
	return DefaultShell
}

// Concurrency returns the configured worker count, clamped to at least 1.
func (c *Config) Concurrency() int {
	if c.RawConcurrency > 1 {
		return c.RawConcurrency
	}
	return DefaultConcurrency
}

// CatalogPath returns the configured catalog path or the default.
func (c *Config) CatalogPath() string {
	if c.RawCatalog != "" {
		return c.RawCatalog
	}
	return DefaultCatalogPath
}

// ReportPath returns the configured report output path or the default.
func (c *Config) ReportPath() string {
	if c.RawReport != "" {
		return c.RawReport
	}
	return DefaultReportPath
}

// Load reads the .attacksim file from dir. If no file exists, a default
// Config is returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ".attacksim")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading .attacksim: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .attacksim: %w", err)
	}
	return cfg, nil
}

// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/markup-validator/internal/logging"
	"github.com/jonathan/markup-validator/internal/rendering"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvPort       = "MARKUP_PORT"
	EnvRequestLog = "MARKUP_REQUEST_LOG"
	EnvLogLevel   = "LOG_LEVEL"
)

// Config represents settings that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Server
	Port         int    `json:"port,omitempty" yaml:"port,omitempty"`
	RequestLog   string `json:"request_log,omitempty" yaml:"request_log,omitempty"`       // Path of the JSON-lines request log
	MaxBodyBytes int64  `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty"` // Largest accepted request body

	// Output
	IndentSize   int    `json:"indent_size,omitempty" yaml:"indent_size,omitempty"`
	OutputFormat string `json:"output_format,omitempty" yaml:"output_format,omitempty"` // text, json, markdown, html or pretty

	// Fetching
	UseBrowser   bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`     // Render URLs in headless Chrome
	FetchTimeout string `json:"fetch_timeout,omitempty" yaml:"fetch_timeout,omitempty"` // Go duration, e.g. "30s"

	// Logging
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Verbose  bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:         8080,
		RequestLog:   "log.txt",
		MaxBodyBytes: 1 << 20,
		IndentSize:   2,
		OutputFormat: string(rendering.FormatText),
		FetchTimeout: "30s",
		LogLevel:     "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension (.yaml and .yml are YAML, anything else JSON).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}
	if c.IndentSize < 0 || c.IndentSize > 8 {
		return fmt.Errorf("config error: 'indent_size' must be between 0 and 8")
	}

	if c.OutputFormat != "" {
		if _, err := rendering.ParseFormat(c.OutputFormat); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.FetchTimeout != "" {
		d, err := time.ParseDuration(c.FetchTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'fetch_timeout': %w", err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'fetch_timeout' must be non-negative")
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestLog == "" {
		result.RequestLog = defaults.RequestLog
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if result.IndentSize == 0 {
		result.IndentSize = defaults.IndentSize
	}
	if result.OutputFormat == "" {
		result.OutputFormat = defaults.OutputFormat
	}
	if result.FetchTimeout == "" {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from environment variables. Unparseable numeric
// values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(EnvRequestLog); v != "" {
		c.RequestLog = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// FetchTimeoutDuration returns FetchTimeout parsed, or zero when unset or
// invalid.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Load reads path (when non-empty), fills defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Defaults())
	merged.ApplyEnv()
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/tidytex/internal/schemas"
	"github.com/jonathan/tidytex/internal/yamlutil"
)

// Environment variables that override file values.
const (
	EnvStyle     = "TIDYTEX_STYLE"
	EnvFontSize  = "TIDYTEX_FONT_SIZE"
	EnvEngine    = "TIDYTEX_ENGINE"
	EnvTimeout   = "TIDYTEX_TIMEOUT"
	EnvLogLevel  = "TIDYTEX_LOG_LEVEL"
	EnvLogFormat = "TIDYTEX_LOG_FORMAT"
)

// Config represents the CLI configuration that can be loaded from a JSON or
// YAML file. All fields are optional; CLI flags win over file values.
type Config struct {
	Style          string `json:"style,omitempty" yaml:"style,omitempty" validate:"omitempty,min=1"`
	FontSize       string `json:"font_size,omitempty" yaml:"font_size,omitempty" validate:"omitempty,oneof=10pt 11pt 12pt"`
	Engine         string `json:"engine,omitempty" yaml:"engine,omitempty" validate:"omitempty,oneof=pdflatex xelatex lualatex"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`
	MaxPages       int    `json:"max_pages,omitempty" yaml:"max_pages,omitempty" validate:"gte=0"`
	StrictGroups   bool   `json:"strict_groups,omitempty" yaml:"strict_groups,omitempty"`
	KeepByproducts bool   `json:"keep_byproducts,omitempty" yaml:"keep_byproducts,omitempty"`
	LogLevel       string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat      string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Style:          "tidy-tex-resume.sty",
		FontSize:       "11pt",
		Engine:         "pdflatex",
		TimeoutSeconds: 60,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Timeout returns TimeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension (.yaml and .yml are YAML, anything else is JSON).
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
		if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := schemas.ValidateConfigJSON(string(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from TIDYTEX_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvStyle); v != "" {
		c.Style = v
	}
	if v := getenv(EnvFontSize); v != "" {
		c.FontSize = v
	}
	if v := getenv(EnvEngine); v != "" {
		c.Engine = v
	}
	if v := getenv(EnvTimeout); v != "" {
		seconds, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("config error: %s: %w", EnvTimeout, err)
		}
		c.TimeoutSeconds = seconds
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	return nil
}

// parseTimeout accepts whole seconds ("90") or a Go duration ("2m").
func parseTimeout(v string) (int, error) {
	if seconds, err := strconv.Atoi(v); err == nil {
		return seconds, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	if d > 0 && d < time.Second {
		return 0, fmt.Errorf("timeout %q is shorter than one second", v)
	}
	return int(d / time.Second), nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.FontSize == "" {
		result.FontSize = defaults.FontSize
	}
	if result.Engine == "" {
		result.Engine = defaults.Engine
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

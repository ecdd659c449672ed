package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/tidytex/internal/config"
	"github.com/jonathan/tidytex/internal/logging"
	"github.com/jonathan/tidytex/internal/observability"
)

// settings is the resolved configuration shared by all commands.
type settings struct {
	cfg     config.Config
	logger  *slog.Logger
	printer *observability.Printer
}

// current is set by loadSettings before any command runs.
var current = defaultSettings()

func defaultSettings() *settings {
	return &settings{cfg: config.Defaults(), logger: logging.Discard()}
}

// loadSettings resolves configuration in increasing precedence: built-in
// defaults, config file, TIDYTEX_* environment, command-line flags.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd.Flags(), os.Getenv, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	current = s
	return nil
}

func resolveSettings(flags *pflag.FlagSet, getenv func(string) string, stderr io.Writer) (*settings, error) {
	cfg := &config.Config{}
	if path := flagString(flags, "config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, &UsageError{Message: "invalid configuration", Cause: err}
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, &UsageError{Message: "invalid environment", Cause: err}
	}
	if err := applyFlags(cfg, flags); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, &UsageError{Message: "invalid configuration", Cause: err}
	}

	verbose := flagBool(flags, "verbose")
	if verbose && !changed(flags, "log-level") && getenv(config.EnvLogLevel) == "" {
		merged.LogLevel = "debug"
	}
	level, err := logging.ParseLevel(merged.LogLevel)
	if err != nil {
		return nil, &UsageError{Message: "invalid log level", Cause: err}
	}
	format, err := logging.ParseFormat(merged.LogFormat)
	if err != nil {
		return nil, &UsageError{Message: "invalid log format", Cause: err}
	}

	s := &settings{
		cfg:    merged,
		logger: logging.New(stderr, level, format),
	}
	if verbose {
		s.printer = observability.NewPrinter(stderr)
	}
	return s, nil
}

// applyFlags copies explicitly set flags over file and environment values.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	if changed(flags, "sty") {
		cfg.Style = flagString(flags, "sty")
	}
	if changed(flags, "font-size") {
		cfg.FontSize = flagString(flags, "font-size")
	}
	if changed(flags, "engine") {
		cfg.Engine = flagString(flags, "engine")
	}
	if changed(flags, "log-level") {
		cfg.LogLevel = flagString(flags, "log-level")
	}
	if changed(flags, "log-format") {
		cfg.LogFormat = flagString(flags, "log-format")
	}
	if changed(flags, "timeout") {
		d, err := flags.GetDuration("timeout")
		if err != nil {
			return &UsageError{Message: "invalid --timeout", Cause: err}
		}
		if d > 0 && d < time.Second {
			return &UsageError{Message: "--timeout must be at least 1s, got " + d.String()}
		}
		cfg.TimeoutSeconds = int(d / time.Second)
	}
	if changed(flags, "max-pages") {
		n, err := flags.GetInt("max-pages")
		if err != nil {
			return &UsageError{Message: "invalid --max-pages", Cause: err}
		}
		cfg.MaxPages = n
	}
	if changed(flags, "strict-groups") {
		cfg.StrictGroups = flagBool(flags, "strict-groups")
	}
	if changed(flags, "keep-byproducts") {
		cfg.KeepByproducts = flagBool(flags, "keep-byproducts")
	}
	return nil
}

func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

func flagString(flags *pflag.FlagSet, name string) string {
	if f := flags.Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func flagBool(flags *pflag.FlagSet, name string) bool {
	v, err := flags.GetBool(name)
	return err == nil && v
}

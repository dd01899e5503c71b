// Package config loads deskcalc settings from DESKCALC_* environment
// variables and command line flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the deskcalc binaries.
type Config struct {
	// HistoryDB is the SQLite file evaluations are recorded to. Empty
	// disables history.
	HistoryDB     string        `env:"DESKCALC_HISTORY_DB"`
	Session       string        `env:"DESKCALC_SESSION"        envDefault:"default"`
	LogLevel      string        `env:"DESKCALC_LOG_LEVEL"      envDefault:"info"`
	LogFormat     string        `env:"DESKCALC_LOG_FORMAT"     envDefault:"text"`
	WatchDebounce time.Duration `env:"DESKCALC_WATCH_DEBOUNCE" envDefault:"200ms"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Bind registers flags on fs whose defaults are the current values of cfg,
// so parsed flags override the environment.
func (cfg *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&cfg.HistoryDB, "history-db", cfg.HistoryDB, "SQLite file to record evaluations to (empty disables history)")
	fs.StringVar(&cfg.Session, "session", cfg.Session, "session name used for recorded history")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.DurationVar(&cfg.WatchDebounce, "debounce", cfg.WatchDebounce, "delay before re-running changed tapes")
}

// ParseConfig parses the environment, then flags from args into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Session) == "" {
		return fmt.Errorf("config: session must not be empty")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", cfg.LogFormat)
	}
	if cfg.WatchDebounce <= 0 {
		return fmt.Errorf("config: debounce must be positive")
	}
	return nil
}

// NewLogger builds the structured logger described by cfg, writing to w.
func NewLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.LogFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("new logger: unknown log format %q", cfg.LogFormat)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

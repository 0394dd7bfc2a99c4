// Package config provides configuration management for the casm CLI.
//
// It layers the shared ProjectConfig from internal/config with CLI-only
// settings and loads both from defaults, casm.yaml, CASM_* environment
// variables and command-line flags.
package config

import (
	"context"
	"log/slog"
	"strings"

	intconfig "github.com/leapstack-labs/casm/internal/config"
)

// ProjectConfig is an alias for the shared project configuration.
type ProjectConfig = intconfig.ProjectConfig

// Config holds all CLI configuration options.
type Config struct {
	ProjectConfig `koanf:",squash"`

	Verbose  bool   `koanf:"verbose"`
	LogLevel string `koanf:"log_level"`
}

// Config file names searched in the working directory, in order.
const (
	ConfigFileName    = "casm.yaml"
	ConfigFileNameAlt = "casm.yml"
	EnvPrefix         = "CASM_"
)

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	cfg := &Config{
		LogLevel: intconfig.DefaultLogLevel,
	}
	cfg.IncludeComments = intconfig.DefaultIncludeComments
	intconfig.ApplyDefaults(&cfg.ProjectConfig)
	return cfg
}

// SlogLevel returns the log level to use. Verbose forces debug; unknown
// level names fall back to warn.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return level
}

// configKey is used to store the config in context.
type configKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context, or the defaults
// when none was stored.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return DefaultConfig()
}

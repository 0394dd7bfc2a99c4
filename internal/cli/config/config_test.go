package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	flags.String("color", "", "color mode")
	flags.Int("tab-width", 0, "tab width")
	flags.Bool("comments", true, "include comments")
	flags.BoolP("verbose", "v", false, "verbose")
	flags.String("log-level", "", "log level")
	return flags
}

// TestLoadConfig_Defaults tests loading with no file, env or flags.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Empty(t, GetConfigFileUsed())
}

// TestLoadConfig_File tests explicit and discovered config files.
func TestLoadConfig_File(t *testing.T) {
	content := `output: json
color: never
tab_width: 8
include_comments: false
log_level: debug
`

	t.Run("explicit path", func(t *testing.T) {
		ResetConfig()
		path := writeConfigFile(t, t.TempDir(), "custom.yaml", content)

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)

		assert.Equal(t, "json", cfg.Output)
		assert.Equal(t, "never", cfg.Color)
		assert.Equal(t, 8, cfg.TabWidth)
		assert.False(t, cfg.IncludeComments)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, path, GetConfigFileUsed())
	})

	t.Run("discovered casm.yml", func(t *testing.T) {
		ResetConfig()
		dir := t.TempDir()
		writeConfigFile(t, dir, ConfigFileNameAlt, content)
		t.Chdir(dir)

		cfg, err := LoadConfig("", nil)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output)
		assert.Equal(t, ConfigFileNameAlt, GetConfigFileUsed())
	})

	t.Run("missing explicit file", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("invalid value", func(t *testing.T) {
		ResetConfig()
		path := writeConfigFile(t, t.TempDir(), ConfigFileName, "output: xml\n")

		_, err := LoadConfig(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "xml")
	})
}

// TestLoadConfig_Precedence tests flags > env > file > defaults.
func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), ConfigFileName, "output: yaml\ntab_width: 2\n")

	t.Run("env overrides file", func(t *testing.T) {
		ResetConfig()
		t.Setenv("CASM_OUTPUT", "table")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "table", cfg.Output)
		assert.Equal(t, 2, cfg.TabWidth, "file value survives when env is unset")
	})

	t.Run("env converts types", func(t *testing.T) {
		ResetConfig()
		t.Setenv("CASM_TAB_WIDTH", "6")
		t.Setenv("CASM_INCLUDE_COMMENTS", "false")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 6, cfg.TabWidth)
		assert.False(t, cfg.IncludeComments)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("CASM_OUTPUT", "table")

		flags := newFlagSet()
		require.NoError(t, flags.Set("output", "dump"))
		require.NoError(t, flags.Set("tab-width", "3"))
		require.NoError(t, flags.Set("comments", "false"))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "dump", cfg.Output)
		assert.Equal(t, 3, cfg.TabWidth)
		assert.False(t, cfg.IncludeComments)
	})

	t.Run("unset flag falls back to env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("CASM_OUTPUT", "table")

		cfg, err := LoadConfig(path, newFlagSet())
		require.NoError(t, err)
		assert.Equal(t, "table", cfg.Output)
		assert.True(t, cfg.IncludeComments, "unchanged flag default does not override")
	})
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		want    slog.Level
	}{
		{"debug", "debug", false, slog.LevelDebug},
		{"info upper", "INFO", false, slog.LevelInfo},
		{"error", "error", false, slog.LevelError},
		{"unknown falls back to warn", "loud", false, slog.LevelWarn},
		{"verbose wins", "error", true, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level, Verbose: tt.verbose}
			assert.Equal(t, tt.want, cfg.SlogLevel())
		})
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, DefaultConfig(), GetConfig(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{LogLevel: "info"}
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, GetConfig(ctx))

	logger := slog.New(slog.DiscardHandler)
	ctx = context.WithValue(ctx, LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

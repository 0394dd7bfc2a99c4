package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/casm/internal/cli/config"
	"github.com/leapstack-labs/casm/internal/testutil"
)

// testConfig returns defaults with plain output in the given mode.
func testConfig(mode string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Output = mode
	cfg.Color = "never"
	return cfg
}

// testContext returns a context carrying cfg and a test logger.
func testContext(t *testing.T, cfg *config.Config) context.Context {
	t.Helper()
	ctx := config.WithConfig(context.Background(), cfg)
	return context.WithValue(ctx, config.LoggerKey(), testutil.NewTestLogger(t))
}

// executeCommand runs cmd with args and returns what it wrote.
func executeCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(testContext(t, cfg))
	return stdout.String(), stderr.String(), err
}

// writeSource writes a source file into a temp dir and returns its path.
func writeSource(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

// newTestCommandContext builds a CommandContext writing into buffers.
func newTestCommandContext(t *testing.T, cfg *config.Config) (*CommandContext, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(testContext(t, cfg))
	return NewCommandContext(cmd), &stdout, &stderr
}

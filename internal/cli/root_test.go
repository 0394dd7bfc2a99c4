package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/casm/internal/cli/commands"
	"github.com/leapstack-labs/casm/internal/cli/config"
	"github.com/leapstack-labs/casm/internal/cli/output"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"build", "tokens", "check", "repl", "watch", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"config", "output", "color", "verbose", "log-level", "tab-width", "comments"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_Version(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "casm v"+Version)
}

func TestRootCmd_OutputFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "main.casm", "mov: r0, 1 ; c\n")

	stdout, _, err := runRoot(t, "--output", "json", "--comments=false", "build", path)
	require.NoError(t, err)

	var listings []output.TokenListing
	require.NoError(t, json.Unmarshal([]byte(stdout), &listings))
	require.Len(t, listings, 1)
	assert.Len(t, listings[0].Tokens, 5)
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "casm.yaml", "output: yaml\ncolor: never\n")
	path := writeFile(t, dir, "main.casm", "halt")

	stdout, _, err := runRoot(t, "tokens", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "kind: ident")
	assert.Contains(t, stdout, "literal: halt")
}

func TestRootCmd_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "casm.yaml", "output: yaml\n")
	t.Setenv("CASM_OUTPUT", "text")
	path := writeFile(t, dir, "main.casm", "halt")

	stdout, _, err := runRoot(t, "tokens", path)
	require.NoError(t, err)
	assert.Equal(t, "1:1      ident    halt\n", stdout)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := runRoot(t, "--color", "sometimes", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color")
}

func TestRootCmd_LexFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "bad.casm", "mov: r0, @")

	_, stderr, err := runRoot(t, "--color", "never", "check", path)
	require.ErrorIs(t, err, commands.ErrLexFailed)
	assert.Contains(t, stderr, "error: Unexpected character: '@'")
	assert.Contains(t, stderr, path+":1:10")
}

func TestRootCmd_VerboseLogs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "main.casm", "nop")

	_, stderr, err := runRoot(t, "-v", "-o", "text", "check", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "lexed file")
}

func TestCompletionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := runRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "casm")
}

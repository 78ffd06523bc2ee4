package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// decodeResponse parses a JSON CLIResponse from stdout.
func decodeResponse(t *testing.T, stdout string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), "stdout: %s", stdout)
	return resp
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "signed64", cmd.Use)
	assert.Contains(t, cmd.Long, "sign-magnitude")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"eval", "ops", "test", "replay", "log"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"verbose", "v", "false"},
		{"format", "", "text"},
		{"config", "", ""},
		{"db", "", ""},
		{"session", "", ""},
		{"oracle", "", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "yaml", "ops")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signed64.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestConfig_ProvidesDefaults(t *testing.T) {
	db := filepath.Join(t.TempDir(), "log.db")
	cfg := writeConfig(t, fmt.Sprintf("database = %q\nformat = \"json\"\nsession = \"cfg-session\"\n", db))

	stdout, _, err := execute(t, "--config", cfg, "eval", "add", "1", "2")
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "cfg-session", resp.Session)

	_, err = os.Stat(db)
	assert.NoError(t, err, "database from config should be created")
}

func TestConfig_FlagsOverrideFile(t *testing.T) {
	cfg := writeConfig(t, "format = \"json\"\n")

	stdout, _, err := execute(t, "--config", cfg, "--format", "text", "eval", "add", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "3\n", stdout)
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   func(t *testing.T) string
		errMsg string
	}{
		{
			name:   "missing file",
			path:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.toml") },
			errMsg: "failed to load config",
		},
		{
			name:   "unknown key",
			path:   func(t *testing.T) string { return writeConfig(t, "databse = \"x.db\"\n") },
			errMsg: "unknown keys: databse",
		},
		{
			name:   "malformed",
			path:   func(t *testing.T) string { return writeConfig(t, "format = \n") },
			errMsg: "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "--config", tt.path(t), "ops")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfig_Has(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "oracle = false\nverbose = true\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Has("oracle"))
	assert.True(t, cfg.Has("verbose"))
	assert.False(t, cfg.Has("database"))

	opts := &RootOptions{Format: "text", Oracle: true}
	cfg.Apply(opts, func(flag string) bool { return flag == "verbose" })
	assert.False(t, opts.Oracle, "file value applies")
	assert.False(t, opts.Verbose, "explicit flag wins")
	assert.Equal(t, "text", opts.Format, "keys absent from the file leave options alone")
}

func TestVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "-v", "eval", "neg", "5")
	require.NoError(t, err)
	assert.Equal(t, "-5\n", stdout)
	assert.Contains(t, stderr, "evaluation recorded")
}

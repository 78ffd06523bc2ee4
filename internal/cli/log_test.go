package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_ListSessions(t *testing.T) {
	db := seedLog(t)

	stdout, _, err := execute(t, "--db", db, "log")
	require.NoError(t, err)
	assert.Contains(t, stdout, "s1  seq 1-4  2 evaluations, 1 errors")
}

func TestLog_ListSessionsJSON(t *testing.T) {
	db := seedLog(t)
	_, _, err := execute(t, "--db", db, "--session", "s2", "eval", "abs", "-3")
	require.NoError(t, err)

	stdout, _, err := execute(t, "--db", db, "--format", "json", "log")
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	sessions, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, sessions, 2)

	first := sessions[0].(map[string]any)
	assert.Equal(t, "s1", first["session"])
	assert.Equal(t, float64(2), first["evaluations"])
	assert.Equal(t, "s2", sessions[1].(map[string]any)["session"])
}

func TestLog_ShowSession(t *testing.T) {
	db := seedLog(t)

	stdout, _, err := execute(t, "--db", db, "log", "--show", "s1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session: s1")
	assert.Contains(t, stdout, "[1] add 1 2 -> ok 3")
	assert.Contains(t, stdout, "[3] div 1 0 -> error DIVIDE_BY_ZERO")
	assert.Contains(t, stdout, "2 evaluations, DIVIDE_BY_ZERO 1, OK 1")
}

func TestLog_ShowSessionJSON(t *testing.T) {
	db := seedLog(t)

	stdout, _, err := execute(t, "--db", db, "--format", "json", "log", "--show", "s1")
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "s1", resp.Session)
	data := resp.Data.(map[string]any)
	entries := data["entries"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "DIVIDE_BY_ZERO", entries[1].(map[string]any)["case"])
}

func TestLog_UnknownSession(t *testing.T) {
	db := seedLog(t)

	_, _, err := execute(t, "--db", db, "log", "--show", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "session not found")
}

func TestLog_MissingDatabase(t *testing.T) {
	_, _, err := execute(t, "--db", filepath.Join(t.TempDir(), "missing.db"), "log")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLog_Search(t *testing.T) {
	db := seedLog(t)
	_, _, err := execute(t, "--db", db, "--session", "s2", "eval", "div", "7", "0")
	require.Equal(t, ExitFailure, GetExitCode(err))

	stdout, _, err := execute(t, "--db", db, "log", "--case", "DIVIDE_BY_ZERO")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[3] div 1 0 -> error DIVIDE_BY_ZERO")
	assert.Contains(t, stdout, "[5] div 7 0 -> error DIVIDE_BY_ZERO")
	assert.NotContains(t, stdout, "add")

	stdout, _, err = execute(t, "--db", db, "log", "--case", "DIVIDE_BY_ZERO", "--show", "s2")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "div 1 0")
	assert.Contains(t, stdout, "div 7 0")

	stdout, _, err = execute(t, "--db", db, "log", "--op", "div", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "div 1 0")
	assert.NotContains(t, stdout, "div 7 0")

	stdout, _, err = execute(t, "--db", db, "log", "--op", "mul")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No matching records.")
}

func TestLog_SearchJSON(t *testing.T) {
	db := seedLog(t)

	stdout, _, err := execute(t, "--db", db, "--format", "json", "log", "--op", "add")
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	found, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, found, 1)
	entry := found[0].(map[string]any)
	assert.Equal(t, "s1", entry["session"])
	assert.Equal(t, "3", entry["result"])
}

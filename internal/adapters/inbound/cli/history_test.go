package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCommand_EmptyProject(t *testing.T) {
	out, err := runCommand(t, "history", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded runs yet.")
}

func TestHistoryCommand_ShowsRecordedRuns(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--format", "json")
	require.NoError(t, err)
	_, err = runCommand(t, "analyze", dir, "--format", "json")
	require.NoError(t, err)

	out, err := runCommand(t, "history", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Run history")
	assert.Contains(t, out, "(2)")
	assert.Contains(t, out, "Medium")
	assert.Contains(t, out, "1 issues")
}

func TestHistoryCommand_JSON(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--format", "json")
	require.NoError(t, err)

	out, err := runCommand(t, "history", dir, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"risk_verdict": "Medium"`)
	assert.Contains(t, out, `"total_issues": 1`)
}

func TestHistoryCommand_JSONEmpty(t *testing.T) {
	out, err := runCommand(t, "history", t.TempDir(), "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "[]")
}

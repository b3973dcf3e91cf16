package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewarden/codewarden/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shellProject writes a minimal project with one HIGH severity finding.
func shellProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "import os\n\ndef ping(host):\n    os.system(\"ping \" + host)\n")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	dir := shellProject(t)

	out, err := runCommand(t, "analyze", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_issues": 1`)
	assert.Contains(t, out, `"risk_verdict": "Medium"`)
	assert.Contains(t, out, `"cwe_id": "CWE-78"`)
	assert.Contains(t, out, "app.py")
}

func TestAnalyzeCommand_DefaultIsMarkdown(t *testing.T) {
	dir := shellProject(t)

	out, err := runCommand(t, "analyze", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "# Code Analysis Report")
}

func TestAnalyzeCommand_HTML(t *testing.T) {
	dir := shellProject(t)

	out, err := runCommand(t, "analyze", dir, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
}

func TestAnalyzeCommand_UnknownFormat(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestAnalyzeCommand_OutputFile(t *testing.T) {
	dir := shellProject(t)
	dest := filepath.Join(t.TempDir(), "report.md")

	out, err := runCommand(t, "analyze", dir, "--output", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Code Analysis Report")
}

func TestAnalyzeCommand_RecordsRun(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--format", "json")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, ".codewarden", "cache", "report.json"))
	assert.NoError(t, statErr, "analyze should store the report for later surfaces")
}

func TestAnalyzeCommand_CIFailsOnHigh(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--ci")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at or above HIGH severity")
}

func TestAnalyzeCommand_CIPassesBelowThreshold(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--ci", "--fail-on", "critical")
	assert.NoError(t, err)
}

func TestAnalyzeCommand_CIUnknownSeverity(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--ci", "--fail-on", "banana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}

func TestAnalyzeCommand_NoSecurityFlag(t *testing.T) {
	dir := shellProject(t)

	out, err := runCommand(t, "analyze", dir, "--no-security", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_issues": 0`)
}

func TestAnalyzeCommand_InvalidSecurityLevel(t *testing.T) {
	dir := shellProject(t)

	_, err := runCommand(t, "analyze", dir, "--security-level", "extreme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown security level")
}

func TestAnalyzeCommand_WorkersFlag(t *testing.T) {
	dir := shellProject(t)

	out, err := runCommand(t, "analyze", dir, "--workers", "1", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "AST-001")
}

func TestAnalyzeCommand_MissingProject(t *testing.T) {
	_, err := runCommand(t, "analyze", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

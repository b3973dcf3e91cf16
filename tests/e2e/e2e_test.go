package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/codewarden/codewarden/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "codewarden-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "codewarden")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/codewarden")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath() string {
	abs, _ := filepath.Abs("../../testdata/pyshop")
	return abs
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

// --- Analyze Tests ---

func TestE2E_Analyze(t *testing.T) {
	out, code := run(t, "analyze", fixturePath())
	defer os.RemoveAll(filepath.Join(fixturePath(), ".codewarden"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "# Code Analysis Report")
	assert.Contains(t, out, "Risk verdict: Critical")
}

func TestE2E_AnalyzeJSON(t *testing.T) {
	out, code := run(t, "analyze", fixturePath(), "--format", "json")
	defer os.RemoveAll(filepath.Join(fixturePath(), ".codewarden"))
	assert.Equal(t, 0, code)

	var report domain.Report
	err := json.Unmarshal([]byte(out), &report)
	require.NoError(t, err)
	assert.Equal(t, 16, report.Summary.TotalIssues, "fixture should produce 16 issues")
	assert.Equal(t, domain.VerdictCritical, report.Summary.RiskVerdict)
	assert.Equal(t, 12, report.Metrics.FilesScanned)
	assert.Equal(t, 10, report.Metrics.FilesAnalyzed)
	assert.Equal(t, 1, report.Summary.BySeverity[domain.SeverityCritical])
	assert.Equal(t, 9, report.Summary.BySeverity[domain.SeverityHigh])

	require.NotEmpty(t, report.Issues)
	assert.Equal(t, domain.SeverityCritical, report.Issues[0].Severity, "issues should be sorted most severe first")
}

func TestE2E_AnalyzeCI(t *testing.T) {
	out, code := run(t, "analyze", fixturePath(), "--ci")
	defer os.RemoveAll(filepath.Join(fixturePath(), ".codewarden"))
	assert.Equal(t, 1, code, "should exit 1 when issues reach the threshold")
	assert.Contains(t, out, "at or above HIGH severity")
}

func TestE2E_AnalyzeCIPassing(t *testing.T) {
	_, code := run(t, "analyze", fixturePath(), "--ci", "--fail-on", "critical", "--no-security")
	defer os.RemoveAll(filepath.Join(fixturePath(), ".codewarden"))
	assert.Equal(t, 0, code, "quality-only run has no critical issues")
}

// --- History Tests ---

func TestE2E_History(t *testing.T) {
	_, code := run(t, "analyze", fixturePath(), "--format", "json")
	require.Equal(t, 0, code)
	defer os.RemoveAll(filepath.Join(fixturePath(), ".codewarden"))

	out, code := run(t, "history", fixturePath())
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Run history")
	assert.Contains(t, out, "Critical")
}

func TestE2E_HistoryJSON(t *testing.T) {
	_, code := run(t, "analyze", fixturePath(), "--format", "json")
	require.Equal(t, 0, code)
	defer os.RemoveAll(filepath.Join(fixturePath(), ".codewarden"))

	out, code := run(t, "history", fixturePath(), "--json")
	assert.Equal(t, 0, code)

	var entries []domain.RunEntry
	err := json.Unmarshal([]byte(out), &entries)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, domain.VerdictCritical, entries[len(entries)-1].Verdict)
	assert.Equal(t, 16, entries[len(entries)-1].TotalIssues)
}

// --- Version Test ---

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "codewarden")
}

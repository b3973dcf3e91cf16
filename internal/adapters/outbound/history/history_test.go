package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codewarden/codewarden/internal/adapters/outbound/history"
	"github.com/codewarden/codewarden/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		RunID:       "run-1",
		Timestamp:   "2026-03-14T09:30:00Z",
		CommitHash:  "abc1234",
		ToolVersion: "1.2.3",
		Verdict:     domain.VerdictMedium,
		TotalIssues: 4,
		BySeverity:  map[domain.Severity]int{domain.SeverityHigh: 1, domain.SeverityMedium: 3},
	}

	require.NoError(t, h.Append(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, domain.VerdictMedium, entries[0].Verdict)
	assert.Equal(t, 1, entries[0].BySeverity[domain.SeverityHigh])
}

func TestHistory_AppendKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Append(dir, domain.RunEntry{RunID: "run-1", TotalIssues: 9}))
	require.NoError(t, h.Append(dir, domain.RunEntry{RunID: "run-2", TotalIssues: 5}))
	require.NoError(t, h.Append(dir, domain.RunEntry{RunID: "run-3", TotalIssues: 0}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, "run-3", entries[2].RunID)
}

func TestHistory_LoadEmpty(t *testing.T) {
	h := history.New()

	entries, err := h.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".codewarden", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0o755))
	require.NoError(t, os.WriteFile(fp, []byte("not json"), 0o644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
}

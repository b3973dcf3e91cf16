package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/codewarden/codewarden/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderHistory renders the recorded runs for a project, oldest first,
// with the issue-count trend between consecutive runs.
func RenderHistory(entries []domain.RunEntry) string {
	var b strings.Builder

	if len(entries) == 0 {
		b.WriteString("  " + dimStyle.Render("No recorded runs yet.") + "\n")
		b.WriteString("  " + hintStyle.Render("Run codewarden analyze to record one.") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s %s\n\n",
		sectionHeaderStyle.Render("Run history"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(entries)))))

	for i, e := range entries {
		renderHistoryEntry(&b, e, previousTotal(entries, i))
	}

	b.WriteString("\n")
	return b.String()
}

func renderHistoryEntry(b *strings.Builder, e domain.RunEntry, prev int) {
	verdictStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColor(e.Verdict)).
		Render(padRight(e.Verdict, 8))

	line := fmt.Sprintf("    %s  %s %s",
		dimStyle.Render(padRight(e.Timestamp, 20)),
		verdictStyled,
		fmt.Sprintf("%3d issues", e.TotalIssues))
	if e.CommitHash != "" {
		line += "  " + faintStyle.Render(shortCommit(e.CommitHash))
	}
	if trend := trendMark(prev, e.TotalIssues); trend != "" {
		line += "  " + trend
	}
	b.WriteString(line + "\n")
}

// previousTotal returns the issue count of the run before index i, or
// -1 for the first run.
func previousTotal(entries []domain.RunEntry, i int) int {
	if i == 0 {
		return -1
	}
	return entries[i-1].TotalIssues
}

// trendMark shows whether the issue count moved since the last run.
func trendMark(prev, current int) string {
	switch {
	case prev < 0 || prev == current:
		return ""
	case current < prev:
		return passStyle.Render(fmt.Sprintf("▼ %d", prev-current))
	default:
		return lipgloss.NewStyle().Foreground(danger).Render(fmt.Sprintf("▲ %d", current-prev))
	}
}

func shortCommit(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

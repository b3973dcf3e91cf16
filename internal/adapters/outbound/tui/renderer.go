package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/codewarden/codewarden/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
	lime    = lipgloss.Color("#A3E635")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	verdictColors = map[string]lipgloss.Color{
		domain.VerdictCritical: danger,
		domain.VerdictHigh:     danger,
		domain.VerdictMedium:   warning,
		domain.VerdictLow:      lime,
		domain.VerdictMinimal:  success,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))

	critTagStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	highTagStyle   = lipgloss.NewStyle().Foreground(danger)
	mediumTagStyle = lipgloss.NewStyle().Foreground(warning)
	lowTagStyle    = lipgloss.NewStyle().Foreground(lime)
	infoTagStyle   = lipgloss.NewStyle().Foreground(info)
)

// RenderReport renders an analysis report for an interactive terminal.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	verdict := report.Summary.RiskVerdict
	title := headerStyle.Render("codewarden")
	subtitle := dimStyle.Render("Python Security & Quality Analysis")
	verdictStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColor(verdict)).
		Render(verdict + " risk")
	countStyled := dimStyle.Render(fmt.Sprintf("%d issues", report.Summary.TotalIssues))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdictStyled + "  " + countStyled))
	b.WriteString("\n\n")

	// ── Metrics ──
	m := report.Metrics
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf(
		"%d files scanned, %d analyzed, %d lines in %.2fs",
		m.FilesScanned, m.FilesAnalyzed, m.LinesAnalyzed, m.TimeTaken)))
	if m.SkippedOversize > 0 {
		fmt.Fprintf(&b, "  %s\n", faintStyle.Render(fmt.Sprintf("%d oversize files skipped", m.SkippedOversize)))
	}
	if m.Errors > 0 {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render(fmt.Sprintf("%d files could not be analyzed", m.Errors)))
	}

	b.WriteString("\n  " + separatorLine + "\n\n")

	if len(report.Issues) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n\n")
		return b.String()
	}

	// ── Categories ──
	b.WriteString("  " + titleStyle.Render("By category") + "\n")
	maxCount := 0
	for _, n := range report.Summary.ByCategory {
		if n > maxCount {
			maxCount = n
		}
	}
	for _, cat := range domain.ValidCategories {
		n := report.Summary.ByCategory[cat]
		if n == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s %s %s\n",
			catNameStyle.Render(padRight(cat, 22)),
			countBar(n, maxCount, 20),
			dimStyle.Render(fmt.Sprintf("%d", n)))
	}
	b.WriteString("\n  " + separatorLine + "\n\n")

	// ── Issues ──
	b.WriteString("  " + titleStyle.Render("Issues") + "  ")
	for _, sev := range domain.Severities {
		if n := report.Summary.BySeverity[sev]; n > 0 {
			b.WriteString(severityTag(sev) + dimStyle.Render(fmt.Sprintf(" %d  ", n)))
		}
	}
	b.WriteString("\n\n")

	for _, is := range report.Issues {
		renderIssue(&b, is)
	}

	b.WriteString("\n")
	return b.String()
}

func renderIssue(b *strings.Builder, is domain.Issue) {
	loc := shortenPath(is.FilePath)
	if is.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, is.Line)
	}
	fmt.Fprintf(b, "    %s %s  %s\n",
		severityTag(is.Severity),
		fileStyle.Render(loc),
		faintStyle.Render(is.ID))
	fmt.Fprintf(b, "          %s\n", dimStyle.Render(is.Description))
}

// severityTag renders a fixed-width colored label so issue rows align.
func severityTag(sev domain.Severity) string {
	switch sev {
	case domain.SeverityCritical:
		return critTagStyle.Render("CRIT ")
	case domain.SeverityHigh:
		return highTagStyle.Render("HIGH ")
	case domain.SeverityMedium:
		return mediumTagStyle.Render("MED  ")
	case domain.SeverityLow:
		return lowTagStyle.Render("LOW  ")
	default:
		return infoTagStyle.Render("INFO ")
	}
}

func verdictColor(verdict string) lipgloss.Color {
	if c, ok := verdictColors[verdict]; ok {
		return c
	}
	return info
}

// countBar scales a category count against the largest one.
func countBar(count, maxCount, width int) string {
	if maxCount < 1 {
		maxCount = 1
	}
	filled := count * width / maxCount
	if filled < 1 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	filledStr := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled))
	emptyStr := faintStyle.Render(strings.Repeat("░", width-filled))
	return filledStr + emptyStr
}

// shortenPath keeps the tail of long paths so the issue column stays
// readable.
func shortenPath(p string) string {
	if len(p) <= 48 {
		return p
	}
	parts := strings.Split(p, "/")
	for len(parts) > 1 && len(strings.Join(parts, "/")) > 45 {
		parts = parts[1:]
	}
	return "…/" + strings.Join(parts, "/")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

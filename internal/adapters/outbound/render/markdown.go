// Package render turns analysis reports into their exchange formats:
// markdown for assistants and humans, JSON for machines, HTML for
// standalone viewing.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/codewarden/codewarden/internal/domain"
)

// Report format names accepted by Render.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatHTML     = "html"
)

// ValidFormats lists the accepted format names in display order.
var ValidFormats = []string{FormatMarkdown, FormatJSON, FormatHTML}

// Render dispatches on the format name. "md" is accepted as an alias
// for markdown.
func Render(format string, report *domain.Report) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatMarkdown, "md":
		return Markdown(report), nil
	case FormatJSON:
		return JSON(report)
	case FormatHTML:
		return HTML(report)
	default:
		return "", fmt.Errorf("unknown report format %q (valid: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
}

// Markdown renders the full report as GitHub-flavored markdown, the
// primary format handed back to an assistant.
func Markdown(report *domain.Report) string {
	var b strings.Builder

	b.WriteString("# Code Analysis Report\n\n")
	fmt.Fprintf(&b, "**Project:** `%s`  \n", report.ProjectPath)
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Run:** %s (codewarden %s)  \n", report.ScanInfo.RunID, report.ScanInfo.ToolVersion)
	if report.ScanInfo.CommitHash != "" {
		fmt.Fprintf(&b, "**Commit:** %s  \n", report.ScanInfo.CommitHash)
	}
	b.WriteString("\n")

	writeSummary(&b, report)
	writeIssues(&b, report.Issues)
	return b.String()
}

func writeSummary(b *strings.Builder, report *domain.Report) {
	s := report.Summary
	m := report.Metrics

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "**Risk verdict: %s** with %d issue(s) in %d file(s)\n\n",
		s.RiskVerdict, s.TotalIssues, len(s.ByFile))

	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Files scanned | %d |\n", m.FilesScanned)
	fmt.Fprintf(b, "| Files analyzed | %d |\n", m.FilesAnalyzed)
	fmt.Fprintf(b, "| Lines analyzed | %d |\n", m.LinesAnalyzed)
	if m.SkippedOversize > 0 {
		fmt.Fprintf(b, "| Skipped oversize | %d |\n", m.SkippedOversize)
	}
	fmt.Fprintf(b, "| Errors | %d |\n", m.Errors)
	fmt.Fprintf(b, "| Time taken | %.2fs |\n\n", m.TimeTaken)

	if s.TotalIssues == 0 {
		return
	}

	b.WriteString("| Severity | Count |\n|---|---|\n")
	for _, sev := range domain.Severities {
		if n := s.BySeverity[sev]; n > 0 {
			fmt.Fprintf(b, "| %s | %d |\n", sev, n)
		}
	}
	b.WriteString("\n| Category | Count |\n|---|---|\n")
	for _, cat := range domain.ValidCategories {
		if n := s.ByCategory[cat]; n > 0 {
			fmt.Fprintf(b, "| %s | %d |\n", cat, n)
		}
	}
	b.WriteString("\n")
}

func writeIssues(b *strings.Builder, issues []domain.Issue) {
	b.WriteString("## Issues\n\n")
	if len(issues) == 0 {
		b.WriteString("No issues found.\n")
		return
	}

	for _, sev := range domain.Severities {
		group := filterSeverity(issues, sev)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s (%d)\n\n", sev, len(group))
		for _, is := range group {
			writeIssue(b, is)
		}
	}
}

func writeIssue(b *strings.Builder, is domain.Issue) {
	fmt.Fprintf(b, "#### %s: %s\n\n", is.ID, is.Description)
	if is.Line > 0 {
		fmt.Fprintf(b, "- File: `%s:%d`\n", is.FilePath, is.Line)
	} else {
		fmt.Fprintf(b, "- File: `%s`\n", is.FilePath)
	}
	fmt.Fprintf(b, "- Category: %s (%s)\n", is.Category, is.Type)
	if is.CWE != "" {
		fmt.Fprintf(b, "- CWE: %s\n", is.CWE)
	}
	if snippet := strings.TrimRight(is.Snippet, " \t"); strings.TrimSpace(snippet) != "" {
		fmt.Fprintf(b, "\n```\n%s\n```\n", snippet)
	}
	if len(is.Recommendations) > 0 {
		b.WriteString("\nRecommended:\n")
		for _, r := range is.Recommendations {
			fmt.Fprintf(b, "- %s\n", r)
		}
	}
	b.WriteString("\n")
}

func filterSeverity(issues []domain.Issue, sev domain.Severity) []domain.Issue {
	var out []domain.Issue
	for _, is := range issues {
		if is.Severity == sev {
			out = append(out, is)
		}
	}
	return out
}

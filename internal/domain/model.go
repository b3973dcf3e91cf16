package domain

import "time"

// Report is the complete result of one analysis run over a project.
type Report struct {
	ProjectPath string    `json:"project_path"`
	GeneratedAt time.Time `json:"generated_at"`
	ScanInfo    ScanInfo  `json:"scan_info"`
	Metrics     Metrics   `json:"metrics"`
	Summary     Summary   `json:"summary"`
	Issues      []Issue   `json:"issues"`
}

// ScanInfo records how the report was produced so a reader can
// reproduce the run.
type ScanInfo struct {
	RunID       string         `json:"run_id"`
	ToolVersion string         `json:"tool_version"`
	CommitHash  string         `json:"commit_hash,omitempty"`
	Config      AnalysisConfig `json:"config"`
}

// Metrics are the run counters. TimeTaken is wall-clock seconds.
type Metrics struct {
	FilesScanned    int     `json:"files_scanned"`
	FilesAnalyzed   int     `json:"files_analyzed"`
	LinesAnalyzed   int     `json:"lines_analyzed"`
	SkippedOversize int     `json:"skipped_oversize,omitempty"`
	Errors          int     `json:"errors"`
	TimeTaken       float64 `json:"time_taken"`
}

// Summary aggregates the issue list for quick consumption.
type Summary struct {
	TotalIssues int               `json:"total_issues"`
	BySeverity  map[Severity]int  `json:"by_severity"`
	ByType      map[IssueType]int `json:"by_type"`
	ByCategory  map[string]int    `json:"by_category"`
	ByFile      map[string]int    `json:"by_file"`
	RiskVerdict string            `json:"risk_verdict"`
}

// Risk verdict labels, most to least severe.
const (
	VerdictCritical = "Critical"
	VerdictHigh     = "High"
	VerdictMedium   = "Medium"
	VerdictLow      = "Low"
	VerdictMinimal  = "Minimal"
)

// Summarize builds the Summary for a set of issues, including the
// overall risk verdict.
func Summarize(issues []Issue) Summary {
	s := Summary{
		TotalIssues: len(issues),
		BySeverity:  make(map[Severity]int),
		ByType:      make(map[IssueType]int),
		ByCategory:  make(map[string]int),
		ByFile:      make(map[string]int),
	}
	for _, is := range issues {
		s.BySeverity[is.Severity]++
		s.ByType[is.Type]++
		s.ByCategory[is.Category]++
		s.ByFile[is.FilePath]++
	}
	s.RiskVerdict = RiskVerdictFor(s.BySeverity)
	return s
}

// RiskVerdictFor maps severity counts to the overall verdict:
// any CRITICAL is Critical; more than three HIGH is High; any HIGH or
// more than five MEDIUM is Medium; any MEDIUM or LOW is Low; otherwise
// Minimal.
func RiskVerdictFor(bySeverity map[Severity]int) string {
	switch {
	case bySeverity[SeverityCritical] > 0:
		return VerdictCritical
	case bySeverity[SeverityHigh] > 3:
		return VerdictHigh
	case bySeverity[SeverityHigh] > 0 || bySeverity[SeverityMedium] > 5:
		return VerdictMedium
	case bySeverity[SeverityMedium] > 0 || bySeverity[SeverityLow] > 0:
		return VerdictLow
	default:
		return VerdictMinimal
	}
}

// RunEntry is the compact history record kept for each analysis run.
type RunEntry struct {
	RunID       string           `json:"run_id"`
	Timestamp   string           `json:"timestamp"`
	CommitHash  string           `json:"commit_hash,omitempty"`
	ToolVersion string           `json:"tool_version"`
	Verdict     string           `json:"risk_verdict"`
	TotalIssues int              `json:"total_issues"`
	BySeverity  map[Severity]int `json:"by_severity"`
}

// EntryFromReport distills a report into its history record.
func EntryFromReport(r *Report) RunEntry {
	return RunEntry{
		RunID:       r.ScanInfo.RunID,
		Timestamp:   r.GeneratedAt.Format(time.RFC3339),
		CommitHash:  r.ScanInfo.CommitHash,
		ToolVersion: r.ScanInfo.ToolVersion,
		Verdict:     r.Summary.RiskVerdict,
		TotalIssues: r.Summary.TotalIssues,
		BySeverity:  r.Summary.BySeverity,
	}
}

// VerdictColor maps a risk verdict to a badge color name.
func VerdictColor(verdict string) string {
	switch verdict {
	case VerdictCritical:
		return "critical"
	case VerdictHigh:
		return "red"
	case VerdictMedium:
		return "orange"
	case VerdictLow:
		return "yellow"
	default:
		return "brightgreen"
	}
}

package domain

// ProjectWalker traverses a project directory and returns the files
// eligible for analysis, already classified.
type ProjectWalker interface {
	Walk(projectPath string, cfg AnalysisConfig) (*WalkResult, error)
}

// WalkResult holds the outcome of one project traversal.
type WalkResult struct {
	RootPath string           `json:"root_path"`
	Files    []FileDescriptor `json:"files"`

	// Scanned counts every regular file seen, including ones later
	// skipped for size or unknown extension.
	Scanned         int `json:"scanned"`
	SkippedOversize int `json:"skipped_oversize"`
	SkippedIgnored  int `json:"skipped_ignored"`
	WalkErrors      int `json:"walk_errors"`
}

// FileDescriptor identifies one file selected for analysis.
type FileDescriptor struct {
	AbsolutePath string       `json:"absolute_path"`
	RelativePath string       `json:"relative_path"`
	Category     FileCategory `json:"category"`
	Extension    string       `json:"extension"`
	Risk         RiskLevel    `json:"risk_level"`
	Size         int64        `json:"size"`
}

// PythonParser parses Python source into the flattened structural view.
// A *SyntaxFailure error means the file is malformed Python; any other
// error is an internal parser failure.
type PythonParser interface {
	ParsePython(src string) (*PythonSource, error)
}

// ConfigLoader resolves the effective analysis configuration for a
// project from its on-disk config file and the environment.
type ConfigLoader interface {
	Load(projectPath string) (AnalysisConfig, error)
}

// RepoInspector reports version control facts about a project tree.
type RepoInspector interface {
	// Head returns the checked-out commit hash, or "" when the project
	// is not under version control.
	Head(projectPath string) string
}

// ReportStore persists the most recent report for a project so other
// surfaces can read it without re-running the analysis.
type ReportStore interface {
	Save(report *Report) error
	// Load returns (nil, nil) when no report has been stored.
	Load(projectPath string) (*Report, error)
	Invalidate(projectPath string) error
}

// RunHistory appends one entry per analysis run and reads them back in
// chronological order.
type RunHistory interface {
	Append(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// IssueSequencer hands out run-scoped issue IDs, numbered sequentially
// within each ID family. Implementations must be safe for concurrent use.
type IssueSequencer interface {
	Next(family string) string
}

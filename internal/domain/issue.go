package domain

import "sort"

// IssueType separates security findings from code quality findings.
type IssueType string

const (
	IssueSecurity IssueType = "security"
	IssueQuality  IssueType = "quality"
)

// Issue categories. Every issue carries exactly one of these.
const (
	CategoryInjection          = "injection"
	CategoryHardcodedSecrets   = "hardcoded_secrets"
	CategoryInsecureOperations = "insecure_operations"
	CategoryAccessControl      = "access_control"
	CategoryErrorHandling      = "error_handling"
	CategoryDataExposure       = "data_exposure"
	CategoryNetworking         = "networking"
	CategoryFileOperations     = "file_operations"
	CategoryFilesystemAccess   = "filesystem_access"
	CategoryMCPSecurity        = "mcp_security"
	CategoryContextHandling    = "context_handling"
	CategoryMaintainability    = "maintainability"
	CategorySyntax             = "syntax"
)

// ValidCategories lists every issue category in report order.
var ValidCategories = []string{
	CategoryInjection,
	CategoryHardcodedSecrets,
	CategoryInsecureOperations,
	CategoryAccessControl,
	CategoryDataExposure,
	CategoryNetworking,
	CategoryFileOperations,
	CategoryFilesystemAccess,
	CategoryMCPSecurity,
	CategoryContextHandling,
	CategoryErrorHandling,
	CategoryMaintainability,
	CategorySyntax,
}

// Issue ID families. Each analysis run numbers issues sequentially
// within a family, e.g. PAT-001, AST-002.
const (
	FamilyPattern    = "PAT"
	FamilyStructural = "AST"
	FamilyConfig     = "CFG"
	FamilyMCP        = "MCP"
	FamilySyntax     = "SYN"
)

// Issue is a single finding produced by the analyzer. Line, Snippet and
// CWE are optional: zero values mean the finding is file-scoped or has
// no CWE mapping.
type Issue struct {
	ID              string            `json:"issue_id"`
	Severity        Severity          `json:"severity"`
	Category        string            `json:"category"`
	Description     string            `json:"description"`
	FilePath        string            `json:"file_path"`
	Type            IssueType         `json:"issue_type"`
	Line            int               `json:"line_number,omitempty"`
	Snippet         string            `json:"snippet,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	CWE             string            `json:"cwe_id,omitempty"`
	AdditionalInfo  map[string]string `json:"additional_info,omitempty"`
}

// SortIssues orders issues for reporting: severity first (most urgent
// leading), then category, file path and line. The sort is stable so
// same-line issues keep their discovery order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.Line < b.Line
	})
}

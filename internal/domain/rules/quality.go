package rules

import "github.com/codewarden/codewarden/internal/domain"

// pythonQuality covers Python-specific hygiene. These rules always run
// for python files; MinLevel holds back only the noisiest ones.
var pythonQuality = []PatternRule{
	rule(domain.CategoryErrorHandling, domain.SeverityMedium, "CWE-396",
		`(?m)^\s*except\s*:`,
		"Bare except hides unexpected failures"),
	rule(domain.CategoryErrorHandling, domain.SeverityMedium, "CWE-390",
		`(?m)^\s*except[^\n:]*:[ \t]*pass[ \t]*$`,
		"Exception swallowed without handling"),
	rule(domain.CategoryErrorHandling, domain.SeverityMedium, "CWE-390",
		`(?m)^\s*except[^\n:]*:[ \t]*\n[ \t]*pass[ \t]*$`,
		"Except block only passes"),
	rule(domain.CategoryErrorHandling, domain.SeverityLow, "",
		`(?i)traceback\.print_exc\s*\(`,
		"Traceback printed instead of handled"),
	leveled(rule(domain.CategoryErrorHandling, domain.SeverityInfo, "",
		`(?m)^\s*except\s+Exception\b[^\n:]*:\s*$`,
		"Broad exception handler"), domain.LevelHigh),

	rule(domain.CategoryMaintainability, domain.SeverityMedium, "",
		`(?m)^\s*from\s+[\w.]+\s+import\s+\*`,
		"Wildcard import obscures the namespace"),
	rule(domain.CategoryMaintainability, domain.SeverityMedium, "",
		`def\s+\w+\s*\([^)]*=\s*(\[\]|\{\})`,
		"Mutable default argument"),
	leveled(rule(domain.CategoryMaintainability, domain.SeverityLow, "",
		`(?m)^\s*global\s+\w`,
		"Global state mutation"), domain.LevelMedium),
	leveled(rule(domain.CategoryMaintainability, domain.SeverityInfo, "",
		`(?m)^\s*print\s*\(`,
		"Debugging print statement"), domain.LevelHigh),
}

// textQuality applies to any analyzed text file, python included.
var textQuality = []PatternRule{
	rule(domain.CategorySyntax, domain.SeverityHigh, "",
		`(?m)^<<<<<<< `,
		"Unresolved merge conflict marker"),
	leveled(rule(domain.CategoryMaintainability, domain.SeverityInfo, "",
		`(?i)#\s*(todo|fixme|hack|xxx)\b`,
		"Unresolved task marker"), domain.LevelHigh),
}

// QualityIssues runs the quality patterns that apply to the file
// category. Python files get the hygiene rules plus the generic text
// rules; everything else gets only the generic set.
func QualityIssues(category domain.FileCategory, content string, level domain.Level) []domain.Issue {
	var issues []domain.Issue
	if category == domain.CategoryPython {
		issues = evalPatterns(pythonQuality, content, domain.IssueQuality, level)
	}
	issues = append(issues, evalPatterns(textQuality, content, domain.IssueQuality, level)...)
	return issues
}

// SyntaxIssue converts a parse failure into the quality issue recorded
// against the file. Structural checks are skipped when this fires.
func SyntaxIssue(f *domain.SyntaxFailure) domain.Issue {
	return domain.Issue{
		Severity:        domain.SeverityHigh,
		Category:        domain.CategorySyntax,
		Description:     "Python file could not be parsed: " + f.Reason,
		Type:            domain.IssueQuality,
		Line:            f.Line,
		Recommendations: RecommendationsFor(domain.CategorySyntax),
	}
}

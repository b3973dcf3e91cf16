package analysis

import (
	"github.com/codewarden/codewarden/internal/domain"
	"github.com/codewarden/codewarden/internal/domain/rules"
)

// Request carries everything needed to analyze one file. Source and
// ParseFailure are only set for python files: the caller parses before
// invoking so this package stays free of I/O.
type Request struct {
	File         domain.FileDescriptor
	Content      []byte
	Source       *domain.PythonSource
	ParseFailure *domain.SyntaxFailure
	Config       domain.AnalysisConfig
}

// AnalyzeFile evaluates every applicable rule family for one file and
// returns finalized issues: file path set, snippets backfilled from the
// content, IDs drawn from the sequencer.
//
// Pattern security rules respect the risk/level applicability matrix.
// Structural checks run for every parsed python file whenever security
// analysis is enabled at all, so an os.system call is flagged even in a
// low-risk file at security level low.
func AnalyzeFile(req Request, ids domain.IssueSequencer) []domain.Issue {
	cfg := req.Config
	content := string(req.Content)
	securityOn := cfg.IncludeSecurity && domain.SecurityApplies(req.File.Risk, cfg.SecurityLevel)
	qualityOn := cfg.IncludeQuality && domain.QualityApplies(req.File.Category, cfg.QualityLevel)

	var out []domain.Issue
	emit := func(family string, issues []domain.Issue) {
		out = append(out, finalize(issues, family, req.File, content, ids)...)
	}

	switch req.File.Category {
	case domain.CategoryClaudeConfig:
		if cfg.IncludeSecurity {
			emit(domain.FamilyMCP, capture(func() []domain.Issue {
				return rules.InspectClaudeConfig(req.Content)
			}))
		}

	case domain.CategoryConfig:
		if securityOn {
			emit(domain.FamilyConfig, capture(func() []domain.Issue {
				return rules.ConfigIssues(req.File.Extension, content)
			}))
		}
		if qualityOn {
			emit(domain.FamilyPattern, capture(func() []domain.Issue {
				return rules.QualityIssues(req.File.Category, content, cfg.QualityLevel)
			}))
		}

	case domain.CategoryPython:
		if securityOn {
			emit(domain.FamilyPattern, capture(func() []domain.Issue {
				return rules.SecurityIssues(content, cfg.SecurityLevel)
			}))
		}
		if qualityOn {
			emit(domain.FamilyPattern, capture(func() []domain.Issue {
				return rules.QualityIssues(req.File.Category, content, cfg.QualityLevel)
			}))
		}
		switch {
		case req.ParseFailure != nil:
			if cfg.IncludeQuality {
				emit(domain.FamilySyntax, []domain.Issue{rules.SyntaxIssue(req.ParseFailure)})
			}
		case req.Source != nil && cfg.IncludeSecurity:
			emit(domain.FamilyStructural, capture(func() []domain.Issue {
				return rules.CheckImports(req.Source)
			}))
			emit(domain.FamilyStructural, capture(func() []domain.Issue {
				return rules.CheckCalls(req.Source)
			}))
			emit(domain.FamilyStructural, capture(func() []domain.Issue {
				return rules.CheckAssignments(req.Source)
			}))
		}

	default:
		if securityOn {
			emit(domain.FamilyPattern, capture(func() []domain.Issue {
				return rules.SecurityIssues(content, cfg.SecurityLevel)
			}))
		}
		if qualityOn {
			emit(domain.FamilyPattern, capture(func() []domain.Issue {
				return rules.QualityIssues(req.File.Category, content, cfg.QualityLevel)
			}))
		}
	}
	return out
}

// finalize fills the caller-owned fields on candidate issues.
func finalize(issues []domain.Issue, family string, file domain.FileDescriptor, content string, ids domain.IssueSequencer) []domain.Issue {
	for i := range issues {
		issues[i].FilePath = file.RelativePath
		if issues[i].Snippet == "" && issues[i].Line > 0 {
			issues[i].Snippet = rules.SnippetAt(content, issues[i].Line)
		}
		issues[i].ID = ids.Next(family)
	}
	return issues
}

// capture runs one rule family, discarding its result on panic so a
// misbehaving rule skips only itself, never the file or the run.
func capture(fn func() []domain.Issue) (issues []domain.Issue) {
	defer func() {
		if recover() != nil {
			issues = nil
		}
	}()
	return fn()
}

package analysis_test

import (
	"testing"

	"github.com/codewarden/codewarden/internal/domain"
	"github.com/codewarden/codewarden/internal/domain/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pythonFile(relPath string, risk domain.RiskLevel) domain.FileDescriptor {
	return domain.FileDescriptor{
		AbsolutePath: "/project/" + relPath,
		RelativePath: relPath,
		Category:     domain.CategoryPython,
		Extension:    ".py",
		Risk:         risk,
	}
}

func TestAnalyzeFile_StructuralChecksIgnoreSecurityLevel(t *testing.T) {
	content := "import os\n\ndef run(cmd):\n    os.system(cmd)\n"
	cfg := domain.DefaultConfig()
	cfg.SecurityLevel = domain.LevelLow

	req := analysis.Request{
		File:    pythonFile("tests/helper.py", domain.RiskLow),
		Content: []byte(content),
		Source: &domain.PythonSource{
			Imports: []domain.PyImport{{Module: "os", Line: 1}},
			Calls:   []domain.PyCall{{Name: "os.system", Line: 4, Args: []domain.ValueKind{domain.KindName}}},
		},
		Config: cfg,
	}

	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 1)
	assert.Equal(t, "AST-001", issues[0].ID)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Equal(t, domain.CategoryInjection, issues[0].Category)
	assert.Equal(t, 4, issues[0].Line)
	assert.Equal(t, "    os.system(cmd)", issues[0].Snippet)
	assert.Equal(t, "tests/helper.py", issues[0].FilePath)
}

func TestAnalyzeFile_PatternRulesRespectRiskMatrix(t *testing.T) {
	content := "resp = requests.get(url, verify=False)\n"
	src := &domain.PythonSource{
		Calls: []domain.PyCall{{
			Name: "requests.get",
			Line: 1,
			Args: []domain.ValueKind{domain.KindName},
			Keywords: []domain.PyKeyword{
				{Name: "verify", Kind: domain.KindBool, Bool: false},
			},
		}},
	}

	cfg := domain.DefaultConfig()
	cfg.SecurityLevel = domain.LevelLow
	req := analysis.Request{
		File:    pythonFile("app/client.py", domain.RiskMedium),
		Content: []byte(content),
		Source:  src,
		Config:  cfg,
	}
	assert.Empty(t, analysis.AnalyzeFile(req, domain.NewSequencer()))

	cfg.SecurityLevel = domain.LevelMedium
	req.Config = cfg
	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 1)
	assert.Equal(t, "PAT-001", issues[0].ID)
	assert.Equal(t, "CWE-295", issues[0].CWE)
}

func TestAnalyzeFile_QualityAlwaysRunsForPython(t *testing.T) {
	content := "try:\n    work()\nexcept:\n    cleanup()\n"
	cfg := domain.DefaultConfig()
	cfg.QualityLevel = domain.LevelLow
	cfg.IncludeSecurity = false

	req := analysis.Request{
		File:    pythonFile("app/job.py", domain.RiskMedium),
		Content: []byte(content),
		Source:  &domain.PythonSource{Calls: []domain.PyCall{{Name: "work", Line: 2}, {Name: "cleanup", Line: 4}}},
		Config:  cfg,
	}

	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueQuality, issues[0].Type)
	assert.Equal(t, domain.CategoryErrorHandling, issues[0].Category)
	assert.Equal(t, "PAT-001", issues[0].ID)
}

func TestAnalyzeFile_SyntaxFailureBecomesQualityIssue(t *testing.T) {
	content := "x = 1\ntext = \"oops\n"
	req := analysis.Request{
		File:         pythonFile("app/broken.py", domain.RiskMedium),
		Content:      []byte(content),
		ParseFailure: &domain.SyntaxFailure{Line: 2, Reason: "unterminated string literal"},
		Config:       domain.DefaultConfig(),
	}

	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 1)
	assert.Equal(t, "SYN-001", issues[0].ID)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Equal(t, domain.IssueQuality, issues[0].Type)
	assert.Equal(t, domain.CategorySyntax, issues[0].Category)
	assert.Equal(t, `text = "oops`, issues[0].Snippet)
}

func TestAnalyzeFile_SyntaxFailureSuppressedWithoutQuality(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.IncludeQuality = false

	req := analysis.Request{
		File:         pythonFile("app/broken.py", domain.RiskMedium),
		Content:      []byte("text = \"oops\n"),
		ParseFailure: &domain.SyntaxFailure{Line: 1, Reason: "unterminated string literal"},
		Config:       cfg,
	}

	assert.Empty(t, analysis.AnalyzeFile(req, domain.NewSequencer()))
}

func TestAnalyzeFile_ConfigFileUsesExtensionTable(t *testing.T) {
	req := analysis.Request{
		File: domain.FileDescriptor{
			RelativePath: "settings.json",
			Category:     domain.CategoryConfig,
			Extension:    ".json",
			Risk:         domain.RiskHigh,
		},
		Content: []byte("{\n  \"debug\": true\n}\n"),
		Config:  domain.DefaultConfig(),
	}

	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 1)
	assert.Equal(t, "CFG-001", issues[0].ID)
	assert.Equal(t, domain.SeverityMedium, issues[0].Severity)
	assert.Equal(t, 2, issues[0].Line)
}

func TestAnalyzeFile_ClaudeConfigInspection(t *testing.T) {
	content := `{"mcpServers": {"notes": {"command": "python"}}}`
	req := analysis.Request{
		File: domain.FileDescriptor{
			RelativePath: "claude_desktop_config.json",
			Category:     domain.CategoryClaudeConfig,
			Extension:    ".json",
			Risk:         domain.RiskHigh,
		},
		Content: []byte(content),
		Config:  domain.DefaultConfig(),
	}

	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 1)
	assert.Equal(t, "MCP-001", issues[0].ID)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Equal(t, domain.CategoryMCPSecurity, issues[0].Category)
}

func TestAnalyzeFile_TogglesDisableFamilies(t *testing.T) {
	content := "cur.execute(f\"SELECT * FROM users WHERE id = {uid}\")\ntry:\n    pass\nexcept:\n    pass\n"
	src := &domain.PythonSource{
		Calls: []domain.PyCall{{Name: "cur.execute", Attr: "execute", Line: 1, Args: []domain.ValueKind{domain.KindFString}}},
	}
	file := pythonFile("api/db.py", domain.RiskHigh)

	noSecurity := domain.DefaultConfig()
	noSecurity.IncludeSecurity = false
	issues := analysis.AnalyzeFile(analysis.Request{File: file, Content: []byte(content), Source: src, Config: noSecurity}, domain.NewSequencer())
	for _, is := range issues {
		assert.Equal(t, domain.IssueQuality, is.Type)
	}
	assert.NotEmpty(t, issues)

	noQuality := domain.DefaultConfig()
	noQuality.IncludeQuality = false
	issues = analysis.AnalyzeFile(analysis.Request{File: file, Content: []byte(content), Source: src, Config: noQuality}, domain.NewSequencer())
	for _, is := range issues {
		assert.Equal(t, domain.IssueSecurity, is.Type)
	}
	assert.NotEmpty(t, issues)
}

func TestAnalyzeFile_FamiliesNumberIndependently(t *testing.T) {
	content := "cur.execute(f\"SELECT * FROM t WHERE id = {x}\")\npassword = \"hunter2\"\n"
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{{Target: "password", Line: 2, Kind: domain.KindString, Str: "hunter2"}},
	}

	req := analysis.Request{
		File:    pythonFile("api/db.py", domain.RiskHigh),
		Content: []byte(content),
		Source:  src,
		Config:  domain.DefaultConfig(),
	}

	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 2)
	assert.Equal(t, "PAT-001", issues[0].ID)
	assert.Equal(t, domain.CategoryInjection, issues[0].Category)
	assert.Equal(t, "AST-001", issues[1].ID)
	assert.Equal(t, domain.CategoryHardcodedSecrets, issues[1].Category)
}

func TestAnalyzeFile_DocumentationGetsTextRulesOnly(t *testing.T) {
	content := "# Notes\n<<<<<<< HEAD\nexcept:\n"
	cfg := domain.DefaultConfig()

	req := analysis.Request{
		File: domain.FileDescriptor{
			RelativePath: "docs/notes.md",
			Category:     domain.CategoryDocumentation,
			Extension:    ".md",
			Risk:         domain.RiskMedium,
		},
		Content: []byte(content),
		Config:  cfg,
	}

	issues := analysis.AnalyzeFile(req, domain.NewSequencer())
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CategorySyntax, issues[0].Category)
	assert.Equal(t, 2, issues[0].Line)
}

package domain_test

import (
	"testing"

	"github.com/codewarden/codewarden/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_ExtensionTable(t *testing.T) {
	tests := []struct {
		path string
		want domain.FileCategory
	}{
		{"app/main.py", domain.CategoryPython},
		{"web/index.js", domain.CategoryJavaScript},
		{"web/app.ts", domain.CategoryJavaScript},
		{"web/view.jsx", domain.CategoryJavaScript},
		{"web/view.tsx", domain.CategoryJavaScript},
		{"settings.json", domain.CategoryConfig},
		{"deploy.yaml", domain.CategoryConfig},
		{"deploy.yml", domain.CategoryConfig},
		{"pyproject.toml", domain.CategoryConfig},
		{"setup.ini", domain.CategoryConfig},
		{"README.md", domain.CategoryDocumentation},
		{"notes.txt", domain.CategoryDocumentation},
		{"docs/index.rst", domain.CategoryDocumentation},
		{"native/ext.c", domain.CategoryCompiled},
		{"native/ext.cpp", domain.CategoryCompiled},
		{"native/ext.h", domain.CategoryCompiled},
		{"native/ext.hpp", domain.CategoryCompiled},
		{"legacy/Main.java", domain.CategoryCompiled},
		{"site/index.html", domain.CategoryWeb},
		{"site/style.css", domain.CategoryWeb},
		{"site/style.scss", domain.CategoryWeb},
		{"site/style.less", domain.CategoryWeb},
		{"bin/run.sh", domain.CategoryScript},
		{"bin/run.bat", domain.CategoryScript},
		{"bin/run.ps1", domain.CategoryScript},
		{"data.csv", domain.CategoryIgnored},
		{"binary.exe", domain.CategoryIgnored},
		{"Makefile", domain.CategoryIgnored},
	}

	for _, tt := range tests {
		got := domain.Classify(tt.path)
		assert.Equal(t, tt.want, got.Category, "path %s", tt.path)
	}
}

func TestClassify_ClaudeConfigOverridesExtension(t *testing.T) {
	c := domain.Classify("Library/Application Support/Claude/claude_desktop_config.json")
	assert.Equal(t, domain.CategoryClaudeConfig, c.Category)
	assert.Equal(t, domain.RiskHigh, c.Risk)
}

func TestClassify_ExtensionIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, domain.CategoryPython, domain.Classify("Scripts/Tool.PY").Category)
}

func TestClassify_ConfigFilesAreHighRisk(t *testing.T) {
	assert.Equal(t, domain.RiskHigh, domain.Classify("conf/settings.yaml").Risk)
	assert.Equal(t, domain.RiskHigh, domain.Classify("package.json").Risk)
}

func TestClassify_TestDirsAreLowRisk(t *testing.T) {
	assert.Equal(t, domain.RiskLow, domain.Classify("tests/test_app.py").Risk)
	assert.Equal(t, domain.RiskLow, domain.Classify("pkg/test/helper.py").Risk)
}

func TestClassify_TestDirBeatsIndicator(t *testing.T) {
	// Even a file named after an auth concern stays low risk under tests/.
	c := domain.Classify("tests/test_auth_tokens.py")
	assert.Equal(t, domain.RiskLow, c.Risk)
}

func TestClassify_TestNameOutsideTestDirIsNotLowRisk(t *testing.T) {
	// Segment matching: "latest" must not count as a test directory.
	c := domain.Classify("latest/report.py")
	assert.Equal(t, domain.RiskMedium, c.Risk)
}

func TestClassify_IndicatorSegments(t *testing.T) {
	for _, p := range []string{
		"server/handler.py",
		"src/api/routes.py",
		"auth/session.py",
		"login/form.py",
		"admin/panel.py",
	} {
		assert.Equal(t, domain.RiskHigh, domain.Classify(p).Risk, "path %s", p)
	}
}

func TestClassify_IndicatorSubstrings(t *testing.T) {
	for _, p := range []string{
		"app/password_reset.py",
		"app/token_refresh.py",
		"app/secrets_loader.py",
		"lib/crypto_utils.py",
		"core/security.py",
		"core/permissions.py",
		"core/access_log.py",
		"core/authenticate_user.py",
	} {
		assert.Equal(t, domain.RiskHigh, domain.Classify(p).Risk, "path %s", p)
	}
}

func TestClassify_PlainFilesAreMediumRisk(t *testing.T) {
	assert.Equal(t, domain.RiskMedium, domain.Classify("app/models.py").Risk)
	assert.Equal(t, domain.RiskMedium, domain.Classify("utils/format.py").Risk)
}

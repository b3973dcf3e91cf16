package rules_test

import (
	"testing"

	"github.com/codewarden/codewarden/internal/domain"
	"github.com/codewarden/codewarden/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckImports_FlagsDangerousModules(t *testing.T) {
	src := &domain.PythonSource{
		Imports: []domain.PyImport{
			{Module: "pickle", Line: 1},
			{Module: "json", Line: 2},
			{Module: "xml.sax", Line: 3},
			{Module: "telnetlib", Line: 4},
		},
	}

	issues := rules.CheckImports(src)
	require.Len(t, issues, 3)

	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, "CWE-502", issues[0].CWE)

	assert.Equal(t, domain.SeverityMedium, issues[1].Severity)
	assert.Contains(t, issues[1].Description, "xml.sax")

	assert.Equal(t, domain.CategoryNetworking, issues[2].Category)
}

func TestCheckImports_SubprocessIsLow(t *testing.T) {
	src := &domain.PythonSource{
		Imports: []domain.PyImport{{Module: "subprocess", Line: 2}},
	}

	issues := rules.CheckImports(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityLow, issues[0].Severity)
	assert.Equal(t, domain.CategoryInjection, issues[0].Category)
}

func TestCheckCalls_EvalIsCritical(t *testing.T) {
	src := &domain.PythonSource{
		Calls: []domain.PyCall{{Name: "eval", Line: 9, Args: []domain.ValueKind{domain.KindName}}},
	}

	issues := rules.CheckCalls(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityCritical, issues[0].Severity)
	assert.Equal(t, domain.CategoryInjection, issues[0].Category)
	assert.Equal(t, 9, issues[0].Line)
}

func TestCheckCalls_OSSystemIsHigh(t *testing.T) {
	src := &domain.PythonSource{
		Calls: []domain.PyCall{{Name: "os.system", Line: 4}},
	}

	issues := rules.CheckCalls(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Equal(t, "CWE-78", issues[0].CWE)
}

func TestCheckCalls_SubprocessShellEscalates(t *testing.T) {
	plain := &domain.PythonSource{
		Calls: []domain.PyCall{{Name: "subprocess.run", Line: 1}},
	}
	issues := rules.CheckCalls(plain)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityMedium, issues[0].Severity)

	withShell := &domain.PythonSource{
		Calls: []domain.PyCall{{
			Name: "subprocess.run",
			Line: 1,
			Keywords: []domain.PyKeyword{
				{Name: "shell", Kind: domain.KindBool, Bool: true},
			},
		}},
	}
	issues = rules.CheckCalls(withShell)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Contains(t, issues[0].Description, "shell=True")
}

func TestCheckCalls_YamlLoadDowngradesWithSafeLoader(t *testing.T) {
	unsafe := &domain.PythonSource{
		Calls: []domain.PyCall{{Name: "yaml.load", Line: 2}},
	}
	issues := rules.CheckCalls(unsafe)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityMedium, issues[0].Severity)

	safe := &domain.PythonSource{
		Calls: []domain.PyCall{{
			Name: "yaml.load",
			Line: 2,
			Keywords: []domain.PyKeyword{
				{Name: "Loader", Kind: domain.KindName, Str: "yaml.SafeLoader"},
			},
		}},
	}
	issues = rules.CheckCalls(safe)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityLow, issues[0].Severity)
	assert.Contains(t, issues[0].Description, "safe_load")
}

func TestCheckCalls_FormatWithDynamicArgs(t *testing.T) {
	src := &domain.PythonSource{
		Calls: []domain.PyCall{{
			Name: "template.format",
			Attr: "format",
			Line: 6,
			Args: []domain.ValueKind{domain.KindName},
		}},
	}

	issues := rules.CheckCalls(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityLow, issues[0].Severity)
	assert.Equal(t, "CWE-134", issues[0].CWE)
}

func TestCheckCalls_FormatWithLiteralsIsQuiet(t *testing.T) {
	src := &domain.PythonSource{
		Calls: []domain.PyCall{{
			Name: "greeting.format",
			Attr: "format",
			Line: 6,
			Args: []domain.ValueKind{domain.KindString, domain.KindNumber},
		}},
	}

	assert.Empty(t, rules.CheckCalls(src))
}

func TestCheckCalls_OpenIsInfo(t *testing.T) {
	src := &domain.PythonSource{
		Calls: []domain.PyCall{{Name: "open", Line: 3, Args: []domain.ValueKind{domain.KindName}}},
	}

	issues := rules.CheckCalls(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityInfo, issues[0].Severity)
	assert.Equal(t, domain.CategoryFileOperations, issues[0].Category)
}

func TestCheckAssignments_HardcodedPassword(t *testing.T) {
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{
			{Target: "password", Line: 3, Kind: domain.KindString, Str: "hunter2"},
		},
	}

	issues := rules.CheckAssignments(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Equal(t, domain.CategoryHardcodedSecrets, issues[0].Category)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, "CWE-798", issues[0].CWE)
}

func TestCheckAssignments_CamelCaseNormalization(t *testing.T) {
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{
			{Target: "apiKey", Line: 1, Kind: domain.KindString, Str: "sk-live-1234"},
			{Target: "dbPassword", Line: 2, Kind: domain.KindString, Str: "s3cret!"},
		},
	}

	issues := rules.CheckAssignments(src)
	assert.Len(t, issues, 2)
}

func TestCheckAssignments_TokenizerIsNotAToken(t *testing.T) {
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{
			{Target: "tokenizer", Line: 1, Kind: domain.KindString, Str: "bert-base-uncased"},
		},
	}

	assert.Empty(t, rules.CheckAssignments(src))
}

func TestCheckAssignments_PlaceholdersSkipped(t *testing.T) {
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{
			{Target: "password", Line: 1, Kind: domain.KindString, Str: ""},
			{Target: "password", Line: 2, Kind: domain.KindString, Str: "changeme"},
			{Target: "password", Line: 3, Kind: domain.KindString, Str: "xxxxx"},
			{Target: "password", Line: 4, Kind: domain.KindString, Str: "None"},
			{Target: "api_key", Line: 5, Kind: domain.KindString, Str: "<your_key_here>"},
			{Target: "secret", Line: 6, Kind: domain.KindString, Str: "${SECRET}"},
		},
	}

	assert.Empty(t, rules.CheckAssignments(src))
}

func TestCheckAssignments_DebugFlag(t *testing.T) {
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{
			{Target: "DEBUG", Line: 2, Kind: domain.KindBool, Bool: true},
			{Target: "debug", Line: 3, Kind: domain.KindBool, Bool: false},
		},
	}

	issues := rules.CheckAssignments(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityMedium, issues[0].Severity)
	assert.Equal(t, 2, issues[0].Line)
}

func TestCheckAssignments_VerificationDisabled(t *testing.T) {
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{
			{Target: "verify_ssl", Line: 1, Kind: domain.KindBool, Bool: false},
			{Target: "check_certificate", Line: 2, Kind: domain.KindNone},
			{Target: "verify_ssl", Line: 3, Kind: domain.KindBool, Bool: true},
		},
	}

	issues := rules.CheckAssignments(src)
	require.Len(t, issues, 2)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
	assert.Equal(t, "CWE-295", issues[0].CWE)
	assert.Equal(t, 2, issues[1].Line)
}

func TestCheckAssignments_PermissiveFlag(t *testing.T) {
	src := &domain.PythonSource{
		Assigns: []domain.PyAssign{
			{Target: "disable_auth", Line: 4, Kind: domain.KindBool, Bool: true},
		},
	}

	issues := rules.CheckAssignments(src)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CategoryAccessControl, issues[0].Category)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
}

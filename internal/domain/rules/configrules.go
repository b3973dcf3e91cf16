package rules

import "github.com/codewarden/codewarden/internal/domain"

// configPatterns keys security checks for configuration files by
// extension. YAML-style values exclude templated references (${VAR},
// {{var}}) so substituted secrets are not reported.
var configPatterns = map[string][]PatternRule{
	".json": {
		rule(domain.CategoryInsecureOperations, domain.SeverityMedium, "CWE-489",
			`(?i)"debug"\s*:\s*true`,
			"Debug flag enabled in configuration"),
		rule(domain.CategoryHardcodedSecrets, domain.SeverityHigh, "CWE-798",
			`(?i)"(password|passwd|secret|api_key|apikey|token|access_key|private_key)"\s*:\s*"[^"\n]{3,}"`,
			"Credential embedded in JSON configuration"),
		rule(domain.CategoryInsecureOperations, domain.SeverityHigh, "CWE-295",
			`(?i)"(verify_ssl|ssl_verify|check_certificate|tls_verify)"\s*:\s*false`,
			"TLS verification disabled in configuration"),
		rule(domain.CategoryAccessControl, domain.SeverityHigh, "CWE-284",
			`(?i)"(disable_auth|disable_security|allow_anonymous|skip_verification)"\s*:\s*true`,
			"Security control disabled in configuration"),
		rule(domain.CategoryMCPSecurity, domain.SeverityHigh, "CWE-78",
			`(?i)"command"\s*:\s*"(bash|sh|zsh|cmd|powershell)(\.exe)?"`,
			"MCP server configured to launch a shell"),
	},
	".yaml": yamlRules,
	".yml":  yamlRules,
	".toml": {
		rule(domain.CategoryInsecureOperations, domain.SeverityMedium, "CWE-489",
			`(?im)^\s*debug\s*=\s*true\b`,
			"Debug flag enabled in configuration"),
		rule(domain.CategoryHardcodedSecrets, domain.SeverityHigh, "CWE-798",
			`(?im)^\s*(password|passwd|secret|api_key|apikey|token|access_key|private_key)\s*=\s*["'][^"'\n]{3,}["']`,
			"Credential embedded in TOML configuration"),
		rule(domain.CategoryInsecureOperations, domain.SeverityHigh, "CWE-295",
			`(?im)^\s*(verify_ssl|ssl_verify|check_certificate|tls_verify)\s*=\s*false\b`,
			"TLS verification disabled in configuration"),
	},
	".ini": {
		rule(domain.CategoryInsecureOperations, domain.SeverityMedium, "CWE-489",
			`(?im)^\s*debug\s*=\s*(true|1|yes|on)\b`,
			"Debug flag enabled in configuration"),
		rule(domain.CategoryHardcodedSecrets, domain.SeverityHigh, "CWE-798",
			`(?im)^\s*(password|passwd|secret|api_key|apikey|token|access_key|private_key)\s*=\s*[^\s%$][^\n]{2,}`,
			"Credential embedded in INI configuration"),
		rule(domain.CategoryInsecureOperations, domain.SeverityHigh, "CWE-295",
			`(?im)^\s*(verify_ssl|ssl_verify|check_certificate|tls_verify)\s*=\s*(false|no|0|off)\b`,
			"TLS verification disabled in configuration"),
	},
}

var yamlRules = []PatternRule{
	rule(domain.CategoryInsecureOperations, domain.SeverityMedium, "CWE-489",
		`(?im)^\s*debug\s*:\s*(true|yes|on)\b`,
		"Debug flag enabled in configuration"),
	rule(domain.CategoryHardcodedSecrets, domain.SeverityHigh, "CWE-798",
		`(?im)^\s*(password|passwd|secret|api_key|apikey|token|access_key|private_key)\s*:\s*["']?[^\s"'${][^\n]*`,
		"Credential embedded in YAML configuration"),
	rule(domain.CategoryInsecureOperations, domain.SeverityHigh, "CWE-295",
		`(?im)^\s*(verify_ssl|ssl_verify|check_certificate|tls_verify)\s*:\s*(false|no|off)\b`,
		"TLS verification disabled in configuration"),
	rule(domain.CategoryNetworking, domain.SeverityMedium, "CWE-605",
		`(?im)^\s*host\s*:\s*["']?0\.0\.0\.0`,
		"Service bound to all interfaces"),
}

// ConfigIssues runs the extension-keyed table over a configuration
// file. Extensions without a table produce no issues.
func ConfigIssues(ext, content string) []domain.Issue {
	table, ok := configPatterns[ext]
	if !ok {
		return nil
	}
	return evalPatterns(table, content, domain.IssueSecurity, domain.LevelHigh)
}

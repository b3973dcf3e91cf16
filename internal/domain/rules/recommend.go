package rules

import "github.com/codewarden/codewarden/internal/domain"

// recommendations map each category to remediation guidance attached to
// its issues and echoed in report summaries.
var recommendations = map[string][]string{
	domain.CategoryInjection: {
		"Build commands and queries from constant templates with parameterized values.",
		"Prefer subprocess.run with an argument list over shell strings.",
	},
	domain.CategoryHardcodedSecrets: {
		"Move credentials into environment variables or a secret manager.",
		"Rotate any credential that has been committed.",
	},
	domain.CategoryInsecureOperations: {
		"Replace unsafe serializers and weak primitives with vetted alternatives such as json, hashlib.sha256 and yaml.safe_load.",
	},
	domain.CategoryAccessControl: {
		"Grant the narrowest permissions that still work.",
	},
	domain.CategoryErrorHandling: {
		"Catch specific exception types and record the failure context.",
	},
	domain.CategoryDataExposure: {
		"Strip secrets from logs and console output.",
	},
	domain.CategoryNetworking: {
		"Use TLS endpoints and bind services to specific interfaces.",
	},
	domain.CategoryFileOperations: {
		"Resolve and validate paths against an allow-list before touching the filesystem.",
	},
	domain.CategoryFilesystemAccess: {
		"Restrict tool access to specific project directories.",
	},
	domain.CategoryMCPSecurity: {
		"Run MCP servers with a python interpreter and an explicit directory allow-list.",
	},
	domain.CategoryContextHandling: {
		"Keep untrusted input separate from instructions passed to the model.",
	},
	domain.CategoryMaintainability: {
		"Refactor toward explicit imports, immutable defaults and scoped state.",
	},
	domain.CategorySyntax: {
		"Fix the reported parse error; unparseable files skip structural checks.",
	},
}

// RecommendationsFor returns the remediation guidance for a category.
// Callers must treat the returned slice as read-only.
func RecommendationsFor(category string) []string {
	return recommendations[category]
}

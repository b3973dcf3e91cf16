package rules

import (
	"regexp"
	"strings"

	"github.com/codewarden/codewarden/internal/domain"
)

// PatternRule is one regex check. MinLevel gates quality rules that are
// too noisy for every run; security rules leave it empty.
type PatternRule struct {
	Category    string
	Description string
	Severity    domain.Severity
	CWE         string
	MinLevel    domain.Level
	re          *regexp.Regexp
}

func rule(category string, sev domain.Severity, cwe, pattern, desc string) PatternRule {
	return PatternRule{
		Category:    category,
		Description: desc,
		Severity:    sev,
		CWE:         cwe,
		re:          regexp.MustCompile(pattern),
	}
}

func leveled(r PatternRule, min domain.Level) PatternRule {
	r.MinLevel = min
	return r
}

// securityPatterns are the generic security checks applied to code
// files. Checks that a structural visitor already covers for Python
// (os.system calls, bare credential assignments) are deliberately
// absent so a finding is reported once.
var securityPatterns = []PatternRule{
	// injection
	rule(domain.CategoryInjection, domain.SeverityHigh, "CWE-89",
		`(?i)(execute|executemany)\s*\(\s*f["']`,
		"SQL query built with an f-string"),
	rule(domain.CategoryInjection, domain.SeverityHigh, "CWE-89",
		`(?i)(execute|executemany)\s*\(\s*["'][^"'\n]*["']\s*(%|\+|\.format\s*\()`,
		"SQL query assembled from dynamic input"),
	rule(domain.CategoryInjection, domain.SeverityHigh, "CWE-1336",
		`(?i)render_template_string\s*\([^)\n]*(\+|%|\.format\s*\()`,
		"Template rendered from a dynamically built string"),

	// hardcoded_secrets
	rule(domain.CategoryHardcodedSecrets, domain.SeverityCritical, "CWE-798",
		`\bAKIA[0-9A-Z]{16}\b`,
		"AWS access key ID embedded in source"),
	rule(domain.CategoryHardcodedSecrets, domain.SeverityCritical, "CWE-798",
		`-----BEGIN (RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`,
		"Private key material embedded in source"),
	rule(domain.CategoryHardcodedSecrets, domain.SeverityHigh, "CWE-798",
		`(?i)[a-z][a-z0-9+.-]*://[^/\s:@"']+:[^/\s:@"']+@`,
		"Credentials embedded in a connection URL"),
	rule(domain.CategoryHardcodedSecrets, domain.SeverityHigh, "CWE-798",
		`(?i)["'](password|passwd|secret|api_key|apikey|access_token|auth_token|private_key)["']\s*:\s*["'][^"'\n]{3,}["']`,
		"Credential embedded in a mapping literal"),

	// insecure_operations
	rule(domain.CategoryInsecureOperations, domain.SeverityMedium, "CWE-327",
		`(?i)hashlib\.(md5|sha1)\s*\(`,
		"Weak hash algorithm"),
	rule(domain.CategoryInsecureOperations, domain.SeverityHigh, "CWE-295",
		`(?i)ssl\._create_unverified_context`,
		"TLS verification disabled via unverified context"),
	rule(domain.CategoryInsecureOperations, domain.SeverityHigh, "CWE-295",
		`(?i)\bverify\s*=\s*False\b`,
		"Certificate verification disabled"),
	rule(domain.CategoryInsecureOperations, domain.SeverityMedium, "CWE-489",
		`(?i)\.run\s*\([^)\n]*debug\s*=\s*True`,
		"Application run with debug enabled"),
	rule(domain.CategoryInsecureOperations, domain.SeverityMedium, "CWE-377",
		`(?i)tempfile\.mktemp\s*\(`,
		"Insecure temporary file name"),

	// access_control
	rule(domain.CategoryAccessControl, domain.SeverityHigh, "CWE-732",
		`os\.chmod\s*\([^)\n]*0o?777`,
		"World-writable permission bits"),
	rule(domain.CategoryAccessControl, domain.SeverityMedium, "CWE-732",
		`os\.chmod\s*\([^)\n]*0o?666`,
		"World-readable and writable permission bits"),
	rule(domain.CategoryAccessControl, domain.SeverityMedium, "CWE-732",
		`(?i)os\.umask\s*\(\s*0[o0]*\s*\)`,
		"Umask cleared to a permissive default"),

	// data_exposure
	rule(domain.CategoryDataExposure, domain.SeverityMedium, "CWE-532",
		`(?i)\bprint\s*\([^)\n]*(password|secret|token|api_key)`,
		"Sensitive value printed to stdout"),
	rule(domain.CategoryDataExposure, domain.SeverityMedium, "CWE-532",
		`(?i)\blog(ger|ging)?\.(debug|info|warning|error|critical|exception)\s*\([^)\n]*(password|secret|token|api_key)`,
		"Sensitive value written to logs"),

	// networking
	rule(domain.CategoryNetworking, domain.SeverityMedium, "CWE-319",
		`(?i)(\burlopen|\brequests\.(get|post|put|delete|request))\s*\(\s*f?["']http://`,
		"Request sent over plaintext HTTP"),
	rule(domain.CategoryNetworking, domain.SeverityMedium, "CWE-605",
		`(?i)host\s*=\s*["']0\.0\.0\.0["']`,
		"Service bound to all interfaces"),
	rule(domain.CategoryNetworking, domain.SeverityMedium, "CWE-942",
		`(?i)allow_origins\s*=\s*\[?\s*["']\*["']`,
		"CORS configured with a wildcard origin"),

	// file_operations
	rule(domain.CategoryFileOperations, domain.SeverityHigh, "CWE-22",
		`(?i)\b(open|os\.remove|os\.unlink|os\.rename)\s*\(\s*[a-zA-Z_][\w.]*\s*\+`,
		"Filesystem path assembled by concatenation"),
	rule(domain.CategoryFileOperations, domain.SeverityHigh, "CWE-73",
		`(?i)shutil\.rmtree\s*\(\s*["']/`,
		"Recursive delete rooted at an absolute path"),
	rule(domain.CategoryFileOperations, domain.SeverityHigh, "CWE-22",
		`(?i)os\.path\.join\s*\([^)\n]*request\.`,
		"Request data joined into a filesystem path"),
	rule(domain.CategoryFileOperations, domain.SeverityMedium, "CWE-22",
		`(?i)\bopen\s*\(\s*["'][^"'\n]*\.\./`,
		"Parent directory traversal in a literal path"),

	// filesystem_access
	rule(domain.CategoryFilesystemAccess, domain.SeverityHigh, "CWE-284",
		`(?i)allowed_dir(ectorie)?s["']?\s*[:=][^\n]*["'](/|~)["']`,
		"Tool allowed to access the entire filesystem"),
	rule(domain.CategoryFilesystemAccess, domain.SeverityMedium, "CWE-552",
		`(?i)os\.walk\s*\(\s*["'](/|~)["']`,
		"Directory walk rooted at the filesystem root"),
	rule(domain.CategoryFilesystemAccess, domain.SeverityHigh, "CWE-552",
		`(?i)\bopen\s*\(\s*["']/etc/(passwd|shadow)`,
		"System credential file opened"),

	// mcp_security
	rule(domain.CategoryMCPSecurity, domain.SeverityHigh, "CWE-78",
		`(?i)["']command["']\s*:\s*["'](bash|sh|zsh|cmd|powershell)(\.exe)?["']`,
		"MCP server configured to launch a shell"),
	rule(domain.CategoryMCPSecurity, domain.SeverityMedium, "CWE-78",
		`(?i)["']args["']\s*:\s*\[[^\]\n]*["']-c["']`,
		"MCP server arguments embed an inline shell command"),

	// context_handling
	rule(domain.CategoryContextHandling, domain.SeverityMedium, "CWE-74",
		`(?i)(system_prompt|prompt|instructions|context)\s*(\+=|=[^\n=]*\+)[^\n]*(\binput\s*\(|request\.|argv|user_)`,
		"Untrusted input concatenated into model context"),
	rule(domain.CategoryContextHandling, domain.SeverityLow, "CWE-74",
		`(?i)(prompt|instructions|messages)\s*=\s*f["'][^"'\n]*\{`,
		"Model context assembled with f-string interpolation"),
}

// SecurityIssues runs the generic security patterns over file content.
// Returned issues carry no file path or ID; the analyzer fills those.
func SecurityIssues(content string, level domain.Level) []domain.Issue {
	return evalPatterns(securityPatterns, content, domain.IssueSecurity, level)
}

func evalPatterns(rules []PatternRule, content string, typ domain.IssueType, level domain.Level) []domain.Issue {
	var issues []domain.Issue
	for _, r := range rules {
		if r.MinLevel != "" && !level.AtLeast(r.MinLevel) {
			continue
		}
		for _, m := range r.re.FindAllStringIndex(content, -1) {
			line, snippet := locate(content, m[0])
			issues = append(issues, domain.Issue{
				Severity:        r.Severity,
				Category:        r.Category,
				Description:     r.Description,
				Type:            typ,
				Line:            line,
				Snippet:         snippet,
				CWE:             r.CWE,
				Recommendations: RecommendationsFor(r.Category),
			})
		}
	}
	return issues
}

// locate converts a byte offset into a 1-based line number and the full
// text of that line.
func locate(content string, off int) (int, string) {
	if off > len(content) {
		off = len(content)
	}
	line := 1 + strings.Count(content[:off], "\n")
	start := strings.LastIndex(content[:off], "\n") + 1
	end := strings.Index(content[off:], "\n")
	if end < 0 {
		end = len(content)
	} else {
		end += off
	}
	return line, content[start:end]
}

// SnippetAt returns the full text of a 1-based line, or "" when the
// line is out of range.
func SnippetAt(content string, line int) string {
	if line < 1 {
		return ""
	}
	rest := content
	for i := 1; i < line; i++ {
		nl := strings.Index(rest, "\n")
		if nl < 0 {
			return ""
		}
		rest = rest[nl+1:]
	}
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[:nl]
	}
	return rest
}

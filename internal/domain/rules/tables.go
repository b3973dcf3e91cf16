package rules

import (
	"strings"

	"github.com/codewarden/codewarden/internal/domain"
	"github.com/fatih/camelcase"
)

// ImportRule describes why importing a module is flagged. Imports are
// matched by root package, so "from xml.sax import make_parser" hits
// the xml entry.
type ImportRule struct {
	Severity    domain.Severity
	Category    string
	Description string
	CWE         string
}

var dangerousImports = map[string]ImportRule{
	"pickle": {domain.SeverityHigh, domain.CategoryInsecureOperations,
		"pickle deserializes arbitrary objects from untrusted data", "CWE-502"},
	"marshal": {domain.SeverityHigh, domain.CategoryInsecureOperations,
		"marshal loads code objects without validation", "CWE-502"},
	"dill": {domain.SeverityHigh, domain.CategoryInsecureOperations,
		"dill extends pickle to arbitrary callables", "CWE-502"},
	"shelve": {domain.SeverityMedium, domain.CategoryInsecureOperations,
		"shelve persists data through pickle", "CWE-502"},
	"subprocess": {domain.SeverityLow, domain.CategoryInjection,
		"subprocess enables external command execution", "CWE-78"},
	"ftplib": {domain.SeverityHigh, domain.CategoryNetworking,
		"FTP transfers data and credentials in cleartext", "CWE-319"},
	"telnetlib": {domain.SeverityHigh, domain.CategoryNetworking,
		"Telnet transmits credentials in cleartext", "CWE-319"},
	"xml": {domain.SeverityMedium, domain.CategoryInsecureOperations,
		"stdlib XML parsers are vulnerable to entity expansion attacks", "CWE-611"},
}

// CallRule describes why a call site is flagged. Calls are matched by
// their resolved dotted name.
type CallRule struct {
	Severity    domain.Severity
	Category    string
	Description string
	CWE         string
}

var dangerousCalls = map[string]CallRule{
	"eval": {domain.SeverityCritical, domain.CategoryInjection,
		"eval executes arbitrary expressions", "CWE-95"},
	"exec": {domain.SeverityCritical, domain.CategoryInjection,
		"exec executes arbitrary statements", "CWE-95"},
	"os.system": {domain.SeverityHigh, domain.CategoryInjection,
		"os.system runs a shell command string", "CWE-78"},
	"os.popen": {domain.SeverityHigh, domain.CategoryInjection,
		"os.popen runs a shell command string", "CWE-78"},
	"subprocess.call": {domain.SeverityMedium, domain.CategoryInjection,
		"subprocess.call executes an external command", "CWE-78"},
	"subprocess.run": {domain.SeverityMedium, domain.CategoryInjection,
		"subprocess.run executes an external command", "CWE-78"},
	"subprocess.Popen": {domain.SeverityMedium, domain.CategoryInjection,
		"subprocess.Popen executes an external command", "CWE-78"},
	"subprocess.check_call": {domain.SeverityMedium, domain.CategoryInjection,
		"subprocess.check_call executes an external command", "CWE-78"},
	"subprocess.check_output": {domain.SeverityMedium, domain.CategoryInjection,
		"subprocess.check_output executes an external command", "CWE-78"},
	"pickle.load": {domain.SeverityHigh, domain.CategoryInsecureOperations,
		"pickle.load deserializes untrusted data", "CWE-502"},
	"pickle.loads": {domain.SeverityHigh, domain.CategoryInsecureOperations,
		"pickle.loads deserializes untrusted data", "CWE-502"},
	"marshal.load": {domain.SeverityHigh, domain.CategoryInsecureOperations,
		"marshal.load reads code objects without validation", "CWE-502"},
	"marshal.loads": {domain.SeverityHigh, domain.CategoryInsecureOperations,
		"marshal.loads reads code objects without validation", "CWE-502"},
	"shelve.open": {domain.SeverityMedium, domain.CategoryInsecureOperations,
		"shelve.open persists data through pickle", "CWE-502"},
	"yaml.load": {domain.SeverityMedium, domain.CategoryInsecureOperations,
		"yaml.load constructs arbitrary objects without a safe loader", "CWE-502"},
	"input": {domain.SeverityLow, domain.CategoryInjection,
		"input() returns untrusted data", "CWE-20"},
	"open": {domain.SeverityInfo, domain.CategoryFileOperations,
		"open() path should come from trusted input", "CWE-73"},
}

// Variable name parts that mark an assignment target as a credential.
var secretNameParts = []string{
	"password", "passwd", "secret", "api_key", "apikey", "token",
	"private_key", "access_key", "auth_key", "client_secret",
	"encryption_key", "signing_key", "credentials",
}

// Debug-style flags flagged when assigned a truthy literal.
var debugFlagNames = map[string]bool{
	"debug":       true,
	"debug_mode":  true,
	"dev_mode":    true,
	"development": true,
}

// Security-control flags flagged when assigned a truthy literal.
var permissiveFlagNames = map[string]bool{
	"disable_security":   true,
	"disable_auth":       true,
	"disable_validation": true,
	"allow_all":          true,
	"insecure":           true,
	"skip_verification":  true,
}

// Verification flags flagged when assigned a falsy literal. Bare
// "verify" is the pattern table's job so keyword and assignment forms
// report once each.
var verifyFlagNames = map[string]bool{
	"verify_ssl":          true,
	"ssl_verify":          true,
	"verify_certs":        true,
	"verify_certificates": true,
	"check_certificate":   true,
	"check_hostname":      true,
	"tls_verify":          true,
}

var placeholderValues = map[string]bool{
	"changeme":    true,
	"change_me":   true,
	"changethis":  true,
	"placeholder": true,
	"example":     true,
	"dummy":       true,
	"sample":      true,
	"todo":        true,
	"tbd":         true,
	"none":        true,
	"null":        true,
	"not_set":     true,
	"unset":       true,
	"redacted":    true,
}

// normalizeName folds an identifier to snake_case so camelCase targets
// match the snake_case tables: apiKey becomes api_key. Separator chunks
// from the splitter are dropped before joining.
func normalizeName(name string) string {
	var parts []string
	for _, p := range camelcase.Split(name) {
		p = strings.Trim(p, "_")
		if p == "" {
			continue
		}
		parts = append(parts, strings.ToLower(p))
	}
	return strings.Join(parts, "_")
}

// nameHasSecretPart matches table entries on underscore boundaries, so
// db_password matches password but tokenizer does not match token.
func nameHasSecretPart(normalized string) bool {
	padded := "_" + normalized + "_"
	for _, part := range secretNameParts {
		if strings.Contains(padded, "_"+part+"_") {
			return true
		}
	}
	return false
}

// isPlaceholder reports whether a would-be secret value is obviously
// not a real credential.
func isPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || placeholderValues[v] {
		return true
	}
	if strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
		return true
	}
	if strings.HasPrefix(v, "${") || strings.HasPrefix(v, "{{") {
		return true
	}
	if strings.Contains(v, "your_") || strings.Contains(v, "_here") {
		return true
	}
	return sameRune(v)
}

// sameRune reports whether the string repeats a single character, the
// xxxxx and ***** placeholder style.
func sameRune(v string) bool {
	var first rune
	for i, r := range v {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return false
		}
	}
	return len(v) > 0
}

package rules

import (
	"fmt"
	"strings"

	"github.com/codewarden/codewarden/internal/domain"
)

// CheckImports flags imports of modules known to enable unsafe
// behavior. Each import site is reported, matched by root package.
func CheckImports(src *domain.PythonSource) []domain.Issue {
	var issues []domain.Issue
	for _, imp := range src.Imports {
		root := imp.Module
		if i := strings.Index(root, "."); i >= 0 {
			root = root[:i]
		}
		r, ok := dangerousImports[root]
		if !ok {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity:        r.Severity,
			Category:        r.Category,
			Description:     fmt.Sprintf("import of %s: %s", imp.Module, r.Description),
			Type:            domain.IssueSecurity,
			Line:            imp.Line,
			CWE:             r.CWE,
			Recommendations: RecommendationsFor(r.Category),
			AdditionalInfo:  map[string]string{"module": imp.Module},
		})
	}
	return issues
}

// CheckCalls flags dangerous call sites. subprocess calls escalate to
// HIGH when shell=True is passed; yaml.load downgrades when a safe
// loader is supplied. Calls of .format with non-literal arguments are
// reported as potential format-string injection.
func CheckCalls(src *domain.PythonSource) []domain.Issue {
	var issues []domain.Issue
	for _, call := range src.Calls {
		if r, ok := dangerousCalls[call.Name]; ok {
			sev, desc := r.Severity, r.Description
			if strings.HasPrefix(call.Name, "subprocess.") {
				if kw, ok := call.Keyword("shell"); ok && kw.Kind == domain.KindBool && kw.Bool {
					sev = domain.SeverityHigh
					desc = call.Name + " invoked with shell=True"
				}
			}
			if call.Name == "yaml.load" {
				if kw, ok := call.Keyword("Loader"); ok && strings.Contains(kw.Str, "Safe") {
					sev = domain.SeverityLow
					desc = "yaml.load with a safe loader; prefer yaml.safe_load"
				}
			}
			issues = append(issues, domain.Issue{
				Severity:        sev,
				Category:        r.Category,
				Description:     desc,
				Type:            domain.IssueSecurity,
				Line:            call.Line,
				CWE:             r.CWE,
				Recommendations: RecommendationsFor(r.Category),
				AdditionalInfo:  map[string]string{"call": call.Name},
			})
		}

		if call.Attr == "format" && formatHasDynamicArgs(call) {
			issues = append(issues, domain.Issue{
				Severity:        domain.SeverityLow,
				Category:        domain.CategoryInjection,
				Description:     "str.format interpolates non-literal arguments",
				Type:            domain.IssueSecurity,
				Line:            call.Line,
				CWE:             "CWE-134",
				Recommendations: RecommendationsFor(domain.CategoryInjection),
			})
		}
	}
	return issues
}

func formatHasDynamicArgs(call domain.PyCall) bool {
	if call.HasStar {
		return true
	}
	for _, k := range call.Args {
		if !k.Literal() {
			return true
		}
	}
	for _, kw := range call.Keywords {
		if !kw.Kind.Literal() {
			return true
		}
	}
	return false
}

// CheckAssignments flags three assignment shapes: credential names
// bound to string literals, debug-style flags switched on, and
// verification flags switched off. Placeholder values are skipped.
func CheckAssignments(src *domain.PythonSource) []domain.Issue {
	var issues []domain.Issue
	for _, a := range src.Assigns {
		norm := normalizeName(a.Target)

		switch {
		case a.Kind == domain.KindString && nameHasSecretPart(norm) && !isPlaceholder(a.Str):
			issues = append(issues, domain.Issue{
				Severity:        domain.SeverityHigh,
				Category:        domain.CategoryHardcodedSecrets,
				Description:     fmt.Sprintf("hardcoded credential assigned to %q", a.Target),
				Type:            domain.IssueSecurity,
				Line:            a.Line,
				CWE:             "CWE-798",
				Recommendations: RecommendationsFor(domain.CategoryHardcodedSecrets),
				AdditionalInfo:  map[string]string{"variable": a.Target},
			})

		case a.Kind == domain.KindBool && a.Bool && debugFlagNames[norm]:
			issues = append(issues, domain.Issue{
				Severity:        domain.SeverityMedium,
				Category:        domain.CategoryInsecureOperations,
				Description:     fmt.Sprintf("debug flag %s enabled", a.Target),
				Type:            domain.IssueSecurity,
				Line:            a.Line,
				CWE:             "CWE-489",
				Recommendations: RecommendationsFor(domain.CategoryInsecureOperations),
				AdditionalInfo:  map[string]string{"variable": a.Target},
			})

		case a.Kind == domain.KindBool && a.Bool && permissiveFlagNames[norm]:
			issues = append(issues, domain.Issue{
				Severity:        domain.SeverityHigh,
				Category:        domain.CategoryAccessControl,
				Description:     fmt.Sprintf("security control bypassed via %s", a.Target),
				Type:            domain.IssueSecurity,
				Line:            a.Line,
				CWE:             "CWE-284",
				Recommendations: RecommendationsFor(domain.CategoryAccessControl),
				AdditionalInfo:  map[string]string{"variable": a.Target},
			})

		case falsy(a) && verifyFlagNames[norm]:
			issues = append(issues, domain.Issue{
				Severity:        domain.SeverityHigh,
				Category:        domain.CategoryInsecureOperations,
				Description:     fmt.Sprintf("certificate verification disabled by %s", a.Target),
				Type:            domain.IssueSecurity,
				Line:            a.Line,
				CWE:             "CWE-295",
				Recommendations: RecommendationsFor(domain.CategoryInsecureOperations),
				AdditionalInfo:  map[string]string{"variable": a.Target},
			})
		}
	}
	return issues
}

func falsy(a domain.PyAssign) bool {
	if a.Kind == domain.KindBool {
		return !a.Bool
	}
	return a.Kind == domain.KindNone
}

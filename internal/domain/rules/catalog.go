package rules

import (
	"sort"

	"github.com/codewarden/codewarden/internal/domain"
)

// CatalogEntry summarizes the checks registered for one category.
type CatalogEntry struct {
	Category        string   `json:"category"`
	Rules           int      `json:"rules"`
	Examples        []string `json:"examples,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

const catalogExampleLimit = 3

// Catalog aggregates every registered check by category, counting
// pattern rules, config-table rules and structural table entries. The
// result is sorted by category name.
func Catalog() []CatalogEntry {
	counts := make(map[string]int)
	examples := make(map[string][]string)

	add := func(category, desc string) {
		counts[category]++
		if len(examples[category]) < catalogExampleLimit {
			examples[category] = append(examples[category], desc)
		}
	}

	for _, r := range securityPatterns {
		add(r.Category, r.Description)
	}
	for _, r := range pythonQuality {
		add(r.Category, r.Description)
	}
	for _, r := range textQuality {
		add(r.Category, r.Description)
	}

	exts := make([]string, 0, len(configPatterns))
	for ext := range configPatterns {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		for _, r := range configPatterns[ext] {
			add(r.Category, r.Description)
		}
	}

	mods := make([]string, 0, len(dangerousImports))
	for m := range dangerousImports {
		mods = append(mods, m)
	}
	sort.Strings(mods)
	for _, m := range mods {
		add(dangerousImports[m].Category, dangerousImports[m].Description)
	}

	calls := make([]string, 0, len(dangerousCalls))
	for c := range dangerousCalls {
		calls = append(calls, c)
	}
	sort.Strings(calls)
	for _, c := range calls {
		add(dangerousCalls[c].Category, dangerousCalls[c].Description)
	}

	// Assignment checks and the claude config inspection are not
	// table-driven rule lists; count them as fixed entries.
	add(domain.CategoryHardcodedSecrets, "hardcoded credential assigned to a sensitive variable")
	add(domain.CategoryInsecureOperations, "debug flag enabled by assignment")
	add(domain.CategoryInsecureOperations, "certificate verification disabled by assignment")
	add(domain.CategoryAccessControl, "security control disabled by assignment")
	add(domain.CategoryMCPSecurity, "MCP server without a directory restriction")
	add(domain.CategoryMCPSecurity, "MCP server launched with a non-python command")
	add(domain.CategoryHardcodedSecrets, "credential embedded in MCP server environment")

	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	entries := make([]CatalogEntry, 0, len(cats))
	for _, c := range cats {
		entries = append(entries, CatalogEntry{
			Category:        c,
			Rules:           counts[c],
			Examples:        examples[c],
			Recommendations: RecommendationsFor(c),
		})
	}
	return entries
}

package domain

import (
	"path/filepath"
	"strings"
)

// FileCategory groups files by the kind of analysis they receive.
type FileCategory string

const (
	CategoryPython        FileCategory = "python"
	CategoryJavaScript    FileCategory = "javascript"
	CategoryConfig        FileCategory = "config"
	CategoryDocumentation FileCategory = "documentation"
	CategoryCompiled      FileCategory = "compiled"
	CategoryWeb           FileCategory = "web"
	CategoryScript        FileCategory = "script"
	CategoryClaudeConfig  FileCategory = "claude_config"
	CategoryIgnored       FileCategory = "ignored"
)

// RiskLevel estimates how security-sensitive a file is based on its path.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// ClaudeConfigFileName is the assistant configuration file that receives
// dedicated MCP server inspection regardless of its extension mapping.
const ClaudeConfigFileName = "claude_desktop_config.json"

var categoryByExtension = map[string]FileCategory{
	".py":   CategoryPython,
	".js":   CategoryJavaScript,
	".ts":   CategoryJavaScript,
	".jsx":  CategoryJavaScript,
	".tsx":  CategoryJavaScript,
	".json": CategoryConfig,
	".yaml": CategoryConfig,
	".yml":  CategoryConfig,
	".toml": CategoryConfig,
	".ini":  CategoryConfig,
	".md":   CategoryDocumentation,
	".txt":  CategoryDocumentation,
	".rst":  CategoryDocumentation,
	".c":    CategoryCompiled,
	".cpp":  CategoryCompiled,
	".h":    CategoryCompiled,
	".hpp":  CategoryCompiled,
	".java": CategoryCompiled,
	".html": CategoryWeb,
	".css":  CategoryWeb,
	".scss": CategoryWeb,
	".less": CategoryWeb,
	".sh":   CategoryScript,
	".bat":  CategoryScript,
	".ps1":  CategoryScript,
}

// Path segments that mark a file as high risk.
var riskSegments = map[string]bool{
	"server": true,
	"api":    true,
	"auth":   true,
	"login":  true,
	"admin":  true,
}

// Substrings anywhere in the lowercased path that mark a file as high risk.
var riskSubstrings = []string{
	"password",
	"token",
	"secret",
	"crypt",
	"security",
	"permission",
	"access",
	"authenticate",
}

// Classification is the analyzer-facing description of one file.
type Classification struct {
	Category  FileCategory `json:"category"`
	Extension string       `json:"extension"`
	Risk      RiskLevel    `json:"risk_level"`
}

// Classify maps a project-relative path to its file category and risk
// level. Unknown extensions classify as ignored; ignored files keep a
// risk level anyway so callers can log consistent records.
func Classify(relPath string) Classification {
	norm := filepath.ToSlash(relPath)
	ext := strings.ToLower(filepath.Ext(norm))

	category, ok := categoryByExtension[ext]
	if !ok {
		category = CategoryIgnored
	}
	if strings.EqualFold(slashBase(norm), ClaudeConfigFileName) {
		category = CategoryClaudeConfig
	}

	return Classification{
		Category:  category,
		Extension: ext,
		Risk:      riskOf(norm, category),
	}
}

// riskOf applies the path heuristics in precedence order: configuration
// files are always high risk, test directories force low risk, and only
// then do the sensitive-path indicators apply.
func riskOf(norm string, category FileCategory) RiskLevel {
	if category == CategoryConfig || category == CategoryClaudeConfig {
		return RiskHigh
	}

	lower := strings.ToLower(norm)
	segments := strings.Split(lower, "/")

	// Segment matching keeps "latest.py" from counting as a test file.
	for _, seg := range segments[:len(segments)-1] {
		if seg == "test" || seg == "tests" {
			return RiskLow
		}
	}

	for _, seg := range segments {
		if riskSegments[seg] {
			return RiskHigh
		}
	}
	for _, sub := range riskSubstrings {
		if strings.Contains(lower, sub) {
			return RiskHigh
		}
	}

	return RiskMedium
}

func slashBase(norm string) string {
	if i := strings.LastIndex(norm, "/"); i >= 0 {
		return norm[i+1:]
	}
	return norm
}

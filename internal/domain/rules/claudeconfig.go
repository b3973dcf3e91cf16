package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/codewarden/codewarden/internal/domain"
)

type claudeConfig struct {
	MCPServers map[string]mcpServerEntry `json:"mcpServers"`
}

type mcpServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

var shellCommands = map[string]bool{
	"bash": true, "sh": true, "zsh": true, "cmd": true, "powershell": true,
}

// InspectClaudeConfig checks an assistant configuration file for
// risky MCP server entries. Invalid JSON is itself reported as a
// finding rather than an analysis error.
func InspectClaudeConfig(content []byte) []domain.Issue {
	var cfg claudeConfig
	if err := json.Unmarshal(content, &cfg); err != nil {
		line := 0
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			line = 1 + bytes.Count(content[:syn.Offset], []byte("\n"))
		}
		return []domain.Issue{{
			Severity:        domain.SeverityMedium,
			Category:        domain.CategoryMCPSecurity,
			Description:     "claude_desktop_config.json is not valid JSON: " + err.Error(),
			Type:            domain.IssueSecurity,
			Line:            line,
			Recommendations: RecommendationsFor(domain.CategoryMCPSecurity),
		}}
	}

	names := make([]string, 0, len(cfg.MCPServers))
	for name := range cfg.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []domain.Issue
	for _, name := range names {
		issues = append(issues, inspectServer(name, cfg.MCPServers[name])...)
	}
	return issues
}

func inspectServer(name string, srv mcpServerEntry) []domain.Issue {
	var issues []domain.Issue

	if !hasDirRestriction(srv.Env) {
		issues = append(issues, domain.Issue{
			Severity:        domain.SeverityHigh,
			Category:        domain.CategoryMCPSecurity,
			Description:     fmt.Sprintf("MCP server %q has no directory restriction in its environment", name),
			Type:            domain.IssueSecurity,
			CWE:             "CWE-284",
			Recommendations: RecommendationsFor(domain.CategoryMCPSecurity),
			AdditionalInfo:  map[string]string{"server": name},
		})
	}

	base := commandBase(srv.Command)
	switch {
	case shellCommands[base]:
		issues = append(issues, domain.Issue{
			Severity:        domain.SeverityHigh,
			Category:        domain.CategoryMCPSecurity,
			Description:     fmt.Sprintf("MCP server %q launches the shell %q", name, srv.Command),
			Type:            domain.IssueSecurity,
			CWE:             "CWE-78",
			Recommendations: RecommendationsFor(domain.CategoryMCPSecurity),
			AdditionalInfo:  map[string]string{"server": name, "command": srv.Command},
		})
	case base != "python" && base != "python3":
		issues = append(issues, domain.Issue{
			Severity:        domain.SeverityMedium,
			Category:        domain.CategoryMCPSecurity,
			Description:     fmt.Sprintf("MCP server %q launches %q instead of a python interpreter", name, srv.Command),
			Type:            domain.IssueSecurity,
			CWE:             "CWE-78",
			Recommendations: RecommendationsFor(domain.CategoryMCPSecurity),
			AdditionalInfo:  map[string]string{"server": name, "command": srv.Command},
		})
	}

	envKeys := make([]string, 0, len(srv.Env))
	for k := range srv.Env {
		envKeys = append(envKeys, k)
	}
	sort.Strings(envKeys)
	for _, k := range envKeys {
		v := srv.Env[k]
		if nameHasSecretPart(normalizeName(k)) && !isPlaceholder(v) {
			issues = append(issues, domain.Issue{
				Severity:        domain.SeverityHigh,
				Category:        domain.CategoryHardcodedSecrets,
				Description:     fmt.Sprintf("MCP server %q embeds a credential in environment variable %s", name, k),
				Type:            domain.IssueSecurity,
				CWE:             "CWE-798",
				Recommendations: RecommendationsFor(domain.CategoryHardcodedSecrets),
				AdditionalInfo:  map[string]string{"server": name, "variable": k},
			})
		}
	}

	return issues
}

// commandBase extracts the executable name from a command path. The
// config may have been written on Windows, so backslash separators and
// an .exe suffix are handled regardless of the host platform.
func commandBase(command string) string {
	base := path.Base(strings.ReplaceAll(command, `\`, "/"))
	return strings.ToLower(strings.TrimSuffix(base, ".exe"))
}

// hasDirRestriction looks for an environment variable that scopes the
// server to specific directories, e.g. ALLOWED_DIRECTORIES or
// MCP_ALLOWED_PATHS.
func hasDirRestriction(env map[string]string) bool {
	for k := range env {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "allowed") &&
			(strings.Contains(lower, "dir") || strings.Contains(lower, "path")) {
			return true
		}
	}
	return false
}

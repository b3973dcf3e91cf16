package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codewarden/codewarden/internal/adapters/outbound/cache"
	"github.com/codewarden/codewarden/internal/adapters/outbound/config"
	"github.com/codewarden/codewarden/internal/adapters/outbound/gitinfo"
	"github.com/codewarden/codewarden/internal/adapters/outbound/history"
	"github.com/codewarden/codewarden/internal/adapters/outbound/parser"
	"github.com/codewarden/codewarden/internal/adapters/outbound/walker"
	"github.com/codewarden/codewarden/internal/application"
	"github.com/codewarden/codewarden/internal/domain"
	"github.com/codewarden/codewarden/internal/domain/rules"
)

// registerTools registers all codewarden MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath, version string) {
	// 1. codewarden_analyze_project
	s.AddTool(
		mcplib.NewTool("codewarden_analyze_project",
			mcplib.WithDescription("Run the full security and quality analysis over a Python project and return the report as JSON"),
			mcplib.WithString("path", mcplib.Description("Project directory to analyze (defaults to the server's project)")),
			mcplib.WithString("security_level", mcplib.Description("Security strictness: low, medium or high")),
			mcplib.WithString("quality_level", mcplib.Description("Quality strictness: low, medium or high")),
			mcplib.WithBoolean("include_security", mcplib.Description("Run security rules (default true)")),
			mcplib.WithBoolean("include_quality", mcplib.Description("Run quality rules (default true)")),
			mcplib.WithNumber("max_workers", mcplib.Description("Number of parallel analysis workers")),
		),
		handleAnalyzeProject(projectPath, version),
	)

	// 2. codewarden_analyze_file
	s.AddTool(
		mcplib.NewTool("codewarden_analyze_file",
			mcplib.WithDescription("Analyze a single file and return its issues as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the file, absolute or relative to the project root"),
			),
		),
		handleAnalyzeFile(projectPath, version),
	)

	// 3. codewarden_classify_path
	s.AddTool(
		mcplib.NewTool("codewarden_classify_path",
			mcplib.WithDescription("Classify a project-relative path: file category, extension and risk level"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Project-relative path to classify"),
			),
		),
		handleClassifyPath(),
	)

	// 4. codewarden_rule_catalog
	s.AddTool(
		mcplib.NewTool("codewarden_rule_catalog",
			mcplib.WithDescription("Describe the registered analysis rules, grouped by issue category"),
		),
		handleRuleCatalog(),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices(version string) (*application.AnalyzeService, *application.ReportService) {
	analyze := application.NewAnalyzeService(
		walker.New(),
		parser.New(),
		config.New(),
		gitinfo.New(),
		nil,
		version,
	)
	reports := application.NewReportService(cache.New(), history.New(), nil)
	return analyze, reports
}

func handleAnalyzeProject(projectPath, version string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		path := projectPath
		if p, ok := args["path"].(string); ok && p != "" {
			path = p
		}

		cfg, err := configFromArgs(args, path)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		analyzeSvc, reportSvc := newServices(version)
		report, err := analyzeSvc.Run(ctx, path, cfg)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		// Best-effort persistence keeps the report resource current.
		_ = reportSvc.Record(report)

		return jsonResult(report)
	}
}

func handleAnalyzeFile(projectPath, version string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		analyzeSvc, _ := newServices(version)
		report, err := analyzeSvc.AnalyzeFile(ctx, resolveFile(projectPath, file), projectPath, nil)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleClassifyPath() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.Classify(path))
	}
}

func handleRuleCatalog() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(rules.Catalog())
	}
}

// configFromArgs merges tool-call config arguments over the project's
// resolved configuration. Without config arguments it returns nil so
// the service loads the project config itself.
func configFromArgs(args map[string]any, projectPath string) (*domain.AnalysisConfig, error) {
	touched := false
	for _, k := range []string{"security_level", "quality_level", "include_security", "include_quality", "max_workers"} {
		if _, ok := args[k]; ok {
			touched = true
			break
		}
	}
	if !touched {
		return nil, nil
	}

	cfg, err := config.New().Load(projectPath)
	if err != nil {
		cfg = domain.DefaultConfig()
	}

	if v, ok := args["security_level"].(string); ok && v != "" {
		lvl, valid := domain.ParseLevel(v)
		if !valid {
			return nil, fmt.Errorf("unknown security level %q (valid: low, medium, high)", v)
		}
		cfg.SecurityLevel = lvl
	}
	if v, ok := args["quality_level"].(string); ok && v != "" {
		lvl, valid := domain.ParseLevel(v)
		if !valid {
			return nil, fmt.Errorf("unknown quality level %q (valid: low, medium, high)", v)
		}
		cfg.QualityLevel = lvl
	}
	if v, ok := args["include_security"].(bool); ok {
		cfg.IncludeSecurity = v
	}
	if v, ok := args["include_quality"].(bool); ok {
		cfg.IncludeQuality = v
	}
	if v, ok := args["max_workers"].(float64); ok && int(v) >= 1 {
		cfg.MaxWorkers = int(v)
	}

	return &cfg, nil
}

// resolveFile anchors relative file arguments at the project root.
func resolveFile(projectPath, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(projectPath, file)
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codewarden/codewarden/internal/domain/rules"
)

// registerResources registers all codewarden MCP resources on the given
// server.
func registerResources(s *server.MCPServer, projectPath, version string) {
	// 1. codewarden://report - latest analysis report
	s.AddResource(
		mcplib.NewResource(
			"codewarden://report",
			"Analysis Report",
			mcplib.WithResourceDescription("Latest analysis report for the project; runs a fresh analysis when none is recorded"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath, version),
	)

	// 2. codewarden://rules - rule catalog
	s.AddResource(
		mcplib.NewResource(
			"codewarden://rules",
			"Rule Catalog",
			mcplib.WithResourceDescription("Registered analysis rules grouped by issue category"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(),
	)
}

func handleReportResource(projectPath, version string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		analyzeSvc, reportSvc := newServices(version)

		report, err := reportSvc.Latest(projectPath)
		if err != nil || report == nil {
			report, err = analyzeSvc.Run(ctx, projectPath, nil)
			if err != nil {
				return nil, fmt.Errorf("analysis failed: %w", err)
			}
			_ = reportSvc.Record(report)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "codewarden://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleRulesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(rules.Catalog(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling catalog: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "codewarden://rules",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

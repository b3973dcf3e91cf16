package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with all codewarden tools and
// resources registered. The projectPath is the root directory of the
// project to analyze; version is stamped into every report's scan_info.
func NewServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"codewarden",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, version)
	registerResources(s, projectPath, version)

	return s
}

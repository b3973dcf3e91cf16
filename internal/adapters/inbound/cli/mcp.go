package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/codewarden/codewarden/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the codewarden MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		projectPath string
		envFile     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the codewarden MCP server (stdio)",
		Long:  "Start the codewarden MCP server over stdio so AI assistants can request project analyses, single-file checks, path classification and rule metadata.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}

			// MCP hosts configure servers through env blocks; a local
			// .env fills the same role during development. CODEWARDEN_*
			// variables loaded here feed the config loader.
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("loading env file: %w", err)
				}
			} else {
				_ = godotenv.Load()
			}

			s := mcpadapter.NewServer(projectPath, version)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Load environment overrides from this file before starting")

	return cmd
}

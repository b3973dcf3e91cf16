package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codewarden/codewarden/internal/adapters/outbound/config"
	"github.com/codewarden/codewarden/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .codewarden.yaml configuration file",
		Long:  "Create a .codewarden.yaml in the project root with the default analysis settings spelled out.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig()), 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .codewarden.yaml")

	return cmd
}

func generateConfig() string {
	cfg := domain.DefaultConfig()

	var b strings.Builder
	b.WriteString("# codewarden configuration\n")
	b.WriteString("# Every key is optional; omitted keys keep their defaults.\n\n")
	fmt.Fprintf(&b, "security_level: %s\n", cfg.SecurityLevel)
	fmt.Fprintf(&b, "quality_level: %s\n", cfg.QualityLevel)
	fmt.Fprintf(&b, "include_security: %t\n", cfg.IncludeSecurity)
	fmt.Fprintf(&b, "include_quality: %t\n", cfg.IncludeQuality)
	fmt.Fprintf(&b, "file_size_limit: %d\n", cfg.FileSizeLimit)

	b.WriteString("\n# max_workers defaults to twice the CPU count.\n")
	b.WriteString("# max_workers: 8\n")

	b.WriteString("\n# Directory names pruned during the walk. Listing any replaces the\n")
	b.WriteString("# default set entirely.\n")
	b.WriteString("# excluded_dirs:\n")
	for _, d := range cfg.ExcludedDirs {
		fmt.Fprintf(&b, "#   - %s\n", d)
	}

	return b.String()
}

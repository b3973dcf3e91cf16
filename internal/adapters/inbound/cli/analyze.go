package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codewarden/codewarden/internal/adapters/outbound/cache"
	"github.com/codewarden/codewarden/internal/adapters/outbound/config"
	"github.com/codewarden/codewarden/internal/adapters/outbound/gitinfo"
	"github.com/codewarden/codewarden/internal/adapters/outbound/history"
	"github.com/codewarden/codewarden/internal/adapters/outbound/logging"
	"github.com/codewarden/codewarden/internal/adapters/outbound/parser"
	"github.com/codewarden/codewarden/internal/adapters/outbound/render"
	"github.com/codewarden/codewarden/internal/adapters/outbound/tui"
	"github.com/codewarden/codewarden/internal/adapters/outbound/walker"
	"github.com/codewarden/codewarden/internal/application"
	"github.com/codewarden/codewarden/internal/domain"
)

// configFlags are the analyze flags that map onto AnalysisConfig
// fields. Only flags the user actually set override the project config.
var configFlags = []string{
	"security-level", "quality-level", "workers",
	"max-file-size", "no-security", "no-quality", "exclude",
}

func newAnalyzeCmd() *cobra.Command {
	var (
		format        string
		output        string
		securityLevel string
		qualityLevel  string
		workers       int
		maxFileSize   int64
		noSecurity    bool
		noQuality     bool
		exclude       []string
		ciMode        bool
		failOn        string
		debug         bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a Python project for security and quality issues",
		Long:  "Walk a Python project, run the configured security and quality rules over every eligible file, and report the findings.",
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

			log, err := logging.New(debug)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			cfg, err := flagConfig(cmd, absPath, flagValues{
				securityLevel: securityLevel,
				qualityLevel:  qualityLevel,
				workers:       workers,
				maxFileSize:   maxFileSize,
				noSecurity:    noSecurity,
				noQuality:     noQuality,
				exclude:       exclude,
			})
			if err != nil {
				return err
			}

			svc := application.NewAnalyzeService(
				walker.New(),
				parser.New(),
				config.New(),
				gitinfo.New(),
				log,
				version,
			)

			report, err := svc.Run(cmd.Context(), absPath, cfg)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			// Best-effort persistence so `history` and the MCP report
			// resource see this run.
			reports := application.NewReportService(cache.New(), history.New(), log)
			_ = reports.Record(report)

			if err := emitReport(cmd, report, format, output); err != nil {
				return err
			}

			if ciMode {
				return failOnSeverity(report, failOn)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Report format: markdown, json or html (default: terminal UI on TTYs, markdown otherwise)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&securityLevel, "security-level", "", "Security strictness: low, medium or high")
	cmd.Flags().StringVar(&qualityLevel, "quality-level", "", "Quality strictness: low, medium or high")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel analysis workers")
	cmd.Flags().Int64Var(&maxFileSize, "max-file-size", 0, "Largest file to analyze, in bytes")
	cmd.Flags().BoolVar(&noSecurity, "no-security", false, "Skip security rules")
	cmd.Flags().BoolVar(&noQuality, "no-quality", false, "Skip quality rules")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directory names to skip, on top of the defaults")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when issues reach the --fail-on severity")
	cmd.Flags().StringVar(&failOn, "fail-on", "high", "Severity threshold for CI mode (critical, high, medium, low, info)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose logging")

	return cmd
}

type flagValues struct {
	securityLevel string
	qualityLevel  string
	workers       int
	maxFileSize   int64
	noSecurity    bool
	noQuality     bool
	exclude       []string
}

// flagConfig merges explicitly set analyze flags over the project's
// resolved configuration. With no config flags set it returns nil so
// the service resolves the project config itself.
func flagConfig(cmd *cobra.Command, projectPath string, v flagValues) (*domain.AnalysisConfig, error) {
	flags := cmd.Flags()
	touched := false
	for _, name := range configFlags {
		if flags.Changed(name) {
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

	if flags.Changed("security-level") {
		lvl, ok := domain.ParseLevel(v.securityLevel)
		if !ok {
			return nil, fmt.Errorf("unknown security level %q (valid: low, medium, high)", v.securityLevel)
		}
		cfg.SecurityLevel = lvl
	}
	if flags.Changed("quality-level") {
		lvl, ok := domain.ParseLevel(v.qualityLevel)
		if !ok {
			return nil, fmt.Errorf("unknown quality level %q (valid: low, medium, high)", v.qualityLevel)
		}
		cfg.QualityLevel = lvl
	}
	if flags.Changed("workers") {
		cfg.MaxWorkers = v.workers
	}
	if flags.Changed("max-file-size") {
		cfg.FileSizeLimit = v.maxFileSize
	}
	if flags.Changed("no-security") {
		cfg.IncludeSecurity = !v.noSecurity
	}
	if flags.Changed("no-quality") {
		cfg.IncludeQuality = !v.noQuality
	}
	if flags.Changed("exclude") {
		cfg.ExcludedDirs = append(cfg.ExcludedDirs, v.exclude...)
	}

	return &cfg, nil
}

// emitReport renders the report to the requested destination. Without
// an explicit format, interactive terminals get the tui rendering and
// everything else gets markdown.
func emitReport(cmd *cobra.Command, report *domain.Report, format, output string) error {
	if output != "" {
		if format == "" {
			format = render.FormatMarkdown
		}
		text, err := render.Render(format, report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
		return nil
	}

	if format == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		}
		format = render.FormatMarkdown
	}

	text, err := render.Render(format, report)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// failOnSeverity gates CI runs: any issue at or above the threshold
// fails the command.
func failOnSeverity(report *domain.Report, threshold string) error {
	min, ok := domain.ParseSeverity(threshold)
	if !ok {
		return fmt.Errorf("unknown severity %q (valid: critical, high, medium, low, info)", threshold)
	}

	count := 0
	for _, is := range report.Issues {
		if is.Severity.AtLeast(min) {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("found %d issue(s) at or above %s severity", count, min)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/codewarden/codewarden/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file.
const FileName = ".codewarden.yaml"

// Environment variables recognized by the loader. They override the
// file, which overrides the built-in defaults.
const (
	EnvSecurityLevel   = "CODEWARDEN_SECURITY_LEVEL"
	EnvQualityLevel    = "CODEWARDEN_QUALITY_LEVEL"
	EnvIncludeSecurity = "CODEWARDEN_INCLUDE_SECURITY"
	EnvIncludeQuality  = "CODEWARDEN_INCLUDE_QUALITY"
	EnvMaxWorkers      = "CODEWARDEN_MAX_WORKERS"
	EnvFileSizeLimit   = "CODEWARDEN_FILE_SIZE_LIMIT"
	EnvExcludedDirs    = "CODEWARDEN_EXCLUDED_DIRS"
)

// YAMLLoader implements domain.ConfigLoader by overlaying the project's
// .codewarden.yaml and CODEWARDEN_* environment variables on the
// defaults.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// fileConfig mirrors AnalysisConfig with pointer fields so absent keys
// keep their default values.
type fileConfig struct {
	SecurityLevel   *string  `yaml:"security_level"`
	QualityLevel    *string  `yaml:"quality_level"`
	IncludeSecurity *bool    `yaml:"include_security"`
	IncludeQuality  *bool    `yaml:"include_quality"`
	MaxWorkers      *int     `yaml:"max_workers"`
	FileSizeLimit   *int64   `yaml:"file_size_limit"`
	ExcludedDirs    []string `yaml:"excluded_dirs"`
}

// Load resolves the effective configuration for projectPath. A missing
// file is not an error; a malformed file or an invalid final
// configuration is.
func (l *YAMLLoader) Load(projectPath string) (domain.AnalysisConfig, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No project file; defaults plus environment apply.
	case err != nil:
		return domain.AnalysisConfig{}, err
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return domain.AnalysisConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
		}
		applyFile(&cfg, fc)
	}

	if err := applyEnv(&cfg); err != nil {
		return domain.AnalysisConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFile(cfg *domain.AnalysisConfig, fc fileConfig) {
	if fc.SecurityLevel != nil {
		cfg.SecurityLevel = levelValue(*fc.SecurityLevel)
	}
	if fc.QualityLevel != nil {
		cfg.QualityLevel = levelValue(*fc.QualityLevel)
	}
	if fc.IncludeSecurity != nil {
		cfg.IncludeSecurity = *fc.IncludeSecurity
	}
	if fc.IncludeQuality != nil {
		cfg.IncludeQuality = *fc.IncludeQuality
	}
	if fc.MaxWorkers != nil {
		cfg.MaxWorkers = *fc.MaxWorkers
	}
	if fc.FileSizeLimit != nil {
		cfg.FileSizeLimit = *fc.FileSizeLimit
	}
	// An explicit list replaces the default exclusions entirely.
	if len(fc.ExcludedDirs) > 0 {
		cfg.ExcludedDirs = fc.ExcludedDirs
	}
}

func applyEnv(cfg *domain.AnalysisConfig) error {
	if v, ok := os.LookupEnv(EnvSecurityLevel); ok {
		cfg.SecurityLevel = levelValue(v)
	}
	if v, ok := os.LookupEnv(EnvQualityLevel); ok {
		cfg.QualityLevel = levelValue(v)
	}
	if v, ok := os.LookupEnv(EnvIncludeSecurity); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIncludeSecurity, err)
		}
		cfg.IncludeSecurity = b
	}
	if v, ok := os.LookupEnv(EnvIncludeQuality); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIncludeQuality, err)
		}
		cfg.IncludeQuality = b
	}
	if v, ok := os.LookupEnv(EnvMaxWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxWorkers, err)
		}
		cfg.MaxWorkers = n
	}
	if v, ok := os.LookupEnv(EnvFileSizeLimit); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFileSizeLimit, err)
		}
		cfg.FileSizeLimit = n
	}
	if v, ok := os.LookupEnv(EnvExcludedDirs); ok {
		cfg.ExcludedDirs = splitList(v)
	}
	return nil
}

// levelValue lowers the raw name. Unknown names pass through so the
// final validation can report them verbatim.
func levelValue(raw string) domain.Level {
	if l, ok := domain.ParseLevel(raw); ok {
		return l
	}
	return domain.Level(raw)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

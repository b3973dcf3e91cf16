package domain

import (
	"fmt"
	"runtime"
	"strings"
)

// Level controls how aggressive a check family is. Each level includes
// everything the levels below it enable.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ValidLevels enumerates the accepted check levels in ascending order.
var ValidLevels = []Level{LevelLow, LevelMedium, LevelHigh}

// Rank returns 1 for low, 2 for medium, 3 for high and 0 for anything else.
func (l Level) Rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	default:
		return 0
	}
}

// IsValid reports whether l is one of the known levels.
func (l Level) IsValid() bool {
	return l.Rank() > 0
}

// AtLeast reports whether l enables at least what min enables.
func (l Level) AtLeast(min Level) bool {
	return l.Rank() >= min.Rank()
}

// ParseLevel converts a case-insensitive level name into a Level.
// It returns false when the name is not recognized.
func ParseLevel(name string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(name)))
	if !l.IsValid() {
		return "", false
	}
	return l, true
}

// DefaultFileSizeLimit is the largest file the analyzer will read, 10 MiB.
const DefaultFileSizeLimit int64 = 10 * 1024 * 1024

// MaxDefaultWorkers caps the derived worker count on large machines.
const MaxDefaultWorkers = 32

// DefaultExcludedDirs are directory names pruned before descent.
var DefaultExcludedDirs = []string{
	".git",
	"__pycache__",
	"venv",
	".venv",
	"env",
	"node_modules",
	".codewarden",
	"dist",
	"build",
}

// AnalysisConfig tunes a single analysis run.
type AnalysisConfig struct {
	SecurityLevel   Level    `yaml:"security_level"  json:"security_level"`
	QualityLevel    Level    `yaml:"quality_level"   json:"quality_level"`
	IncludeSecurity bool     `yaml:"include_security" json:"include_security"`
	IncludeQuality  bool     `yaml:"include_quality"  json:"include_quality"`
	MaxWorkers      int      `yaml:"max_workers"     json:"max_workers"`
	FileSizeLimit   int64    `yaml:"file_size_limit" json:"file_size_limit"`
	ExcludedDirs    []string `yaml:"excluded_dirs"   json:"excluded_dirs"`
}

// DefaultWorkerCount derives the worker pool size from the host CPU
// count: twice the CPUs, capped at MaxDefaultWorkers.
func DefaultWorkerCount() int {
	n := 2 * runtime.NumCPU()
	if n > MaxDefaultWorkers {
		n = MaxDefaultWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// DefaultConfig returns the configuration used when a project supplies
// no overrides: both check families enabled at medium level.
func DefaultConfig() AnalysisConfig {
	return AnalysisConfig{
		SecurityLevel:   LevelMedium,
		QualityLevel:    LevelMedium,
		IncludeSecurity: true,
		IncludeQuality:  true,
		MaxWorkers:      DefaultWorkerCount(),
		FileSizeLimit:   DefaultFileSizeLimit,
		ExcludedDirs:    append([]string(nil), DefaultExcludedDirs...),
	}
}

// Validate checks the config for values the analyzer cannot honor and
// returns a descriptive error.
func (c AnalysisConfig) Validate() error {
	if !c.SecurityLevel.IsValid() {
		return fmt.Errorf("invalid security_level %q (valid: low, medium, high)", c.SecurityLevel)
	}
	if !c.QualityLevel.IsValid() {
		return fmt.Errorf("invalid quality_level %q (valid: low, medium, high)", c.QualityLevel)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1 (got %d)", c.MaxWorkers)
	}
	if c.FileSizeLimit < 1 {
		return fmt.Errorf("file_size_limit must be positive (got %d)", c.FileSizeLimit)
	}
	return nil
}

// ExcludedDirSet returns the excluded directory names as a lookup set.
func (c AnalysisConfig) ExcludedDirSet() map[string]bool {
	set := make(map[string]bool, len(c.ExcludedDirs))
	for _, d := range c.ExcludedDirs {
		set[d] = true
	}
	return set
}

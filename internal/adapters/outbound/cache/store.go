package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codewarden/codewarden/internal/domain"
)

// Store is a file-based implementation of domain.ReportStore. The
// latest report lives under the project's .codewarden directory.
type Store struct{}

// New creates a file-based report store.
func New() *Store {
	return &Store{}
}

// Load reads the stored report. Returns (nil, nil) if none exists.
func (s *Store) Load(projectPath string) (*domain.Report, error) {
	data, err := os.ReadFile(reportPath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding stored report: %w", err)
	}
	return &report, nil
}

// Save writes the report to disk, creating directories as needed.
func (s *Store) Save(report *domain.Report) error {
	dir := filepath.Dir(reportPath(report.ProjectPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(reportPath(report.ProjectPath), data, 0o644)
}

// Invalidate removes the stored report for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(reportPath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func reportPath(projectPath string) string {
	return filepath.Join(projectPath, ".codewarden", "cache", "report.json")
}

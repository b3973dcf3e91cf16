package application

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/codewarden/codewarden/internal/domain"
)

// ReportService persists analysis outcomes and serves them back to the
// CLI and MCP surfaces.
type ReportService struct {
	store   domain.ReportStore
	history domain.RunHistory
	log     *zap.Logger
}

func NewReportService(store domain.ReportStore, history domain.RunHistory, log *zap.Logger) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{store: store, history: history, log: log}
}

// Record stores the report as the project's latest and appends its run
// to the history. Both writes are attempted even when the first fails;
// the first failure is returned.
func (s *ReportService) Record(report *domain.Report) error {
	var firstErr error
	if err := s.store.Save(report); err != nil {
		firstErr = fmt.Errorf("storing report: %w", err)
		s.log.Warn("report store failed", zap.Error(err))
	}
	if err := s.history.Append(report.ProjectPath, domain.EntryFromReport(report)); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("recording history: %w", err)
		}
		s.log.Warn("history append failed", zap.Error(err))
	}
	return firstErr
}

// Latest returns the stored report for a project, or nil when none has
// been recorded.
func (s *ReportService) Latest(projectPath string) (*domain.Report, error) {
	return s.store.Load(projectPath)
}

// History returns the project's recorded runs, oldest first.
func (s *ReportService) History(projectPath string) ([]domain.RunEntry, error) {
	return s.history.Load(projectPath)
}

// Forget drops the stored report for a project. History entries are
// kept.
func (s *ReportService) Forget(projectPath string) error {
	return s.store.Invalidate(projectPath)
}

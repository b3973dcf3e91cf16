package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codewarden/codewarden/internal/domain"
	"github.com/codewarden/codewarden/internal/domain/analysis"
)

// AnalyzeService orchestrates the analysis pipeline:
// resolve config -> walk -> fan out per-file checks -> aggregate report.
type AnalyzeService struct {
	walker  domain.ProjectWalker
	parser  domain.PythonParser
	loader  domain.ConfigLoader
	repo    domain.RepoInspector
	log     *zap.Logger
	version string
}

func NewAnalyzeService(
	walker domain.ProjectWalker,
	parser domain.PythonParser,
	loader domain.ConfigLoader,
	repo domain.RepoInspector,
	log *zap.Logger,
	version string,
) *AnalyzeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyzeService{
		walker:  walker,
		parser:  parser,
		loader:  loader,
		repo:    repo,
		log:     log,
		version: version,
	}
}

// runContext is the mutable state of one analysis run. Every run gets
// a fresh instance, so concurrent runs never share caches, counters or
// issue numbering.
type runContext struct {
	cfg      domain.AnalysisConfig
	ids      *domain.Sequencer
	contents sync.Map // absolute path -> []byte
	analyzed atomic.Int64
	lines    atomic.Int64
	errors   atomic.Int64
}

func newRunContext(cfg domain.AnalysisConfig) *runContext {
	return &runContext{cfg: cfg, ids: domain.NewSequencer()}
}

// readFile returns the file content, serving repeats from the run
// cache. Two workers may read the same file once each; the last store
// wins, which is harmless because the content is identical.
func (rc *runContext) readFile(path string) ([]byte, error) {
	if cached, ok := rc.contents.Load(path); ok {
		return cached.([]byte), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rc.contents.Store(path, data)
	return data, nil
}

// Run analyzes the project rooted at projectPath. A nil cfg means the
// project's own configuration is resolved from disk and environment;
// an explicit cfg is validated and used as given.
func (s *AnalyzeService) Run(ctx context.Context, projectPath string, cfg *domain.AnalysisConfig) (*domain.Report, error) {
	start := time.Now()

	// 1. Resolve effective configuration
	effective, err := s.resolveConfig(projectPath, cfg)
	if err != nil {
		return nil, err
	}

	// 2. Walk the project tree
	walk, err := s.walker.Walk(projectPath, effective)
	if err != nil {
		return nil, fmt.Errorf("walking project: %w", err)
	}

	s.log.Info("analysis started",
		zap.String("project", walk.RootPath),
		zap.Int("files", len(walk.Files)),
		zap.Int("workers", effective.MaxWorkers))

	// 3. Analyze every selected file
	rc := newRunContext(effective)
	issues, err := s.analyzeAll(ctx, rc, walk.Files)
	if err != nil {
		return nil, err
	}

	// 4. Aggregate the report
	report := s.buildReport(walk, rc, issues, start)

	s.log.Info("analysis finished",
		zap.Int("issues", report.Summary.TotalIssues),
		zap.String("verdict", report.Summary.RiskVerdict),
		zap.Float64("seconds", report.Metrics.TimeTaken))
	return report, nil
}

// AnalyzeFile analyzes a single file as a miniature run of its own.
// The file is classified relative to projectRoot when given, otherwise
// relative to its containing directory.
func (s *AnalyzeService) AnalyzeFile(ctx context.Context, filePath, projectRoot string, cfg *domain.AnalysisConfig) (*domain.Report, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absFile)
	if err != nil {
		return nil, fmt.Errorf("file path %s: %w", filePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("file path %s is a directory", filePath)
	}

	root := projectRoot
	if root == "" {
		root = filepath.Dir(absFile)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	effective, err := s.resolveConfig(absRoot, cfg)
	if err != nil {
		return nil, err
	}

	// Files outside the root are classified by basename alone.
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(absFile)
	}
	rel = filepath.ToSlash(rel)
	cls := domain.Classify(rel)

	rc := newRunContext(effective)
	walk := &domain.WalkResult{RootPath: absRoot, Scanned: 1}

	switch {
	case info.Size() > effective.FileSizeLimit:
		walk.SkippedOversize = 1
	case cls.Category == domain.CategoryIgnored:
		walk.SkippedIgnored = 1
	default:
		walk.Files = []domain.FileDescriptor{{
			AbsolutePath: absFile,
			RelativePath: rel,
			Category:     cls.Category,
			Extension:    cls.Extension,
			Risk:         cls.Risk,
			Size:         info.Size(),
		}}
	}

	var issues []domain.Issue
	for _, f := range walk.Files {
		issues = append(issues, s.analyzeOne(rc, f)...)
	}
	return s.buildReport(walk, rc, issues, start), nil
}

// resolveConfig picks the effective configuration for a run. Explicit
// configs must validate; a failed load of the project configuration
// falls back to defaults rather than aborting the run.
func (s *AnalyzeService) resolveConfig(projectPath string, cfg *domain.AnalysisConfig) (domain.AnalysisConfig, error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return domain.AnalysisConfig{}, fmt.Errorf("invalid config: %w", err)
		}
		return *cfg, nil
	}
	loaded, err := s.loader.Load(projectPath)
	if err != nil {
		s.log.Warn("config load failed, using defaults", zap.Error(err))
		return domain.DefaultConfig(), nil
	}
	return loaded, nil
}

// analyzeAll fans the files out over the configured worker count. A
// single worker degrades to a strict sequential pass in walk order.
func (s *AnalyzeService) analyzeAll(ctx context.Context, rc *runContext, files []domain.FileDescriptor) ([]domain.Issue, error) {
	workers := rc.cfg.MaxWorkers
	if workers > len(files) {
		workers = len(files)
	}

	if workers <= 1 {
		var issues []domain.Issue
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			issues = append(issues, s.analyzeOne(rc, f)...)
		}
		return issues, nil
	}

	var (
		mu     sync.Mutex
		issues []domain.Issue
		wg     sync.WaitGroup
	)
	work := make(chan domain.FileDescriptor)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range work {
				found := s.analyzeOne(rc, f)
				if len(found) == 0 {
					continue
				}
				mu.Lock()
				issues = append(issues, found...)
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, f := range files {
		select {
		case work <- f:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return issues, nil
}

// analyzeOne reads, parses and checks a single file. Failures count
// against the run's error metric and never abort the run.
func (s *AnalyzeService) analyzeOne(rc *runContext, file domain.FileDescriptor) (issues []domain.Issue) {
	defer func() {
		if r := recover(); r != nil {
			rc.errors.Add(1)
			s.log.Error("file analysis panicked",
				zap.String("file", file.RelativePath),
				zap.Any("panic", r))
			issues = nil
		}
	}()

	content, err := rc.readFile(file.AbsolutePath)
	if err != nil {
		rc.errors.Add(1)
		s.log.Warn("unreadable file skipped",
			zap.String("file", file.RelativePath),
			zap.Error(err))
		return nil
	}

	rc.analyzed.Add(1)
	rc.lines.Add(int64(countLines(content)))

	req := analysis.Request{File: file, Content: content, Config: rc.cfg}
	if file.Category == domain.CategoryPython && (rc.cfg.IncludeSecurity || rc.cfg.IncludeQuality) {
		src, err := s.parser.ParsePython(string(content))
		var syntax *domain.SyntaxFailure
		switch {
		case err == nil:
			req.Source = src
		case errors.As(err, &syntax):
			req.ParseFailure = syntax
		default:
			rc.errors.Add(1)
			s.log.Warn("parser failed",
				zap.String("file", file.RelativePath),
				zap.Error(err))
		}
	}

	return analysis.AnalyzeFile(req, rc.ids)
}

func (s *AnalyzeService) buildReport(walk *domain.WalkResult, rc *runContext, issues []domain.Issue, start time.Time) *domain.Report {
	domain.SortIssues(issues)

	var commit string
	if s.repo != nil {
		commit = s.repo.Head(walk.RootPath)
	}

	return &domain.Report{
		ProjectPath: walk.RootPath,
		GeneratedAt: time.Now().UTC(),
		ScanInfo: domain.ScanInfo{
			RunID:       uuid.NewString(),
			ToolVersion: s.version,
			CommitHash:  commit,
			Config:      rc.cfg,
		},
		Metrics: domain.Metrics{
			FilesScanned:    walk.Scanned,
			FilesAnalyzed:   int(rc.analyzed.Load()),
			LinesAnalyzed:   int(rc.lines.Load()),
			SkippedOversize: walk.SkippedOversize,
			Errors:          int(rc.errors.Load()) + walk.WalkErrors,
			TimeTaken:       time.Since(start).Seconds(),
		},
		Summary: domain.Summarize(issues),
		Issues:  issues,
	}
}

// countLines counts newline-terminated lines plus any trailing partial
// line, matching what an editor shows.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/codewarden/codewarden/internal/domain"
)

// FileWalker implements domain.ProjectWalker by walking the filesystem.
// Excluded directories are pruned before descent, so nothing beneath
// them is ever visited or counted.
type FileWalker struct{}

func New() *FileWalker {
	return &FileWalker{}
}

func (w *FileWalker) Walk(projectPath string, cfg domain.AnalysisConfig) (*domain.WalkResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("project path %s: %w", projectPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", projectPath)
	}

	excluded := cfg.ExcludedDirSet()
	result := &domain.WalkResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absPath {
				return err
			}
			result.WalkErrors++
			return nil
		}

		if d.IsDir() {
			// The root is walked even when its own name is excluded.
			if path != absPath && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		result.Scanned++

		fi, err := d.Info()
		if err != nil {
			result.WalkErrors++
			return nil
		}
		if fi.Size() > cfg.FileSizeLimit {
			result.SkippedOversize++
			return nil
		}

		relPath, err := filepath.Rel(absPath, path)
		if err != nil {
			result.WalkErrors++
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		cls := domain.Classify(relPath)
		if cls.Category == domain.CategoryIgnored {
			result.SkippedIgnored++
			return nil
		}

		result.Files = append(result.Files, domain.FileDescriptor{
			AbsolutePath: path,
			RelativePath: relPath,
			Category:     cls.Category,
			Extension:    cls.Extension,
			Risk:         cls.Risk,
			Size:         fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", projectPath, err)
	}
	return result, nil
}

package gitinfo

import (
	"github.com/go-git/go-git/v5"
)

// Inspector implements domain.RepoInspector using go-git, so no git
// binary is needed at runtime.
type Inspector struct{}

func New() *Inspector {
	return &Inspector{}
}

// Head returns the checked-out commit hash for the repository that
// contains projectPath. Analyzed projects are often subdirectories of
// a repo, so the search walks up to the enclosing .git. Projects
// outside version control yield "".
func (i *Inspector) Head(projectPath string) string {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		return ""
	}

	return head.Hash().String()
}

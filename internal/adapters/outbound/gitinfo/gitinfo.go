package gitinfo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/openkraft/automigrate/internal/domain"
)

// GitInfoAdapter implements domain.WorktreeInspector using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

// IsClean reports whether the working tree containing projectPath has no
// uncommitted or untracked changes.
func (g *GitInfoAdapter) IsClean(projectPath string) (bool, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return false, domain.ErrNotGitRepo
		}
		return false, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return status.IsClean(), nil
}

package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"typeahead/internal/domain"
)

// GitService reads repository metadata by shelling out to git
type GitService interface {
	CurrentBranch(ctx context.Context, repoPath string) (string, error)
	FillBranches(ctx context.Context, repos []domain.Repository)
}

// gitService is the concrete implementation
type gitService struct {
	workerPool chan struct{} // Semaphore for limiting concurrent git operations
}

// NewGitService creates a new git service
func NewGitService() GitService {
	return &gitService{
		workerPool: make(chan struct{}, 5), // Limit to 5 concurrent git operations
	}
}

// CurrentBranch returns the checked out branch, or detached@<sha> for a
// detached HEAD
func (gs *gitService) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	// Acquire worker slot
	select {
	case gs.workerPool <- struct{}{}:
		defer func() { <-gs.workerPool }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get branch of %s: %w", repoPath, err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		// Detached HEAD state - try to get commit hash
		cmd = exec.CommandContext(ctx, "git", "rev-parse", "--short", "HEAD")
		cmd.Dir = repoPath
		output, err = cmd.Output()
		if err != nil {
			return "detached", nil
		}
		branch = "detached@" + strings.TrimSpace(string(output))
	}

	return branch, nil
}

// FillBranches sets Branch on every repository in place. Repositories whose
// branch cannot be read are left with an empty branch.
func (gs *gitService) FillBranches(ctx context.Context, repos []domain.Repository) {
	var wg sync.WaitGroup
	for i := range repos {
		wg.Add(1)
		go func(repo *domain.Repository) {
			defer wg.Done()
			branch, err := gs.CurrentBranch(ctx, repo.Path)
			if err != nil {
				log.Debug().Err(err).Str("repo", repo.Path).Msg("git: branch unavailable")
				return
			}
			repo.Branch = branch
		}(&repos[i])
	}
	wg.Wait()
}

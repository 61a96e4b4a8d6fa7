package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"typeahead/internal/domain"
)

// DefaultMaxDepth bounds how deep below a root the scan descends
const DefaultMaxDepth = 5

// skipDirs are common non-repository directories skipped to speed up scanning
var skipDirs = map[string]bool{
	"node_modules":  true,
	".npm":          true,
	"vendor":        true,
	".cache":        true,
	"dist":          true,
	"build":         true,
	"target":        true,
	".gradle":       true,
	"__pycache__":   true,
	".pytest_cache": true,
	".tox":          true,
	"venv":          true,
	".venv":         true,
	"env":           true,
}

// DiscoveryService finds git repositories in the filesystem
type DiscoveryService interface {
	Scan(ctx context.Context, roots []string) ([]domain.Repository, error)
}

// discoveryService is the concrete implementation
type discoveryService struct {
	maxDepth int
}

// NewDiscoveryService creates a new discovery service. maxDepth <= 0
// selects DefaultMaxDepth.
func NewDiscoveryService(maxDepth int) DiscoveryService {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &discoveryService{maxDepth: maxDepth}
}

// Scan walks every root and returns the repositories found, sorted by
// path. Repositories sharing a name get the parent directory appended to
// their display name.
func (ds *discoveryService) Scan(ctx context.Context, roots []string) ([]domain.Repository, error) {
	var repos []domain.Repository
	seen := make(map[string]bool)

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}

		found, err := ds.scanDirectory(ctx, root)
		if err != nil {
			return nil, err
		}
		for _, repo := range found {
			if seen[repo.Path] {
				continue
			}
			seen[repo.Path] = true
			repos = append(repos, repo)
		}
	}

	sort.Slice(repos, func(i, j int) bool { return repos[i].Path < repos[j].Path })
	disambiguate(repos)

	log.Debug().Int("repos", len(repos)).Strs("roots", roots).Msg("discovery: scan complete")
	return repos, nil
}

// scanDirectory recursively scans a directory for git repositories
func (ds *discoveryService) scanDirectory(ctx context.Context, root string) ([]domain.Repository, error) {
	var repos []domain.Repository

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Skip on error
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("discovery: error walking path")
			return nil // Continue walking
		}

		if !d.IsDir() {
			return nil
		}

		// Check depth limit
		relPath, _ := filepath.Rel(root, path)
		depth := strings.Count(relPath, string(filepath.Separator))
		if depth > ds.maxDepth {
			return fs.SkipDir
		}

		name := d.Name()
		if name == ".git" {
			// Found a git repository - the parent is the repo root
			repoPath := filepath.Dir(path)
			repoName := filepath.Base(repoPath)
			repos = append(repos, domain.Repository{
				Path:        repoPath,
				Name:        repoName,
				DisplayName: repoName,
			})
			return fs.SkipDir
		}

		if path == root {
			return nil
		}
		if skipDirs[name] || strings.HasPrefix(name, ".") {
			return fs.SkipDir
		}

		// A directory holding a .git file (worktree or submodule) is a repo too
		if info, err := os.Stat(filepath.Join(path, ".git")); err == nil && !info.IsDir() {
			repos = append(repos, domain.Repository{
				Path:        path,
				Name:        name,
				DisplayName: name,
			})
		}

		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if err != nil {
		return nil, err
	}

	return repos, nil
}

// disambiguate appends the parent directory to names that occur more than once
func disambiguate(repos []domain.Repository) {
	count := make(map[string]int)
	for _, repo := range repos {
		count[repo.Name]++
	}
	for i := range repos {
		if count[repos[i].Name] > 1 {
			parent := filepath.Base(filepath.Dir(repos[i].Path))
			repos[i].DisplayName = fmt.Sprintf("%s (%s)", repos[i].Name, parent)
		}
	}
}

package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"typeahead/internal/discovery"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/git"
)

// RepoSource offers the git repositories under a set of roots. The
// catalog is built on first use and cached.
type RepoSource struct {
	roots     []string
	discovery discovery.DiscoveryService
	git       git.GitService
	bus       eventbus.EventBus

	mu   sync.Mutex
	list *ListSource
}

// NewRepoSource creates a repository source
func NewRepoSource(roots []string, ds discovery.DiscoveryService, gs git.GitService, bus eventbus.EventBus) *RepoSource {
	return &RepoSource{
		roots:     roots,
		discovery: ds,
		git:       gs,
		bus:       bus,
	}
}

// Load scans the roots unless the catalog is already cached. A failed or
// cancelled scan is not cached.
func (s *RepoSource) Load(ctx context.Context) (*ListSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list != nil {
		return s.list, nil
	}

	repos, err := s.discovery.Scan(ctx, s.roots)
	if err != nil {
		return nil, fmt.Errorf("failed to discover repositories: %w", err)
	}
	s.git.FillBranches(ctx, repos)
	if err := ctx.Err(); err != nil {
		// branches may be missing; scan again next time
		return nil, err
	}

	list := make([]domain.Entry, 0, len(repos))
	for _, repo := range repos {
		extra := domain.NewExtra("path", repo.Path)
		if repo.Branch != "" {
			extra.Set("branch", repo.Branch)
		}
		list = append(list, domain.Entry{
			ID:      repo.Path,
			Display: repo.DisplayName,
			Extra:   extra,
		})
	}

	s.list = NewListSource("repos", list)
	s.bus.Publish(eventbus.CatalogLoadedEvent{Source: "repos", Count: len(list)})
	log.Info().Int("repos", len(list)).Msg("source: repository catalog loaded")

	return s.list, nil
}

// Search ranks repositories by name
func (s *RepoSource) Search(ctx context.Context, query string) ([]domain.Entry, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return list.Search(ctx, query)
}

// Package source turns a query into candidate entries.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"typeahead/internal/config"
	"typeahead/internal/discovery"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/git"
)

// ErrUnknownKind is returned by New for an unsupported source kind
var ErrUnknownKind = errors.New("unknown source kind")

// Source answers queries with ranked entries
type Source interface {
	Search(ctx context.Context, query string) ([]domain.Entry, error)
}

// New builds the source described by cfg. stdin is read when a list
// source has no path or the path "-".
func New(cfg config.SourceConfig, bus eventbus.EventBus, stdin io.Reader) (Source, error) {
	var src Source

	switch cfg.Kind {
	case config.SourceList, "":
		list, err := newList(cfg.Path, stdin)
		if err != nil {
			return nil, err
		}
		bus.Publish(eventbus.CatalogLoadedEvent{Source: list.Name(), Count: list.Len()})
		src = list

	case config.SourceRepos:
		roots, err := absRoots(cfg.Roots)
		if err != nil {
			return nil, err
		}
		src = NewRepoSource(roots, discovery.NewDiscoveryService(cfg.MaxDepth), git.NewGitService(), bus)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}

	if latency := cfg.Latency(); latency > 0 {
		src = &Delayed{Source: src, Latency: latency}
	}

	log.Info().Str("kind", cfg.Kind).Str("path", cfg.Path).Msg("source: ready")
	return src, nil
}

func newList(path string, stdin io.Reader) (*ListSource, error) {
	if path == "" || path == "-" {
		entries, err := ParseLines(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return NewListSource("stdin", entries), nil
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		entries, err := LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		return NewListSource(path, entries), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list: %w", err)
	}
	defer f.Close()

	entries, err := ParseLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewListSource(path, entries), nil
}

func absRoots(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// Loader is implemented by sources that build their catalog lazily
type Loader interface {
	Load(ctx context.Context) (*ListSource, error)
}

// Preload builds the catalog of a lazy source ahead of the first query.
// Other sources need no preparation.
func Preload(ctx context.Context, src Source) error {
	if d, ok := src.(*Delayed); ok {
		src = d.Source
	}
	loader, ok := src.(Loader)
	if !ok {
		return nil
	}
	_, err := loader.Load(ctx)
	return err
}

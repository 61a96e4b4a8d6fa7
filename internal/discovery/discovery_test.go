package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/domain"
)

func mkRepo(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	return dir
}

func names(repos []domain.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.DisplayName
	}
	return out
}

func TestScanFindsNestedRepos(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root, "alpha")
	mkRepo(t, root, "group", "beta")
	mkRepo(t, root, "group", "deeper", "gamma")

	repos, err := NewDiscoveryService(0).Scan(context.Background(), []string{root})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, names(repos))
	assert.Equal(t, filepath.Join(root, "alpha"), repos[0].Path)
}

func TestScanSkipsListedAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root, "node_modules", "dep")
	mkRepo(t, root, ".hidden", "secret")
	mkRepo(t, root, "vendor", "lib")
	mkRepo(t, root, "kept")

	repos, err := NewDiscoveryService(0).Scan(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, names(repos))
}

func TestScanHonoursDepth(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root, "a")
	mkRepo(t, root, "x", "y", "b")

	repos, err := NewDiscoveryService(1).Scan(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names(repos))
}

func TestScanDisambiguatesDuplicateNames(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root, "work", "api")
	mkRepo(t, root, "personal", "api")

	repos, err := NewDiscoveryService(0).Scan(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{"api (personal)", "api (work)"}, names(repos))
}

func TestScanDeduplicatesOverlappingRoots(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root, "group", "one")

	repos, err := NewDiscoveryService(0).Scan(context.Background(), []string{root, filepath.Join(root, "group")})
	require.NoError(t, err)
	assert.Len(t, repos, 1)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := NewDiscoveryService(0).Scan(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDiscoveryService(0).Scan(ctx, []string{root})
	assert.ErrorIs(t, err, context.Canceled)
}

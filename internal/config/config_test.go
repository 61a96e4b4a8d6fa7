package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 300*time.Millisecond, cfg.Combobox.Debounce())
}

func TestLoadFromPathMissingIsErrNotFound(t *testing.T) {
	svc := NewConfigService()

	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileValuesOverrideDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[combobox]
max_visible = 3
debounce_ms = 120

[source]
kind = "repos"
roots = ["/src", "/work"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Combobox.MaxVisible)
	assert.Equal(t, 120*time.Millisecond, cfg.Combobox.Debounce())
	assert.Equal(t, SourceRepos, cfg.Source.Kind)
	assert.Equal(t, []string{"/src", "/work"}, cfg.Source.Roots)

	// untouched keys keep defaults
	assert.Equal(t, "No results", cfg.Combobox.NoResultsText)
	assert.Equal(t, 5, cfg.Source.MaxDepth)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Combobox.Label = "Repository"
	cfg.Source.LatencyMs = 250
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[combobox\nmax_visible = "), 0644))

	_, err := NewConfigServiceAt(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

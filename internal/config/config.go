package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Source kinds
const (
	SourceList  = "list"
	SourceRepos = "repos"
)

// Config represents the application configuration
type Config struct {
	Version  int            `toml:"version"`
	Combobox ComboboxConfig `toml:"combobox"`
	Source   SourceConfig   `toml:"source"`
	Log      LogConfig      `toml:"log"`
}

// ComboboxConfig holds the search box settings
type ComboboxConfig struct {
	Label         string `toml:"label"`
	Placeholder   string `toml:"placeholder"`
	Prompt        string `toml:"prompt"`
	Width         int    `toml:"width"`
	DebounceMs    int    `toml:"debounce_ms"`
	MaxVisible    int    `toml:"max_visible"` // <= 0 renders no rows at all
	Height        int    `toml:"height"`      // rows shown before the list scrolls
	NoResultsText string `toml:"no_results_text"`
}

// SourceConfig selects and tunes the data source
type SourceConfig struct {
	Kind      string   `toml:"kind"` // "list" or "repos"
	Path      string   `toml:"path"` // list file, "-" or empty for stdin
	Roots     []string `toml:"roots"`
	MaxDepth  int      `toml:"max_depth"`
	LatencyMs int      `toml:"latency_ms"`
	TimeoutMs int      `toml:"timeout_ms"`
}

// LogConfig configures the log file
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
	File   string `toml:"file"`
}

// Debounce returns the debounce interval
func (c ComboboxConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Latency returns the artificial source latency
func (c SourceConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMs) * time.Millisecond
}

// Timeout returns the per-search timeout
func (c SourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "typeahead", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults if the file is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Combobox: ComboboxConfig{
			Label:         "Search",
			Placeholder:   "Type to search...",
			Prompt:        "> ",
			Width:         48,
			DebounceMs:    300,
			MaxVisible:    8,
			Height:        8,
			NoResultsText: "No results",
		},
		Source: SourceConfig{
			Kind:      SourceList,
			MaxDepth:  5,
			TimeoutMs: 5000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

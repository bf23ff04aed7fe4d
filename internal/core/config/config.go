// Package config handles configuration loading and validation for reswed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/reswed/internal/core/resw"
	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/validate"
)

// ProjectFile is the optional project-local config file looked up in the
// resource root. Its values override the user config.
const ProjectFile = ".reswed.yaml"

// Config holds the application configuration.
type Config struct {
	Root         string         `yaml:"root"`
	Pattern      string         `yaml:"pattern"`
	BaseLanguage string         `yaml:"base_language"`
	DefaultText  string         `yaml:"default_text"`
	CopyCommand  string         `yaml:"copy_command"`
	TUI          TUIConfig      `yaml:"tui"`
	Suggest      SuggestConfig  `yaml:"suggest"`
	Database     DatabaseConfig `yaml:"database"`
	DataDir      string         `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// SuggestConfig selects and tunes the translation suggestion provider.
type SuggestConfig struct {
	Provider  string        `yaml:"provider"`    // none, openai or bedrock
	Model     string        `yaml:"model"`       // provider default when empty
	BaseURL   string        `yaml:"base_url"`    // OpenAI-compatible endpoint
	APIKeyEnv string        `yaml:"api_key_env"` // environment variable holding the API key
	Region    string        `yaml:"region"`      // AWS region for bedrock
	Timeout   time.Duration `yaml:"timeout"`
	CacheTTL  time.Duration `yaml:"cache_ttl"` // 0 disables expiry
}

// APIKey reads the configured API key from the environment.
func (s SuggestConfig) APIKey() string {
	if s.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.APIKeyEnv)
}

// Options converts the config to provider options.
func (s SuggestConfig) Options() suggest.Options {
	return suggest.Options{
		Provider: s.Provider,
		Model:    s.Model,
		BaseURL:  s.BaseURL,
		APIKey:   s.APIKey(),
		Region:   s.Region,
	}
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Root:         ".",
		Pattern:      "**/*.resw",
		BaseLanguage: "en-US",
		DefaultText:  resw.DefaultText,
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		Suggest: SuggestConfig{
			Provider:  suggest.ProviderNone,
			APIKeyEnv: "OPENAI_API_KEY",
			Timeout:   30 * time.Second,
			CacheTTL:  7 * 24 * time.Hour,
		},
		Database: DatabaseConfig{
			BusyTimeout: 5 * time.Second,
		},
	}
}

// Load reads configuration from configPath, then merges each overlay file
// that exists on top of it, and sets the data directory. Missing files are
// skipped, so with no files at all the defaults are returned.
func Load(configPath, dataDir string, overlays ...string) (*Config, error) {
	cfg := DefaultConfig()

	files := make([]string, 0, len(overlays)+1)
	for _, p := range append([]string{configPath}, overlays...) {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}

	if len(files) > 0 {
		merged, err := loadMerged(files)
		if err != nil {
			return nil, err
		}

		data, err := yaml.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("merge config files: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.DataDir = dataDir

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Root == "" {
		c.Root = defaults.Root
	}
	if c.Pattern == "" {
		c.Pattern = defaults.Pattern
	}
	if c.DefaultText == "" {
		c.DefaultText = defaults.DefaultText
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Suggest.Provider == "" {
		c.Suggest.Provider = defaults.Suggest.Provider
	}
	if c.Suggest.Timeout == 0 {
		c.Suggest.Timeout = defaults.Suggest.Timeout
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !doublestar.ValidatePattern(c.Pattern) {
		return fmt.Errorf("pattern %q is not a valid glob", c.Pattern)
	}

	if c.BaseLanguage != "" {
		if err := validate.Language(c.BaseLanguage); err != nil {
			return fmt.Errorf("base_language: %w", err)
		}
	}

	if !slices.Contains(suggest.Providers, c.Suggest.Provider) {
		return fmt.Errorf("suggest.provider %q must be one of %v", c.Suggest.Provider, suggest.Providers)
	}

	if c.Suggest.Timeout < 0 {
		return fmt.Errorf("suggest.timeout cannot be negative")
	}

	if c.Suggest.CacheTTL < 0 {
		return fmt.Errorf("suggest.cache_ttl cannot be negative")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	return nil
}

// LogFile returns the path of the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "reswed.log")
}

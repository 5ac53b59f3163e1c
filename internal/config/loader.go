package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	configDir string
}

// NewLoader creates a configuration loader that reads config.yml from the
// given directory (typically ~/.org-mcp).
func NewLoader(configDir string) Loader {
	return &loader{configDir: configDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (ORG_*)
// 2. Config file (config.yml in the loader's directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.configDir)

	v.SetEnvPrefix("ORG")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g. ORG_AGENDA_ENGINE)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// ORG_DIR keeps working the way the original server used it.
	v.BindEnv("dir")
	v.BindEnv("agenda.engine")
	v.BindEnv("agenda.engine_enabled")
	v.BindEnv("agenda.timeout_seconds")
	v.BindEnv("cache.capacity")
	v.BindEnv("cache.ttl_minutes")
	v.BindEnv("search.limit")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - defaults + env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.Dir = filepath.Join(home, "org")
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("dir", defaults.Dir)
	v.SetDefault("patterns.include", defaults.Patterns.Include)
	v.SetDefault("patterns.ignore", defaults.Patterns.Ignore)
	v.SetDefault("agenda.engine", defaults.Agenda.Engine)
	v.SetDefault("agenda.engine_enabled", defaults.Agenda.EngineEnabled)
	v.SetDefault("agenda.timeout_seconds", defaults.Agenda.TimeoutSeconds)
	v.SetDefault("cache.capacity", defaults.Cache.Capacity)
	v.SetDefault("cache.ttl_minutes", defaults.Cache.TTLMinutes)
	v.SetDefault("search.limit", defaults.Search.Limit)
}

// LoadConfig is a convenience function that loads config from the default
// location (~/.org-mcp).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return NewLoader(filepath.Join(home, ".org-mcp")).Load()
}

package config

// Config represents the complete org-mcp configuration.
// It can be loaded from .org-mcp/config.yml with environment variable
// overrides. The org directory is always threaded in explicitly; nothing
// below the config layer reads the environment.
type Config struct {
	Dir      string         `yaml:"dir" mapstructure:"dir"`
	Patterns PatternsConfig `yaml:"patterns" mapstructure:"patterns"`
	Agenda   AgendaConfig   `yaml:"agenda" mapstructure:"agenda"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
}

// PatternsConfig defines which files belong to the corpus.
type PatternsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for org files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// AgendaConfig configures the external outline engine used for agenda
// computation before falling back to manual parsing.
type AgendaConfig struct {
	Engine         string `yaml:"engine" mapstructure:"engine"`                   // engine binary, e.g. "emacs"
	EngineEnabled  bool   `yaml:"engine_enabled" mapstructure:"engine_enabled"`   // skip the engine entirely when false
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"` // per-invocation timeout
}

// CacheConfig sizes the in-memory parse cache.
type CacheConfig struct {
	Capacity   int `yaml:"capacity" mapstructure:"capacity"`       // max cached documents
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"` // entry lifetime
}

// SearchConfig tunes the corpus search defaults.
type SearchConfig struct {
	Limit int `yaml:"limit" mapstructure:"limit"` // default max heading hits per query
}

// Default returns a configuration with sensible defaults. Dir is left empty
// here; the loader resolves it to ~/org when neither file nor environment
// provides one.
func Default() *Config {
	return &Config{
		Patterns: PatternsConfig{
			Include: []string{"**/*.org"},
			Ignore:  []string{"**/.#*", "**/*~"},
		},
		Agenda: AgendaConfig{
			Engine:         "emacs",
			EngineEnabled:  true,
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Capacity:   1024,
			TTLMinutes: 60,
		},
		Search: SearchConfig{
			Limit: 50,
		},
	}
}

package config

import (
	"errors"
	"fmt"
)

// Validate checks that a loaded configuration is usable.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Dir == "" {
		return errors.New("dir must not be empty")
	}
	if len(cfg.Patterns.Include) == 0 {
		return errors.New("patterns.include must not be empty")
	}
	if cfg.Agenda.TimeoutSeconds <= 0 {
		return fmt.Errorf("agenda.timeout_seconds must be positive, got %d", cfg.Agenda.TimeoutSeconds)
	}
	if cfg.Agenda.EngineEnabled && cfg.Agenda.Engine == "" {
		return errors.New("agenda.engine must be set when agenda.engine_enabled is true")
	}
	if cfg.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive, got %d", cfg.Cache.Capacity)
	}
	if cfg.Cache.TTLMinutes <= 0 {
		return fmt.Errorf("cache.ttl_minutes must be positive, got %d", cfg.Cache.TTLMinutes)
	}
	if cfg.Search.Limit <= 0 {
		return fmt.Errorf("search.limit must be positive, got %d", cfg.Search.Limit)
	}
	return nil
}

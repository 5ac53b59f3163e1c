package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, []string{"**/*.org"}, cfg.Patterns.Include)
	assert.Equal(t, "emacs", cfg.Agenda.Engine)
	assert.True(t, cfg.Agenda.EngineEnabled)
	assert.Equal(t, 30, cfg.Agenda.TimeoutSeconds)
	assert.Positive(t, cfg.Cache.Capacity)
	assert.Positive(t, cfg.Search.Limit)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := Default()
		cfg.Dir = "/tmp/org"
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, Validate(valid()))
	})

	t.Run("nil config", func(t *testing.T) {
		assert.Error(t, Validate(nil))
	})

	t.Run("empty dir", func(t *testing.T) {
		cfg := valid()
		cfg.Dir = ""
		assert.Error(t, Validate(cfg))
	})

	t.Run("no include patterns", func(t *testing.T) {
		cfg := valid()
		cfg.Patterns.Include = nil
		assert.Error(t, Validate(cfg))
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Agenda.TimeoutSeconds = 0
		assert.Error(t, Validate(cfg))
	})

	t.Run("engine enabled without binary", func(t *testing.T) {
		cfg := valid()
		cfg.Agenda.Engine = ""
		assert.Error(t, Validate(cfg))
	})

	t.Run("engine disabled without binary is fine", func(t *testing.T) {
		cfg := valid()
		cfg.Agenda.Engine = ""
		cfg.Agenda.EngineEnabled = false
		assert.NoError(t, Validate(cfg))
	})
}

func TestLoader(t *testing.T) {
	t.Run("defaults when no config file", func(t *testing.T) {
		cfg, err := NewLoader(t.TempDir()).Load()
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.Dir)
		assert.Equal(t, "emacs", cfg.Agenda.Engine)
	})

	t.Run("config file values override defaults", func(t *testing.T) {
		dir := t.TempDir()
		content := "dir: /srv/notes\nagenda:\n  timeout_seconds: 5\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))

		cfg, err := NewLoader(dir).Load()
		require.NoError(t, err)
		assert.Equal(t, "/srv/notes", cfg.Dir)
		assert.Equal(t, 5, cfg.Agenda.TimeoutSeconds)
		// Untouched keys keep defaults.
		assert.Equal(t, []string{"**/*.org"}, cfg.Patterns.Include)
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("dir: /srv/notes\n"), 0o644))
		t.Setenv("ORG_DIR", "/env/notes")

		cfg, err := NewLoader(dir).Load()
		require.NoError(t, err)
		assert.Equal(t, "/env/notes", cfg.Dir)
	})

	t.Run("invalid config file is rejected", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("agenda:\n  timeout_seconds: -1\n"), 0o644))

		_, err := NewLoader(dir).Load()
		assert.Error(t, err)
	})
}

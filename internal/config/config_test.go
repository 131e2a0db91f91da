package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 10, cfg.Store.CatalogSize)
	assert.Equal(t, "strict", cfg.Content.SubjectPolicy)
}

func TestNewWithoutConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), FromViper(v))
}

func TestConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
store:
  backend: csv
  csv: /tmp/progress.csv
  catalog_size: 6
content:
  subject_policy: substitute
  seed: 42
  cache_ttl: 5m
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	t.Setenv("ADAPTLEARN_SERVER_ADDR", "127.0.0.1:9999")

	cfg, v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, v.ConfigFileUsed())

	assert.Equal(t, BackendCSV, cfg.Store.Backend)
	assert.Equal(t, "/tmp/progress.csv", cfg.Store.CSV)
	assert.Equal(t, 6, cfg.Store.CatalogSize)
	assert.Equal(t, "substitute", cfg.Content.SubjectPolicy)
	assert.Equal(t, int64(42), cfg.Content.Seed)
	assert.Equal(t, 5*time.Minute, cfg.Content.CacheTTL)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "quiet", cfg.Log.Mode)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"csv without path", func(c *Config) { c.Store.Backend = BackendCSV; c.Store.CSV = "" }},
		{"zero catalog size", func(c *Config) { c.Store.CatalogSize = 0 }},
		{"bad policy", func(c *Config) { c.Content.SubjectPolicy = "random" }},
		{"negative ttl", func(c *Config) { c.Content.CacheTTL = -time.Second }},
		{"bad log mode", func(c *Config) { c.Log.Mode = "loud" }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/adaptlearn", dir)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RICKDEX_BASE_URL", "RICKDEX_DATA_DIR", "RICKDEX_STORE", "RICKDEX_TIMEOUT",
		"RICKDEX_HYDRATE_CONCURRENCY", "RICKDEX_LOG_FILE", "RICKDEX_USER_AGENT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Zero(t, cfg.Timeout)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file or env", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.DataDir)
		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, StoreSQLite, cfg.Store)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeConfig(t, dir, "base_url: http://localhost:8080/api/character/\nstore: file\ntimeout: 5s\nhydrate_concurrency: 4\n")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/character/", cfg.BaseURL)
		assert.Equal(t, StoreFile, cfg.Store)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 4, cfg.HydrateConcurrency)
	})

	t.Run("env overrides file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeConfig(t, dir, "store: file\ntimeout: 5s\n")
		t.Setenv("RICKDEX_STORE", "memory")
		t.Setenv("RICKDEX_TIMEOUT", "2s")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, StoreMemory, cfg.Store)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("data dir from env", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeConfig(t, dir, "store: file\n")
		t.Setenv("RICKDEX_DATA_DIR", dir)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.DataDir)
		assert.Equal(t, StoreFile, cfg.Store)
	})

	t.Run("explicit data dir beats env", func(t *testing.T) {
		clearEnv(t)
		explicit := t.TempDir()
		t.Setenv("RICKDEX_DATA_DIR", t.TempDir())

		cfg, err := Load(explicit)
		require.NoError(t, err)
		assert.Equal(t, explicit, cfg.DataDir)
	})

	t.Run("malformed file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeConfig(t, dir, "store: [unclosed\n")

		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("malformed env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RICKDEX_TIMEOUT", "soon")

		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"relative base url", func(c *Config) { c.BaseURL = "/api/character" }, false},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.com/" }, false},
		{"unknown store", func(c *Config) { c.Store = "redis" }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, false},
		{"negative concurrency", func(c *Config) { c.HydrateConcurrency = -1 }, false},
		{"memory without data dir", func(c *Config) { c.Store = StoreMemory; c.DataDir = "" }, true},
		{"sqlite without data dir", func(c *Config) { c.DataDir = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/rd"}
	assert.Equal(t, "/tmp/rd/rickdex.db", cfg.DBPath())
	assert.Equal(t, "/tmp/rd/state", cfg.StateDir())
	assert.Equal(t, "/tmp/rd/rickdex.log", cfg.LogPath())

	cfg.LogFile = "/var/log/rd.log"
	assert.Equal(t, "/var/log/rd.log", cfg.LogPath())
}

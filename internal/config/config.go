// Package config loads rickdex settings from defaults, a YAML file in the
// data directory and RICKDEX_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// DefaultBaseURL is the public character endpoint.
const DefaultBaseURL = "https://rickandmortyapi.com/api/character/"

// FileName is the config file looked up inside the data directory.
const FileName = "config.yaml"

// Config holds application configuration.
type Config struct {
	// BaseURL is the character endpoint all lookups are issued against.
	BaseURL string `yaml:"base_url" env:"RICKDEX_BASE_URL"`

	// DataDir holds the favorites database, the config file and the TUI log.
	DataDir string `yaml:"-" env:"RICKDEX_DATA_DIR"`

	// Store selects the favorites backend: sqlite, file or memory.
	Store string `yaml:"store" env:"RICKDEX_STORE"`

	// Timeout bounds each request. Zero means none.
	Timeout time.Duration `yaml:"timeout" env:"RICKDEX_TIMEOUT"`

	// HydrateConcurrency caps concurrent lookups when loading favorites.
	// Zero means no cap.
	HydrateConcurrency int `yaml:"hydrate_concurrency" env:"RICKDEX_HYDRATE_CONCURRENCY"`

	// LogFile receives log output while the TUI is running.
	LogFile string `yaml:"log_file" env:"RICKDEX_LOG_FILE"`

	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent" env:"RICKDEX_USER_AGENT"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		DataDir:   defaultDataDir(),
		Store:     StoreSQLite,
		UserAgent: "rickdex",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rickdex"
	}
	return filepath.Join(home, ".config", "rickdex")
}

// Load builds the configuration. dataDir, when non-empty, takes precedence
// over RICKDEX_DATA_DIR for locating the config file.
func Load(dataDir string) (*Config, error) {
	cfg := Default()

	// First pass locates the data directory.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if err := cfg.mergeFile(filepath.Join(cfg.DataDir, FileName)); err != nil {
		return nil, err
	}

	// Environment wins over the file.
	resolvedDir := cfg.DataDir
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.DataDir = resolvedDir

	return cfg, nil
}

// mergeFile overlays values present in the YAML file at path.
// A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be an absolute http(s) URL: %q", c.BaseURL)
	}

	switch c.Store {
	case StoreSQLite, StoreFile, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want %s, %s or %s)", c.Store, StoreSQLite, StoreFile, StoreMemory)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.HydrateConcurrency < 0 {
		return fmt.Errorf("hydrate concurrency must not be negative: %d", c.HydrateConcurrency)
	}
	if c.DataDir == "" && c.Store != StoreMemory {
		return errors.New("data dir is required for persistent stores")
	}
	return nil
}

// DBPath returns the SQLite database path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "rickdex.db")
}

// StateDir returns the directory used by the file store.
func (c *Config) StateDir() string {
	return filepath.Join(c.DataDir, "state")
}

// LogPath returns the TUI log file path.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "rickdex.log")
}

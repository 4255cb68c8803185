// Package harness provides E2E testing utilities for rickdex.
package harness

import (
	"testing"
	"time"

	"github.com/artpar/rickdex/internal/api/apitest"
	"github.com/artpar/rickdex/internal/core"
)

// E2EHarness is the main test orchestrator. The CLI and TUI runners it hands
// out share one catalog server and one data directory.
type E2EHarness struct {
	t       *testing.T
	server  *apitest.Server
	dataDir string
	timeout time.Duration
}

// Config configures the harness.
type Config struct {
	// Characters served by the catalog. Default: apitest.Fixtures().
	Characters []core.Character
	Timeout    time.Duration // Default: 5 seconds
}

// New creates a new E2E harness.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	h := &E2EHarness{
		t:       t,
		server:  apitest.New(cfg.Characters...),
		dataDir: t.TempDir(),
		timeout: cfg.Timeout,
	}

	t.Cleanup(h.server.Close)
	return h
}

// Server returns the fake catalog.
func (h *E2EHarness) Server() *apitest.Server {
	return h.server
}

// BaseURL returns the character endpoint of the fake catalog.
func (h *E2EHarness) BaseURL() string {
	return h.server.BaseURL()
}

// DataDir returns the shared data directory.
func (h *E2EHarness) DataDir() string {
	return h.dataDir
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}

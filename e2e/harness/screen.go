package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const helpFooter = "Press ? or Esc to close"

// Screen is a captured TUI frame or CLI stdout with rickdex-aware checks.
// Every check reports through testify and returns the screen for chaining.
type Screen struct {
	t    *testing.T
	text string
}

// ScreenOf wraps text for assertions.
func ScreenOf(t *testing.T, text string) *Screen {
	return &Screen{t: t, text: text}
}

// Screen captures the session's current frame.
func (s *TUISession) Screen() *Screen {
	return ScreenOf(s.t, s.Output())
}

// Screen wraps the command's stdout.
func (r *CLIResult) Screen(t *testing.T) *Screen {
	return ScreenOf(t, r.Stdout)
}

// Shows asserts every fragment appears.
func (s *Screen) Shows(fragments ...string) *Screen {
	s.t.Helper()
	for _, f := range fragments {
		assert.Contains(s.t, s.text, f, "screen:\n%s", clip(s.text))
	}
	return s
}

// Hides asserts no fragment appears.
func (s *Screen) Hides(fragments ...string) *Screen {
	s.t.Helper()
	for _, f := range fragments {
		assert.NotContains(s.t, s.text, f, "screen:\n%s", clip(s.text))
	}
	return s
}

// Favorite asserts name is rendered on a line carrying the heart marker.
func (s *Screen) Favorite(name string) *Screen {
	s.t.Helper()
	for _, line := range strings.Split(s.text, "\n") {
		if strings.Contains(line, name) && strings.Contains(line, "♥") {
			return s
		}
	}
	assert.Failf(s.t, "favorite not marked", "no ♥ line for %q in:\n%s", name, clip(s.text))
	return s
}

// HelpOpen asserts the key reference overlay is drawn.
func (s *Screen) HelpOpen() *Screen {
	s.t.Helper()
	return s.Shows("General", "Details", helpFooter)
}

// HelpClosed asserts the overlay is gone.
func (s *Screen) HelpClosed() *Screen {
	s.t.Helper()
	return s.Hides(helpFooter)
}

// Clean asserts no failure notification or panic text is visible.
func (s *Screen) Clean() *Screen {
	s.t.Helper()
	return s.Hides("✗", "panic:")
}

func clip(s string) string {
	const max = 600
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

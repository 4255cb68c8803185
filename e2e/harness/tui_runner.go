package harness

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/artpar/rickdex/internal/app"
	"github.com/artpar/rickdex/internal/config"
	"github.com/artpar/rickdex/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
)

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession drives a MainView wired to a real App.
type TUISession struct {
	runner    *TUIRunner
	model     *views.MainView
	app       *app.App
	t         *testing.T
	clipboard []string
}

// Start starts a new TUI session with a 120x40 terminal.
func (r *TUIRunner) Start(t *testing.T) *TUISession {
	return r.StartWithSize(t, 120, 40)
}

// StartWithSize starts a TUI session with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, width, height int) *TUISession {
	t.Helper()

	cfg := config.Default()
	cfg.BaseURL = r.harness.BaseURL()
	cfg.DataDir = r.harness.DataDir()

	a, err := app.New(cfg, app.WithLogOutput(io.Discard))
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	s := &TUISession{
		runner: r,
		app:    a,
		t:      t,
	}
	s.model = views.NewMainView(views.Deps{
		Searcher:  a.Searcher(),
		Favorites: a.Favorites(),
		Lookup:    a.Client(),
		Hydrate:   a.Hydrate,
		Clipboard: func(text string) error {
			s.clipboard = append(s.clipboard, text)
			return nil
		},
		NotificationTTL: time.Millisecond,
	})
	s.send(tea.WindowSizeMsg{Width: width, Height: height})
	s.executeCmd(s.model.Init())
	return s
}

// SendKey sends a key press and runs every command it produces.
func (s *TUISession) SendKey(key string) *TUISession {
	s.send(parseKeyMsg(key))
	return s
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// Type sends a sequence of rune keys.
func (s *TUISession) Type(text string) *TUISession {
	for _, r := range text {
		s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

func (s *TUISession) send(msg tea.Msg) {
	updated, cmd := s.model.Update(msg)
	s.model = updated.(*views.MainView)
	s.executeCmd(cmd)
}

// executeCmd executes a tea.Cmd and processes the resulting message.
func (s *TUISession) executeCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case nil:
	case tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			s.executeCmd(c)
		}
	default:
		s.send(msg)
	}
}

// Output returns the current TUI output.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Model returns the underlying MainView for direct assertions.
func (s *TUISession) Model() *views.MainView {
	return s.model
}

// App returns the application behind the session.
func (s *TUISession) App() *app.App {
	return s.app
}

// Clipboard returns everything copied during the session.
func (s *TUISession) Clipboard() []string {
	return s.clipboard
}

// ShowingHelp returns true if help overlay is visible.
func (s *TUISession) ShowingHelp() bool {
	return s.model.ShowingHelp()
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

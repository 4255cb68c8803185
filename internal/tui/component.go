package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Component is the interface for all TUI components.
type Component interface {
	// Init initializes the component.
	Init() tea.Cmd

	// Update handles messages and returns the updated component.
	Update(msg tea.Msg) (Component, tea.Cmd)

	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// Focused returns true if the component is focused.
	Focused() bool

	// Focus sets the component as focused.
	Focus()

	// Blur removes focus from the component.
	Blur()

	// SetSize sets the component dimensions.
	SetSize(width, height int)

	// Width returns the component width.
	Width() int

	// Height returns the component height.
	Height() int
}

// Panel padding constants for comfortable spacing
const (
	PanelPaddingV = 0
	PanelPaddingH = 1
)

// Shared colors.
var (
	ColorAccent   = lipgloss.Color("214")
	ColorFocus    = lipgloss.Color("62")
	ColorBlur     = lipgloss.Color("240")
	ColorMuted    = lipgloss.Color("245")
	ColorText     = lipgloss.Color("252")
	ColorError    = lipgloss.Color("160")
	ColorSuccess  = lipgloss.Color("34")
	ColorFavorite = lipgloss.Color("196")
)

// PanelStyle returns the bordered style used by every pane.
func PanelStyle(width, height int, focused bool) lipgloss.Style {
	border := ColorBlur
	if focused {
		border = ColorFocus
	}
	// Borders take one cell on each side.
	w, h := width-2, height-2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return lipgloss.NewStyle().
		Width(w).
		Height(h).
		Padding(PanelPaddingV, PanelPaddingH).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// Truncate shortens s to at most width cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

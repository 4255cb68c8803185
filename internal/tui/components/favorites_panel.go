package components

import (
	"fmt"
	"strings"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/tui"
	"github.com/artpar/rickdex/internal/tui/vim"
	tea "github.com/charmbracelet/bubbletea"
)

// FavoritesPanel lists the hydrated favorite characters.
type FavoritesPanel struct {
	width      int
	height     int
	focused    bool
	keys       *vim.KeyMap
	characters []core.Character
	failed     []int
	loading    bool
	err        string
	list       listCursor
}

// NewFavoritesPanel creates an empty favorites panel.
func NewFavoritesPanel() *FavoritesPanel {
	return &FavoritesPanel{
		keys: vim.ListKeyMap(),
	}
}

// Init initializes the panel.
func (p *FavoritesPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *FavoritesPanel) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	n := len(p.characters)
	switch p.keys.Resolve(vim.ModeNormal, keyMsg) {
	case vim.ActionDown:
		p.list.move(1, n)
	case vim.ActionUp:
		p.list.move(-1, n)
	case vim.ActionTop:
		p.list.set(0, n)
	case vim.ActionBottom:
		p.list.set(n-1, n)
	case vim.ActionReload:
		return p, func() tea.Msg { return ReloadFavoritesMsg{} }
	case vim.ActionSelect:
		if c := p.Selected(); c != nil {
			id := c.ID
			return p, func() tea.Msg { return OpenDetailsMsg{ID: id} }
		}
	case vim.ActionRemove, vim.ActionFavorite:
		if c := p.Selected(); c != nil {
			id := c.ID
			return p, func() tea.Msg { return RemoveFavoriteMsg{ID: id} }
		}
	}
	return p, nil
}

// SetLoading marks the favorites as being loaded.
func (p *FavoritesPanel) SetLoading(loading bool) {
	p.loading = loading
}

// IsLoading reports whether favorites are being loaded.
func (p *FavoritesPanel) IsLoading() bool {
	return p.loading
}

// SetCharacters shows the hydrated favorites and the ids that failed to resolve.
func (p *FavoritesPanel) SetCharacters(chars []core.Character, failed []int) {
	p.loading = false
	p.err = ""
	p.characters = chars
	p.failed = failed
	p.list.set(p.list.cursor, len(chars))
}

// SetError shows a load failure.
func (p *FavoritesPanel) SetError(err error) {
	p.loading = false
	if err != nil {
		p.err = err.Error()
	}
}

// RemoveLocal drops id from the displayed list without reloading.
func (p *FavoritesPanel) RemoveLocal(id int) {
	kept := p.characters[:0:0]
	for _, c := range p.characters {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	p.characters = kept
	p.list.set(p.list.cursor, len(kept))
}

// Characters returns the displayed characters.
func (p *FavoritesPanel) Characters() []core.Character {
	return p.characters
}

// Failed returns the ids that could not be resolved.
func (p *FavoritesPanel) Failed() []int {
	return p.failed
}

// Selected returns the character under the cursor, or nil.
func (p *FavoritesPanel) Selected() *core.Character {
	if p.list.cursor < 0 || p.list.cursor >= len(p.characters) {
		return nil
	}
	return &p.characters[p.list.cursor]
}

// View renders the panel.
func (p *FavoritesPanel) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}
	inner := p.width - 4

	lines := []string{titleStyle.Render(fmt.Sprintf("Saved (%d)", len(p.characters)))}
	if len(p.failed) > 0 {
		lines[0] += mutedStyle.Render(fmt.Sprintf("  %d unavailable", len(p.failed)))
	}
	lines = append(lines, "")

	switch {
	case p.loading:
		lines = append(lines, mutedStyle.Render("Loading..."))
	case p.err != "":
		lines = append(lines, errorStyle.Render(tui.Truncate(p.err, inner)))
	case len(p.characters) == 0:
		lines = append(lines, mutedStyle.Render("No saved characters."))
	default:
		always := func(int) bool { return true }
		lines = append(lines, renderRows(p.characters, &p.list, always, inner, p.height-2-len(lines), p.focused)...)
	}

	return tui.PanelStyle(p.width, p.height, p.focused).Render(strings.Join(lines, "\n"))
}

// Title returns the panel title.
func (p *FavoritesPanel) Title() string {
	return "Favorites"
}

// Focused returns true if focused.
func (p *FavoritesPanel) Focused() bool {
	return p.focused
}

// Focus sets focus.
func (p *FavoritesPanel) Focus() {
	p.focused = true
}

// Blur removes focus.
func (p *FavoritesPanel) Blur() {
	p.focused = false
}

// SetSize sets dimensions.
func (p *FavoritesPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the width.
func (p *FavoritesPanel) Width() int {
	return p.width
}

// Height returns the height.
func (p *FavoritesPanel) Height() int {
	return p.height
}

var _ tui.Component = (*FavoritesPanel)(nil)

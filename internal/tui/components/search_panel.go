package components

import (
	"strings"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/search"
	"github.com/artpar/rickdex/internal/tui"
	"github.com/artpar/rickdex/internal/tui/vim"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchPanel is a search-as-you-type input over a result list.
type SearchPanel struct {
	width     int
	height    int
	focused   bool
	mode      vim.Mode
	keys      *vim.KeyMap
	query     []rune
	state     search.State
	results   []core.Character
	message   string
	list      listCursor
	favorites core.FavoriteSet
}

// NewSearchPanel creates a search panel with the input active.
func NewSearchPanel() *SearchPanel {
	p := &SearchPanel{
		mode:  vim.ModeInsert,
		keys:  vim.ListKeyMap(),
		state: search.StateIdle,
	}
	return p
}

// Init initializes the panel.
func (p *SearchPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *SearchPanel) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}
	if p.mode == vim.ModeInsert {
		return p.handleInsert(keyMsg)
	}
	return p.handleNormal(keyMsg)
}

func (p *SearchPanel) handleInsert(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	switch p.keys.Resolve(p.mode, msg) {
	case vim.ActionExit:
		p.mode = vim.ModeNormal
		return p, nil
	case vim.ActionClearLine:
		if len(p.query) == 0 {
			return p, nil
		}
		p.query = nil
		return p, p.queryChanged()
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if len(p.query) == 0 {
			return p, nil
		}
		p.query = p.query[:len(p.query)-1]
		return p, p.queryChanged()
	case tea.KeySpace:
		p.query = append(p.query, ' ')
		return p, p.queryChanged()
	case tea.KeyRunes:
		p.query = append(p.query, msg.Runes...)
		return p, p.queryChanged()
	}
	return p, nil
}

func (p *SearchPanel) handleNormal(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	n := len(p.results)
	switch p.keys.Resolve(vim.ModeNormal, msg) {
	case vim.ActionDown:
		p.list.move(1, n)
	case vim.ActionUp:
		p.list.move(-1, n)
	case vim.ActionTop:
		p.list.set(0, n)
	case vim.ActionBottom:
		p.list.set(n-1, n)
	case vim.ActionInsert:
		p.mode = vim.ModeInsert
	case vim.ActionSelect:
		if c := p.Selected(); c != nil {
			id := c.ID
			return p, func() tea.Msg { return OpenDetailsMsg{ID: id} }
		}
	case vim.ActionFavorite:
		if c := p.Selected(); c != nil {
			id := c.ID
			return p, func() tea.Msg { return ToggleFavoriteMsg{ID: id} }
		}
	}
	return p, nil
}

func (p *SearchPanel) queryChanged() tea.Cmd {
	q := string(p.query)
	return func() tea.Msg { return QueryChangedMsg{Query: q} }
}

// SetQuery replaces the input text without emitting a change.
func (p *SearchPanel) SetQuery(q string) {
	p.query = []rune(q)
}

// Query returns the current input text.
func (p *SearchPanel) Query() string {
	return string(p.query)
}

// SetLoading marks a query as in flight.
func (p *SearchPanel) SetLoading() {
	p.state = search.StateLoading
	p.message = ""
}

// SetResult shows a resolved query.
func (p *SearchPanel) SetResult(r search.Result) {
	p.state = r.State
	p.message = r.Message
	p.results = r.Characters
	p.list.set(0, len(p.results))
	p.list.offset = 0
}

// SetFavorites updates the set used for heart markers.
func (p *SearchPanel) SetFavorites(set core.FavoriteSet) {
	p.favorites = set
}

// State returns the current search state.
func (p *SearchPanel) State() search.State {
	return p.state
}

// Message returns the user-facing message for the current state.
func (p *SearchPanel) Message() string {
	return p.message
}

// Results returns the displayed characters.
func (p *SearchPanel) Results() []core.Character {
	return p.results
}

// Cursor returns the selected row index.
func (p *SearchPanel) Cursor() int {
	return p.list.cursor
}

// Selected returns the character under the cursor, or nil.
func (p *SearchPanel) Selected() *core.Character {
	if p.list.cursor < 0 || p.list.cursor >= len(p.results) {
		return nil
	}
	return &p.results[p.list.cursor]
}

// IsEditing reports whether the input has keyboard focus.
func (p *SearchPanel) IsEditing() bool {
	return p.focused && p.mode == vim.ModeInsert
}

// Mode returns the current editing mode.
func (p *SearchPanel) Mode() vim.Mode {
	return p.mode
}

// StartEditing moves focus into the input.
func (p *SearchPanel) StartEditing() {
	p.mode = vim.ModeInsert
}

// View renders the panel.
func (p *SearchPanel) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}
	inner := p.width - 4

	prompt := titleStyle.Render("Search ") + string(p.query)
	if p.IsEditing() {
		prompt += "█"
	}
	lines := []string{tui.Truncate(prompt, inner), ""}

	bodyHeight := p.height - 2 - len(lines)
	switch p.state {
	case search.StateIdle:
		lines = append(lines, mutedStyle.Render("Type a character name."))
	case search.StateLoading:
		lines = append(lines, mutedStyle.Render("Loading..."))
	case search.StateEmpty, search.StateErrored:
		lines = append(lines, errorStyle.Render(p.message))
	case search.StateLoaded:
		lines = append(lines, renderRows(p.results, &p.list, p.favorites.Contains, inner, bodyHeight, p.focused && !p.IsEditing())...)
	}

	return tui.PanelStyle(p.width, p.height, p.focused).Render(strings.Join(lines, "\n"))
}

// Title returns the panel title.
func (p *SearchPanel) Title() string {
	return "Search"
}

// Focused returns true if focused.
func (p *SearchPanel) Focused() bool {
	return p.focused
}

// Focus sets focus.
func (p *SearchPanel) Focus() {
	p.focused = true
}

// Blur removes focus.
func (p *SearchPanel) Blur() {
	p.focused = false
}

// SetSize sets dimensions.
func (p *SearchPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the width.
func (p *SearchPanel) Width() int {
	return p.width
}

// Height returns the height.
func (p *SearchPanel) Height() int {
	return p.height
}

var _ tui.Component = (*SearchPanel)(nil)

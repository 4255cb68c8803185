package components

import (
	"fmt"
	"strings"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/tui"
	"github.com/artpar/rickdex/internal/tui/vim"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NotFoundMessage is shown when a character cannot be loaded.
const NotFoundMessage = "Character not found."

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37")).Bold(true)

// DetailsPanel shows every attribute of one character.
type DetailsPanel struct {
	width     int
	height    int
	focused   bool
	keys      *vim.KeyMap
	id        int
	character *core.Character
	loading   bool
	err       error
	favorite  bool
}

// NewDetailsPanel creates an empty details panel.
func NewDetailsPanel() *DetailsPanel {
	return &DetailsPanel{
		keys: vim.DetailKeyMap(),
	}
}

// Init initializes the panel.
func (p *DetailsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *DetailsPanel) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	switch p.keys.Resolve(vim.ModeNormal, keyMsg) {
	case vim.ActionBack:
		return p, func() tea.Msg { return CloseDetailsMsg{} }
	case vim.ActionCopy:
		if p.character != nil && p.character.Image != "" {
			image := p.character.Image
			return p, func() tea.Msg { return CopyMsg{Content: image} }
		}
	case vim.ActionFavorite:
		if p.character != nil {
			id := p.character.ID
			return p, func() tea.Msg { return ToggleFavoriteMsg{ID: id} }
		}
	}
	return p, nil
}

// Load resets the panel for the character with id.
func (p *DetailsPanel) Load(id int) {
	p.id = id
	p.character = nil
	p.err = nil
	p.loading = true
}

// ID returns the id being shown or loaded.
func (p *DetailsPanel) ID() int {
	return p.id
}

// SetCharacter shows a resolved character.
func (p *DetailsPanel) SetCharacter(c *core.Character) {
	p.loading = false
	p.character = c
	p.err = nil
}

// SetError shows a lookup failure.
func (p *DetailsPanel) SetError(err error) {
	p.loading = false
	p.character = nil
	p.err = err
}

// SetFavorite updates the heart marker.
func (p *DetailsPanel) SetFavorite(favorite bool) {
	p.favorite = favorite
}

// Character returns the character shown, or nil.
func (p *DetailsPanel) Character() *core.Character {
	return p.character
}

// IsLoading reports whether the lookup is in flight.
func (p *DetailsPanel) IsLoading() bool {
	return p.loading
}

// Lines returns the label/value rows for c. Shared with the CLI renderer.
func Lines(c *core.Character) [][2]string {
	rows := [][2]string{
		{"Status", c.Status},
		{"Species", c.Species},
		{"Gender", c.Gender},
		{"Origin", c.Origin.Name},
		{"Last known location", c.Location.Name},
	}
	if ep := c.FirstEpisode(); ep != "" {
		rows = append(rows, [2]string{"First seen in", "Episode " + ep})
	}
	rows = append(rows, [2]string{"Appeared in", fmt.Sprintf("%d episodes", c.EpisodeCount())})
	if d := c.CreatedDate(); d != "" {
		rows = append(rows, [2]string{"Created", d})
	}
	if c.Image != "" {
		rows = append(rows, [2]string{"Image", c.Image})
	}
	return rows
}

// View renders the panel.
func (p *DetailsPanel) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}
	inner := p.width - 4

	var lines []string
	switch {
	case p.loading:
		lines = append(lines, mutedStyle.Render("Loading..."))
	case p.character == nil:
		lines = append(lines, errorStyle.Render(NotFoundMessage))
	default:
		c := p.character
		name := titleStyle.Render(c.Name)
		if p.favorite {
			name = heartStyle.Render("♥ ") + name
		}
		lines = append(lines, name, "")
		for _, row := range Lines(c) {
			label := labelStyle.Render(row[0] + ":")
			lines = append(lines, tui.Truncate(label+" "+row[1], inner))
		}
	}

	return tui.PanelStyle(p.width, p.height, p.focused).Render(strings.Join(lines, "\n"))
}

// Title returns the panel title.
func (p *DetailsPanel) Title() string {
	return "Details"
}

// Focused returns true if focused.
func (p *DetailsPanel) Focused() bool {
	return p.focused
}

// Focus sets focus.
func (p *DetailsPanel) Focus() {
	p.focused = true
}

// Blur removes focus.
func (p *DetailsPanel) Blur() {
	p.focused = false
}

// SetSize sets dimensions.
func (p *DetailsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the width.
func (p *DetailsPanel) Width() int {
	return p.width
}

// Height returns the height.
func (p *DetailsPanel) Height() int {
	return p.height
}

var _ tui.Component = (*DetailsPanel)(nil)

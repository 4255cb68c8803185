package components

import (
	"fmt"
	"strings"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/tui"
	"github.com/charmbracelet/lipgloss"
)

// listCursor tracks the selected row and scroll offset of a list.
type listCursor struct {
	cursor int
	offset int
}

func (l *listCursor) move(delta, n int) {
	l.set(l.cursor+delta, n)
}

func (l *listCursor) set(pos, n int) {
	if n == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		pos = n - 1
	}
	l.cursor = pos
}

// window returns the [start, end) range of rows visible in height lines.
func (l *listCursor) window(n, height int) (int, int) {
	if height <= 0 {
		height = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}
	end := l.offset + height
	if end > n {
		end = n
	}
	return l.offset, end
}

var (
	selectedRowStyle = lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(tui.ColorMuted)
	errorStyle       = lipgloss.NewStyle().Foreground(tui.ColorError)
	heartStyle       = lipgloss.NewStyle().Foreground(tui.ColorFavorite)
	titleStyle       = lipgloss.NewStyle().Foreground(tui.ColorAccent).Bold(true)
)

// characterRow renders one list entry.
func characterRow(c core.Character, favorite bool, width int) string {
	heart := mutedStyle.Render("♡")
	if favorite {
		heart = heartStyle.Render("♥")
	}
	parts := []string{c.Name, c.Status}
	if c.Location.Name != "" {
		parts = append(parts, c.Location.Name)
	}
	if ep := c.FirstEpisode(); ep != "" {
		parts = append(parts, fmt.Sprintf("ep %s", ep))
	}
	return heart + " " + tui.Truncate(strings.Join(parts, " · "), width-2)
}

// renderRows renders the visible slice of a character list.
func renderRows(chars []core.Character, lc *listCursor, isFavorite func(int) bool, width, height int, highlight bool) []string {
	start, end := lc.window(len(chars), height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := characterRow(chars[i], isFavorite(chars[i].ID), width)
		if highlight && i == lc.cursor {
			row = selectedRowStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return lines
}

package vim

import "github.com/charmbracelet/lipgloss"

// Mode is the editing mode of a panel that accepts typed input.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

var modeNames = [...]string{
	ModeNormal: "NORMAL",
	ModeInsert: "INSERT",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "UNKNOWN"
	}
	return modeNames[m]
}

// Badge renders the mode label shown at the left of the status bar.
func (m Mode) Badge() string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if m == ModeInsert {
		style = style.Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0"))
	} else {
		style = style.Background(lipgloss.Color("34")).Foreground(lipgloss.Color("255"))
	}
	return style.Render(m.String())
}

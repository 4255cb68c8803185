package harness

import (
	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/tui/vim"
)

// State represents a snapshot of the TUI state for verification.
type State struct {
	Tab            string
	Mode           string // "NORMAL" or "INSERT"
	Query          string
	SearchState    string
	Results        []string
	Favorites      []string
	Unavailable    []int
	ShowingDetails bool
	Detail         string
	ShowingHelp    bool
	Notification   string
}

// State captures the current state of the TUI session.
func (s *TUISession) State() *State {
	mv := s.model
	search := mv.SearchPanel()

	state := &State{
		Tab:            mv.ActiveTab().String(),
		Mode:           vim.ModeNormal.String(),
		Query:          search.Query(),
		SearchState:    search.State().String(),
		Results:        names(search.Results()),
		Favorites:      names(mv.FavoritesPanel().Characters()),
		Unavailable:    mv.FavoritesPanel().Failed(),
		ShowingDetails: mv.ShowingDetails(),
		ShowingHelp:    mv.ShowingHelp(),
		Notification:   mv.Notification(),
	}
	if search.IsEditing() && !mv.ShowingDetails() {
		state.Mode = vim.ModeInsert.String()
	}
	if c := mv.DetailsPanel().Character(); c != nil {
		state.Detail = c.Name
	}
	return state
}

func names(chars []core.Character) []string {
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.Name)
	}
	return out
}

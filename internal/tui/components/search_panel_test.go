package components

import (
	"testing"

	"github.com/artpar/rickdex/internal/api/apitest"
	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/search"
	"github.com/artpar/rickdex/internal/tui/vim"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedResult(chars ...core.Character) search.Result {
	return search.Result{State: search.StateLoaded, Characters: chars}
}

func TestNewSearchPanel(t *testing.T) {
	p := NewSearchPanel()
	assert.Equal(t, "Search", p.Title())
	assert.Equal(t, search.StateIdle, p.State())
	assert.Equal(t, vim.ModeInsert, p.Mode())
	assert.False(t, p.Focused())
	assert.Nil(t, p.Selected())
}

func TestSearchPanel_Typing(t *testing.T) {
	t.Run("ignores keys when unfocused", func(t *testing.T) {
		p := NewSearchPanel()
		_, cmd := p.Update(runeKey("r"))
		assert.Nil(t, cmd)
		assert.Empty(t, p.Query())
	})

	t.Run("each edit emits the new query", func(t *testing.T) {
		p := NewSearchPanel()
		p.Focus()

		_, cmd := p.Update(runeKey("r"))
		require.NotNil(t, cmd)
		assert.Equal(t, QueryChangedMsg{Query: "r"}, cmd())

		_, cmd = p.Update(runeKey("i"))
		assert.Equal(t, QueryChangedMsg{Query: "ri"}, cmd())

		_, cmd = p.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		assert.Equal(t, QueryChangedMsg{Query: "ri "}, cmd())

		_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		assert.Equal(t, QueryChangedMsg{Query: "ri"}, cmd())
	})

	t.Run("backspace on empty input is a no-op", func(t *testing.T) {
		p := NewSearchPanel()
		p.Focus()
		_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		assert.Nil(t, cmd)
	})

	t.Run("ctrl+u clears to the empty query", func(t *testing.T) {
		p := NewSearchPanel()
		p.Focus()
		p.SetQuery("morty")

		_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
		require.NotNil(t, cmd)
		assert.Equal(t, QueryChangedMsg{Query: ""}, cmd())
		assert.Empty(t, p.Query())
	})

	t.Run("letters bound in normal mode are typed in insert mode", func(t *testing.T) {
		p := NewSearchPanel()
		p.Focus()
		for _, r := range "jfxq" {
			p.Update(runeKey(string(r)))
		}
		assert.Equal(t, "jfxq", p.Query())
	})
}

func TestSearchPanel_Navigation(t *testing.T) {
	chars := apitest.Fixtures()

	newPanel := func() *SearchPanel {
		p := NewSearchPanel()
		p.Focus()
		p.SetResult(loadedResult(chars...))
		p.Update(tea.KeyMsg{Type: tea.KeyEsc})
		return p
	}

	t.Run("esc leaves the input", func(t *testing.T) {
		p := newPanel()
		assert.Equal(t, vim.ModeNormal, p.Mode())
		assert.False(t, p.IsEditing())
	})

	t.Run("moves within bounds", func(t *testing.T) {
		p := newPanel()
		p.Update(runeKey("k"))
		assert.Equal(t, 0, p.Cursor())

		p.Update(runeKey("j"))
		p.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 2, p.Cursor())

		p.Update(runeKey("G"))
		assert.Equal(t, len(chars)-1, p.Cursor())
		p.Update(runeKey("j"))
		assert.Equal(t, len(chars)-1, p.Cursor())

		p.Update(runeKey("g"))
		assert.Equal(t, 0, p.Cursor())
	})

	t.Run("enter opens details for the selection", func(t *testing.T) {
		p := newPanel()
		p.Update(runeKey("j"))
		_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.Equal(t, OpenDetailsMsg{ID: chars[1].ID}, cmd())
	})

	t.Run("f toggles the selection", func(t *testing.T) {
		p := newPanel()
		_, cmd := p.Update(runeKey("f"))
		require.NotNil(t, cmd)
		assert.Equal(t, ToggleFavoriteMsg{ID: chars[0].ID}, cmd())
	})

	t.Run("slash returns to the input", func(t *testing.T) {
		p := newPanel()
		p.Update(runeKey("/"))
		assert.True(t, p.IsEditing())
	})

	t.Run("no selection without results", func(t *testing.T) {
		p := NewSearchPanel()
		p.Focus()
		p.Update(tea.KeyMsg{Type: tea.KeyEsc})
		_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
	})
}

func TestSearchPanel_SetResult(t *testing.T) {
	t.Run("resets the cursor", func(t *testing.T) {
		p := NewSearchPanel()
		p.Focus()
		p.SetResult(loadedResult(apitest.Fixtures()...))
		p.Update(tea.KeyMsg{Type: tea.KeyEsc})
		p.Update(runeKey("G"))

		p.SetResult(loadedResult(apitest.Fixtures()[:2]...))
		assert.Equal(t, 0, p.Cursor())
	})

	t.Run("loading clears the message", func(t *testing.T) {
		p := NewSearchPanel()
		p.SetResult(search.Result{State: search.StateEmpty, Message: search.NoResultsMessage})
		assert.Equal(t, search.NoResultsMessage, p.Message())

		p.SetLoading()
		assert.Equal(t, search.StateLoading, p.State())
		assert.Empty(t, p.Message())
	})
}

func TestSearchPanel_View(t *testing.T) {
	render := func(p *SearchPanel) string {
		p.SetSize(80, 20)
		return p.View()
	}

	t.Run("zero size renders nothing", func(t *testing.T) {
		assert.Empty(t, NewSearchPanel().View())
	})

	t.Run("idle prompt", func(t *testing.T) {
		assert.Contains(t, render(NewSearchPanel()), "Type a character name.")
	})

	t.Run("loading", func(t *testing.T) {
		p := NewSearchPanel()
		p.SetLoading()
		assert.Contains(t, render(p), "Loading...")
	})

	t.Run("empty message", func(t *testing.T) {
		p := NewSearchPanel()
		p.SetResult(search.Result{State: search.StateEmpty, Message: search.NoResultsMessage})
		assert.Contains(t, render(p), search.NoResultsMessage)
	})

	t.Run("results with heart markers", func(t *testing.T) {
		p := NewSearchPanel()
		chars := apitest.Fixtures()[:2]
		p.SetResult(loadedResult(chars...))
		p.SetFavorites(core.NewFavoriteSet(chars[1].ID))

		out := render(p)
		assert.Contains(t, out, chars[0].Name)
		assert.Contains(t, out, chars[1].Name)
		assert.Contains(t, out, "♥")
		assert.Contains(t, out, "♡")
	})

	t.Run("shows the query with a cursor while editing", func(t *testing.T) {
		p := NewSearchPanel()
		p.Focus()
		p.SetQuery("sum")
		out := render(p)
		assert.Contains(t, out, "sum")
		assert.Contains(t, out, "█")
	})
}

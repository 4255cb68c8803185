package views

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/artpar/rickdex/internal/api"
	"github.com/artpar/rickdex/internal/api/apitest"
	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/favorites"
	"github.com/artpar/rickdex/internal/search"
	"github.com/artpar/rickdex/internal/storage"
	"github.com/artpar/rickdex/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv       *apitest.Server
	store     *favorites.Store
	view      *MainView
	clipboard []string
	copyErr   error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	quiet := log.New(io.Discard, "", 0)
	client := api.NewClient(api.WithBaseURL(srv.BaseURL()), api.WithLogger(quiet))

	f := &fixture{
		srv:   srv,
		store: favorites.New(storage.NewMemory(), favorites.WithLogger(quiet)),
	}
	f.view = NewMainView(Deps{
		Searcher:  search.New(client, search.Quiet()),
		Favorites: f.store,
		Lookup:    client,
		Hydrate: func(ctx context.Context, ids []int) favorites.Hydration {
			return favorites.Hydrate(ctx, client, ids, favorites.WithHydrateLogger(quiet))
		},
		Clipboard: func(s string) error {
			if f.copyErr != nil {
				return f.copyErr
			}
			f.clipboard = append(f.clipboard, s)
			return nil
		},
	})
	f.view.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return f
}

// send feeds msg to the view and returns the resulting command.
func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.view.Update(msg)
	return cmd
}

// exec runs cmd and feeds its message back to the view.
func (f *fixture) exec(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	return f.send(cmd())
}

func (f *fixture) seed(t *testing.T, ids ...int) {
	t.Helper()
	for _, id := range ids {
		_, err := f.store.Toggle(context.Background(), id)
		require.NoError(t, err)
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(chars []core.Character) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = c.Name
	}
	return out
}

func TestMainView_Init(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1)

	next := f.exec(t, f.view.Init())
	assert.Nil(t, next, "init does not hydrate")
	assert.True(t, f.view.Favorites().Contains(1))
	assert.Equal(t, TabSearch, f.view.ActiveTab())
	assert.True(t, f.view.SearchPanel().IsEditing())
}

func TestMainView_Search(t *testing.T) {
	t.Run("typing searches and shows results", func(t *testing.T) {
		f := newFixture(t)

		cmd := f.send(key("s"))
		require.NotNil(t, cmd)
		cmd = f.exec(t, cmd)
		assert.Equal(t, search.StateLoading, f.view.SearchPanel().State())

		f.exec(t, cmd)
		assert.Equal(t, search.StateLoaded, f.view.SearchPanel().State())
		assert.NotEmpty(t, f.view.SearchPanel().Results())
	})

	t.Run("empty query is idle without a request", func(t *testing.T) {
		f := newFixture(t)
		before := f.srv.RequestCount()

		cmd := f.send(components.QueryChangedMsg{Query: ""})
		assert.Nil(t, cmd)
		assert.Equal(t, search.StateIdle, f.view.SearchPanel().State())
		assert.Equal(t, before, f.srv.RequestCount())
	})

	t.Run("zero matches shows the empty message", func(t *testing.T) {
		f := newFixture(t)

		f.exec(t, f.send(components.QueryChangedMsg{Query: "birdperson"}))
		assert.Equal(t, search.StateEmpty, f.view.SearchPanel().State())
		assert.Equal(t, search.NoResultsMessage, f.view.SearchPanel().Message())
	})

	t.Run("failure shows the same message", func(t *testing.T) {
		f := newFixture(t)
		f.srv.FailWith("", 502)

		f.exec(t, f.send(components.QueryChangedMsg{Query: "rick"}))
		assert.Equal(t, search.StateErrored, f.view.SearchPanel().State())
		assert.Equal(t, search.NoResultsMessage, f.view.SearchPanel().Message())
	})

	t.Run("superseded result is dropped", func(t *testing.T) {
		f := newFixture(t)

		older := f.send(components.QueryChangedMsg{Query: "rick"})
		newer := f.send(components.QueryChangedMsg{Query: "smith"})

		f.exec(t, newer)
		f.exec(t, older)

		assert.Equal(t, search.StateLoaded, f.view.SearchPanel().State())
		assert.Equal(t,
			[]string{"Morty Smith", "Summer Smith", "Beth Smith", "Jerry Smith"},
			names(f.view.SearchPanel().Results()))
	})
}

func TestMainView_ToggleFromSearch(t *testing.T) {
	f := newFixture(t)
	f.exec(t, f.send(components.QueryChangedMsg{Query: "rick"}))
	f.send(tea.KeyMsg{Type: tea.KeyEsc})

	cmd := f.exec(t, f.send(key("f")))
	f.exec(t, cmd)

	assert.True(t, f.view.Favorites().Contains(1))
	assert.Equal(t, "♥ Saved", f.view.Notification())

	set, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, set.Contains(1))

	f.exec(t, f.exec(t, f.send(key("f"))))
	assert.False(t, f.view.Favorites().Contains(1))
	assert.Equal(t, "Removed from favorites", f.view.Notification())
}

type failingFavorites struct{}

func (failingFavorites) Load(ctx context.Context) (core.FavoriteSet, error) {
	return core.FavoriteSet{}, &core.StorageError{Op: "get", Key: "favorites", Err: errors.New("locked")}
}

func (failingFavorites) Toggle(ctx context.Context, id int) (core.FavoriteSet, error) {
	return core.FavoriteSet{}, &core.StorageError{Op: "set", Key: "favorites", Err: errors.New("locked")}
}

func (failingFavorites) Remove(ctx context.Context, id int) (core.FavoriteSet, error) {
	return failingFavorites{}.Toggle(ctx, id)
}

func TestMainView_StorageFailures(t *testing.T) {
	v := NewMainView(Deps{
		Searcher:  search.New(nil, search.Quiet()),
		Favorites: failingFavorites{},
		Clipboard: func(string) error { return nil },
	})
	v.SetSize(80, 24)

	_, cmd := v.Update(components.ToggleFavoriteMsg{ID: 1})
	v.Update(cmd())
	assert.Equal(t, "✗ Could not save favorite", v.Notification())

	_, cmd = v.Update(components.ReloadFavoritesMsg{})
	v.Update(cmd())
	assert.False(t, v.FavoritesPanel().IsLoading())
	assert.Equal(t, "✗ Could not read favorites", v.Notification())
}

func TestMainView_FavoritesTab(t *testing.T) {
	openFavorites := func(t *testing.T, f *fixture) {
		t.Helper()
		cmd := f.send(tea.KeyMsg{Type: tea.KeyTab})
		require.Equal(t, TabFavorites, f.view.ActiveTab())
		assert.True(t, f.view.FavoritesPanel().IsLoading())

		hydrate := f.exec(t, cmd)
		f.exec(t, hydrate)
	}

	t.Run("focus loads and hydrates in set order", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, 3, 1)

		openFavorites(t, f)
		assert.False(t, f.view.FavoritesPanel().IsLoading())
		assert.Equal(t, []string{"Summer Smith", "Rick Sanchez"}, names(f.view.FavoritesPanel().Characters()))
	})

	t.Run("unresolvable ids are skipped and counted", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, 1, 999)

		openFavorites(t, f)
		assert.Equal(t, []string{"Rick Sanchez"}, names(f.view.FavoritesPanel().Characters()))
		assert.Equal(t, []int{999}, f.view.FavoritesPanel().Failed())
	})

	t.Run("remove persists and drops the row", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, 1, 2)
		openFavorites(t, f)

		f.send(key("j"))
		f.exec(t, f.exec(t, f.send(key("x"))))

		assert.Equal(t, []string{"Rick Sanchez"}, names(f.view.FavoritesPanel().Characters()))
		set, err := f.store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int{1}, set.IDs())
	})

	t.Run("stale hydration is dropped", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, 1)

		first := f.send(tea.KeyMsg{Type: tea.KeyTab})
		staleHydrate := f.exec(t, first)

		f.seed(t, 2)
		f.exec(t, f.exec(t, f.send(components.ReloadFavoritesMsg{})))
		f.exec(t, staleHydrate)

		assert.Equal(t, []string{"Rick Sanchez", "Morty Smith"}, names(f.view.FavoritesPanel().Characters()))
	})

	t.Run("tab returns to search", func(t *testing.T) {
		f := newFixture(t)
		openFavorites(t, f)

		cmd := f.send(tea.KeyMsg{Type: tea.KeyShiftTab})
		assert.Nil(t, cmd)
		assert.Equal(t, TabSearch, f.view.ActiveTab())
		assert.True(t, f.view.SearchPanel().Focused())
	})
}

func TestMainView_Details(t *testing.T) {
	t.Run("opens, copies and closes", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, 1)
		f.exec(t, f.view.Init())

		f.exec(t, f.send(components.OpenDetailsMsg{ID: 1}))
		require.True(t, f.view.ShowingDetails())
		require.NotNil(t, f.view.DetailsPanel().Character())
		assert.Equal(t, "Rick Sanchez", f.view.DetailsPanel().Character().Name)
		assert.Contains(t, f.view.View(), "♥")

		f.exec(t, f.send(key("y")))
		require.Len(t, f.clipboard, 1)
		assert.Equal(t, f.view.DetailsPanel().Character().Image, f.clipboard[0])
		assert.Equal(t, "✓ Copied image URL", f.view.Notification())

		f.exec(t, f.send(tea.KeyMsg{Type: tea.KeyEsc}))
		assert.False(t, f.view.ShowingDetails())
		assert.True(t, f.view.SearchPanel().Focused())
	})

	t.Run("q does not quit while details are open", func(t *testing.T) {
		f := newFixture(t)
		f.send(components.OpenDetailsMsg{ID: 1})
		assert.Nil(t, f.send(key("q")))
	})

	t.Run("unknown id shows not found", func(t *testing.T) {
		f := newFixture(t)
		f.exec(t, f.send(components.OpenDetailsMsg{ID: 999}))
		assert.Nil(t, f.view.DetailsPanel().Character())
		assert.Contains(t, f.view.View(), components.NotFoundMessage)
	})

	t.Run("late result for a closed overlay is dropped", func(t *testing.T) {
		f := newFixture(t)
		cmd := f.send(components.OpenDetailsMsg{ID: 1})
		f.send(components.CloseDetailsMsg{})
		f.exec(t, cmd)
		assert.Nil(t, f.view.DetailsPanel().Character())
	})

	t.Run("toggle updates the heart", func(t *testing.T) {
		f := newFixture(t)
		f.exec(t, f.send(components.OpenDetailsMsg{ID: 2}))
		f.exec(t, f.exec(t, f.send(key("f"))))
		assert.True(t, f.view.Favorites().Contains(2))
		assert.Contains(t, f.view.View(), "♥")
	})

	t.Run("copy failure is reported", func(t *testing.T) {
		f := newFixture(t)
		f.copyErr = errors.New("no clipboard")
		f.send(components.CopyMsg{Content: "x"})
		assert.Equal(t, "✗ Copy failed", f.view.Notification())

		f.send(clearNotificationMsg{})
		assert.Empty(t, f.view.Notification())
	})
}

func TestMainView_Keys(t *testing.T) {
	t.Run("ctrl+c quits while typing", func(t *testing.T) {
		f := newFixture(t)
		cmd := f.send(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})

	t.Run("q is typed while editing", func(t *testing.T) {
		f := newFixture(t)
		f.send(key("q"))
		assert.Equal(t, "q", f.view.SearchPanel().Query())
	})

	t.Run("q quits in normal mode", func(t *testing.T) {
		f := newFixture(t)
		f.send(tea.KeyMsg{Type: tea.KeyEsc})
		cmd := f.send(key("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})

	t.Run("help toggles", func(t *testing.T) {
		f := newFixture(t)
		f.send(tea.KeyMsg{Type: tea.KeyEsc})
		f.send(key("?"))
		require.True(t, f.view.ShowingHelp())
		assert.Contains(t, f.view.View(), "copy image url")

		f.send(key("q"))
		assert.True(t, f.view.ShowingHelp(), "keys are swallowed by the overlay")

		f.send(tea.KeyMsg{Type: tea.KeyEsc})
		assert.False(t, f.view.ShowingHelp())
	})
}

func TestMainView_View(t *testing.T) {
	t.Run("zero size renders nothing", func(t *testing.T) {
		v := NewMainView(Deps{Searcher: search.New(nil, search.Quiet())})
		assert.Empty(t, v.View())
	})

	t.Run("renders tabs and status", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, 1, 2)
		f.exec(t, f.view.Init())

		out := f.view.View()
		assert.Contains(t, out, "Search")
		assert.Contains(t, out, "Favorites (2)")
		assert.Contains(t, out, "INSERT")
		assert.Contains(t, out, "Type a character name.")
	})
}

package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/favorites"
	"github.com/artpar/rickdex/internal/search"
	"github.com/artpar/rickdex/internal/tui"
	"github.com/artpar/rickdex/internal/tui/components"
	"github.com/artpar/rickdex/internal/tui/vim"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab represents which tab is active.
type Tab int

const (
	TabSearch Tab = iota
	TabFavorites
)

func (t Tab) String() string {
	if t == TabFavorites {
		return "Favorites"
	}
	return "Search"
}

// DefaultNotificationTTL is how long status notifications stay visible.
const DefaultNotificationTTL = 2 * time.Second

// FavoriteStore is the persisted favorite set.
type FavoriteStore interface {
	Load(ctx context.Context) (core.FavoriteSet, error)
	Toggle(ctx context.Context, id int) (core.FavoriteSet, error)
	Remove(ctx context.Context, id int) (core.FavoriteSet, error)
}

// Deps are the collaborators the main view drives.
type Deps struct {
	Searcher  *search.Searcher
	Favorites FavoriteStore
	Lookup    favorites.Fetcher
	// Hydrate defaults to favorites.Hydrate over Lookup.
	Hydrate func(ctx context.Context, ids []int) favorites.Hydration
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	// NotificationTTL defaults to DefaultNotificationTTL.
	NotificationTTL time.Duration
}

// MainView is the tabbed search/favorites view with a details overlay.
type MainView struct {
	width        int
	height       int
	activeTab    Tab
	search       *components.SearchPanel
	favorites    *components.FavoritesPanel
	details      *components.DetailsPanel
	showDetails  bool
	showHelp     bool
	notification string
	favSet       core.FavoriteSet
	favLoadSeq   int
	deps         Deps
	globalKeys   *vim.KeyMap
}

type searchResultMsg struct {
	result search.Result
}

type favoritesLoadedMsg struct {
	seq     int
	set     core.FavoriteSet
	err     error
	hydrate bool
}

type hydratedMsg struct {
	seq       int
	ids       []int
	hydration favorites.Hydration
}

type favoriteToggledMsg struct {
	id  int
	set core.FavoriteSet
	err error
}

type detailLoadedMsg struct {
	id        int
	character *core.Character
	err       error
}

// clearNotificationMsg is sent to clear the notification.
type clearNotificationMsg struct{}

// NewMainView creates the main view over deps.
func NewMainView(deps Deps) *MainView {
	if deps.Hydrate == nil {
		lookup := deps.Lookup
		deps.Hydrate = func(ctx context.Context, ids []int) favorites.Hydration {
			return favorites.Hydrate(ctx, lookup, ids)
		}
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if deps.NotificationTTL <= 0 {
		deps.NotificationTTL = DefaultNotificationTTL
	}

	v := &MainView{
		search:     components.NewSearchPanel(),
		favorites:  components.NewFavoritesPanel(),
		details:    components.NewDetailsPanel(),
		deps:       deps,
		globalKeys: vim.GlobalKeyMap(),
	}
	v.search.Focus()
	return v
}

// Init loads the favorite set so search results show heart markers.
func (v *MainView) Init() tea.Cmd {
	return v.loadFavorites(false)
}

// Update handles messages.
func (v *MainView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	if v.showHelp {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc || string(keyMsg.Runes) == "?" {
				v.showHelp = false
			}
			return v, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.updatePaneSizes()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case components.QueryChangedMsg:
		return v, v.startSearch(msg.Query)

	case searchResultMsg:
		if !v.deps.Searcher.IsCurrent(msg.result.Seq) {
			return v, nil
		}
		v.search.SetResult(msg.result)
		return v, nil

	case components.ToggleFavoriteMsg:
		return v, toggleFavorite(v.deps.Favorites, msg.ID)

	case components.RemoveFavoriteMsg:
		return v, removeFavorite(v.deps.Favorites, msg.ID)

	case favoriteToggledMsg:
		return v.handleToggled(msg)

	case components.ReloadFavoritesMsg:
		return v, v.loadFavorites(true)

	case favoritesLoadedMsg:
		return v.handleFavoritesLoaded(msg)

	case hydratedMsg:
		if msg.seq != v.favLoadSeq {
			return v, nil
		}
		v.favorites.SetCharacters(msg.hydration.Characters, msg.hydration.FailedIDs(msg.ids))
		return v, nil

	case components.OpenDetailsMsg:
		v.openDetails(msg.ID)
		return v, fetchDetail(v.deps.Lookup, msg.ID)

	case detailLoadedMsg:
		if !v.showDetails || msg.id != v.details.ID() {
			return v, nil
		}
		if msg.err != nil {
			v.details.SetError(msg.err)
		} else {
			v.details.SetCharacter(msg.character)
		}
		return v, nil

	case components.CloseDetailsMsg:
		v.closeDetails()
		return v, nil

	case components.CopyMsg:
		return v.handleCopy(msg.Content)

	case clearNotificationMsg:
		v.notification = ""
		return v, nil
	}

	return v.forwardToFocusedPane(msg)
}

func (v *MainView) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}

	if v.showDetails {
		return v.forwardToFocusedPane(msg)
	}

	mode := vim.ModeNormal
	if v.isEditing() {
		mode = vim.ModeInsert
	}

	switch v.globalKeys.Resolve(mode, msg) {
	case vim.ActionQuit:
		return v, tea.Quit
	case vim.ActionHelp:
		v.showHelp = true
		return v, nil
	case vim.ActionNextTab, vim.ActionPrevTab:
		// Two tabs, so both directions flip.
		if v.activeTab == TabSearch {
			return v, v.switchTab(TabFavorites)
		}
		return v, v.switchTab(TabSearch)
	}

	return v.forwardToFocusedPane(msg)
}

func (v *MainView) forwardToFocusedPane(msg tea.Msg) (tui.Component, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case v.showDetails:
		updated, c := v.details.Update(msg)
		v.details = updated.(*components.DetailsPanel)
		cmd = c
	case v.activeTab == TabSearch:
		updated, c := v.search.Update(msg)
		v.search = updated.(*components.SearchPanel)
		cmd = c
	case v.activeTab == TabFavorites:
		updated, c := v.favorites.Update(msg)
		v.favorites = updated.(*components.FavoritesPanel)
		cmd = c
	}

	return v, cmd
}

func (v *MainView) isEditing() bool {
	return !v.showDetails && v.activeTab == TabSearch && v.search.IsEditing()
}

// switchTab activates tab. Focusing the favorites tab reloads it.
func (v *MainView) switchTab(tab Tab) tea.Cmd {
	v.activeTab = tab
	v.focusActive()
	if tab == TabFavorites {
		return v.loadFavorites(true)
	}
	return nil
}

func (v *MainView) focusActive() {
	v.search.Blur()
	v.favorites.Blur()
	v.details.Blur()

	switch {
	case v.showDetails:
		v.details.Focus()
	case v.activeTab == TabFavorites:
		v.favorites.Focus()
	default:
		v.search.Focus()
	}
}

func (v *MainView) openDetails(id int) {
	v.details.Load(id)
	v.details.SetFavorite(v.favSet.Contains(id))
	v.showDetails = true
	v.focusActive()
}

func (v *MainView) closeDetails() {
	v.showDetails = false
	v.focusActive()
}

func (v *MainView) startSearch(query string) tea.Cmd {
	ticket := v.deps.Searcher.Begin(context.Background(), query)
	if len(query) == 0 {
		v.search.SetResult(v.deps.Searcher.Run(ticket))
		return nil
	}
	v.search.SetLoading()

	s := v.deps.Searcher
	return func() tea.Msg {
		return searchResultMsg{result: s.Run(ticket)}
	}
}

func (v *MainView) loadFavorites(hydrate bool) tea.Cmd {
	v.favLoadSeq++
	seq := v.favLoadSeq
	if hydrate {
		v.favorites.SetLoading(true)
	}

	store := v.deps.Favorites
	return func() tea.Msg {
		set, err := store.Load(context.Background())
		return favoritesLoadedMsg{seq: seq, set: set, err: err, hydrate: hydrate}
	}
}

func (v *MainView) handleFavoritesLoaded(msg favoritesLoadedMsg) (tui.Component, tea.Cmd) {
	if msg.seq != v.favLoadSeq {
		return v, nil
	}
	v.setFavorites(msg.set)

	if msg.err != nil {
		v.favorites.SetError(msg.err)
		return v, v.notify("✗ Could not read favorites")
	}
	if !msg.hydrate {
		return v, nil
	}

	ids := msg.set.IDs()
	hydrate := v.deps.Hydrate
	seq := msg.seq
	return v, func() tea.Msg {
		return hydratedMsg{seq: seq, ids: ids, hydration: hydrate(context.Background(), ids)}
	}
}

func (v *MainView) handleToggled(msg favoriteToggledMsg) (tui.Component, tea.Cmd) {
	if msg.err != nil {
		return v, v.notify("✗ Could not save favorite")
	}
	v.setFavorites(msg.set)

	saved := msg.set.Contains(msg.id)
	if v.activeTab == TabFavorites {
		if !saved {
			v.favorites.RemoveLocal(msg.id)
		} else {
			return v, tea.Batch(v.notify("♥ Saved"), v.loadFavorites(true))
		}
	}
	if saved {
		return v, v.notify("♥ Saved")
	}
	return v, v.notify("Removed from favorites")
}

func (v *MainView) setFavorites(set core.FavoriteSet) {
	v.favSet = set
	v.search.SetFavorites(set)
	if v.showDetails {
		v.details.SetFavorite(set.Contains(v.details.ID()))
	}
}

func (v *MainView) handleCopy(content string) (tui.Component, tea.Cmd) {
	if err := v.deps.Clipboard(content); err != nil {
		return v, v.notify("✗ Copy failed")
	}
	return v, v.notify("✓ Copied image URL")
}

func (v *MainView) notify(text string) tea.Cmd {
	v.notification = text
	return tea.Tick(v.deps.NotificationTTL, func(time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

func (v *MainView) updatePaneSizes() {
	if v.width == 0 || v.height == 0 {
		return
	}

	// Tab bar, help bar and status bar take one line each.
	contentHeight := v.height - 3
	if contentHeight < 3 {
		contentHeight = 3
	}

	v.search.SetSize(v.width, contentHeight)
	v.favorites.SetSize(v.width, contentHeight)
	v.details.SetSize(v.width, contentHeight)
}

// View renders the view.
func (v *MainView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}

	if v.showHelp {
		return v.renderHelp()
	}

	var content string
	switch {
	case v.showDetails:
		content = v.details.View()
	case v.activeTab == TabFavorites:
		content = v.favorites.View()
	default:
		content = v.search.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderTabBar(),
		content,
		v.renderHelpBar(),
		v.renderStatusBar(),
	)
}

func (v *MainView) renderTabBar() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(tui.ColorAccent).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(tui.ColorMuted).
		Padding(0, 1)

	var tabs []string
	for _, tab := range []Tab{TabSearch, TabFavorites} {
		label := tab.String()
		if tab == TabFavorites && v.favSet.Len() > 0 {
			label = fmt.Sprintf("%s (%d)", label, v.favSet.Len())
		}
		if tab == v.activeTab {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderHelpBar renders context-sensitive keyboard shortcuts.
func (v *MainView) renderHelpBar() string {
	var hints []string
	switch {
	case v.showDetails:
		hints = []string{"esc back", "f favorite", "y copy image url"}
	case v.isEditing():
		hints = []string{"type to search", "esc/enter results", "ctrl+u clear", "tab switch"}
	case v.activeTab == TabFavorites:
		hints = []string{"j/k move", "enter details", "x remove", "r reload", "tab switch"}
	default:
		hints = []string{"j/k move", "enter details", "f favorite", "/ search", "tab switch"}
	}

	barStyle := lipgloss.NewStyle().
		Width(v.width).
		Foreground(lipgloss.Color("243")).
		Padding(0, 1)

	return barStyle.Render(tui.Truncate(strings.Join(hints, "  "), v.width-2))
}

// renderStatusBar renders the bottom status bar.
func (v *MainView) renderStatusBar() string {
	var items []string

	mode := vim.ModeNormal
	if v.isEditing() {
		mode = vim.ModeInsert
	}
	items = append(items, mode.Badge())

	paneStyle := lipgloss.NewStyle().
		Foreground(tui.ColorText).
		Padding(0, 1)
	paneName := v.activeTab.String()
	if v.showDetails {
		paneName = "Details"
	}
	items = append(items, paneStyle.Render(paneName))

	if v.activeTab == TabSearch && !v.showDetails {
		stateStyle := lipgloss.NewStyle().
			Foreground(tui.ColorMuted).
			Padding(0, 1)
		items = append(items, stateStyle.Render(v.search.State().String()))
	}

	if v.notification != "" {
		notifyStyle := lipgloss.NewStyle().
			Foreground(tui.ColorSuccess).
			Bold(true).
			Padding(0, 1)
		if strings.HasPrefix(v.notification, "✗") {
			notifyStyle = notifyStyle.Foreground(tui.ColorError)
		}
		items = append(items, notifyStyle.Render(v.notification))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Padding(0, 1)
	helpHint := helpStyle.Render("? help  q quit")

	leftContent := strings.Join(items, " ")
	spacerWidth := v.width - lipgloss.Width(leftContent) - lipgloss.Width(helpHint)
	if spacerWidth < 0 {
		spacerWidth = 0
	}

	barStyle := lipgloss.NewStyle().
		Width(v.width).
		Background(lipgloss.Color("236"))

	return barStyle.Render(leftContent + strings.Repeat(" ", spacerWidth) + helpHint)
}

// renderHelp lists every binding from the key maps.
func (v *MainView) renderHelp() string {
	section := func(title string, km *vim.KeyMap, mode vim.Mode) []string {
		lines := []string{titleLine(title)}
		for _, kb := range km.GetBindings(mode) {
			lines = append(lines, fmt.Sprintf("  %-12s %s", kb.Key(), kb.Description()))
		}
		return append(lines, "")
	}

	var lines []string
	lines = append(lines, section("General", v.globalKeys, vim.ModeNormal)...)
	lines = append(lines, section("Lists", vim.ListKeyMap(), vim.ModeNormal)...)
	lines = append(lines, section("Search input", vim.ListKeyMap(), vim.ModeInsert)...)
	lines = append(lines, section("Details", vim.DetailKeyMap(), vim.ModeNormal)...)
	lines = append(lines, "  ctrl+c       quit", "", "Press ? or Esc to close")

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(tui.ColorFocus).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Width(v.width).
		Height(v.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

func titleLine(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent).Render(s)
}

// Title returns the view title.
func (v *MainView) Title() string {
	return "rickdex"
}

// Focused returns true; the main view always has focus.
func (v *MainView) Focused() bool {
	return true
}

// Focus is a no-op.
func (v *MainView) Focus() {}

// Blur is a no-op.
func (v *MainView) Blur() {}

// SetSize sets the view dimensions.
func (v *MainView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.updatePaneSizes()
}

// Width returns the width.
func (v *MainView) Width() int {
	return v.width
}

// Height returns the height.
func (v *MainView) Height() int {
	return v.height
}

// ActiveTab returns the active tab.
func (v *MainView) ActiveTab() Tab {
	return v.activeTab
}

// SearchPanel returns the search panel.
func (v *MainView) SearchPanel() *components.SearchPanel {
	return v.search
}

// FavoritesPanel returns the favorites panel.
func (v *MainView) FavoritesPanel() *components.FavoritesPanel {
	return v.favorites
}

// DetailsPanel returns the details panel.
func (v *MainView) DetailsPanel() *components.DetailsPanel {
	return v.details
}

// ShowingDetails reports whether the details overlay is open.
func (v *MainView) ShowingDetails() bool {
	return v.showDetails
}

// ShowingHelp returns true if help is showing.
func (v *MainView) ShowingHelp() bool {
	return v.showHelp
}

// Favorites returns the last known favorite set.
func (v *MainView) Favorites() core.FavoriteSet {
	return v.favSet
}

// Notification returns the current notification message.
func (v *MainView) Notification() string {
	return v.notification
}

func toggleFavorite(store FavoriteStore, id int) tea.Cmd {
	return func() tea.Msg {
		set, err := store.Toggle(context.Background(), id)
		return favoriteToggledMsg{id: id, set: set, err: err}
	}
}

func removeFavorite(store FavoriteStore, id int) tea.Cmd {
	return func() tea.Msg {
		set, err := store.Remove(context.Background(), id)
		return favoriteToggledMsg{id: id, set: set, err: err}
	}
}

func fetchDetail(lookup favorites.Fetcher, id int) tea.Cmd {
	return func() tea.Msg {
		c, err := lookup.FetchByID(context.Background(), id)
		return detailLoadedMsg{id: id, character: c, err: err}
	}
}

var _ tui.Component = (*MainView)(nil)

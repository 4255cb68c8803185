package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/artpar/rickdex/internal/app"
	"github.com/artpar/rickdex/internal/config"
	"github.com/artpar/rickdex/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	BaseURL string
	DataDir string
	Store   string
	Timeout time.Duration
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "rickdex",
		Short:         "rickdex - Rick and Morty character browser",
		Long:          "rickdex searches the Rick and Morty character catalog and keeps a local list of favorites.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.BaseURL, "base-url", "", "Character endpoint (default "+config.DefaultBaseURL+")")
	flags.StringVar(&opts.DataDir, "data-dir", "", "Directory for favorites, config and logs")
	flags.StringVar(&opts.Store, "store", "", "Favorites backend: sqlite, file or memory")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "Per-request timeout (0 means none)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewFavoritesCommand(opts))

	return cmd
}

// loadConfig resolves the layered configuration and applies explicit flags last.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.DataDir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.BaseURL
	}
	if flags.Changed("store") {
		cfg.Store = opts.Store
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.Timeout
	}
	return cfg, nil
}

// openApp builds the application for a subcommand. Component logs go to stderr.
func openApp(cmd *cobra.Command, opts *globalOptions) (*app.App, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.WithLogOutput(cmd.ErrOrStderr()))
}

// tuiModel wraps the MainView for bubbletea
type tuiModel struct {
	view *views.MainView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.MainView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// runTUI starts the TUI application
func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logPath := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, "rickdex")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	a, err := app.New(cfg, app.WithLogOutput(logFile))
	if err != nil {
		return err
	}
	defer a.Close()

	model := tuiModel{
		view: views.NewMainView(views.Deps{
			Searcher:  a.Searcher(),
			Favorites: a.Favorites(),
			Lookup:    a.Client(),
			Hydrate:   a.Hydrate,
		}),
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// Package app wires configuration to the catalog client, the favorites store
// and the searcher.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/artpar/rickdex/internal/api"
	"github.com/artpar/rickdex/internal/config"
	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/favorites"
	"github.com/artpar/rickdex/internal/search"
	"github.com/artpar/rickdex/internal/storage"
	"github.com/artpar/rickdex/internal/storage/filesystem"
	"github.com/artpar/rickdex/internal/storage/sqlite"
)

// App is the main application container with dependency injection.
type App struct {
	config     *config.Config
	client     *api.Client
	kv         storage.Store
	favorites  *favorites.Store
	searcher   *search.Searcher
	logOutput  io.Writer
	httpClient *http.Client
}

// Option is a function that configures the App.
type Option func(*App)

// WithStorage injects the key-value store instead of opening the configured one.
func WithStorage(kv storage.Store) Option {
	return func(a *App) {
		a.kv = kv
	}
}

// WithHTTPClient injects the HTTP client used for lookups.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) {
		a.httpClient = hc
	}
}

// WithLogOutput sets where component logs are written. Defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) {
		a.logOutput = w
	}
}

// New builds the application from cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{
		config:    cfg,
		logOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	clientOpts := []api.Option{
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithLogger(a.logger("api")),
	}
	if a.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(a.httpClient))
	}
	a.client = api.NewClient(clientOpts...)

	if a.kv == nil {
		kv, err := openStorage(cfg)
		if err != nil {
			return nil, err
		}
		a.kv = kv
	}

	a.favorites = favorites.New(a.kv, favorites.WithLogger(a.logger("favorites")))
	a.searcher = search.New(a.client, search.WithLogger(a.logger("search")))

	return a, nil
}

func openStorage(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemory(), nil
	case config.StoreFile:
		kv, err := filesystem.New(cfg.StateDir())
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return kv, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		kv, err := sqlite.New(cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return kv, nil
	}
}

func (a *App) logger(component string) *log.Logger {
	return log.New(a.logOutput, "["+component+"] ", log.LstdFlags)
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Client returns the catalog client.
func (a *App) Client() *api.Client {
	return a.client
}

// Favorites returns the favorites store.
func (a *App) Favorites() *favorites.Store {
	return a.favorites
}

// Searcher returns the searcher.
func (a *App) Searcher() *search.Searcher {
	return a.searcher
}

// Hydrate resolves ids into characters using the configured concurrency.
func (a *App) Hydrate(ctx context.Context, ids []int) favorites.Hydration {
	return favorites.Hydrate(ctx, a.client, ids,
		favorites.WithConcurrency(a.config.HydrateConcurrency),
		favorites.WithHydrateLogger(a.logger("favorites")),
	)
}

// LoadFavorites loads the persisted set and hydrates it.
func (a *App) LoadFavorites(ctx context.Context) (core.FavoriteSet, favorites.Hydration, error) {
	set, err := a.favorites.Load(ctx)
	if err != nil {
		return set, favorites.Hydration{}, err
	}
	return set, a.Hydrate(ctx, set.IDs()), nil
}

// Close releases the key-value store.
func (a *App) Close() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

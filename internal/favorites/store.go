// Package favorites persists the user's favorite character ids.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/storage"
)

// DefaultKey is the storage key holding the serialized favorites.
const DefaultKey = "favorites"

// Store is a persisted FavoriteSet over a key-value store.
//
// Every mutation reads the persisted snapshot, applies the change and writes
// it back while holding the writer lock, so concurrent toggles never lose
// each other's updates.
type Store struct {
	mu     sync.Mutex
	kv     storage.Store
	key    string
	logger *log.Logger
}

// Option is a function that configures the Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for corrupt values.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a favorites store backed by kv.
func New(kv storage.Store, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: log.New(os.Stderr, "[favorites] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Load returns the persisted set. An absent key gives an empty set. A corrupt
// value is logged and treated as empty. A backend failure returns an empty
// set with a *core.StorageError.
func (s *Store) Load(ctx context.Context) (core.FavoriteSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Contains reports whether id is a persisted favorite.
func (s *Store) Contains(ctx context.Context, id int) (bool, error) {
	set, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return set.Contains(id), nil
}

// Toggle adds id when absent or removes it when present, persists the result
// and returns it.
func (s *Store) Toggle(ctx context.Context, id int) (core.FavoriteSet, error) {
	return s.update(ctx, func(set core.FavoriteSet) core.FavoriteSet {
		return set.Toggle(id)
	})
}

// Remove drops id if present, persists the result and returns it.
func (s *Store) Remove(ctx context.Context, id int) (core.FavoriteSet, error) {
	return s.update(ctx, func(set core.FavoriteSet) core.FavoriteSet {
		return set.Remove(id)
	})
}

// Clear removes every favorite.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		return &core.StorageError{Op: "delete", Key: s.key, Err: err}
	}
	return nil
}

func (s *Store) update(ctx context.Context, fn func(core.FavoriteSet) core.FavoriteSet) (core.FavoriteSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return current, err
	}

	next := fn(current)
	if err := s.save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

func (s *Store) load(ctx context.Context) (core.FavoriteSet, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return core.NewFavoriteSet(), &core.StorageError{Op: "get", Key: s.key, Err: err}
	}
	if !found || len(raw) == 0 {
		return core.NewFavoriteSet(), nil
	}

	var set core.FavoriteSet
	if err := json.Unmarshal(raw, &set); err != nil {
		s.logger.Printf("ignoring corrupt value under %q: %v", s.key, err)
		return core.NewFavoriteSet(), nil
	}
	return set, nil
}

func (s *Store) save(ctx context.Context, set core.FavoriteSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return &core.StorageError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return &core.StorageError{Op: "set", Key: s.key, Err: err}
	}
	return nil
}

// IsStorageError reports whether err came from the backing store.
func IsStorageError(err error) bool {
	var se *core.StorageError
	return errors.As(err, &se)
}

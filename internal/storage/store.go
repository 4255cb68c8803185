// Package storage defines the local key-value store that backs client state.
package storage

import (
	"context"
	"errors"
)

// Common errors.
var (
	ErrStoreClosed = errors.New("storage is closed")
	ErrEmptyKey    = errors.New("storage key is empty")
)

// Store is a byte-valued key-value store.
type Store interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the store.
	Close() error
}

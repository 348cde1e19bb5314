// Package store defines the key/value storage the board and auth session
// persist their snapshots into. Values are opaque bytes, one per key.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get for a key that was never set or was removed.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt marks a backing file or row that could not be decoded.
	ErrCorrupt = errors.New("storage corrupt")
)

// Storage is a small key/value store.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

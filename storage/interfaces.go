package storage

import (
	"context"
)

// Entry is one key/value pair written by Put.
type Entry struct {
	Key   string
	Value []byte
}

// KeyValueStore is a durable string-keyed byte store.
// Implementations must be thread-safe and support concurrent access.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes all entries atomically: either every entry is stored or
	// none is, and previously stored values stay untouched on failure.
	Put(ctx context.Context, entries ...Entry) error

	// Close closes the store and releases resources.
	Close() error
}

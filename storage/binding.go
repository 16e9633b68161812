package storage

import (
	"context"
	"errors"
	"log/slog"
)

// Binding gives typed access to one logical collection held in a
// KeyValueStore. Values are stored as JSON text next to their checksum.
//
// Load and Save fail soft: problems are logged at warn level and the
// caller keeps working with its in-memory state.
type Binding[T any] struct {
	store  KeyValueStore
	logger *slog.Logger
}

// NewBinding creates a Binding over store. A nil logger uses slog.Default().
func NewBinding[T any](store KeyValueStore, logger *slog.Logger) *Binding[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binding[T]{
		store:  store,
		logger: logger,
	}
}

// Load returns the value stored under key. It returns defaultValue when
// the key doesn't exist or the stored value can't be read back.
func (b *Binding[T]) Load(ctx context.Context, key string, defaultValue T) T {
	data, err := b.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			b.logger.Warn("error reading stored value, using default", "key", key, "err", err)
		}
		return defaultValue
	}

	sum, err := b.store.Get(ctx, ChecksumKey(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			b.logger.Warn("error reading stored checksum, using default", "key", key, "err", err)
			return defaultValue
		}
		sum = nil
	}

	var value T
	if err := DecodeValue(key, data, sum, &value); err != nil {
		b.logger.Warn("discarding unreadable stored value", "key", key, "err", err)
		return defaultValue
	}
	return value
}

// Save serializes value and writes it under key in one Put. On failure
// the previously stored value is left untouched and the error is logged
// and returned.
func (b *Binding[T]) Save(ctx context.Context, key string, value T) error {
	entries, err := EncodeValue(key, value)
	if err != nil {
		b.logger.Warn("error serializing value", "key", key, "err", err)
		return err
	}
	if err := b.store.Put(ctx, entries...); err != nil {
		b.logger.Warn("error writing value", "key", key, "err", err)
		return err
	}
	return nil
}

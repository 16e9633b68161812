// Package redis implements storage.KeyValueStore on a Redis server.
//
// Keys are namespaced with an optional prefix so that several journals can
// share one database. Put maps onto MSET, which Redis applies atomically.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/caretrack/storage"
	"github.com/redis/go-redis/v9"
)

// Store is a storage.KeyValueStore backed by Redis.
type Store struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

var _ storage.KeyValueStore = (*Store)(nil)

// Options configures a Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prepended to every key, e.g. "caretrack:"
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}
	return NewStore(client, opts.Prefix), nil
}

// NewStore wraps an existing client. The store takes ownership of client
// and closes it on Close.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		logger: slog.Default(),
	}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		return nil, mapError(err)
	}
	return value, nil
}

// Put writes all entries with a single MSET.
func (s *Store) Put(ctx context.Context, entries ...storage.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	pairs := make([]any, 0, len(entries)*2)
	for _, e := range entries {
		pairs = append(pairs, s.key(e.Key), e.Value)
	}
	if err := s.client.MSet(ctx, pairs...).Err(); err != nil {
		return mapError(err)
	}
	s.logger.Debug("stored entries", "count", len(entries), "prefix", s.prefix)
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func mapError(err error) error {
	switch {
	case errors.Is(err, redis.Nil):
		return storage.ErrNotFound
	case errors.Is(err, redis.ErrClosed):
		return storage.ErrStorageClosed
	}
	return err
}

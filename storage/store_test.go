package storage

import (
	"context"
	"errors"
	"sync"
)

// mapStore is an in-process KeyValueStore for tests. Setting failPut makes
// every Put fail without writing anything.
type mapStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut error
	puts    int
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string][]byte)}
}

func (s *mapStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *mapStore) Put(ctx context.Context, entries ...Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut != nil {
		return s.failPut
	}
	s.puts++
	for _, e := range entries {
		s.data[e.Key] = append([]byte(nil), e.Value...)
	}
	return nil
}

func (s *mapStore) Close() error { return nil }

var errQuotaExceeded = errors.New("quota exceeded")

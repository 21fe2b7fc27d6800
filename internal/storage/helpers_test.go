package storage

import (
	"context"
	"errors"
	"maps"
	"sync"
)

var errDiskFull = errors.New("disk full")

// memoryStore is a KeyValueStore whose writes can be made to fail.
type memoryStore struct {
	mu        sync.Mutex
	values    map[string][]byte
	failures  int
	writes    int
	getErrKey string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.getErrKey {
		return nil, false, errDiskFull
	}
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetAll(ctx, []Entry{{Key: key, Value: value}})
}

func (s *memoryStore) SetAll(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failures > 0 {
		s.failures--
		return errDiskFull
	}
	for _, entry := range entries {
		s.values[entry.Key] = entry.Value
	}
	return nil
}

func (s *memoryStore) keys() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

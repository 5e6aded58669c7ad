package webhook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned by MemoryStore.Get for absent or expired keys.
var ErrNotFound = errors.New("webhook: key not found")

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is an in-process Store used by tests and by local development
// without a cache server. Operations are atomic under a single mutex, which
// mirrors the atomicity the pipeline expects from INCR and SETNX.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, ok := s.entries[key]
	if !ok || entry.expired(now) {
		entry = memoryEntry{}
	}
	var n int64
	fmt.Sscanf(entry.value, "%d", &n)
	n++
	entry.value = fmt.Sprintf("%d", n)
	s.entries[key] = entry
	return n, nil
}

func (s *MemoryStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	entry.expiresAt = time.Now().Add(ttl)
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.expired(time.Now()) {
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) SetEx(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: stringify(value), expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) SetNX(_ context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok && !entry.expired(time.Now()) {
		return false, nil
	}
	s.entries[key] = memoryEntry{value: stringify(value), expiresAt: time.Now().Add(ttl)}
	return true, nil
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

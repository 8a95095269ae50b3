package dedup

import (
	"context"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

// Store caches serialized successful results by request key. Misses
// and backend failures are indistinguishable on read; writes degrade
// silently. Only successes are ever stored.
type Store interface {
	// Get returns the cached bytes for key, or ok=false on miss.
	Get(ctx context.Context, key string) (data []byte, ok bool)

	// Set stores data under key for at most ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
}

type memoryEntry struct {
	cachedAt time.Time
	ttl      time.Duration
	data     []byte
}

// MemoryStore is an in-process Store. Expired entries are dropped
// lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time // test seam
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.cachedAt) > e.ttl {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.data, true
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, data []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.mu.Lock()
	s.entries[key] = memoryEntry{cachedAt: s.now(), ttl: ttl, data: data}
	s.mu.Unlock()
}

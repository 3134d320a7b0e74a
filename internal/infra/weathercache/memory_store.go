package weathercache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
)

type cachedReading struct {
	reading   outfit.WeatherReading
	expiresAt time.Time
}

// MemoryStore keeps readings in process memory for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedReading
	now     func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]cachedReading),
		now:     time.Now,
	}
}

// Get implements outfit.WeatherCache.
func (s *MemoryStore) Get(_ context.Context, key string) (outfit.WeatherReading, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return outfit.WeatherReading{}, false, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return outfit.WeatherReading{}, false, nil
	}
	return entry.reading, true, nil
}

// Save implements outfit.WeatherCache. A non-positive ttl never expires.
func (s *MemoryStore) Save(_ context.Context, key string, reading outfit.WeatherReading, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = cachedReading{reading: reading, expiresAt: exp}
	return nil
}

var _ outfit.WeatherCache = (*MemoryStore)(nil)

package session

import (
	"context"
	"sync"
	"time"

	"go-contact-backend/internal/domain"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

const sweepInterval = 5 * time.Minute

// MemoryStore is the fallback store used when Redis is not configured.
// Expired entries are dropped on read, and a background sweeper removes
// entries for sessions that are never read again.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{entries: make(map[string]memoryEntry)}
	go s.startCleanup()
	return s
}

// startCleanup runs a background goroutine to clean up expired entries
func (s *MemoryStore) startCleanup() {
	ticker := time.NewTicker(sweepInterval)
	for range ticker.C {
		s.sweep(time.Now())
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

var _ domain.SessionStore = (*MemoryStore)(nil)

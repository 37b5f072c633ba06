package prefs

import (
	"errors"
	"log/slog"
	"sync"
)

// fallbackStore wraps a primary Store and degrades to an in-memory copy the
// first time the primary fails. Degradation is one-way for the life of the
// process: once tripped, all reads and writes go to memory only. This keeps
// quota bookkeeping working when persistence is disabled or broken.
type fallbackStore struct {
	mu      sync.Mutex
	primary Store
	memory  *MemoryStore
	tripped bool
}

// NewFallbackStore returns a Store that survives primary storage failures.
func NewFallbackStore(primary Store) Store {
	return &fallbackStore{primary: primary, memory: NewMemoryStore()}
}

func (s *fallbackStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tripped {
		return s.memory.Get(key)
	}
	value, err := s.primary.Get(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.trip(key, err)
		return s.memory.Get(key)
	}
	return value, err
}

func (s *fallbackStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tripped {
		return s.memory.Set(key, value)
	}
	if err := s.primary.Set(key, value); err != nil {
		s.trip(key, err)
		return s.memory.Set(key, value)
	}
	return nil
}

// trip switches to the in-memory copy, seeding it with whatever slots can
// still be read from the primary so the session keeps its current state.
func (s *fallbackStore) trip(key string, cause error) {
	slog.Warn("Preference storage unavailable, continuing in memory.", "key", key, "error", cause)
	for _, k := range []string{KeyCredential, KeyUsageCount, KeyResetDate} {
		if v, err := s.primary.Get(k); err == nil {
			_ = s.memory.Set(k, v)
		}
	}
	s.tripped = true
}

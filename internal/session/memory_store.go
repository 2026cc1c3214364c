package session

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	values    map[string]string
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Records expire ttl after their last
// access; expired records are invisible immediately and reclaimed by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*memoryRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id, key string) (string, bool, error) {
	if id == "" {
		return "", false, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.live(id)
	if rec == nil {
		return "", false, nil
	}
	rec.expiresAt = s.now().Add(s.ttl)

	value, ok := rec.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, id, key, value string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.live(id)
	if rec == nil {
		rec = &memoryRecord{values: make(map[string]string)}
		s.records[id] = rec
	}
	rec.values[key] = value
	rec.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string, keys ...string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(rec.values, key)
	}
	if len(rec.values) == 0 {
		delete(s.records, id)
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Sweep drops every record that expired before now and reports how many.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, rec := range s.records {
		if !now.Before(rec.expiresAt) {
			delete(s.records, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// live must be called with mu held.
func (s *MemoryStore) live(id string) *memoryRecord {
	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	if !s.now().Before(rec.expiresAt) {
		delete(s.records, id)
		return nil
	}
	return rec
}

package memory

import (
	"context"
	"sync"

	audit "pawdesk/pkg/platform/audit"
)

// InMemoryStore keeps appended entries grouped by category. It is the default
// store in tests and in deployments without Postgres.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[audit.Category][]audit.Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[audit.Category][]audit.Entry)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[audit.Category][]audit.Entry)
}

func (s *InMemoryStore) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Category] = append(s.entries[entry.Category], entry)
	return nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, category audit.Category, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[category]
	start := len(all) - limit
	if limit <= 0 || start < 0 {
		start = 0
	}
	return append([]audit.Entry{}, all[start:]...), nil
}

// ListByCategory returns every appended entry for a category, in order.
func (s *InMemoryStore) ListByCategory(_ context.Context, category audit.Category) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Entry{}, s.entries[category]...), nil
}

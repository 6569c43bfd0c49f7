package audit

import (
	"sort"
	"sync"
)

// Registry owns the category-to-manager mapping. It is constructed once in
// main and injected into services, so no package holds hidden global state.
type Registry struct {
	mu       sync.RWMutex
	managers map[Category]*Manager
	capacity int
}

// NewRegistry creates a registry whose managers are bounded at capacity.
// The known categories are pre-created so the admin surface can list them
// before any entry is recorded.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := &Registry{
		managers: make(map[Category]*Manager),
		capacity: capacity,
	}
	for _, c := range KnownCategories {
		r.managers[c] = NewManager(capacity)
	}
	return r
}

// Manager returns the manager for a category, creating it on first use.
func (r *Registry) Manager(category Category) *Manager {
	r.mu.RLock()
	m, ok := r.managers[category]
	r.mu.RUnlock()
	if ok {
		return m
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.managers[category]; ok {
		return m
	}
	m = NewManager(r.capacity)
	r.managers[category] = m
	return m
}

// Lookup returns the manager for a category without creating one.
func (r *Registry) Lookup(category Category) (*Manager, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.managers[category]
	return m, ok
}

// Categories lists all categories seen so far, sorted for stable output.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, 0, len(r.managers))
	for c := range r.managers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

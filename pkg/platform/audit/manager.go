package audit

import "sync"

// DefaultCapacity bounds a Manager when no explicit capacity is given.
const DefaultCapacity = 100

// Manager is a bounded, thread-safe buffer of the most recent audit entries
// for one category. When full, the oldest entries are evicted to make room
// for new ones (FIFO). The Manager exclusively owns its buffer; reads return
// point-in-time copies, never a mutable reference.
type Manager struct {
	mu       sync.Mutex
	entries  []Entry
	head     int // next write position
	tail     int // oldest entry position
	count    int
	capacity int

	// Stats
	evicted int64
}

// NewManager creates a manager with the given capacity.
func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

// Add appends an entry to the tail of the buffer, evicting the oldest entry
// when the buffer is full. It never fails and is safe under concurrent calls.
func (m *Manager) Add(entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.count >= m.capacity {
		// Evict oldest
		m.tail = (m.tail + 1) % m.capacity
		m.count--
		m.evicted++
	}

	m.entries[m.head] = entry
	m.head = (m.head + 1) % m.capacity
	m.count++
}

// Recent returns the last min(limit, size) entries in insertion order
// (oldest-to-newest of the returned slice). It does not mutate the buffer
// and returns an empty slice when the buffer is empty or limit is not
// positive.
func (m *Manager) Recent(limit int) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || m.count == 0 {
		return []Entry{}
	}
	if limit > m.count {
		limit = m.count
	}

	result := make([]Entry, limit)
	start := (m.tail + m.count - limit) % m.capacity
	for i := range limit {
		result[i] = m.entries[(start+i)%m.capacity]
	}
	return result
}

// Snapshot returns a copy of the entire buffer in insertion order.
func (m *Manager) Snapshot() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Entry, m.count)
	for i := range m.count {
		result[i] = m.entries[(m.tail+i)%m.capacity]
	}
	return result
}

// Len returns the current number of buffered entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Capacity returns the fixed buffer capacity.
func (m *Manager) Capacity() int {
	return m.capacity
}

// Evicted returns the total number of entries evicted so far.
func (m *Manager) Evicted() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evicted
}

package audit

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(event string) Entry {
	return NewEntry(CategorySupplier, event, nil)
}

func events(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Event
	}
	return out
}

func TestManager_BoundedRetention(t *testing.T) {
	m := NewManager(3)

	m.Add(entry("e1"))
	m.Add(entry("e2"))
	m.Add(entry("e3"))
	require.Equal(t, 3, m.Len())

	// Fourth add evicts the oldest
	m.Add(entry("e4"))
	require.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"e2", "e3", "e4"}, events(m.Snapshot()))
	assert.Equal(t, int64(1), m.Evicted())
}

func TestManager_SizeNeverExceedsCapacity(t *testing.T) {
	m := NewManager(5)
	for i := range 50 {
		m.Add(entry(fmt.Sprintf("e%d", i)))
		assert.LessOrEqual(t, m.Len(), 5)
	}
	// Survivors are exactly the newest five, in insertion order
	assert.Equal(t, []string{"e45", "e46", "e47", "e48", "e49"}, events(m.Snapshot()))
}

func TestManager_Recent(t *testing.T) {
	m := NewManager(3)
	m.Add(entry("e1"))
	m.Add(entry("e2"))
	m.Add(entry("e3"))
	m.Add(entry("e4"))

	assert.Equal(t, []string{"e3", "e4"}, events(m.Recent(2)))

	// Limit above size returns everything
	assert.Equal(t, []string{"e2", "e3", "e4"}, events(m.Recent(10)))

	// Recent is repeatable and does not mutate the buffer
	assert.Equal(t, []string{"e3", "e4"}, events(m.Recent(2)))
	assert.Equal(t, 3, m.Len())
}

func TestManager_RecentEmptyBuffer(t *testing.T) {
	m := NewManager(3)
	assert.Empty(t, m.Recent(5))
	assert.Empty(t, m.Recent(0))
}

func TestManager_SnapshotIsACopy(t *testing.T) {
	m := NewManager(3)
	m.Add(entry("e1"))

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	snap[0].Event = "mutated"

	assert.Equal(t, "e1", m.Snapshot()[0].Event)
}

func TestManager_DefaultCapacity(t *testing.T) {
	m := NewManager(0)
	assert.Equal(t, DefaultCapacity, m.Capacity())
}

func TestManager_ConcurrentAdds(t *testing.T) {
	const n = 150
	m := NewManager(100)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Add(entry(fmt.Sprintf("e%d", i)))
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, m.Len())
	assert.Equal(t, int64(n-100), m.Evicted())

	// No duplicated entries survived
	seen := make(map[string]bool)
	for _, e := range m.Snapshot() {
		assert.False(t, seen[e.ID.String()], "duplicate entry %s", e.ID)
		seen[e.ID.String()] = true
	}
}

func TestManager_ConcurrentReadsAndWrites(t *testing.T) {
	m := NewManager(10)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Add(entry(fmt.Sprintf("e%d", i)))
		}()
		go func() {
			defer wg.Done()
			_ = m.Recent(5)
			_ = m.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, m.Len())
}

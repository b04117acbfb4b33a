package hashing

import (
	"sync"
	"sync/atomic"
)

type tableKey struct {
	key   uint64
	depth int
}

// ThreadSafeTable memoises node counts by position key and search depth.
// It is safe for concurrent use by perft workers.
type ThreadSafeTable struct {
	mu          sync.RWMutex
	entries     map[tableKey]uint64
	maxCapacity int

	hits atomic.Uint64
}

// NewThreadSafeTable creates an empty table.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeTable(maxCapacity int) *ThreadSafeTable {
	return &ThreadSafeTable{
		entries:     make(map[tableKey]uint64),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the stored count for key at depth.
func (t *ThreadSafeTable) Lookup(key uint64, depth int) (uint64, bool) {
	t.mu.RLock()
	n, ok := t.entries[tableKey{key, depth}]
	t.mu.RUnlock()
	if ok {
		t.hits.Add(1)
	}
	return n, ok
}

// Store records a count. Stores into a full table are dropped.
func (t *ThreadSafeTable) Store(key uint64, depth int, nodes uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isFullLocked() {
		return
	}
	t.entries[tableKey{key, depth}] = nodes
}

// Len returns the number of stored entries.
func (t *ThreadSafeTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Hits returns the number of successful lookups.
func (t *ThreadSafeTable) Hits() uint64 {
	return t.hits.Load()
}

// IsFull returns true if the table has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (t *ThreadSafeTable) IsFull() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.isFullLocked()
}

func (t *ThreadSafeTable) isFullLocked() bool {
	return t.maxCapacity > 0 && len(t.entries) >= t.maxCapacity
}

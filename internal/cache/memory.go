package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is a mutex-guarded in-process key/value store with per-entry TTL.
// Expiry is enforced lazily at read time; there is no background sweep and
// no size-based eviction, since keys are bounded by the distinct symbols
// requested and self-expire.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
}

// NewMemory creates an empty cache. A nil clock defaults to time.Now.
func NewMemory[V any](now func() time.Time) *Memory[V] {
	if now == nil {
		now = time.Now
	}
	return &Memory[V]{
		entries: make(map[string]entry[V]),
		now:     now,
	}
}

// Get returns the value for key if it exists and has not expired. An
// expired entry is purged as a side effect and reported as absent.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	e, ok := m.entries[key]
	if !ok {
		return zero, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any existing entry and resetting
// its expiry to now+ttl.
func (m *Memory[V]) Set(key string, value V, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry[V]{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
}

// Delete removes key if present.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Clear removes every entry.
func (m *Memory[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry[V])
}

// Size counts stored entries, including ones that are logically expired
// but not yet purged by a read.
func (m *Memory[V]) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

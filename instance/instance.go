// Package instance provides the default embedded.Instance implementation:
// an in-memory map from region qualified-name to the last active child
// vertex's qualified name, plus a terminated latch. Hosts that need to
// persist or serialize active configuration implement embedded.Instance
// themselves; the engine only ever calls the four methods on that
// interface, never anything concrete from this package.
package instance

import "sync"

// Map is a concurrency-safe, map-backed embedded.Instance. The zero value
// is ready to use.
type Map struct {
	mu         sync.RWMutex
	current    map[string]string
	terminated bool
}

// New returns a ready-to-use Map instance.
func New() *Map {
	return &Map{current: make(map[string]string)}
}

func (m *Map) SetCurrent(region string, vertex string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		m.current = make(map[string]string)
	}
	m.current[region] = vertex
}

func (m *Map) GetCurrent(region string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.current[region]
	return v, ok
}

func (m *Map) IsTerminated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.terminated
}

func (m *Map) SetTerminated(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terminated = m.terminated || v
}

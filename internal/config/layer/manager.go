package layer

import (
	"sort"
	"sync"
)

// Manager keeps layers sorted by priority and caches their merge.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer
	merged map[string]any
	dirty  bool
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// Set adds l, replacing any layer with the same name.
func (m *Manager) Set(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.layers {
		if existing.Name == l.Name {
			m.layers[i] = l
			m.sortLocked()
			m.dirty = true
			return
		}
	}
	m.layers = append(m.layers, l)
	m.sortLocked()
	m.dirty = true
}

// Get returns the layer named name, or nil.
func (m *Manager) Get(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Remove deletes the layer named name.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			return true
		}
	}
	return false
}

// Layers returns the layers in ascending priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Layer(nil), m.layers...)
}

// Merge returns a copy of every layer merged in priority order.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty || m.merged == nil {
		merged := make(map[string]any)
		for _, l := range m.layers {
			DeepMerge(merged, l.Data)
		}
		m.merged = merged
		m.dirty = false
	}
	return cloneMap(m.merged)
}

func (m *Manager) sortLocked() {
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}

// SetValue writes value at path in the layer named name. It reports false
// when no such layer exists.
func (m *Manager) SetValue(name, path string, value any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.layers {
		if l.Name == name {
			SetByPath(l.Data, path, value)
			m.dirty = true
			return true
		}
	}
	return false
}

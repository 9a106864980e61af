package dialect

import (
	"fmt"
	"sync"
)

// Manager keeps the registered dialects in registration order. The
// orchestrator walks them in that order, so replies follow the declared
// dialect precedence.
type Manager struct {
	mu       sync.RWMutex
	dialects []Dialect
	byName   map[string]Dialect
}

// NewManager creates an empty dialect manager.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]Dialect)}
}

// Register adds a dialect. Names must be unique.
func (m *Manager) Register(d Dialect) error {
	if d == nil {
		return fmt.Errorf("dialect required")
	}
	name := d.Name()
	if name == "" {
		return fmt.Errorf("dialect name required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byName[name]; exists {
		return fmt.Errorf("dialect %s already registered", name)
	}
	m.byName[name] = d
	m.dialects = append(m.dialects, d)
	return nil
}

// Dialects returns the registered dialects in registration order.
func (m *Manager) Dialects() []Dialect {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Dialect, len(m.dialects))
	copy(out, m.dialects)
	return out
}

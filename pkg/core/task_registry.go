package core

import "sync"

// TaskRegistry is the append-only history of every unit ever spawned,
// in creation order. Units are never removed; the registry is the sole
// synchronization anchor for graceful shutdown.
type TaskRegistry struct {
	mu    sync.RWMutex
	units []*Unit
}

// NewTaskRegistry creates an empty registry.
func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{}
}

// Add appends a unit. Safe for concurrent use; many units may be spawned
// at once.
func (t *TaskRegistry) Add(u *Unit) {
	t.mu.Lock()
	t.units = append(t.units, u)
	t.mu.Unlock()
}

// All returns every unit ever spawned, in creation order.
func (t *TaskRegistry) All() []*Unit {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Unit, len(t.units))
	copy(out, t.units)
	return out
}

// Active returns the units that are still alive, in creation order.
func (t *TaskRegistry) Active() []*Unit {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*Unit
	for _, u := range t.units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// Len returns the number of units ever spawned.
func (t *TaskRegistry) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.units)
}

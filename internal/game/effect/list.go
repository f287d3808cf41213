package effect

import (
	"log/slog"
	"sync"
)

// DefaultMaxEffects caps a list when no explicit limit is configured.
const DefaultMaxEffects = 32

// List tracks the active effects on one entity.
//
// The effect id is the stacking key: adding an effect whose id is already
// present deactivates and replaces the incumbent. When the cap is reached
// the oldest effect is evicted.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type List struct {
	mu      sync.RWMutex
	limit   int
	effects []*Effect
}

// NewList creates an empty list. A non-positive limit falls back to
// DefaultMaxEffects.
func NewList(limit int) *List {
	if limit <= 0 {
		limit = DefaultMaxEffects
	}
	return &List{
		limit:   limit,
		effects: make([]*Effect, 0, 8),
	}
}

// Add inserts an effect. An existing effect with the same id is deactivated
// and replaced in place; at the cap, the oldest effect is evicted first.
// Returns true (the replace/evict rules never reject).
func (l *List) Add(e *Effect) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.effects {
		if existing.ID() == e.ID() {
			existing.Deactivate()
			l.effects[i] = e
			slog.Debug("effect replaced", "id", e.ID(), "type", e.Type())
			return true
		}
	}

	if len(l.effects) >= l.limit {
		oldest := l.effects[0]
		oldest.Deactivate()
		l.effects = l.effects[1:]
		slog.Debug("effect limit reached, evicted oldest",
			"evicted", oldest.ID(),
			"added", e.ID())
	}

	l.effects = append(l.effects, e)
	return true
}

// Remove deactivates and removes the effect with the given id.
// Returns false if no such effect is active.
func (l *List) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.effects {
		if e.ID() == id {
			e.Deactivate()
			l.effects = append(l.effects[:i], l.effects[i+1:]...)
			return true
		}
	}
	return false
}

// Prune deactivates and removes every effect whose IsValid poll fails.
// Returns the removed effects.
func (l *List) Prune() []*Effect {
	l.mu.Lock()
	defer l.mu.Unlock()

	var removed []*Effect
	n := 0
	for _, e := range l.effects {
		if e.IsValid() {
			l.effects[n] = e
			n++
		} else {
			e.Deactivate()
			removed = append(removed, e)
		}
	}
	l.effects = l.effects[:n]
	return removed
}

// Snapshot writes live elapsed time into every effect's options bag.
// Called immediately before persisting the list.
func (l *List) Snapshot() {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.effects {
		e.SetElapsed()
	}
}

// ByID returns the active effect with the given id, or nil.
func (l *List) ByID(id string) *Effect {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.effects {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// Active returns a copy of the active effects in insertion order.
func (l *List) Active() []*Effect {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Effect, len(l.effects))
	copy(result, l.effects)
	return result
}

// Len returns the number of active effects.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.effects)
}

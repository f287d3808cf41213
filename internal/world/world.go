package world

import (
	"log/slog"
	"sync"

	"github.com/duskmud/duskmud/internal/game/effect"
	"github.com/duskmud/duskmud/internal/model"
)

// World is the roster of live characters the game loop drives.
//
// Thread-safe: the tick loop and connection handlers touch it concurrently.
type World struct {
	mu         sync.RWMutex
	characters map[uint32]*model.Character
}

// New creates an empty world.
func New() *World {
	return &World{characters: make(map[uint32]*model.Character)}
}

// Add registers a character. Replaces any previous entry with the same id.
func (w *World) Add(c *model.Character) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.characters[c.ObjectID()] = c
}

// Remove drops a character from the roster. Returns the removed character,
// or nil if it was not present.
func (w *World) Remove(objectID uint32) *model.Character {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.characters[objectID]
	if !ok {
		return nil
	}
	delete(w.characters, objectID)
	return c
}

// Get returns the character with the given id, or nil.
func (w *World) Get(objectID uint32) *model.Character {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.characters[objectID]
}

// Len returns the roster size.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.characters)
}

// ForEach calls fn for every character on a stable snapshot of the roster.
func (w *World) ForEach(fn func(c *model.Character)) {
	w.mu.RLock()
	snapshot := make([]*model.Character, 0, len(w.characters))
	for _, c := range w.characters {
		snapshot = append(snapshot, c)
	}
	w.mu.RUnlock()

	for _, c := range snapshot {
		fn(c)
	}
}

// Tick advances the world one step: every character receives a tick event
// (driving periodic behaviors), then its effect list is polled for validity
// and expired effects are deactivated.
func (w *World) Tick() {
	w.ForEach(func(c *model.Character) {
		c.Emit(effect.EventTick)

		for _, e := range c.Effects().Prune() {
			slog.Debug("effect expired",
				"character", c.Name(),
				"id", e.ID(),
				"type", e.Type())
		}
	})
}

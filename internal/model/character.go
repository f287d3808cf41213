package model

import (
	"sync"

	"github.com/duskmud/duskmud/internal/game/effect"
)

// Attribute names every character carries.
const (
	AttrAttack  = "attack"
	AttrDefense = "defense"
	AttrSpeed   = "speed"
)

// Character is the base type for living entities (Player, Monster).
// It owns vitals, attribute base values with per-attribute modifier slots,
// an event listener table, and the active effect list.
//
// Character implements effect.Receiver, so any embedding entity kind can
// carry status effects without a class hierarchy.
type Character struct {
	objectID uint32
	name     string

	mu        sync.RWMutex
	level     int32
	currentHP int32
	maxHP     int32
	attrs     map[string]float64
	modifiers map[string]effect.ModifierFunc

	listeners    map[string]map[effect.ListenerID]effect.Handler
	nextListener effect.ListenerID

	deathOnce sync.Once

	effects *effect.List
}

// NewCharacter creates a character with full HP and the given attribute
// base values. maxEffects caps the effect list; non-positive uses the
// package default.
func NewCharacter(objectID uint32, name string, level, maxHP int32, attack, defense, speed float64, maxEffects int) *Character {
	return &Character{
		objectID:  objectID,
		name:      name,
		level:     level,
		currentHP: maxHP,
		maxHP:     maxHP,
		attrs: map[string]float64{
			AttrAttack:  attack,
			AttrDefense: defense,
			AttrSpeed:   speed,
		},
		modifiers: make(map[string]effect.ModifierFunc),
		listeners: make(map[string]map[effect.ListenerID]effect.Handler),
		effects:   effect.NewList(maxEffects),
	}
}

// ObjectID returns the world object identifier.
func (c *Character) ObjectID() uint32 { return c.objectID }

// Name returns the character name.
func (c *Character) Name() string { return c.name }

// Level returns the character level.
func (c *Character) Level() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

// SetLevel sets the level (clamp 1..100).
func (c *Character) SetLevel(level int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if level < 1 {
		level = 1
	}
	if level > 100 {
		level = 100
	}
	c.level = level
}

// CurrentHP returns current HP.
func (c *Character) CurrentHP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentHP
}

// MaxHP returns maximum HP.
func (c *Character) MaxHP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxHP
}

// SetCurrentHP sets current HP (clamp 0..maxHP).
func (c *Character) SetCurrentHP(hp int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hp < 0 {
		hp = 0
	}
	if hp > c.maxHP {
		hp = c.maxHP
	}
	c.currentHP = hp
}

// ReduceCurrentHP reduces HP by the given amount (minimum 0).
func (c *Character) ReduceCurrentHP(damage int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentHP = max(c.currentHP-damage, 0)
}

// IsDead reports whether the character is dead (HP <= 0).
func (c *Character) IsDead() bool {
	return c.CurrentHP() <= 0
}

// DoDie handles character death. Returns true if this call performed the
// death; subsequent calls return false. sync.Once guards against double
// death from concurrent damage.
func (c *Character) DoDie() bool {
	executed := false
	c.deathOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.currentHP > 0 {
			c.currentHP = 0
		}
		executed = true
	})
	return executed
}

// ResetDeathOnce resets the death guard for respawn.
func (c *Character) ResetDeathOnce() {
	c.deathOnce = sync.Once{}
}

// BaseAttribute returns the unmodified base value of an attribute.
func (c *Character) BaseAttribute(name string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attrs[name]
}

// SetBaseAttribute sets the base value of an attribute.
func (c *Character) SetBaseAttribute(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs[name] = value
}

// Attribute returns the effective value of an attribute: the base value
// passed through the installed modifier, if any.
func (c *Character) Attribute(name string) float64 {
	c.mu.RLock()
	base := c.attrs[name]
	fn := c.modifiers[name]
	c.mu.RUnlock()

	if fn == nil {
		return base
	}
	return fn(base)
}

// SetModifier installs an attribute modifier, keyed by attribute name.
// A later modifier on the same attribute replaces the earlier one.
// Part of the effect.Target capability.
func (c *Character) SetModifier(attr string, fn effect.ModifierFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modifiers[attr] = fn
}

// ClearModifier removes the modifier installed on an attribute.
func (c *Character) ClearModifier(attr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.modifiers, attr)
}

// On registers an event listener and returns its removal token.
// Part of the effect.Target capability.
func (c *Character) On(event string, h effect.Handler) effect.ListenerID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextListener++
	id := c.nextListener

	m, ok := c.listeners[event]
	if !ok {
		m = make(map[effect.ListenerID]effect.Handler)
		c.listeners[event] = m
	}
	m[id] = h
	return id
}

// RemoveListener removes a single listener by token.
// Part of the effect.Target capability.
func (c *Character) RemoveListener(event string, id effect.ListenerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.listeners[event]; ok {
		delete(m, id)
		if len(m) == 0 {
			delete(c.listeners, event)
		}
	}
}

// ListenerCount returns the number of listeners registered for an event.
func (c *Character) ListenerCount(event string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners[event])
}

// Emit invokes every listener registered for the event. Handlers run
// outside the lock: they are free to register or remove listeners.
func (c *Character) Emit(event string, args ...any) {
	c.mu.RLock()
	handlers := make([]effect.Handler, 0, len(c.listeners[event]))
	for _, h := range c.listeners[event] {
		handlers = append(handlers, h)
	}
	c.mu.RUnlock()

	for _, h := range handlers {
		h(args...)
	}
}

// AddEffect attaches an effect to this character. The effect id is the
// stacking key: a same-id effect replaces the incumbent.
// Part of the effect.Receiver capability.
func (c *Character) AddEffect(e *effect.Effect) bool {
	return c.effects.Add(e)
}

// Effects returns the character's active effect list.
func (c *Character) Effects() *effect.List {
	return c.effects
}

// Quit detaches the character from the world: every active effect's quit
// handler snapshots its clock and deactivates its behavior. Listener
// teardown stays with the explicit Deactivate path.
func (c *Character) Quit() {
	c.Emit(effect.EventQuit)
}

package model

import "sync/atomic"

// Monster is a hostile NPC. It carries the same effect surface as a player:
// anything that implements effect.Receiver can be poisoned, blessed or hexed.
type Monster struct {
	*Character

	templateID   int32
	isAggressive atomic.Bool
}

// NewMonster creates a monster from a template id.
func NewMonster(objectID uint32, templateID int32, name string, level, maxHP int32, attack, defense, speed float64, maxEffects int) *Monster {
	return &Monster{
		Character:  NewCharacter(objectID, name, level, maxHP, attack, defense, speed, maxEffects),
		templateID: templateID,
	}
}

// TemplateID returns the spawn template identifier.
func (m *Monster) TemplateID() int32 { return m.templateID }

// IsAggressive reports whether the monster attacks on sight.
func (m *Monster) IsAggressive() bool { return m.isAggressive.Load() }

// SetAggressive sets the aggression flag.
func (m *Monster) SetAggressive(v bool) { m.isAggressive.Store(v) }

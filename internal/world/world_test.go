package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskmud/duskmud/internal/game/effect"
	"github.com/duskmud/duskmud/internal/model"
)

func addCharacter(t *testing.T, w *World, objectID uint32, name string) *model.Character {
	t.Helper()
	c := model.NewCharacter(objectID, name, 10, 100, 10, 10, 100, 0)
	w.Add(c)
	return c
}

func TestWorld_Roster(t *testing.T) {
	w := New()

	c := addCharacter(t, w, 1, "Aria")
	assert.Equal(t, 1, w.Len())
	assert.Same(t, c, w.Get(1))

	assert.Same(t, c, w.Remove(1))
	assert.Nil(t, w.Remove(1))
	assert.Equal(t, 0, w.Len())
}

func TestWorld_TickDrivesPeriodicBehaviors(t *testing.T) {
	w := New()
	c := addCharacter(t, w, 1, "Aria")

	e, err := effect.New("poison", &effect.Options{
		Params: map[string]string{"power": "10"},
	}, "poison", c, effect.NewDefaultRegistry())
	require.NoError(t, err)
	c.AddEffect(e)
	require.NoError(t, e.Init())

	w.Tick()
	assert.Equal(t, int32(90), c.CurrentHP())

	w.Tick()
	assert.Equal(t, int32(80), c.CurrentHP())
}

func TestWorld_TickPrunesInvalidEffects(t *testing.T) {
	w := New()
	c := addCharacter(t, w, 1, "Aria")

	alive := true
	e, err := effect.New("gated", &effect.Options{
		Predicate: func() bool { return alive },
		Params:    map[string]string{"value": "5"},
	}, "might", c, effect.NewDefaultRegistry())
	require.NoError(t, err)
	c.AddEffect(e)
	require.NoError(t, e.Init())

	w.Tick()
	assert.Equal(t, 1, c.Effects().Len())

	alive = false
	w.Tick()
	assert.Equal(t, 0, c.Effects().Len(), "invalid effect should be pruned")
	assert.Equal(t, effect.StateDeactivated, e.State())
}

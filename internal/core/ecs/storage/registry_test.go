package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type velocity struct{ vx, vy float64 }
type health struct{ current, max float64 }

func TestArrayForLazilyRegistersAndReuses(t *testing.T) {
	reg := NewRegistry()
	assert.False(t, IsRegistered[position](reg))

	a := ArrayFor[position](reg)
	assert.True(t, IsRegistered[position](reg))

	b := ArrayFor[position](reg)
	assert.Same(t, a, b, "ArrayFor must return the same instance on repeat access")

	assert.Equal(t, 1, reg.TypeCount())
}

func TestOnEntityDestroyedFansOutToAllArrays(t *testing.T) {
	reg := NewRegistry()
	positions := ArrayFor[position](reg)
	velocities := ArrayFor[velocity](reg)

	e := Entity{Index: 0, Generation: 1}
	positions.Set(e, position{x: 1})
	velocities.Set(e, velocity{vx: 1})

	reg.OnEntityDestroyed(e)

	assert.False(t, positions.Has(e))
	assert.False(t, velocities.Has(e))
}

func TestDestroyAfterFanOutComponentsAreGone(t *testing.T) {
	reg := NewRegistry()
	positions := ArrayFor[position](reg)
	healths := ArrayFor[health](reg)

	e := Entity{Index: 3, Generation: 1}
	positions.Set(e, position{x: 5})
	healths.Set(e, health{current: 10, max: 10})

	reg.OnEntityDestroyed(e)

	_, posOK := positions.Get(e)
	_, healthOK := healths.Get(e)
	require.False(t, posOK)
	require.False(t, healthOK)
}

func TestRegistryClearEmptiesButKeepsRegistration(t *testing.T) {
	reg := NewRegistry()
	positions := ArrayFor[position](reg)
	positions.Set(Entity{Index: 0, Generation: 1}, position{x: 1})

	reg.Clear()

	assert.Equal(t, 0, positions.Len())
	assert.True(t, IsRegistered[position](reg))
}

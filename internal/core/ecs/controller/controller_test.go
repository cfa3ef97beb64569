package controller

import (
	"testing"

	"simcore/internal/core/ecs/profiler"
	"simcore/internal/core/ecs/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMovement struct {
	current variant.Variant
}

func (f *fakeMovement) AvailableVariants() []variant.Variant {
	return []variant.Variant{variant.Scalar, variant.SIMD}
}
func (f *fakeMovement) CurrentVariant() variant.Variant { return f.current }
func (f *fakeMovement) SwitchVariant(v variant.Variant) bool {
	f.current = v
	return true
}

// implements the spec's adaptive-controller scenario: 600 entities drives
// Scalar -> SIMD, then dropping to 50 drives SIMD -> Scalar.
func TestControllerSwitchesUpThenDownOnEntityCountThresholds(t *testing.T) {
	sys := &fakeMovement{current: variant.Scalar}
	target := &Target{
		Name:     "movement",
		System:   sys,
		UpRule:   ScaleUpOnHighEntityCount(500),
		DownRule: ScaleDownOnLowEntityCount(100),
	}
	c := New(target)

	decisions := c.Tick(600, profiler.Stats{})
	require.Len(t, decisions, 1)
	assert.Equal(t, variant.Scalar, decisions[0].From)
	assert.Equal(t, variant.SIMD, decisions[0].To)
	assert.Equal(t, variant.SIMD, sys.CurrentVariant())

	decisions = c.Tick(50, profiler.Stats{})
	require.Len(t, decisions, 1)
	assert.Equal(t, variant.SIMD, decisions[0].From)
	assert.Equal(t, variant.Scalar, decisions[0].To)
	assert.Equal(t, variant.Scalar, sys.CurrentVariant())
}

func TestControllerFiresAtMostOnceBetweenThresholds(t *testing.T) {
	sys := &fakeMovement{current: variant.Scalar}
	target := &Target{
		Name:     "movement",
		System:   sys,
		UpRule:   ScaleUpOnHighEntityCount(500),
		DownRule: ScaleDownOnLowEntityCount(100),
	}
	c := New(target)

	decisions := c.Tick(600, profiler.Stats{})
	require.Len(t, decisions, 1)

	// Still above threshold: already SIMD, so the down-rule doesn't fire and
	// the up-rule no longer applies once switched.
	decisions = c.Tick(600, profiler.Stats{})
	assert.Empty(t, decisions)
}

func TestControllerSkipsSwitchToUnsupportedVariant(t *testing.T) {
	sys := &fakeMovement{current: variant.Scalar}
	target := &Target{
		Name:   "movement",
		System: sys,
		UpRule: func(int, profiler.Stats) (variant.Variant, bool) { return variant.GPU, true },
	}
	c := New(target)

	decisions := c.Tick(1000, profiler.Stats{})
	assert.Empty(t, decisions)
	assert.Equal(t, variant.Scalar, sys.CurrentVariant())
}

package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSystem struct {
	available []Variant
	current   Variant
}

func (f *fakeSystem) AvailableVariants() []Variant { return f.available }
func (f *fakeSystem) CurrentVariant() Variant      { return f.current }
func (f *fakeSystem) SwitchVariant(v Variant) bool {
	if !Supports(f, v) {
		return false
	}
	f.current = v
	return true
}

func TestStringFormIsCapitalizedIdentifier(t *testing.T) {
	assert.Equal(t, "Scalar", Scalar.String())
	assert.Equal(t, "SIMD", SIMD.String())
	assert.Equal(t, "GPU", GPU.String())
	assert.Equal(t, "Approximate", Approximate.String())
}

func TestSupportsAndSwitchVariant(t *testing.T) {
	sys := &fakeSystem{available: []Variant{Scalar, SIMD}, current: Scalar}

	assert.True(t, Supports(sys, SIMD))
	assert.False(t, Supports(sys, GPU))

	assert.True(t, sys.SwitchVariant(SIMD))
	assert.Equal(t, SIMD, sys.CurrentVariant())

	assert.False(t, sys.SwitchVariant(GPU))
	assert.Equal(t, SIMD, sys.CurrentVariant(), "failed switch leaves current variant unchanged")
}

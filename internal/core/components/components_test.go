package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthDeadAtOrBelowZero(t *testing.T) {
	assert.False(t, Health{Current: 1, Max: 10}.Dead())
	assert.True(t, Health{Current: 0, Max: 10}.Dead())
	assert.True(t, Health{Current: -5, Max: 10}.Dead())
}

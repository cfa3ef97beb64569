package ecserr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringerEntity string

func (s stringerEntity) String() string { return string(s) }

func TestCodeStringFormIsIdentifier(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{Success, "Success"},
		{InvalidArgument, "InvalidArgument"},
		{OutOfMemory, "OutOfMemory"},
		{NotFound, "NotFound"},
		{AlreadyExists, "AlreadyExists"},
		{InvalidState, "InvalidState"},
		{Timeout, "Timeout"},
		{NotImplemented, "NotImplemented"},
		{SystemError, "SystemError"},
		{ValidationFailed, "ValidationFailed"},
		{RollbackRequired, "RollbackRequired"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.code.String())
	}
}

func TestErrorBuildersAndIs(t *testing.T) {
	err := New(NotFound, "component missing").
		WithEntity(stringerEntity("Entity(0#1)")).
		WithSystem("MovementSystem").
		WithComponent("Velocity").
		WithDetail("attempt", 3)

	assert.Equal(t, "NotFound: component missing", err.Error())
	assert.Equal(t, "Entity(0#1)", err.Entity)
	assert.Equal(t, "MovementSystem", err.System)
	assert.Equal(t, "Velocity", err.Component)
	assert.Equal(t, 3, err.Details["attempt"])
	assert.True(t, Is(err, NotFound))
	assert.False(t, Is(err, OutOfMemory))
}

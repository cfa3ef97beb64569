package runtime

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	require.NotNil(t, logger)

	logger.Info().Str("component", "bootstrap").Log("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "bootstrap")
}

func TestBootstrapConstructsWorldWithResourceTuningAndLogger(t *testing.T) {
	w := Bootstrap()
	require.NotNil(t, w)

	e := w.CreateEntity()
	assert.True(t, w.IsAlive(e))
}

package playback

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "unknown", State(-1).String())
}

func TestState_HasSource(t *testing.T) {
	assert.False(t, StateStopped.HasSource())
	assert.True(t, StatePlaying.HasSource())
	assert.True(t, StatePaused.HasSource())
}

func TestState_JSONLogField(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	log.WithField("state", StatePaused).Info("state changed")

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"state":"paused"`)
}

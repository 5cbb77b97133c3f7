package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewOff(t *testing.T) {
	for _, level := range []string{"", "off", " OFF "} {
		var buf bytes.Buffer
		logger, err := New(level, &buf)
		require.NoError(t, err)

		logger.Error("should not appear")
		assert.Empty(t, buf.String(), "level %q", level)
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud", zap.String("path", "data/contacts.json"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "data/contacts.json")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	logger, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("test message")
}

func TestNewConsoleFormat(t *testing.T) {
	logger, err := New(&Config{Level: "debug", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(&Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

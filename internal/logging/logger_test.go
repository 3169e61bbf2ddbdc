package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(&buf, slog.LevelInfo, "json")

	logger.Info("run failed", "error", errors.New("boom"))
	assert.Contains(t, buf.String(), `"err":"boom"`)

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewWithFormat_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(&buf, slog.LevelDebug, "text")

	logger.Debug("step", "error", "x")
	assert.Contains(t, buf.String(), "err=x")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

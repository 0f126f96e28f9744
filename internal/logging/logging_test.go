package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestResolveLevel(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		assert.Equal(t, "warn", resolveLevel(""))
	})

	t.Run("configured level", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		assert.Equal(t, "debug", resolveLevel(" DEBUG "))
	})

	t.Run("env wins over config", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "Error")
		assert.Equal(t, "error", resolveLevel("debug"))
	})
}

func TestNew(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	logger, err := New("debug", FormatJSON)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("nonsense", "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

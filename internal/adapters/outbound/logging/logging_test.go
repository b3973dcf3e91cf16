package logging_test

import (
	"testing"

	"github.com/codewarden/codewarden/internal/adapters/outbound/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_DebugEnablesVerboseLevels(t *testing.T) {
	log, err := logging.New(true)
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_DefaultIsQuiet(t *testing.T) {
	log, err := logging.New(false)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

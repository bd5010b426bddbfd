package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openkraft/automigrate/internal/adapters/outbound/logging"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	logger, err := logging.New(false)
	require.NoError(t, err)

	core := logger.Desugar().Core()
	assert.False(t, core.Enabled(zap.InfoLevel))
	assert.True(t, core.Enabled(zap.WarnLevel))
}

func TestNew_DebugEnablesDebugLevel(t *testing.T) {
	logger, err := logging.New(true)
	require.NoError(t, err)

	assert.True(t, logger.Desugar().Core().Enabled(zap.DebugLevel))
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelRoundTrip(t *testing.T) {
	for _, level := range []int{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel} {
		require.Equal(t, level, LogLevelFromString(LogLevelToString(level)))
	}
	require.Equal(t, InfoLevel, LogLevelFromString("verbose"))
}

func TestZapLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, ZapLevel(TraceLevel))
	require.Equal(t, zapcore.WarnLevel, ZapLevel(WarnLevel))
	require.Equal(t, zapcore.InfoLevel, ZapLevel(42))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(WarnLevel)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		" error ": LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}

	for value, want := range cases {
		require.Equal(t, want, ParseLevel(value), "value %q", value)
	}
}

func TestLevelString_RoundTripsThroughParseLevel(t *testing.T) {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		require.Equal(t, level, ParseLevel(level.String()))
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn)

	logger.Info("below threshold")
	logger.Warn("at threshold")

	out := buf.String()
	require.NotContains(t, out, "below threshold")
	require.Contains(t, out, "at threshold")
}

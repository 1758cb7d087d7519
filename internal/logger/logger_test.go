package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextLogger ensures names and fields attached to the context reach the output.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(&buf, zapcore.DebugLevel))
	ctx = WithName(ctx, "isaac-server")
	ctx = WithKV(ctx, "peer", "127.0.0.1")

	DebugKV(ctx, "handshake", "accepted", true)

	out := buf.String()
	require.Contains(t, out, "isaac-server")
	require.Contains(t, out, "handshake")
	require.Contains(t, out, "127.0.0.1")
	require.Contains(t, out, "accepted")
}

// TestFromContextFallsBackToGlobal checks an empty context yields the global logger.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestBanner ensures the startup banner carries both version numbers.
func TestBanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	Banner(ToContext(context.Background(), New(&buf, zapcore.InfoLevel)))

	out := buf.String()
	require.Contains(t, out, "server_version")
	require.Contains(t, out, "1.5.0")
	require.Contains(t, out, "protocol_version")
	require.Contains(t, out, "1.0")
}

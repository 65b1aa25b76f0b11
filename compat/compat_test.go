// FILE: oxidecomputer/slog-dtrace/compat/compat_test.go
package compat

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dtrace "github.com/oxidecomputer/slog-dtrace"
)

// newTracedLogger builds a slog.Logger over a capturing drain
func newTracedLogger(t *testing.T) (*slog.Logger, *dtrace.MemoryProvider) {
	t.Helper()
	provider := dtrace.NewMemoryProvider("compat_test")
	h, err := dtrace.NewBuilder().WithProvider(provider).Build()
	require.NoError(t, err)
	return slog.New(h), provider
}

func TestDetectLogLevel(t *testing.T) {
	tests := []struct {
		msg       string
		want      slog.Level
		wantFound bool
	}{
		{"connection error occurred", slog.LevelError, true},
		{"request FAILED after 3 attempts", slog.LevelError, true},
		{"warning: deprecated option", slog.LevelWarn, true},
		{"will retry in 5s", slog.LevelWarn, true},
		{"debug: connection pool state", slog.LevelDebug, true},
		{"serving on :8080", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		level, found := DetectLogLevel(tt.msg)
		assert.Equal(t, tt.wantFound, found, tt.msg)
		assert.Equal(t, tt.want, level, tt.msg)
	}
}

func TestFastHTTPAdapterRoutesThroughProbes(t *testing.T) {
	logger, provider := newTracedLogger(t)
	adapter := NewFastHTTPAdapter(logger)

	adapter.Printf("serving %s", "requests")
	adapter.Printf("handshake error from %s", "1.2.3.4")

	infoPayloads := provider.Payloads("info")
	require.Len(t, infoPayloads, 1)
	msg, _, err := dtrace.ParsePayload(infoPayloads[0])
	require.NoError(t, err)
	assert.Equal(t, "serving requests", msg.Message)
	source, found := msg.KV.Get("source")
	require.True(t, found)
	assert.Equal(t, "fasthttp", source)

	errorPayloads := provider.Payloads("error")
	require.Len(t, errorPayloads, 1)
	msg, _, err = dtrace.ParsePayload(errorPayloads[0])
	require.NoError(t, err)
	assert.Equal(t, "handshake error from 1.2.3.4", msg.Message)
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	logger, provider := newTracedLogger(t)
	adapter := NewFastHTTPAdapter(logger,
		WithDefaultLevel(slog.LevelDebug),
		WithLevelDetector(nil),
	)

	adapter.Printf("anything goes")
	assert.Len(t, provider.Payloads("debug"), 1)
	assert.Empty(t, provider.Payloads("info"))
}

func TestGnetAdapterLevels(t *testing.T) {
	logger, provider := newTracedLogger(t)
	adapter := NewGnetAdapter(logger)

	adapter.Debugf("loop %d", 1)
	adapter.Infof("listening")
	adapter.Warnf("slow consumer")
	adapter.Errorf("accept: %v", assert.AnError)

	assert.Len(t, provider.Payloads("debug"), 1)
	assert.Len(t, provider.Payloads("info"), 1)
	assert.Len(t, provider.Payloads("warn"), 1)
	assert.Len(t, provider.Payloads("error"), 1)
}

func TestGnetAdapterFatal(t *testing.T) {
	logger, provider := newTracedLogger(t)

	var fatalMsg string
	adapter := NewGnetAdapter(logger, WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))

	adapter.Fatalf("cannot bind %s", ":80")
	assert.Equal(t, "cannot bind :80", fatalMsg)

	payloads := provider.Payloads("error")
	require.Len(t, payloads, 1)
	msg, _, err := dtrace.ParsePayload(payloads[0])
	require.NoError(t, err)
	fatal, found := msg.KV.Get("fatal")
	require.True(t, found)
	assert.Equal(t, true, fatal)
}

func TestBuilderWithHandler(t *testing.T) {
	provider := dtrace.NewMemoryProvider("compat_test")
	h, err := dtrace.NewBuilder().WithProvider(provider).Build()
	require.NoError(t, err)

	adapter, err := NewBuilder().WithHandler(h).BuildGnet()
	require.NoError(t, err)

	adapter.Infof("built from handler")
	assert.Len(t, provider.Payloads("info"), 1)
}

func TestBuilderWithLogger(t *testing.T) {
	logger, provider := newTracedLogger(t)

	b := NewBuilder().WithLogger(logger)
	gnetAdapter, err := b.BuildGnet()
	require.NoError(t, err)
	fasthttpAdapter, err := b.BuildFastHTTP()
	require.NoError(t, err)

	gnetAdapter.Infof("one")
	fasthttpAdapter.Printf("two")
	assert.Len(t, provider.Payloads("info"), 2)
}

func TestBuilderNilArguments(t *testing.T) {
	_, err := NewBuilder().WithLogger(nil).BuildGnet()
	require.Error(t, err)

	_, err = NewBuilder().WithHandler(nil).BuildFastHTTP()
	require.Error(t, err)
}

func TestBuilderWithConfig(t *testing.T) {
	cfg := dtrace.DefaultConfig()
	cfg.Provider = "memory"

	adapter, err := NewBuilder().WithConfig(cfg).BuildFastHTTP()
	require.NoError(t, err)
	adapter.Printf("configured")
}

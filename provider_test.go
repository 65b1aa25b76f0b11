// FILE: oxidecomputer/slog-dtrace/provider_test.go
package dtrace

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeForLevelTotal(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  probeID
	}{
		{slog.Level(-1000), probeTrace},
		{LevelTrace, probeTrace},
		{slog.Level(-5), probeTrace},
		{LevelDebug, probeDebug},
		{slog.Level(-1), probeDebug},
		{LevelInfo, probeInfo},
		{slog.Level(3), probeInfo},
		{LevelWarn, probeWarn},
		{LevelError, probeError},
		{slog.Level(11), probeError},
		{LevelCritical, probeCritical},
		{slog.Level(1000), probeCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, probeForLevel(tt.level), "level %d", tt.level)
	}
}

func TestRegistryProbes(t *testing.T) {
	provider := NewMemoryProvider("test")
	reg, err := newRegistry(provider)
	require.NoError(t, err)

	for id := probeTrace; id < numProbes; id++ {
		require.NotNil(t, reg.probes[id], "probe %s", probeNames[id])
	}

	// probeFor returns the level's own probe
	reg.probeFor(slog.LevelWarn).Fire([]byte("x"))
	assert.Len(t, provider.Payloads("warn"), 1)
	assert.Empty(t, provider.Payloads("error"))
}

func TestRegisterProviderDuplicatePanics(t *testing.T) {
	RegisterProvider("dup-test", func(name string) (Provider, error) {
		return noopProvider{}, nil
	})
	assert.Panics(t, func() {
		RegisterProvider("dup-test", func(name string) (Provider, error) {
			return noopProvider{}, nil
		})
	})
	assert.Panics(t, func() {
		RegisterProvider("nil-factory", nil)
	})
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := newProvider("no-such-backend", "slog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-backend")
	assert.Contains(t, err.Error(), "memory")
	assert.Contains(t, err.Error(), "noop")
}

func TestProvidersListsBuiltins(t *testing.T) {
	names := Providers()
	assert.Contains(t, names, "noop")
	assert.Contains(t, names, "memory")
}

func TestNoopProbe(t *testing.T) {
	provider, err := newProvider("noop", "slog")
	require.NoError(t, err)

	probe, err := provider.Probe("warn")
	require.NoError(t, err)
	assert.False(t, probe.Enabled())
	probe.Fire([]byte("dropped")) // must not panic
	require.NoError(t, provider.Load())
	require.NoError(t, provider.Close())
}

// Fired payloads are copied: later mutation of the buffer is invisible
func TestMemoryProbeCopiesPayload(t *testing.T) {
	provider := NewMemoryProvider("test")
	probe := provider.Get("info")

	buf := []byte("original")
	probe.Fire(buf)
	copy(buf, "clobber!")

	payloads := probe.Payloads()
	require.Len(t, payloads, 1)
	assert.Equal(t, "original", string(payloads[0]))
}

func TestMemoryProbeEnablement(t *testing.T) {
	provider := NewMemoryProvider("test")
	probe := provider.Get("debug")
	assert.True(t, probe.Enabled(), "memory probes start enabled")

	provider.SetEnabled("debug", false)
	assert.False(t, probe.Enabled())

	provider.SetEnabled("debug", true)
	assert.True(t, probe.Enabled())
}

// FILE: oxidecomputer/slog-dtrace/registry.go
package dtrace

import (
	"log/slog"
)

// registry holds the canonical probes, one per severity level, resolved
// once from a Provider at construction and immutable afterwards.
type registry struct {
	provider Provider
	probes   [numProbes]Probe
}

// newRegistry adds one probe per canonical level to the provider and loads
// it into the tracing runtime.
func newRegistry(provider Provider) (*registry, error) {
	r := &registry{provider: provider}
	for id := probeTrace; id < numProbes; id++ {
		probe, err := provider.Probe(probeNames[id])
		if err != nil {
			return nil, fmtErrorf("failed to create probe '%s': %w", probeNames[id], err)
		}
		r.probes[id] = probe
	}
	if err := provider.Load(); err != nil {
		return nil, fmtErrorf("failed to register probes: %w", err)
	}
	return r, nil
}

// probeFor resolves any level to its probe. The mapping is total, so the
// result is never nil.
func (r *registry) probeFor(l slog.Level) Probe {
	return r.probes[probeForLevel(l)]
}

func (r *registry) close() error {
	return r.provider.Close()
}

// FILE: oxidecomputer/slog-dtrace/type.go
package dtrace

import (
	"log/slog"
)

// Probe is a single named USDT probe handle, established once and never
// mutated afterwards. Enabled must be cheap, side-effect-free, and safe
// under unsynchronized concurrent calls; Fire is one-way, best-effort, and
// has no failure mode visible to the caller.
type Probe interface {
	Enabled() bool
	Fire(payload []byte)
}

// Provider owns a set of named probes registered with a tracing runtime.
// All probes are added via Probe before Load; Load makes them visible to
// consumers. Close releases runtime resources.
type Provider interface {
	Probe(name string) (Probe, error)
	Load() error
	Close() error
}

// ProviderFactory constructs a Provider for the given provider name as it
// appears to trace consumers (the "slog" in usdt:<path>:slog:warn).
type ProviderFactory func(name string) (Provider, error)

// groupOrAttrs records one WithGroup or WithAttrs call on a handler, in
// call order, so the encoder can reproduce parent-logger key-values with
// their group nesting.
type groupOrAttrs struct {
	group string // non-empty for WithGroup
	attrs []slog.Attr
}

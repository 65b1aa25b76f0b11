// FILE: oxidecomputer/slog-dtrace/handler.go
package dtrace

import (
	"context"
	"log/slog"
)

// Handler is a slog.Handler that forwards every record to a per-level USDT
// probe and, optionally, relays it unchanged to a wrapped inner handler.
//
// The tracing side never contributes to a log call's result: probe
// registration problems surface from the constructors, encoding problems
// become "err" payloads, and firing is one-way. The only error a caller
// can observe from Handle is the inner handler's own.
//
// When no tracing consumer is attached the record is never encoded; the
// per-record cost is one atomic counter and one enablement check.
type Handler struct {
	registry *registry
	inner    slog.Handler // nil for tracing-only
	goas     []groupOrAttrs
	limit    int // payload size bound in bytes
	stats    *state
}

var _ slog.Handler = (*Handler)(nil)

// New creates a tracing-only drain from cfg. A nil cfg uses defaults.
// Records are acknowledged as handled even though nothing is written
// unless a tracing consumer attaches.
func New(cfg *Config) (*Handler, error) {
	return WithHandler(cfg, nil)
}

// WithHandler creates a drain that fires probes and relays every record to
// inner. The inner handler's own level filtering, formatting, and error
// behavior are preserved untouched, which is the point: tracing can reveal
// records the inner handler intentionally suppresses.
func WithHandler(cfg *Config, inner slog.Handler) (*Handler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	provider, err := newProvider(cfg.Provider, cfg.Name)
	if err != nil {
		return nil, err
	}
	return newHandler(provider, inner, cfg.MaxPayloadKB)
}

// newHandler builds the probe registry from an already-constructed
// provider. On registration failure the provider is released.
func newHandler(provider Provider, inner slog.Handler, maxPayloadKB int64) (*Handler, error) {
	reg, err := newRegistry(provider)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}
	return &Handler{
		registry: reg,
		inner:    inner,
		limit:    int(maxPayloadKB * sizeMultiplier),
		stats:    &state{},
	}, nil
}

// Enabled reports whether a record at this level would go anywhere: to an
// attached tracing consumer, or past the inner handler's own filter.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.registry.probeFor(level).Enabled() {
		return true
	}
	if h.inner != nil {
		return h.inner.Enabled(ctx, level)
	}
	return false
}

// Handle resolves the record's probe, encodes and fires only when a
// consumer is attached, then relays the unmodified record to the inner
// handler and returns that result verbatim.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.stats.TotalRecords.Add(1)

	probe := h.registry.probeFor(r.Level)
	if probe.Enabled() {
		s := newSerializer()
		h.stats.TotalEncoded.Add(1)
		payload, ok := s.encode(h.goas, r, h.limit)
		if !ok {
			h.stats.TotalEncodeErrors.Add(1)
		}
		probe.Fire(payload)
		h.stats.TotalFired.Add(1)
		s.release()
	}

	if h.inner == nil {
		return nil
	}
	// Honoring the inner handler's Enabled is part of the forward: slog
	// handlers only expect records their Enabled admits.
	if !h.inner.Enabled(ctx, r.Level) {
		return nil
	}
	h.stats.TotalRelayed.Add(1)
	if err := h.inner.Handle(ctx, r); err != nil {
		h.stats.TotalRelayErrors.Add(1)
		return err
	}
	return nil
}

// WithAttrs returns a handler whose payloads and inner handler both carry
// the additional attributes. Values are resolved once, here.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	resolved := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		a.Value = a.Value.Resolve()
		resolved[i] = a
	}
	h2 := h.clone()
	h2.goas = append(h2.goas, groupOrAttrs{attrs: resolved})
	if h.inner != nil {
		h2.inner = h.inner.WithAttrs(attrs)
	}
	return h2
}

// WithGroup returns a handler that nests subsequent attributes under name,
// in both the payload kv and the inner handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.goas = append(h2.goas, groupOrAttrs{group: name})
	if h.inner != nil {
		h2.inner = h.inner.WithGroup(name)
	}
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.goas = append([]groupOrAttrs(nil), h.goas...)
	return &h2
}

// Stats returns a snapshot of the drain's activity counters.
func (h *Handler) Stats() Stats {
	return h.stats.snapshot()
}

// Close unloads the probes from the tracing runtime and releases provider
// resources. The handler and any handlers derived from it must not be used
// afterwards. Probes normally live for the whole process; Close exists for
// tests and for hosts that tear down libstapsdt mappings explicitly.
func (h *Handler) Close() error {
	return h.registry.close()
}

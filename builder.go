// FILE: oxidecomputer/slog-dtrace/builder.go
package dtrace

import (
	"log/slog"
)

// Builder provides a fluent API for constructing a Handler.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg      *Config
	provider Provider
	inner    slog.Handler
	err      error // Accumulate errors for deferred handling
}

// NewBuilder creates a new handler builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Config replaces the builder's configuration with a copy of cfg.
func (b *Builder) Config(cfg *Config) *Builder {
	if cfg == nil {
		b.err = fmtErrorf("configuration cannot be nil")
		return b
	}
	b.cfg = cfg.Clone()
	return b
}

// Provider selects the probe backend by registered name.
func (b *Builder) Provider(name string) *Builder {
	b.cfg.Provider = name
	return b
}

// Name sets the provider name visible to trace consumers.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// MaxPayloadKB sets the encoded payload size bound in KB.
func (b *Builder) MaxPayloadKB(size int64) *Builder {
	b.cfg.MaxPayloadKB = size
	return b
}

// WithProvider injects an already-constructed Provider, bypassing the
// registered factories. Useful for custom runtimes and tests.
func (b *Builder) WithProvider(p Provider) *Builder {
	if p == nil {
		b.err = fmtErrorf("provider cannot be nil")
		return b
	}
	b.provider = p
	return b
}

// Inner sets the wrapped handler that records are relayed to. Leaving it
// unset builds a tracing-only drain.
func (b *Builder) Inner(h slog.Handler) *Builder {
	b.inner = h
	return b
}

// Build creates a new Handler with the specified configuration.
func (b *Builder) Build() (*Handler, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}

	provider := b.provider
	if provider == nil {
		var err error
		provider, err = newProvider(b.cfg.Provider, b.cfg.Name)
		if err != nil {
			return nil, err
		}
	}

	return newHandler(provider, b.inner, b.cfg.MaxPayloadKB)
}

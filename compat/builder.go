// FILE: oxidecomputer/slog-dtrace/compat/builder.go
package compat

import (
	"fmt"
	"log/slog"

	dtrace "github.com/oxidecomputer/slog-dtrace"
)

// Builder provides a flexible way to create configured logger adapters for
// gnet and fasthttp. It can use an existing *slog.Logger, wrap an existing
// slog.Handler, or construct a tracing-only dtrace.Handler from a
// *dtrace.Config.
type Builder struct {
	logger  *slog.Logger
	handler slog.Handler
	cfg     *dtrace.Config
	err     error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// Recommended for applications that already have a central logger
// instance. If this is set, WithHandler and WithConfig are ignored.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("dtrace/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithHandler wraps an existing handler (a dtrace.Handler or any other) in
// a new logger. Used only when no logger was provided via WithLogger.
func (b *Builder) WithHandler(h slog.Handler) *Builder {
	if h == nil {
		b.err = fmt.Errorf("dtrace/compat: provided handler cannot be nil")
		return b
	}
	b.handler = h
	return b
}

// WithConfig provides a configuration for a new tracing-only handler.
// Used only when neither WithLogger nor WithHandler was called.
func (b *Builder) WithConfig(cfg *dtrace.Config) *Builder {
	b.cfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*slog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	// An existing logger was provided, so we use it
	if b.logger != nil {
		return b.logger, nil
	}

	if b.handler != nil {
		b.logger = slog.New(b.handler)
		return b.logger, nil
	}

	// Create a new tracing-only handler instance
	cfg := b.cfg
	if cfg == nil {
		cfg = dtrace.DefaultConfig()
	}
	h, err := dtrace.New(cfg)
	if err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = slog.New(h)
	return b.logger, nil
}

// BuildGnet creates a gnet adapter.
// It can be used for servers that require a standard gnet logger.
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

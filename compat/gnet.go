// FILE: oxidecomputer/slog-dtrace/compat/gnet.go
package compat

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// GnetAdapter routes gnet's logging.Logger calls through a slog.Logger.
type GnetAdapter struct {
	logger       *slog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *slog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

func (a *GnetAdapter) log(level slog.Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Log(context.Background(), level, msg, "source", "gnet")
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.log(slog.LevelDebug, format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.log(slog.LevelInfo, format, args...)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.log(slog.LevelWarn, format, args...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.log(slog.LevelError, format, args...)
}

// Fatalf logs at error level and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Log(context.Background(), slog.LevelError, msg, "source", "gnet", "fatal", true)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

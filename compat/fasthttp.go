// FILE: oxidecomputer/slog-dtrace/compat/fasthttp.go
package compat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// FastHTTPAdapter routes fasthttp's internal log lines through a
// slog.Logger, typically one backed by a dtrace.Handler so that server
// noise becomes traceable alongside application records.
type FastHTTPAdapter struct {
	logger        *slog.Logger
	defaultLevel  slog.Level
	levelDetector func(string) (slog.Level, bool) // Detect log level from message content
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *slog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  slog.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when nothing can be detected from
// the message content.
func WithDefaultLevel(level slog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect the log level from
// message content.
func WithLevelDetector(detector func(string) (slog.Level, bool)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := a.levelDetector(msg); ok {
			level = detected
		}
	}

	a.logger.Log(context.Background(), level, msg, "source", "fasthttp")
}

// levelHints maps message keywords to levels, checked in severity order.
var levelHints = []struct {
	level slog.Level
	words []string
}{
	{slog.LevelError, []string{"error", "failed", "fatal", "panic"}},
	{slog.LevelWarn, []string{"warn", "deprecated", "retry"}},
	{slog.LevelDebug, []string{"debug", "trace"}},
}

// DetectLogLevel attempts to detect the log level from message content.
// The second return is false when no keyword matched.
func DetectLogLevel(msg string) (slog.Level, bool) {
	lower := strings.ToLower(msg)
	for _, hint := range levelHints {
		for _, word := range hint.words {
			if strings.Contains(lower, word) {
				return hint.level, true
			}
		}
	}
	return slog.LevelInfo, false
}

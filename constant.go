// FILE: oxidecomputer/slog-dtrace/constant.go
package dtrace

import (
	"log/slog"
	"time"
)

// Log level constants on the slog numeric scale, extended below Debug and
// above Error to cover the full canonical probe set.
const (
	LevelTrace    slog.Level = -8
	LevelDebug               = slog.LevelDebug
	LevelInfo                = slog.LevelInfo
	LevelWarn                = slog.LevelWarn
	LevelError               = slog.LevelError
	LevelCritical slog.Level = 12
)

// Probe identifiers, one per canonical severity level
type probeID int

const (
	probeTrace probeID = iota
	probeDebug
	probeInfo
	probeWarn
	probeError
	probeCritical
	numProbes
)

// Probe names as seen by trace consumers (e.g. slog*:::warn)
var probeNames = [numProbes]string{
	probeTrace:    "trace",
	probeDebug:    "debug",
	probeInfo:     "info",
	probeWarn:     "warn",
	probeError:    "error",
	probeCritical: "critical",
}

// Canonical uppercase level names used in the wire payload
var levelNames = [numProbes]string{
	probeTrace:    "TRACE",
	probeDebug:    "DEBUG",
	probeInfo:     "INFO",
	probeWarn:     "WARN",
	probeError:    "ERROR",
	probeCritical: "CRITICAL",
}

// Payload
const (
	// Timestamp format for the wire payload, always UTC
	timestampFormat = time.RFC3339Nano
	// Size multiplier for KB settings
	sizeMultiplier = 1000
)

// probeForLevel resolves a level to exactly one probe. Levels between
// canonical values map to the nearest lower severity; anything below Trace
// resolves to the trace probe and anything at or above Critical to the
// critical probe, so the mapping is total.
func probeForLevel(l slog.Level) probeID {
	switch {
	case l >= LevelCritical:
		return probeCritical
	case l >= LevelError:
		return probeError
	case l >= LevelWarn:
		return probeWarn
	case l >= LevelInfo:
		return probeInfo
	case l >= LevelDebug:
		return probeDebug
	default:
		return probeTrace
	}
}

// FILE: oxidecomputer/slog-dtrace/state.go
package dtrace

import (
	"sync/atomic"
)

// state tracks drain activity counters. All counters are lock-free and
// shared across handlers derived via WithAttrs/WithGroup.
type state struct {
	TotalRecords      atomic.Uint64
	TotalEncoded      atomic.Uint64
	TotalFired        atomic.Uint64
	TotalEncodeErrors atomic.Uint64
	TotalRelayed      atomic.Uint64
	TotalRelayErrors  atomic.Uint64
}

// Stats is a point-in-time snapshot of drain activity.
type Stats struct {
	Records      uint64 // records seen by Handle
	Encoded      uint64 // encoder invocations, at most one per record
	Fired        uint64 // probe firings
	EncodeErrors uint64 // payloads downgraded to the "err" variant
	Relayed      uint64 // records forwarded to the inner handler
	RelayErrors  uint64 // forwards that returned an error
}

func (s *state) snapshot() Stats {
	return Stats{
		Records:      s.TotalRecords.Load(),
		Encoded:      s.TotalEncoded.Load(),
		Fired:        s.TotalFired.Load(),
		EncodeErrors: s.TotalEncodeErrors.Load(),
		Relayed:      s.TotalRelayed.Load(),
		RelayErrors:  s.TotalRelayErrors.Load(),
	}
}

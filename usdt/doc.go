// FILE: oxidecomputer/slog-dtrace/usdt/doc.go

// Package usdt registers the "usdt" probe backend, which publishes records
// as SystemTap SDT probes through libstapsdt. The probes are visible to
// dtrace, bpftrace, and perf. Importing the package for side effect is
// enough:
//
//	import _ "github.com/oxidecomputer/slog-dtrace/usdt"
//
// The backend requires linux and cgo; elsewhere it is registered as a stub
// that fails with a descriptive error at construction time, never at log
// time.
package usdt

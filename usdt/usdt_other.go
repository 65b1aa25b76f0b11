// FILE: oxidecomputer/slog-dtrace/usdt/usdt_other.go
//go:build !linux || !cgo

package usdt

import (
	dtrace "github.com/oxidecomputer/slog-dtrace"
)

func init() {
	dtrace.RegisterProvider("usdt", func(name string) (dtrace.Provider, error) {
		return nil, errUnsupported
	})
}

var errUnsupported = unsupportedError{}

type unsupportedError struct{}

func (unsupportedError) Error() string {
	return "dtrace: the usdt provider requires linux and cgo; use the memory or noop provider on this platform"
}

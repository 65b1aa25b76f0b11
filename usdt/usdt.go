// FILE: oxidecomputer/slog-dtrace/usdt/usdt.go
//go:build linux && cgo

package usdt

import (
	"github.com/mmcshane/salp"

	dtrace "github.com/oxidecomputer/slog-dtrace"
)

func init() {
	dtrace.RegisterProvider("usdt", newProvider)
}

// provider wraps a libstapsdt probe set. Probes are added before Load;
// Load maps the generated ELF object into the process so consumers can
// attach.
type provider struct {
	probes *salp.Probes
}

func newProvider(name string) (dtrace.Provider, error) {
	return &provider{probes: salp.NewProbes(name)}, nil
}

func (p *provider) Probe(name string) (dtrace.Probe, error) {
	// One string argument: the encoded payload
	sp, err := salp.AddProbe(p.probes, name, salp.String)
	if err != nil {
		return nil, err
	}
	return probe{sp}, nil
}

func (p *provider) Load() error {
	return salp.LoadProvider(p.probes)
}

func (p *provider) Close() error {
	salp.UnloadAndDispose(p.probes)
	return nil
}

// probe adapts a salp probe to the dtrace.Probe contract.
type probe struct {
	p salp.Probe
}

func (pr probe) Enabled() bool {
	return pr.p.Enabled()
}

func (pr probe) Fire(payload []byte) {
	pr.p.Fire(string(payload))
}

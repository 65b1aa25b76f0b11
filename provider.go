// FILE: oxidecomputer/slog-dtrace/provider.go
package dtrace

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	factoryMu sync.RWMutex
	factories = make(map[string]ProviderFactory)
)

// RegisterProvider makes a probe backend available under the given name,
// in the manner of database/sql drivers. It panics on a nil factory or a
// duplicate registration.
func RegisterProvider(name string, factory ProviderFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if factory == nil {
		panic("dtrace: RegisterProvider factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("dtrace: RegisterProvider called twice for provider " + name)
	}
	factories[name] = factory
}

// Providers returns the sorted names of the registered probe backends.
func Providers() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	list := make([]string, 0, len(factories))
	for name := range factories {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// newProvider instantiates the registered backend with the consumer-visible
// provider name.
func newProvider(backend, name string) (Provider, error) {
	factoryMu.RLock()
	factory, ok := factories[backend]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmtErrorf("unknown provider %q (registered: %s); the usdt provider requires importing the usdt subpackage",
			backend, strings.Join(Providers(), ", "))
	}
	return factory(name)
}

func init() {
	RegisterProvider("noop", func(name string) (Provider, error) {
		return noopProvider{}, nil
	})
	RegisterProvider("memory", func(name string) (Provider, error) {
		return NewMemoryProvider(name), nil
	})
}

// noopProvider backs the "noop" backend: probes are never enabled and
// firing discards the payload. Useful on platforms without a tracing
// runtime.
type noopProvider struct{}

type noopProbe struct{}

func (noopProbe) Enabled() bool { return false }
func (noopProbe) Fire([]byte)  {}

func (noopProvider) Probe(string) (Probe, error) { return noopProbe{}, nil }
func (noopProvider) Load() error                 { return nil }
func (noopProvider) Close() error                { return nil }

// MemoryProvider backs the "memory" backend: an in-process provider that
// captures fired payloads, for tests and for development on machines
// without dtrace/bpftrace. Probes start enabled.
type MemoryProvider struct {
	name   string
	mu     sync.Mutex
	probes map[string]*MemoryProbe
}

// NewMemoryProvider creates a capturing provider with the given name.
func NewMemoryProvider(name string) *MemoryProvider {
	return &MemoryProvider{
		name:   name,
		probes: make(map[string]*MemoryProbe),
	}
}

// Probe returns the capturing probe with the given name, creating it if
// needed. Safe to call both before Load and from tests afterwards.
func (p *MemoryProvider) Probe(name string) (Probe, error) {
	return p.Get(name), nil
}

// Get returns the concrete probe for direct inspection and control.
func (p *MemoryProvider) Get(name string) *MemoryProbe {
	p.mu.Lock()
	defer p.mu.Unlock()
	probe, ok := p.probes[name]
	if !ok {
		probe = &MemoryProbe{name: name}
		probe.enabled.Store(true)
		p.probes[name] = probe
	}
	return probe
}

// Load implements Provider. Nothing to register in-process.
func (p *MemoryProvider) Load() error { return nil }

// Close drops all captured payloads.
func (p *MemoryProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, probe := range p.probes {
		probe.Reset()
	}
	return nil
}

// SetEnabled flips a probe's enablement, simulating a tracing consumer
// attaching or detaching.
func (p *MemoryProvider) SetEnabled(name string, enabled bool) {
	p.Get(name).enabled.Store(enabled)
}

// Payloads returns copies of the payloads fired at the named probe, in
// firing order.
func (p *MemoryProvider) Payloads(name string) [][]byte {
	return p.Get(name).Payloads()
}

// MemoryProbe is a single capturing probe.
type MemoryProbe struct {
	name     string
	enabled  atomic.Bool
	mu       sync.Mutex
	payloads [][]byte
}

// Enabled implements Probe.
func (m *MemoryProbe) Enabled() bool { return m.enabled.Load() }

// Fire implements Probe. The payload buffer is only valid for the duration
// of the call, so it is copied.
func (m *MemoryProbe) Fire(payload []byte) {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.mu.Lock()
	m.payloads = append(m.payloads, buf)
	m.mu.Unlock()
}

// Payloads returns the captured payloads in firing order.
func (m *MemoryProbe) Payloads() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.payloads))
	copy(out, m.payloads)
	return out
}

// Reset discards captured payloads.
func (m *MemoryProbe) Reset() {
	m.mu.Lock()
	m.payloads = nil
	m.mu.Unlock()
}

// FILE: oxidecomputer/slog-dtrace/benchmark_test.go
package dtrace

import (
	"context"
	"log/slog"
	"testing"
)

func benchRecord() slog.Record {
	return newRecord(slog.LevelInfo, "benchmark record",
		slog.String("path", "/api/v1/items"),
		slog.Int("status", 200),
		slog.Float64("elapsed", 0.0042),
		slog.Bool("cached", false),
	)
}

// The price of the drain when nobody is tracing
func BenchmarkHandleDisabled(b *testing.B) {
	provider := NewMemoryProvider("bench")
	h, err := NewBuilder().WithProvider(provider).Build()
	if err != nil {
		b.Fatal(err)
	}
	for _, name := range probeNames {
		provider.SetEnabled(name, false)
	}
	r := benchRecord()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Handle(ctx, r)
	}
}

func BenchmarkHandleEnabled(b *testing.B) {
	h, err := NewBuilder().WithProvider(&discardProvider{}).Build()
	if err != nil {
		b.Fatal(err)
	}
	r := benchRecord()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Handle(ctx, r)
	}
}

func BenchmarkEncode(b *testing.B) {
	r := benchRecord()
	s := newSerializer()
	defer s.release()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.encode(nil, r, 64*sizeMultiplier)
	}
}

// discardProvider keeps probes enabled but drops payloads, isolating the
// encode+fire path from capture overhead.
type discardProvider struct{}

type discardProbe struct{}

func (discardProbe) Enabled() bool { return true }
func (discardProbe) Fire([]byte)  {}

func (*discardProvider) Probe(string) (Probe, error) { return discardProbe{}, nil }
func (*discardProvider) Load() error                 { return nil }
func (*discardProvider) Close() error                { return nil }

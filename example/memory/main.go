// FILE: example/memory/main.go
package main

import (
	"fmt"
	"log/slog"

	dtrace "github.com/oxidecomputer/slog-dtrace"
)

// Demonstrates the wire payload without needing root or a tracing
// runtime: the memory provider captures what a consumer would see.
func main() {
	provider := dtrace.NewMemoryProvider("slog")
	handler, err := dtrace.NewBuilder().WithProvider(provider).Build()
	if err != nil {
		panic(err)
	}
	defer handler.Close()

	log := slog.New(handler).With("service", "demo")

	log.Warn("disk nearly full", "pct", 91)
	log.Info("compaction finished", "took", "1.2s", "tables", 4)
	log.Error("replication lag", "peer", "10.0.0.7", "behind", 1500)

	for _, probe := range []string{"warn", "info", "error"} {
		for _, payload := range provider.Payloads(probe) {
			fmt.Printf("%s: %s\n", probe, payload)
		}
	}

	stats := handler.Stats()
	fmt.Printf("\nrecords=%d fired=%d encodeErrors=%d\n",
		stats.Records, stats.Fired, stats.EncodeErrors)
}

// FILE: cmd/simple/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	dtrace "github.com/oxidecomputer/slog-dtrace"
	_ "github.com/oxidecomputer/slog-dtrace/usdt"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[dtrace]
  provider = "usdt"
  name = "slog"
  max_payload_kb = 64
`

func main() {
	fmt.Println("--- Simple Drain Example ---")

	// Create dummy config file
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		// Continue with defaults
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	cfg, err := dtrace.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		cfg = dtrace.DefaultConfig()
	}

	handler, err := dtrace.WithHandler(cfg, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build drain: %v\n", err)
		os.Exit(1)
	}
	defer handler.Close()

	log := slog.New(handler)

	log.Warn("printed and traced", "pid", os.Getpid())
	log.Info("traced only", "hint", "attach bpftrace to see this")
	log.Debug("traced only too", "detail", 42)

	stats := handler.Stats()
	fmt.Printf("records=%d fired=%d relayed=%d\n", stats.Records, stats.Fired, stats.Relayed)
}

// FILE: example/simple/main.go
package main

import (
	"log/slog"
	"os"
	"time"

	dtrace "github.com/oxidecomputer/slog-dtrace"
	_ "github.com/oxidecomputer/slog-dtrace/usdt"
)

// Only warnings and above are printed to the terminal; every record,
// regardless of level, is visible to an attached trace consumer:
//
//	# bpftrace -e 'usdt:*:slog:* { printf("%s\n", str(arg0)); }'
//	# dtrace -Z -n 'slog*::: { printf("%s\n", copyinstr(arg0)); }' -q
func main() {
	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})

	handler, err := dtrace.WithHandler(nil, console)
	if err != nil {
		panic(err)
	}
	defer handler.Close()

	log := slog.New(handler).With("key", "value")

	for {
		log.Warn("a warning message for everyone", "cool", true)
		log.Info("info is just for dtrace", "hello", "from dtrace", "cool", true)
		log.Debug("only dtrace gets debug messages", "hello", "from dtrace", "cool", true)
		time.Sleep(time.Second)
	}
}

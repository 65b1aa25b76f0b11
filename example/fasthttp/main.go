// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	dtrace "github.com/oxidecomputer/slog-dtrace"
	"github.com/oxidecomputer/slog-dtrace/compat"
	_ "github.com/oxidecomputer/slog-dtrace/usdt"
)

func main() {
	// Console output at warn and above; probes see everything,
	// including fasthttp's internal chatter
	console := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
	handler, err := dtrace.WithHandler(nil, console)
	if err != nil {
		panic(err)
	}
	defer handler.Close()

	logger := slog.New(handler)

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(slog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:         "traced-server",
		Concurrency:  fasthttp.DefaultConcurrency,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) (slog.Level, bool) {
	// Inspect fasthttp-specific message patterns
	if strings.Contains(msg, "connection cannot be served") {
		return slog.LevelWarn, true
	}
	if strings.Contains(msg, "error when serving connection") {
		return slog.LevelError, true
	}
	return compat.DetectLogLevel(msg)
}

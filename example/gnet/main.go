// FILE: example/gnet/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/panjf2000/gnet/v2"

	dtrace "github.com/oxidecomputer/slog-dtrace"
	"github.com/oxidecomputer/slog-dtrace/compat"
	_ "github.com/oxidecomputer/slog-dtrace/usdt"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	console := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	handler, err := dtrace.WithHandler(nil, console)
	if err != nil {
		panic(err)
	}
	defer handler.Close()

	gnetAdapter := compat.NewGnetAdapter(slog.New(handler))

	// Configure gnet server with the traced logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}

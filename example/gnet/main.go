// FILE: example/gnet/main.go
package main

import (
	"github.com/lixenwraith/sdklog"
	"github.com/lixenwraith/sdklog/compat"
	"github.com/panjf2000/gnet/v2"
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
	cfg := sdklog.DefaultConfig()
	err := cfg.ApplyOverride(
		"directory=/var/log/gnet",
		"file_level=debug",
		"console_level=warning",
	)
	if err != nil {
		panic(err)
	}

	logger, err := sdklog.New(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(logger, compat.WithGnetSource("echo"))

	// Configure gnet server with the logger
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

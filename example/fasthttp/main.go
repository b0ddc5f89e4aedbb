// FILE: example/fasthttp/main.go
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/sdklog"
	"github.com/lixenwraith/sdklog/compat"
	"github.com/valyala/fasthttp"
)

var logger *sdklog.Logger

func main() {
	var err error
	logger, err = sdklog.NewBuilder().
		Directory("/var/log/fasthttp").
		FileLevel(sdklog.LevelDebug).
		ConsoleLevel(sdklog.LevelWarning).
		BufferSize(2048).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(sdklog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

// requestHandler serves the log ring at /logs and greets everything else
func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")

	if string(ctx.Path()) == "/logs" {
		wait, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logs, err := logger.GetLogs(wait).Wait(wait)
		if err != nil {
			logger.Error("http", "failed to read logs", err)
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			return
		}
		ctx.SetContentType("application/x-ndjson")
		ctx.WriteString(logs)
		return
	}

	logger.Debug("http", fmt.Sprintf("served %s", ctx.Path()))
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) sdklog.Level {
	if strings.Contains(msg, "connection cannot be served") {
		return sdklog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return sdklog.LevelError
	}

	return compat.DetectLogLevel(msg)
}

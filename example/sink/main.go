// FILE: main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/sdklog"
)

const logDirectory = "./temp_logs"

// main runs one logger per sink configuration
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- Running Sink Matrix ---")
	fmt.Printf("! All file-based logs will be in the '%s' directory.\n\n", logDirectory)

	runPhase("1: File-Only", "file_only_", sdklog.LevelOff, sdklog.LevelDebug)
	runPhase("2: Console-Only", "console_only_", sdklog.LevelDebug, sdklog.LevelOff)
	runPhase("3: Console WARNING, File ERROR", "split_", sdklog.LevelWarning, sdklog.LevelError)
	runPhase("4: No Output", "none_", sdklog.LevelOff, sdklog.LevelOff)

	fmt.Println("\n--- Sink Matrix Complete ---")
	fmt.Printf("Check the '%s' directory for log files.\n", logDirectory)
}

// runPhase logs every level through a fresh logger, then prints what the file ring holds
func runPhase(phase, prefix string, consoleLevel, fileLevel sdklog.Level) {
	fmt.Printf("\n[Phase %s] console=%s file=%s\n", phase, consoleLevel, fileLevel)

	logger, err := sdklog.NewBuilder().
		Directory(logDirectory).
		FilePrefix(prefix).
		ConsoleLevel(consoleLevel).
		FileLevel(fileLevel).
		Build()
	if err != nil {
		fmt.Printf("  Fatal: could not build logger: %v\n", err)
		os.Exit(1)
	}

	source := "phase" + phase[:1]
	logger.Debug(source, "debug message")
	logger.Info(source, "info message")
	logger.Warning(source, "warning message")
	logger.Error(source, "error message", sdklog.WithStack(errors.New("simulated failure")))
	logger.Fatal(source, "fatal message", errors.New("simulated fatal cause"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logs, err := logger.GetLogs(ctx).Wait(ctx)
	if err != nil {
		fmt.Printf("  Error reading logs: %v\n", err)
	} else {
		fmt.Printf("  File ring holds %d bytes\n", len(logs))
	}

	if fileLevel != sdklog.LevelOff {
		dest := filepath.Join(logDirectory, prefix+"export.txt")
		if _, err := logger.CopyLogs(ctx, dest).Wait(ctx); err != nil {
			fmt.Printf("  Error exporting logs: %v\n", err)
		} else {
			fmt.Printf("  Exported to %s\n", dest)
		}
	}

	if err := logger.Shutdown(time.Second); err != nil {
		fmt.Printf("  Error during shutdown: %v\n", err)
	}
}

// --- File: default.go ---
package sdklog

import (
	"context"
	"sync/atomic"
	"time"
)

// Global instance for package-level functions, nil until Init
var defaultLogger atomic.Pointer[Logger]

// Init creates the package-level logger from cfg, replacing and shutting down
// any previous one.
func Init(cfg *Config, opts ...Option) error {
	l, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	if old := defaultLogger.Swap(l); old != nil {
		return old.Shutdown()
	}
	return nil
}

// Default returns the package-level logger, nil before Init
func Default() *Logger {
	return defaultLogger.Load()
}

// Log logs through the package-level logger. It is a no-op before Init.
func Log(source string, level Level, message string, cause error) {
	if l := defaultLogger.Load(); l != nil {
		l.Log(source, level, message, cause)
	}
}

// GetLogs reads the package-level logger's files, empty before Init
func GetLogs(ctx context.Context) *Future[string] {
	if l := defaultLogger.Load(); l != nil {
		return l.GetLogs(ctx)
	}
	return resolvedFuture("", nil)
}

// CopyLogs merges the package-level logger's files into dest
func CopyLogs(ctx context.Context, dest string) *Future[string] {
	if l := defaultLogger.Load(); l != nil {
		return l.CopyLogs(ctx, dest)
	}
	return resolvedFuture(dest, nil)
}

// Flush flushes the package-level logger
func Flush(ctx context.Context) error {
	if l := defaultLogger.Load(); l != nil {
		return l.Flush(ctx)
	}
	return nil
}

// Shutdown drains and detaches the package-level logger
func Shutdown(timeout ...time.Duration) error {
	if l := defaultLogger.Swap(nil); l != nil {
		return l.Shutdown(timeout...)
	}
	return nil
}

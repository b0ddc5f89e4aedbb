// FILE: lixenwraith/sdklog/constant.go
package sdklog

import (
	"time"
)

// Log levels, ordered by rank. A higher rank is more verbose.
const (
	LevelOff Level = iota
	LevelFatal
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

// Storage
const (
	// Floor for the per-file size ceiling, smaller values are clamped up
	MinFileSizeLimitKB int64 = 100
	// Size multiplier for KB
	sizeMultiplier = 1024
	// Extension of managed log files
	logExtension = ".log"
)

// Source tag used for records the logger emits about itself
const internalSource = "sdklog"

// Default Shutdown wait for the file worker to drain
const defaultShutdownTimeout = 2 * time.Second

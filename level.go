// FILE: lixenwraith/sdklog/level.go
package sdklog

import (
	"strconv"
	"strings"
)

// Level is the severity rank of a record or the minimum rank a sink accepts.
type Level int64

// String returns the level tag used by both formatters.
func (lv Level) String() string {
	switch lv {
	case LevelOff:
		return "OFF"
	case LevelFatal:
		return "FATAL"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "LEVEL(" + strconv.FormatInt(int64(lv), 10) + ")"
	}
}

// Valid reports whether the level is one of the defined ranks.
func (lv Level) Valid() bool {
	return lv >= LevelOff && lv <= LevelDebug
}

// ShouldEmit is the filtering contract shared by every sink: a sink configured
// at minimum emits a record iff the record's rank is positive and not above
// minimum. LevelOff as minimum therefore suppresses everything, FATAL included.
func ShouldEmit(record, minimum Level) bool {
	return record > LevelOff && minimum >= record
}

// ParseLevel converts a level name or numeric rank to a Level.
func ParseLevel(levelStr string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	switch s {
	case "off", "none":
		return LevelOff, nil
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil && Level(n).Valid() {
		return Level(n), nil
	}
	return LevelOff, fmtErrorf("invalid level string: '%s' (use off, fatal, error, warning, info, debug)", levelStr)
}

// severityClass is the console stream class a level is written to
type severityClass int

const (
	classDebug severityClass = iota
	classInfo
	classWarn
	classError
	classCount
)

func (lv Level) class() severityClass {
	switch lv {
	case LevelDebug:
		return classDebug
	case LevelInfo:
		return classInfo
	case LevelWarning:
		return classWarn
	default:
		return classError
	}
}

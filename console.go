// FILE: lixenwraith/sdklog/console.go
package sdklog

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/lixenwraith/sdklog/formatter"
)

// Console targets
const (
	ConsoleTargetSplit  = "split" // debug/info to stdout, warning and above to stderr
	ConsoleTargetStdout = "stdout"
	ConsoleTargetStderr = "stderr"
)

// ConsoleSink writes records synchronously on the caller's goroutine, one
// writer per severity class. Write errors are swallowed.
type ConsoleSink struct {
	level     Level
	formatter formatter.Formatter
	writers   [classCount]io.Writer
	mu        sync.Mutex // serializes writes across classes sharing a writer
}

// NewConsoleSink creates a console sink writing to the process streams
// selected by target.
func NewConsoleSink(level Level, f formatter.Formatter, target string) *ConsoleSink {
	switch target {
	case ConsoleTargetStdout:
		return NewConsoleSinkWriters(level, f, os.Stdout, os.Stdout)
	case ConsoleTargetStderr:
		return NewConsoleSinkWriters(level, f, os.Stderr, os.Stderr)
	default:
		return NewConsoleSinkWriters(level, f, os.Stdout, os.Stderr)
	}
}

// NewConsoleSinkWriters creates a console sink with explicit writers: out
// receives debug and info records, errOut receives warning, error and fatal.
func NewConsoleSinkWriters(level Level, f formatter.Formatter, out, errOut io.Writer) *ConsoleSink {
	if f == nil {
		f = formatter.NewConsole()
	}
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	s := &ConsoleSink{level: level, formatter: f}
	s.writers[classDebug] = out
	s.writers[classInfo] = out
	s.writers[classWarn] = errOut
	s.writers[classError] = errOut
	return s
}

// Emit implements Sink
func (s *ConsoleSink) Emit(r Record) {
	if !ShouldEmit(r.Level, s.level) {
		return
	}

	data := s.formatter.Format(r.consoleEntry())
	w := s.writers[r.Level.class()]

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = w.Write(data)

	// Fatal records also carry the cause's message to the error stream
	if r.Level == LevelFatal && r.Cause != nil {
		causeLine := s.formatter.Format(formatter.Entry{
			Time:    r.Time,
			Level:   r.Level.String(),
			Source:  r.Source,
			Message: "cause: " + r.Cause.Error(),
		})
		_, _ = s.writers[classError].Write(causeLine)
	}
}

// Level implements Sink
func (s *ConsoleSink) Level() Level {
	return s.level
}

// Flush implements Sink. Console writes are synchronous, except for *os.File
// writers which are synced.
func (s *ConsoleSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.writers {
		if f, ok := w.(*os.File); ok {
			_ = f.Sync()
		}
	}
	return nil
}

// Close implements Sink
func (s *ConsoleSink) Close() error {
	return nil
}

func (s *ConsoleSink) sink() {}

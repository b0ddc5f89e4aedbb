// FILE: lixenwraith/sdklog/utility.go
package sdklog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Frames captured by WithStack
const maxStackDepth = 32

// StackTracer is implemented by errors that carry their own call frames.
// The file formatter writes these frames as the record's stacktrace.
type StackTracer interface {
	StackTrace() []string
}

// stackError attaches caller frames to an error
type stackError struct {
	err    error
	frames []string
}

func (e *stackError) Error() string        { return e.err.Error() }
func (e *stackError) Unwrap() error        { return e.err }
func (e *stackError) StackTrace() []string { return e.frames }

// WithStack annotates err with the frames of its caller. Errors that already
// carry frames are returned unchanged. WithStack(nil) returns nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	var st StackTracer
	if errors.As(err, &st) {
		return err
	}
	return &stackError{err: err, frames: callerFrames(maxStackDepth, 1)}
}

// callerFrames returns up to depth frames, skipping skip frames above its caller.
func callerFrames(depth int, skip int) []string {
	pc := make([]uintptr, depth)
	n := runtime.Callers(skip+2, pc) // +2 for runtime.Callers and callerFrames
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, "at "+filepath.Base(frame.Function)+
			"("+filepath.Base(frame.File)+":"+strconv.Itoa(frame.Line)+")")
		if !more {
			break
		}
	}
	return trace
}

// rootCause follows the unwrap chain to its end. For joined errors the first
// branch is followed.
func rootCause(err error) error {
	for err != nil {
		var next error
		switch x := err.(type) {
		case interface{ Unwrap() error }:
			next = x.Unwrap()
		case interface{ Unwrap() []error }:
			if errs := x.Unwrap(); len(errs) > 0 {
				next = errs[0]
			}
		}
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// stackLines flattens a cause into stacktrace lines: the cause's frames (or its
// message when it has none) and, when the root cause differs, a "Caused by"
// line followed by the root's own frames.
func stackLines(cause error) []string {
	if cause == nil {
		return nil
	}

	var lines []string
	var st StackTracer
	if errors.As(cause, &st) && len(st.StackTrace()) > 0 {
		lines = append(lines, st.StackTrace()...)
	} else {
		lines = append(lines, cause.Error())
	}

	root := rootCause(cause)
	if root != nil && root.Error() != cause.Error() {
		lines = append(lines, "Caused by: "+root.Error())
		if rst, ok := root.(StackTracer); ok {
			lines = append(lines, rst.StackTrace()...)
		}
	}
	return lines
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "sdklog: ") {
		format = "sdklog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// internalLog writes logger diagnostics to stderr when enabled
func internalLog(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}

	if !strings.HasPrefix(format, "sdklog: ") {
		format = "sdklog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}

// FILE: lixenwraith/sdklog/logger.go
package sdklog

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/lixenwraith/sdklog/formatter"
)

// Logger fans each record out to its configured sinks. A sink whose level is
// LevelOff is never constructed.
type Logger struct {
	config   *Config
	sinks    []Sink
	console  *ConsoleSink
	file     *FileSink
	maxLevel Level // most verbose level any sink accepts

	shutdownCalled atomic.Bool
}

// Option customizes a Logger beyond its Config
type Option func(*options)

type options struct {
	consoleOut    io.Writer
	consoleErr    io.Writer
	consoleFormat formatter.Formatter
	fileFormat    formatter.Formatter
}

// WithConsoleWriters replaces the console streams: out receives debug and
// info records, errOut receives warning and above.
func WithConsoleWriters(out, errOut io.Writer) Option {
	return func(o *options) {
		o.consoleOut = out
		o.consoleErr = errOut
	}
}

// WithConsoleFormatter replaces the console formatter
func WithConsoleFormatter(f formatter.Formatter) Option {
	return func(o *options) {
		o.consoleFormat = f
	}
}

// WithFileFormatter replaces the file formatter
func WithFileFormatter(f formatter.Formatter) Option {
	return func(o *options) {
		o.fileFormat = f
	}
}

// New creates a Logger from a configuration. Out-of-range size limit and file
// count are clamped; other invalid settings are rejected.
func New(cfg *Config, opts ...Option) (*Logger, error) {
	if cfg == nil {
		return nil, fmtErrorf("configuration cannot be nil")
	}
	cfg = cfg.Clone()
	cfg.clamp()
	if err := cfg.Validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}

	o := &options{
		consoleFormat: formatter.NewConsole(),
		fileFormat:    formatter.NewFile(),
	}
	for _, opt := range opts {
		opt(o)
	}

	l := &Logger{config: cfg}

	if cfg.ConsoleLevel != LevelOff {
		if o.consoleOut != nil || o.consoleErr != nil {
			l.console = NewConsoleSinkWriters(cfg.ConsoleLevel, o.consoleFormat, o.consoleOut, o.consoleErr)
		} else {
			l.console = NewConsoleSink(cfg.ConsoleLevel, o.consoleFormat, cfg.ConsoleTarget)
		}
		l.sinks = append(l.sinks, l.console)
	}

	if cfg.FileLevel != LevelOff {
		fs, err := NewFileSink(FileSinkConfig{
			Level:                  cfg.FileLevel,
			Directory:              cfg.Directory,
			Prefix:                 cfg.FilePrefix,
			Count:                  int(cfg.FileCount),
			SizeLimitKB:            cfg.FileSizeLimitKB,
			BufferSize:             int(cfg.BufferSize),
			InternalErrorsToStderr: cfg.InternalErrorsToStderr,
			Formatter:              o.fileFormat,
		})
		if err != nil {
			return nil, err
		}
		l.file = fs
		l.sinks = append(l.sinks, l.file)
	}

	for _, s := range l.sinks {
		if s.Level() > l.maxLevel {
			l.maxLevel = s.Level()
		}
	}

	return l, nil
}

// Log builds one record and hands it to every sink. It never blocks on file I/O.
func (l *Logger) Log(source string, level Level, message string, cause error) {
	if !l.Enabled(level) || l.shutdownCalled.Load() {
		return
	}

	record := NewRecord(source, level, message, cause)
	for _, s := range l.sinks {
		s.Emit(record)
	}
}

// Enabled reports whether at least one sink would emit a record at level
func (l *Logger) Enabled(level Level) bool {
	return ShouldEmit(level, l.maxLevel)
}

// Debug logs a message at debug level
func (l *Logger) Debug(source, message string, cause ...error) {
	l.Log(source, LevelDebug, message, firstCause(cause))
}

// Info logs a message at info level
func (l *Logger) Info(source, message string, cause ...error) {
	l.Log(source, LevelInfo, message, firstCause(cause))
}

// Warning logs a message at warning level
func (l *Logger) Warning(source, message string, cause ...error) {
	l.Log(source, LevelWarning, message, firstCause(cause))
}

// Error logs a message at error level
func (l *Logger) Error(source, message string, cause ...error) {
	l.Log(source, LevelError, message, firstCause(cause))
}

// Fatal logs a message at fatal level. It does not exit the process.
func (l *Logger) Fatal(source, message string, cause ...error) {
	l.Log(source, LevelFatal, message, firstCause(cause))
}

// Dump logs a labelled, structured rendering of v
func (l *Logger) Dump(source string, level Level, label string, v any) {
	if !l.Enabled(level) {
		return
	}

	var b bytes.Buffer
	dumper := &spew.ConfigState{
		Indent:                  " ",
		MaxDepth:                10,
		DisablePointerAddresses: true, // Cleaner for logs
		DisableCapacities:       true, // Less noise
		SortKeys:                true, // Consistent map output
	}
	dumper.Fdump(&b, v)

	l.Log(source, level, label+": "+string(bytes.TrimSpace(b.Bytes())), nil)
}

// GetLogs returns the content of the managed log files, newest file first.
// Without a file sink the future resolves to an empty string.
func (l *Logger) GetLogs(ctx context.Context) *Future[string] {
	if l.file == nil {
		return resolvedFuture("", nil)
	}
	return l.file.ReadAll(ctx)
}

// CopyLogs appends the managed log files to dest and resolves to dest.
// Without a file sink nothing is written.
func (l *Logger) CopyLogs(ctx context.Context, dest string) *Future[string] {
	if l.file == nil {
		return resolvedFuture(dest, nil)
	}
	return l.file.MergeInto(ctx, dest)
}

// Flush waits until every sink has persisted previously logged records
func (l *Logger) Flush(ctx context.Context) error {
	var finalErr error
	for _, s := range l.sinks {
		if err := s.Flush(ctx); err != nil {
			finalErr = combineErrors(finalErr, err)
		}
	}
	return finalErr
}

// Shutdown stops accepting records and drains the file sink.
// If no timeout is provided, defaultShutdownTimeout is used.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.shutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	effectiveTimeout := defaultShutdownTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		effectiveTimeout = timeout[0]
	}

	done := make(chan error, 1)
	go func() {
		var finalErr error
		for _, s := range l.sinks {
			if err := s.Close(); err != nil {
				finalErr = combineErrors(finalErr, err)
			}
		}
		done <- finalErr
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(effectiveTimeout):
		return fmtErrorf("file worker did not drain within timeout (%v)", effectiveTimeout)
	}
}

// Stats returns the file sink counters, zero without a file sink
func (l *Logger) Stats() Stats {
	if l.file == nil {
		return Stats{}
	}
	return l.file.Stats()
}

// GetConfig returns a copy of the effective configuration
func (l *Logger) GetConfig() *Config {
	return l.config.Clone()
}

// firstCause picks the optional cause argument
func firstCause(cause []error) error {
	if len(cause) == 0 {
		return nil
	}
	return cause[0]
}

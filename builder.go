// FILE: lixenwraith/sdklog/builder.go
package sdklog

import (
	"io"
)

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg, b.opts...)
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// ConsoleLevel sets the console sink level, LevelOff disables it.
func (b *Builder) ConsoleLevel(level Level) *Builder {
	b.cfg.ConsoleLevel = level
	return b
}

// FileLevel sets the file sink level, LevelOff disables it.
func (b *Builder) FileLevel(level Level) *Builder {
	b.cfg.FileLevel = level
	return b
}

// ConsoleLevelString sets the console level from a string.
func (b *Builder) ConsoleLevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	lv, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.ConsoleLevel = lv
	return b
}

// FileLevelString sets the file level from a string.
func (b *Builder) FileLevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	lv, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.FileLevel = lv
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// FilePrefix sets the file name prefix.
func (b *Builder) FilePrefix(prefix string) *Builder {
	b.cfg.FilePrefix = prefix
	return b
}

// FileCount sets the ring depth.
func (b *Builder) FileCount(count int64) *Builder {
	b.cfg.FileCount = count
	return b
}

// FileSizeLimitKB sets the per-file ceiling in KB.
func (b *Builder) FileSizeLimitKB(size int64) *Builder {
	b.cfg.FileSizeLimitKB = size
	return b
}

// BufferSize sets the file worker queue capacity.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// ConsoleTarget sets the console streams: split, stdout or stderr.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ConsoleWriters replaces the console streams.
func (b *Builder) ConsoleWriters(out, errOut io.Writer) *Builder {
	b.opts = append(b.opts, WithConsoleWriters(out, errOut))
	return b
}

// InternalErrorsToStderr toggles internal diagnostics on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Example usage:
// logger, err := sdklog.NewBuilder().
//
//	Directory("/var/lib/app/logs").
//	ConsoleLevelString("warning").
//	FileLevelString("debug").
//	FileSizeLimitKB(512).
//	Build()
//
// if err == nil {
//
//	 defer logger.Shutdown()
//	 logger.Info("app", "Logger initialized successfully")
//
// }

// FILE: lixenwraith/sdklog/file.go
package sdklog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/lixenwraith/sdklog/formatter"
)

// ErrClosed is returned by operations on a closed file sink
var ErrClosed = errors.New("sdklog: file sink is closed")

// FileSinkConfig configures a FileSink
type FileSinkConfig struct {
	Level                  Level
	Directory              string
	Prefix                 string // files are named <Prefix><slot>.log
	Count                  int    // ring depth, at least 1
	SizeLimitKB            int64  // per-file ceiling, clamped to MinFileSizeLimitKB
	BufferSize             int    // queue capacity
	InternalErrorsToStderr bool
	Formatter              formatter.Formatter
}

// FileSink persists records to a ring of numbered files. A single worker
// goroutine owns every file system access to the ring and processes queued
// operations strictly in submission order.
type FileSink struct {
	level          Level
	formatter      formatter.Formatter
	dir            string
	prefix         string
	count          int
	limit          int64 // bytes
	internalErrors bool

	queue  chan workUnit
	mu     sync.RWMutex // guards closed against sends on a closed queue
	closed bool
	done   chan struct{}

	state sinkState
}

// NewFileSink creates the log directory and starts the worker
func NewFileSink(cfg FileSinkConfig) (*FileSink, error) {
	if cfg.Directory == "" {
		return nil, fmtErrorf("file sink directory cannot be empty")
	}
	if cfg.Prefix == "" || strings.ContainsAny(cfg.Prefix, `/\`) {
		return nil, fmtErrorf("invalid file prefix: '%s'", cfg.Prefix)
	}
	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", cfg.Directory, err)
	}

	if cfg.Count < 1 {
		cfg.Count = 1
	}
	if cfg.SizeLimitKB < MinFileSizeLimitKB {
		cfg.SizeLimitKB = MinFileSizeLimitKB
	}
	if cfg.BufferSize < 1 {
		cfg.BufferSize = int(defaultConfig.BufferSize)
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewFile()
	}

	s := &FileSink{
		level:          cfg.Level,
		formatter:      cfg.Formatter,
		dir:            cfg.Directory,
		prefix:         cfg.Prefix,
		count:          cfg.Count,
		limit:          cfg.SizeLimitKB * sizeMultiplier,
		internalErrors: cfg.InternalErrorsToStderr,
		queue:          make(chan workUnit, cfg.BufferSize),
		done:           make(chan struct{}),
	}
	if fi, err := os.Stat(s.slotPath(1)); err == nil {
		s.state.ActiveSize.Store(fi.Size())
	}

	go s.processQueue()
	return s, nil
}

// Emit implements Sink
func (s *FileSink) Emit(r Record) {
	s.Append(r)
}

// Append queues the record for writing. Records below the sink's level are
// not queued at all and resolve false immediately, as do records dropped on
// a full queue. On a closed sink the future resolves false with ErrClosed.
// Pending drops are reported ahead of the record.
func (s *FileSink) Append(r Record) *Future[bool] {
	if !ShouldEmit(r.Level, s.level) {
		return resolvedFuture(false, nil)
	}

	f := newFuture[bool]()
	unit := workUnit{
		run: func() {
			if err := s.writeRecord(s.formatter.Format(r.entry())); err != nil {
				s.state.TotalFailed.Add(1)
				internalLog(s.internalErrors, "failed to write log record: %v\n", err)
				f.resolve(false, err)
				return
			}
			s.state.TotalProcessed.Add(1)
			f.resolve(true, nil)
		},
		fail: func(err error) { f.resolve(false, err) },
	}

	s.reportDrops()
	switch err := s.trySubmit(unit); {
	case errors.Is(err, ErrClosed):
		f.resolve(false, err)
	case err != nil:
		s.state.TotalDropped.Add(1)
		s.state.PendingDrops.Add(1)
		f.resolve(false, nil)
	}
	return f
}

// ReadAll returns the content of slots 1..N concatenated, newest file first
func (s *FileSink) ReadAll(ctx context.Context) *Future[string] {
	f := newFuture[string]()
	err := s.submit(ctx, workUnit{
		run: func() {
			var sb strings.Builder
			err := s.concat(&sb)
			if err != nil {
				s.state.TotalFailed.Add(1)
				internalLog(s.internalErrors, "failed to read log files: %v\n", err)
			}
			f.resolve(sb.String(), err)
		},
		fail: func(err error) { f.resolve("", err) },
	})
	if err != nil {
		f.resolve("", err)
	}
	return f
}

// MergeInto appends the slot 1..N content to the file at path, creating it if
// absent. The managed files are left untouched. The future resolves to path.
func (s *FileSink) MergeInto(ctx context.Context, path string) *Future[string] {
	f := newFuture[string]()
	err := s.submit(ctx, workUnit{
		run: func() {
			err := s.mergeInto(path)
			if err != nil {
				s.state.TotalFailed.Add(1)
				internalLog(s.internalErrors, "failed to merge log files into '%s': %v\n", path, err)
			}
			f.resolve(path, err)
		},
		fail: func(err error) { f.resolve(path, err) },
	})
	if err != nil {
		f.resolve(path, err)
	}
	return f
}

// Flush implements Sink: it waits until every previously queued operation
// has been processed.
func (s *FileSink) Flush(ctx context.Context) error {
	confirm := make(chan struct{})
	if err := s.submit(ctx, workUnit{run: func() { close(confirm) }}); err != nil {
		return err
	}
	select {
	case <-confirm:
		return nil
	case <-ctx.Done():
		return fmtErrorf("timeout waiting for flush confirmation: %w", ctx.Err())
	}
}

// Close implements Sink. Queued operations are drained before the worker
// exits; later operations fail with ErrClosed.
func (s *FileSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
	return nil
}

// Level implements Sink
func (s *FileSink) Level() Level {
	return s.level
}

// Stats returns a snapshot of the worker counters
func (s *FileSink) Stats() Stats {
	return s.state.snapshot()
}

// Paths returns the slot paths in slot order, whether or not they exist
func (s *FileSink) Paths() []string {
	paths := make([]string, s.count)
	for i := range paths {
		paths[i] = s.slotPath(i + 1)
	}
	return paths
}

func (s *FileSink) sink() {}

// slotPath returns the path of a 1-based slot
func (s *FileSink) slotPath(slot int) string {
	return filepath.Join(s.dir, s.prefix+strconv.Itoa(slot)+logExtension)
}

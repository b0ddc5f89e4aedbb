// FILE: lixenwraith/sdklog/processor.go
package sdklog

import (
	"context"
	"errors"
	"fmt"
)

// errQueueFull is returned by trySubmit when the worker queue has no space
var errQueueFull = errors.New("sdklog: file worker queue is full")

// workUnit is one operation for the file worker. fail, when set, receives the
// error of a panicking run so the caller's future still resolves.
type workUnit struct {
	run  func()
	fail func(err error)
}

// processQueue is the file worker loop. It runs every queued unit in order
// and exits once the queue is closed and drained.
func (s *FileSink) processQueue() {
	defer close(s.done)

	for unit := range s.queue {
		s.execute(unit)
	}
}

// execute runs one unit, a panicking unit does not terminate the worker
func (s *FileSink) execute(unit workUnit) {
	defer func() {
		if r := recover(); r != nil {
			s.state.TotalFailed.Add(1)
			internalLog(s.internalErrors, "recovered from panic in file worker: %v\n", r)
			if unit.fail != nil {
				unit.fail(fmtErrorf("panic in file worker: %v", r))
			}
		}
	}()
	unit.run()
}

// trySubmit queues a unit without blocking. It returns ErrClosed on a closed
// sink and errQueueFull when the queue has no space.
func (s *FileSink) trySubmit(unit workUnit) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	select {
	case s.queue <- unit:
		return nil
	default:
		return errQueueFull
	}
}

// submit queues a unit, waiting for queue space until ctx ends
func (s *FileSink) submit(ctx context.Context, unit workUnit) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	select {
	case s.queue <- unit:
		return nil
	case <-ctx.Done():
		return fmtErrorf("failed to queue file operation: %w", ctx.Err())
	}
}

// reportDrops queues an error record carrying the number of records dropped
// since the last report. The count is restored if the report cannot be queued.
func (s *FileSink) reportDrops() {
	dropped := s.state.PendingDrops.Swap(0)
	if dropped == 0 {
		return
	}
	if !ShouldEmit(LevelError, s.level) {
		return
	}

	report := NewRecord(internalSource, LevelError, fmt.Sprintf("log records were dropped, dropped_count=%d", dropped), nil)
	unit := workUnit{run: func() {
		if err := s.writeRecord(s.formatter.Format(report.entry())); err != nil {
			s.state.TotalFailed.Add(1)
			internalLog(s.internalErrors, "failed to write drop report: %v\n", err)
		}
	}}
	if s.trySubmit(unit) != nil {
		s.state.PendingDrops.Add(dropped)
	}
}

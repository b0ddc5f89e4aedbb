// FILE: lixenwraith/sdklog/state.go
package sdklog

import (
	"sync/atomic"
)

// sinkState holds the file worker's counters, readable from any goroutine
type sinkState struct {
	TotalProcessed atomic.Uint64 // records successfully written
	TotalDropped   atomic.Uint64 // records dropped on a full queue
	PendingDrops   atomic.Uint64 // drops not yet reported in the file
	TotalRotations atomic.Uint64 // completed rotations
	TotalFailed    atomic.Uint64 // failed or panicked units of work
	ActiveSize     atomic.Int64  // size of slot 1 after the last write
}

// snapshot returns the current counters
func (s *sinkState) snapshot() Stats {
	return Stats{
		Processed:   s.TotalProcessed.Load(),
		Dropped:     s.TotalDropped.Load(),
		Rotations:   s.TotalRotations.Load(),
		Failed:      s.TotalFailed.Load(),
		ActiveBytes: s.ActiveSize.Load(),
	}
}

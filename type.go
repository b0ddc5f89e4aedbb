// FILE: lixenwraith/sdklog/type.go
package sdklog

import (
	"context"
)

// Sink is a configured destination for records with its own minimum level.
// The set of sinks is closed: ConsoleSink and FileSink.
type Sink interface {
	// Emit renders and persists the record if the sink's level accepts it
	Emit(r Record)
	// Level returns the sink's minimum level
	Level() Level
	// Flush waits until previously emitted records are persisted
	Flush(ctx context.Context) error
	// Close releases the sink, draining pending work first
	Close() error

	sink()
}

// Stats is a snapshot of the file sink's worker counters
type Stats struct {
	Processed   uint64 // records written
	Dropped     uint64 // records dropped on a full queue
	Rotations   uint64 // completed rotations
	Failed      uint64 // units of work that failed
	ActiveBytes int64  // size of slot 1 after the last write
}

// FILE: lixenwraith/sdklog/record.go
package sdklog

import (
	"time"

	"github.com/lixenwraith/sdklog/formatter"
)

// Record is a single log entry. It is immutable once constructed; the
// timestamp is taken at construction so formatting order never matters.
type Record struct {
	Source  string
	Level   Level
	Message string
	Cause   error
	Time    time.Time
}

// NewRecord creates a record stamped with the current UTC time
func NewRecord(source string, level Level, message string, cause error) Record {
	return Record{
		Source:  source,
		Level:   level,
		Message: message,
		Cause:   cause,
		Time:    time.Now().UTC(),
	}
}

// entry converts the record to the formatter's view
func (r Record) entry() formatter.Entry {
	return formatter.Entry{
		Time:    r.Time,
		Level:   r.Level.String(),
		Source:  r.Source,
		Message: r.Message,
		Stack:   stackLines(r.Cause),
	}
}

// consoleEntry converts the record without the stack, the console renders none
func (r Record) consoleEntry() formatter.Entry {
	return formatter.Entry{
		Time:    r.Time,
		Level:   r.Level.String(),
		Source:  r.Source,
		Message: r.Message,
	}
}

// Package formatter renders log entries for the console and file sinks.
// Both formatters are pure: every call allocates its own buffer, so a single
// formatter value is safe for concurrent use.
package formatter

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TimeFormat is the file form timestamp layout, always rendered in UTC
const TimeFormat = "2006-01-02T15:04:05.000Z"

const hexChars = "0123456789abcdef"

// Entry is the formatter's view of a log record
type Entry struct {
	Time    time.Time
	Level   string   // level tag, e.g. "ERROR"
	Source  string   // source tag of the caller
	Message string
	Stack   []string // flattened frames of the cause, nil when there is none
}

// Formatter renders an entry to bytes, newline terminated
type Formatter interface {
	Format(e Entry) []byte
}

// Console renders terse single lines: [LEVEL][source]: message
type Console struct{}

// NewConsole creates a console formatter
func NewConsole() Console {
	return Console{}
}

// Format implements Formatter
func (Console) Format(e Entry) []byte {
	buf := make([]byte, 0, len(e.Level)+len(e.Source)+len(e.Message)+8)
	buf = append(buf, '[')
	buf = append(buf, e.Level...)
	buf = append(buf, "]["...)
	buf = append(buf, e.Source...)
	buf = append(buf, "]: "...)
	buf = append(buf, e.Message...)
	buf = append(buf, '\n')
	return buf
}

// File renders one JSON object per line: time, level, msg and optional stacktrace
type File struct{}

// NewFile creates a file formatter
func NewFile() File {
	return File{}
}

// Format implements Formatter
func (File) Format(e Entry) []byte {
	var stack string
	if len(e.Stack) > 0 {
		stack = strings.Join(e.Stack, "\n")
	}

	buf := make([]byte, 0, len(e.Message)+len(stack)+80)
	buf = append(buf, `{"time":"`...)
	buf = e.Time.UTC().AppendFormat(buf, TimeFormat)
	buf = append(buf, `","level":"`...)
	buf = appendString(buf, e.Level)
	buf = append(buf, `","msg":"`...)
	buf = appendString(buf, e.Message)
	buf = append(buf, '"')

	if len(e.Stack) > 0 {
		buf = append(buf, `,"stacktrace":"`...)
		buf = appendString(buf, stack)
		buf = append(buf, '"')
	}

	buf = append(buf, '}', '\n')
	return buf
}

// appendString appends str to buf, escaping JSON special characters.
// Invalid UTF-8 becomes \ufffd and U+2028/U+2029 are escaped.
func appendString(buf []byte, str string) []byte {
	start := 0
	for i := 0; i < len(str); {
		if c := str[i]; c < utf8.RuneSelf {
			if c >= ' ' && c != '"' && c != '\\' {
				i++
				continue
			}
			buf = append(buf, str[start:i]...)
			switch c {
			case '\\', '"':
				buf = append(buf, '\\', c)
			case '\n':
				buf = append(buf, '\\', 'n')
			case '\r':
				buf = append(buf, '\\', 'r')
			case '\t':
				buf = append(buf, '\\', 't')
			case '\b':
				buf = append(buf, '\\', 'b')
			case '\f':
				buf = append(buf, '\\', 'f')
			default:
				buf = append(buf, `\u00`...)
				buf = append(buf, hexChars[c>>4], hexChars[c&0xF])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(str[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf = append(buf, str[start:i]...)
			buf = append(buf, `\ufffd`...)
			start = i + size
		case r == '\u2028' || r == '\u2029':
			buf = append(buf, str[start:i]...)
			buf = append(buf, `\u202`...)
			buf = append(buf, hexChars[r&0xF])
			start = i + size
		}
		i += size
	}
	return append(buf, str[start:]...)
}

// FILE: lixenwraith/sdklog/formatter/formatter_test.go
package formatter

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 123456789, time.UTC)

	t.Run("console format", func(t *testing.T) {
		data := NewConsole().Format(Entry{Time: timestamp, Level: "ERROR", Source: "rest", Message: "request failed"})
		assert.Equal(t, "[ERROR][rest]: request failed\n", string(data))
	})

	t.Run("console ignores stack", func(t *testing.T) {
		data := NewConsole().Format(Entry{Level: "FATAL", Source: "push", Message: "boom", Stack: []string{"frame"}})
		assert.Equal(t, "[FATAL][push]: boom\n", string(data))
	})

	t.Run("file format", func(t *testing.T) {
		data := NewFile().Format(Entry{Time: timestamp, Level: "INFO", Source: "session", Message: "started"})
		str := string(data)
		require.True(t, strings.HasSuffix(str, "}\n"))
		assert.Equal(t, 1, strings.Count(str, "\n"))

		var result map[string]any
		err := json.Unmarshal(data[:len(data)-1], &result)
		require.NoError(t, err)

		assert.Equal(t, "2024-01-01T12:00:00.123Z", result["time"])
		assert.Equal(t, "INFO", result["level"])
		assert.Equal(t, "started", result["msg"])
		_, hasStack := result["stacktrace"]
		assert.False(t, hasStack, "stacktrace must be absent without a cause")
	})

	t.Run("file format with stack", func(t *testing.T) {
		data := NewFile().Format(Entry{
			Time:    timestamp,
			Level:   "FATAL",
			Message: "crash",
			Stack:   []string{"at main.run(main.go:10)", "Caused by: disk full", "at os.Write(file.go:1)"},
		})

		var result map[string]any
		require.NoError(t, json.Unmarshal(data[:len(data)-1], &result))
		assert.Equal(t, "at main.run(main.go:10)\nCaused by: disk full\nat os.Write(file.go:1)", result["stacktrace"])
	})

	t.Run("time rendered in UTC", func(t *testing.T) {
		zone := time.FixedZone("UTC+5", 5*3600)
		local := time.Date(2024, 1, 1, 17, 0, 0, 0, zone)
		data := NewFile().Format(Entry{Time: local, Level: "INFO", Message: "x"})
		assert.Contains(t, string(data), `"time":"2024-01-01T12:00:00.000Z"`)
	})
}

func TestFileFormatEscaping(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"quotes", `say "hi"`},
		{"backslash", `C:\temp\log`},
		{"newline", "line1\nline2"},
		{"control", "bell\x07tab\tnull\x00"},
		{"unicode", "Hello │ 世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NewFile().Format(Entry{Time: time.Now(), Level: "DEBUG", Message: tt.input})
			assert.Equal(t, 1, strings.Count(string(data), "\n"), "record must stay on one line")

			var result map[string]any
			require.NoError(t, json.Unmarshal(data[:len(data)-1], &result))
			assert.Equal(t, tt.input, result["msg"])
		})
	}
}

func TestFileFormatInvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		raw   string // escaped form in the line
		want  string // decoded value
	}{
		{"invalid byte", "bad\xffbyte", `bad\ufffdbyte`, "bad\ufffdbyte"},
		{"truncated rune", "cut\xe4\xb8", `cut\ufffd\ufffd`, "cut\ufffd\ufffd"},
		{"line separator", "a\u2028b", `a\u2028b`, "a\u2028b"},
		{"paragraph separator", "a\u2029b", `a\u2029b`, "a\u2029b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NewFile().Format(Entry{Time: time.Now(), Level: "INFO", Message: tt.input})
			assert.Contains(t, string(data), `"msg":"`+tt.raw+`"`)

			line := data[:len(data)-1]
			require.True(t, json.Valid(line))
			var result map[string]any
			require.NoError(t, json.Unmarshal(line, &result))
			assert.Equal(t, tt.want, result["msg"])
		})
	}
}

func TestFormatterConcurrentUse(t *testing.T) {
	f := NewFile()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := strings.Repeat(string(rune('a'+i)), 64)
			for j := 0; j < 100; j++ {
				data := f.Format(Entry{Time: time.Now(), Level: "INFO", Message: msg})
				assert.Contains(t, string(data), msg)
			}
		}(i)
	}
	wg.Wait()
}

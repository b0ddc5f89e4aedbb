// FILE: lixenwraith/sdklog/compat/zap.go
package compat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lixenwraith/sdklog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ zapcore.Core = (*ZapCore)(nil)

// ZapCore is a zapcore.Core that forwards entries to an sdklog.Logger.
// The first error field becomes the record's cause; other fields are
// appended to the message as sorted key=value pairs.
type ZapCore struct {
	logger *sdklog.Logger
	source string
	fields []zapcore.Field
}

// NewZapCore creates a core logging under source unless the zap logger is named
func NewZapCore(logger *sdklog.Logger, source string) *ZapCore {
	if source == "" {
		source = "zap"
	}
	return &ZapCore{logger: logger, source: source}
}

// NewZapLogger wraps a ZapCore in a *zap.Logger
func NewZapLogger(logger *sdklog.Logger, source string, opts ...zap.Option) *zap.Logger {
	return zap.New(NewZapCore(logger, source), opts...)
}

// Enabled reports whether the wrapped logger accepts the mapped level
func (c *ZapCore) Enabled(lvl zapcore.Level) bool {
	return c.logger.Enabled(ZapLevel(lvl))
}

// With returns a core carrying additional fields
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// Check adds the core to the checked entry if the level is enabled
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry into a record
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	var cause error

	for _, set := range [][]zapcore.Field{c.fields, fields} {
		for _, f := range set {
			if f.Type == zapcore.ErrorType && cause == nil {
				if err, ok := f.Interface.(error); ok {
					cause = err
					continue
				}
			}
			f.AddTo(enc)
		}
	}

	source := c.source
	if ent.LoggerName != "" {
		source = ent.LoggerName
	}

	c.logger.Log(source, ZapLevel(ent.Level), ent.Message+renderFields(enc.Fields), cause)
	return nil
}

// Sync flushes the wrapped logger
func (c *ZapCore) Sync() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return c.logger.Flush(ctx)
}

// ZapLevel maps a zap level onto the sdklog ranks. Levels above error all map to fatal.
func ZapLevel(lvl zapcore.Level) sdklog.Level {
	switch {
	case lvl <= zapcore.DebugLevel:
		return sdklog.LevelDebug
	case lvl == zapcore.InfoLevel:
		return sdklog.LevelInfo
	case lvl == zapcore.WarnLevel:
		return sdklog.LevelWarning
	case lvl == zapcore.ErrorLevel:
		return sdklog.LevelError
	default:
		return sdklog.LevelFatal
	}
}

// renderFields formats encoded fields as " k1=v1 k2=v2" in key order
func renderFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		fmt.Fprintf(&sb, "%v", fields[k])
	}
	return sb.String()
}

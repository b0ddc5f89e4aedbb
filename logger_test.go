// FILE: lixenwraith/sdklog/logger_test.go
package sdklog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

// testContext returns a context bounded for test waits
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// createTestLogger creates a file-only logger in a temp directory
func createTestLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.ConsoleLevel = LevelOff
	cfg.FileLevel = LevelDebug
	cfg.Directory = tmpDir
	cfg.FileSizeLimitKB = MinFileSizeLimitKB
	cfg.InternalErrorsToStderr = false

	logger, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Shutdown() })

	return logger, tmpDir
}

// TestNewLogger verifies the sink set follows the configured levels
func TestNewLogger(t *testing.T) {
	tests := []struct {
		name         string
		consoleLevel Level
		fileLevel    Level
		wantConsole  bool
		wantFile     bool
	}{
		{"both sinks", LevelInfo, LevelDebug, true, true},
		{"console only", LevelDebug, LevelOff, true, false},
		{"file only", LevelOff, LevelError, false, true},
		{"no sinks", LevelOff, LevelOff, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ConsoleLevel = tt.consoleLevel
			cfg.FileLevel = tt.fileLevel
			cfg.Directory = t.TempDir()

			var out, errOut syncBuffer
			logger, err := New(cfg, WithConsoleWriters(&out, &errOut))
			require.NoError(t, err)
			defer logger.Shutdown()

			assert.Equal(t, tt.wantConsole, logger.console != nil)
			assert.Equal(t, tt.wantFile, logger.file != nil)
			expected := 0
			if tt.wantConsole {
				expected++
			}
			if tt.wantFile {
				expected++
			}
			assert.Len(t, logger.sinks, expected)
		})
	}
}

func TestNewLoggerErrors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.ConsoleTarget = "syslog"
	_, err = New(cfg)
	assert.Error(t, err)

	// Directory path occupied by a regular file
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg = DefaultConfig()
	cfg.Directory = filepath.Join(blocker, "logs")
	_, err = New(cfg)
	assert.Error(t, err)
}

// TestNewLoggerClampsSizeLimit verifies an undersized ceiling is raised, not rejected
func TestNewLoggerClampsSizeLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	cfg.ConsoleLevel = LevelOff
	cfg.FileSizeLimitKB = 1
	cfg.FileCount = 0

	logger, err := New(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	assert.Equal(t, MinFileSizeLimitKB, logger.GetConfig().FileSizeLimitKB)
	assert.Equal(t, int64(1), logger.GetConfig().FileCount)
	assert.Equal(t, MinFileSizeLimitKB*sizeMultiplier, logger.file.limit)
}

// TestLoggerRoundTrip checks a logged record is read back with its message and level tag
func TestLoggerRoundTrip(t *testing.T) {
	logger, _ := createTestLogger(t)
	ctx := testContext(t)

	logger.Warning("rest", "token refresh failed")

	logs, err := logger.GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Contains(t, logs, `"level":"WARNING"`)
	assert.Contains(t, logs, "token refresh failed")
}

// TestFileLevelFilterScenario configures the file sink at ERROR with the floor
// size limit: a FATAL record is kept, a DEBUG record is not.
func TestFileLevelFilterScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleLevel = LevelOff
	cfg.FileLevel = LevelError
	cfg.FileSizeLimitKB = MinFileSizeLimitKB
	cfg.Directory = t.TempDir()

	logger, err := New(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()
	ctx := testContext(t)

	logger.Log("core", LevelFatal, "unrecoverable state", errors.New("db corrupted"))
	logger.Log("core", LevelDebug, "verbose detail", nil)

	logs, err := logger.GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Contains(t, logs, `"level":"FATAL","msg":"unrecoverable state"`)
	assert.Contains(t, logs, `"stacktrace":"db corrupted"`)
	assert.NotContains(t, logs, "verbose detail")
	assert.NotContains(t, logs, `"level":"DEBUG"`)
}

// TestConsoleOnlyScenario runs with file OFF and console DEBUG: GetLogs is
// empty while the console receives every level.
func TestConsoleOnlyScenario(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.ConsoleLevel = LevelDebug
	cfg.FileLevel = LevelOff
	cfg.Directory = tmpDir

	var out, errOut syncBuffer
	logger, err := New(cfg, WithConsoleWriters(&out, &errOut))
	require.NoError(t, err)
	defer logger.Shutdown()
	ctx := testContext(t)

	logger.Debug("app", "debug message")
	logger.Info("app", "info message")
	logger.Warning("app", "warning message")
	logger.Error("app", "error message")
	logger.Fatal("app", "fatal message")

	logs, err := logger.GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)

	assert.Contains(t, out.String(), "[DEBUG][app]: debug message")
	assert.Contains(t, out.String(), "[INFO][app]: info message")
	assert.Contains(t, errOut.String(), "[WARNING][app]: warning message")
	assert.Contains(t, errOut.String(), "[ERROR][app]: error message")
	assert.Contains(t, errOut.String(), "[FATAL][app]: fatal message")

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file must be created with file logging off")

	assert.Equal(t, Stats{}, logger.Stats())
}

// TestCopyLogsScenario merges five records into an external file and leaves
// the managed files untouched.
func TestCopyLogsScenario(t *testing.T) {
	logger, tmpDir := createTestLogger(t)
	ctx := testContext(t)

	for i := 1; i <= 5; i++ {
		logger.Info("export", "message-"+string(rune('0'+i)))
	}
	require.NoError(t, logger.Flush(ctx))

	managed := logger.file.Paths()[0]
	before, err := os.ReadFile(managed)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "bundle.txt")
	got, err := logger.CopyLogs(ctx, dest).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	exported, err := os.ReadFile(dest)
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		assert.Contains(t, string(exported), "message-"+string(rune('0'+i)))
	}

	after, err := os.ReadFile(managed)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCopyLogsWithoutFileSink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleLevel = LevelOff
	cfg.FileLevel = LevelOff

	logger, err := New(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()
	ctx := testContext(t)

	dest := filepath.Join(t.TempDir(), "bundle.txt")
	got, err := logger.CopyLogs(ctx, dest).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

// TestLoggerIndependentLevels runs console and file at different verbosities
func TestLoggerIndependentLevels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleLevel = LevelWarning
	cfg.FileLevel = LevelDebug
	cfg.Directory = t.TempDir()

	var out, errOut syncBuffer
	logger, err := New(cfg, WithConsoleWriters(&out, &errOut))
	require.NoError(t, err)
	defer logger.Shutdown()
	ctx := testContext(t)

	logger.Debug("sync", "fetching page")
	logger.Warning("sync", "slow response")

	logs, err := logger.GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Contains(t, logs, "fetching page")
	assert.Contains(t, logs, "slow response")

	assert.NotContains(t, out.String(), "fetching page")
	assert.Contains(t, errOut.String(), "[WARNING][sync]: slow response")
}

func TestLoggerEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleLevel = LevelWarning
	cfg.FileLevel = LevelInfo
	cfg.Directory = t.TempDir()

	logger, err := New(cfg, WithConsoleWriters(&syncBuffer{}, &syncBuffer{}))
	require.NoError(t, err)
	defer logger.Shutdown()

	assert.True(t, logger.Enabled(LevelFatal))
	assert.True(t, logger.Enabled(LevelInfo))
	assert.False(t, logger.Enabled(LevelDebug))
	assert.False(t, logger.Enabled(LevelOff))
}

func TestLoggerDump(t *testing.T) {
	logger, _ := createTestLogger(t)
	ctx := testContext(t)

	payload := map[string]any{"device": "pixel", "retries": 3}
	logger.Dump("push", LevelDebug, "registration", payload)

	logs, err := logger.GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Contains(t, logs, "registration: ")
	assert.Contains(t, logs, "pixel")
	assert.Contains(t, logs, "retries")
}

// TestLoggerShutdown verifies shutdown drains pending records and is idempotent
func TestLoggerShutdown(t *testing.T) {
	logger, tmpDir := createTestLogger(t)

	for i := 0; i < 50; i++ {
		logger.Info("app", "pending record")
	}
	require.NoError(t, logger.Shutdown())
	assert.NoError(t, logger.Shutdown())

	content, err := os.ReadFile(filepath.Join(tmpDir, "sdklog_1.log"))
	require.NoError(t, err)
	assert.Equal(t, 50, strings.Count(string(content), "pending record"))

	// Logging after shutdown is a silent no-op
	logger.Info("app", "after shutdown")
	assert.Equal(t, uint64(50), logger.Stats().Processed)

	ctx := testContext(t)
	_, err = logger.GetLogs(ctx).Wait(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

// TestLoggerConcurrency ensures the logger is safe for concurrent use from multiple goroutines
func TestLoggerConcurrency(t *testing.T) {
	logger, _ := createTestLogger(t)
	ctx := testContext(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Info("worker", "concurrent record")
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, logger.Flush(ctx))
	stats := logger.Stats()
	assert.Equal(t, uint64(500), stats.Processed+stats.Dropped)

	logs, err := logger.GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, int(stats.Processed), strings.Count(logs, "concurrent record"))
}

func TestDefaultLogger(t *testing.T) {
	ctx := testContext(t)

	// Before Init every call is a no-op
	Log("app", LevelError, "ignored", nil)
	logs, err := GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)

	cfg := DefaultConfig()
	cfg.ConsoleLevel = LevelOff
	cfg.Directory = t.TempDir()
	require.NoError(t, Init(cfg))
	defer Shutdown()

	require.NotNil(t, Default())
	Log("app", LevelInfo, "through default logger", nil)
	require.NoError(t, Flush(ctx))

	logs, err = GetLogs(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Contains(t, logs, "through default logger")

	dest := filepath.Join(t.TempDir(), "export.log")
	_, err = CopyLogs(ctx, dest).Wait(ctx)
	require.NoError(t, err)
	exported, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(exported), "through default logger")

	require.NoError(t, Shutdown())
	assert.Nil(t, Default())
}

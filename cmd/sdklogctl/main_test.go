package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/sdklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns its stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEmitShowExport(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--dir", dir, "--set", "console_level=off", "emit", "--level", "error", "--source", "cli", "--cause", "disk full", "first record")
	require.NoError(t, err)
	_, err = run(t, "--dir", dir, "--set", "console_level=off", "emit", "second record")
	require.NoError(t, err)

	out, err := run(t, "--dir", dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"level":"ERROR","msg":"first record","stacktrace":"disk full"`)
	assert.Contains(t, out, `"level":"INFO","msg":"second record"`)
	assert.Less(t, strings.Index(out, "first record"), strings.Index(out, "second record"))

	dest := filepath.Join(t.TempDir(), "bundle.log")
	out, err = run(t, "--dir", dir, "export", dest)
	require.NoError(t, err)
	assert.Contains(t, out, dest)

	exported, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(exported), "\n"))
}

func TestEmitConsole(t *testing.T) {
	out, err := run(t, "--dir", t.TempDir(), "--set", "console_target=stdout", "--set", "file_level=off", "emit", "--level", "debug", "--set", "console_level=debug", "hello")
	require.NoError(t, err)
	assert.Equal(t, "[DEBUG][sdklogctl]: hello\n", out)
}

func TestEmitErrors(t *testing.T) {
	_, err := run(t, "--dir", t.TempDir(), "emit", "--level", "off", "nothing")
	assert.Error(t, err)

	_, err = run(t, "--dir", t.TempDir(), "emit", "--level", "loud", "nothing")
	assert.Error(t, err)

	_, err = run(t, "--dir", t.TempDir(), "--set", "unknown_key=1", "emit", "nothing")
	assert.Error(t, err)

	_, err = run(t, "emit")
	assert.Error(t, err, "message argument is required")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "sdklog.toml")
	content := "[sdklog]\nconsole_level = 0\nfile_prefix = \"cli_\"\ndirectory = \"" + filepath.ToSlash(dir) + "\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := run(t, "--config", configPath, "emit", "from config")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "cli_1.log"))
	assert.NoError(t, err)
}

func TestRunStress(t *testing.T) {
	cfg := sdklog.DefaultConfig()
	cfg.ConsoleLevel = sdklog.LevelOff
	cfg.FileLevel = sdklog.LevelDebug
	cfg.FileSizeLimitKB = sdklog.MinFileSizeLimitKB
	cfg.BufferSize = 10000
	cfg.Directory = t.TempDir()

	logger, err := sdklog.New(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	so := &stressOptions{workers: 4, bursts: 8, recordsPerBurst: 50, maxMessageSize: 600}
	var last int
	runStress(logger, so, func(completed int) { last = completed })
	require.NoError(t, logger.Shutdown())

	stats := logger.Stats()
	assert.Equal(t, 8, last)
	assert.Equal(t, uint64(400), stats.Processed+stats.Dropped)
	assert.Greater(t, stats.Rotations, uint64(0))
}

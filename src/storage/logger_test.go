package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var console bytes.Buffer

	logger, err := NewLogger(path, &console)
	require.NoError(t, err)

	logger.Infof("loaded %d rows", 12)
	logger.Debug("hidden")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: loaded 12 rows")
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, console.String(), "INFO: loaded 12 rows")
}

func TestLoggerLevel(t *testing.T) {
	var console bytes.Buffer
	logger, err := NewLogger("", &console)
	require.NoError(t, err)

	logger.SetLevel(ERROR)
	logger.Warning("skipped")
	logger.Error("kept")
	assert.Equal(t, 1, strings.Count(console.String(), "\n"))
	assert.Contains(t, console.String(), "ERROR: kept")
}

func TestLoggerSubscribe(t *testing.T) {
	logger, err := NewLogger("", nil)
	require.NoError(t, err)

	ch := logger.Subscribe()
	logger.Info("hello")

	select {
	case msg := <-ch:
		assert.Contains(t, msg, "INFO: hello")
	default:
		t.Fatal("subscriber did not receive the entry")
	}
}

func TestLoggerRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	logger, err := NewLogger(path, nil)
	require.NoError(t, err)
	defer logger.Close()

	for i := 0; i < 10; i++ {
		logger.Info("some log line that takes space")
	}
	require.NoError(t, logger.CheckRotate(64))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestLoggerReopenAfterExternalRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	logger, err := NewLogger(path, nil)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("before")
	rotated := filepath.Join(dir, "app.log.1")
	require.NoError(t, os.Rename(path, rotated))

	require.NoError(t, logger.Reopen(path))
	logger.Info("after")

	old, err := os.ReadFile(rotated)
	require.NoError(t, err)
	assert.Contains(t, string(old), "INFO: before")
	assert.NotContains(t, string(old), "after")

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(current), "INFO: after")
	assert.NotContains(t, string(current), "before")
}

func TestLoggerReopenBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var console bytes.Buffer
	logger, err := NewLogger(path, &console)
	require.NoError(t, err)
	defer logger.Close()

	err = logger.Reopen(filepath.Join(t.TempDir(), "missing", "app.log"))
	require.Error(t, err)

	// 文件不可用时仍输出到控制台
	logger.Info("still logging")
	assert.Contains(t, console.String(), "INFO: still logging")
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		expr string
		want int64
	}{
		{"10 * 1024 * 1024", 10 * 1024 * 1024},
		{"512", 512},
		{"", 0},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.expr)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d; want %d", tt.expr, got, tt.want)
		}
	}

	_, err := ParseSize("ten * 2")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARNING, ParseLevel("WARN"))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
	assert.Equal(t, "ERROR", ERROR.String())
}

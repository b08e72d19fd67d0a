package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/notes-dash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("HOME", tmp)
	t.Setenv("NOTES_DASH_CONFIG_PATH", "")
	config.Load()
	return tmp
}

func enableLogging(t *testing.T, extra ...string) {
	t.Helper()
	t.Setenv("NOTES_DASH_LOGGING_ENABLED", "true")
	for i := 0; i+1 < len(extra); i += 2 {
		t.Setenv(extra[i], extra[i+1])
	}
	config.Load()
}

func lastLogLine(t *testing.T) string {
	t.Helper()
	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(logDir, entries[len(entries)-1].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	return lines[len(lines)-1]
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	enableLogging(t, "NOTES_DASH_LOGGING_LEVEL", "warn", "NOTES_DASH_LOGGING_MAX_FILES", "5")

	cfg := FromGlobalConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	assert.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogLevelMapping(t *testing.T) {
	setupTest(t)

	t.Setenv("NOTES_DASH_DEBUG", "true")
	t.Setenv("NOTES_DASH_QUIET", "true")
	config.Load()
	assert.Equal(t, "debug", FromGlobalConfig().Level, "debug wins over quiet")

	t.Setenv("NOTES_DASH_DEBUG", "")
	config.Load()
	assert.Equal(t, "error", FromGlobalConfig().Level)

	t.Setenv("NOTES_DASH_QUIET", "")
	t.Setenv("NOTES_DASH_LOGGING_LEVEL", "warn")
	config.Load()
	assert.Equal(t, "warn", FromGlobalConfig().Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	stateDir := config.Get("state_dir", "")
	require.True(t, strings.HasPrefix(stateDir, tmp))

	logDir, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stateDir, "logs"), logDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLogDirFallback(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTES_DASH_CONFIG_PATH", "")
	t.Setenv("NOTES_DASH_STATE_DIR", blocker)
	config.Load()

	logDir, err := LogDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(logDir, os.TempDir()))
	assert.True(t, strings.HasSuffix(logDir, filepath.Join("notes-dash", "logs")))
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, noopLogger{}, logger)
	assert.NotPanics(t, func() {
		logger.With("k", "v").Info("ignored")
		_ = logger.Shutdown()
	})
}

func TestInitEnabledCreatesFile(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	cfg := FromGlobalConfig()
	cfg.Command = "notes tui"
	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	fname := entries[0].Name()
	assert.True(t, strings.HasPrefix(fname, filePrefix))
	assert.Contains(t, fname, fmt.Sprintf("_PID%d_", os.Getpid()))
	assert.True(t, strings.HasSuffix(fname, "_notes_tui.log"))

	info, err := os.Stat(filepath.Join(logDir, fname))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoggingWritesJSON(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Info("note created", "note_id", "42", "count", 3)
	require.NoError(t, logger.Shutdown())

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lastLogLine(t)), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "note created", entry["msg"])
	assert.Equal(t, float64(os.Getpid()), entry["pid"])
	assert.Equal(t, "42", entry["note_id"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestRedactionInFile(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.With("api_token", "abc").Info("request", "authorization", "Bearer abc", "path", "/api/notes")
	require.NoError(t, logger.Shutdown())

	line := lastLogLine(t)
	assert.Contains(t, line, `"api_token":"[REDACTED]"`)
	assert.Contains(t, line, `"authorization":"[REDACTED]"`)
	assert.Contains(t, line, `"path":"/api/notes"`)
	assert.NotContains(t, line, "Bearer abc")
}

func TestRedactionEdgeCases(t *testing.T) {
	r := newRedactor()

	assert.Equal(t, []any{"PaSsWoRd", redacted}, r.redact([]any{"PaSsWoRd", "x"}))
	assert.Equal(t, []any{"api-token", redacted}, r.redact([]any{"api-token", "x"}))
	assert.Equal(t, []any{"api.token", redacted}, r.redact([]any{"api.token", "x"}))
	assert.Equal(t, []any{"apitoken", "x"}, r.redact([]any{"apitoken", "x"}))
	assert.Equal(t, []any{"secretary", "x"}, r.redact([]any{"secretary", "x"}))
	assert.Equal(t, []any{"note_id", 7}, r.redact([]any{"note_id", 7}))

	input := []any{"password", "hidden", "extra"}
	assert.Equal(t, []any{"password", redacted, "extra"}, r.redact(input))
	assert.Equal(t, "hidden", input[1], "input must not be modified")

	assert.Empty(t, r.redact(nil))
}

func writeOldLogs(t *testing.T, dir string, n int) []string {
	t.Helper()
	var paths []string
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s20250101_12000%d_PID999_test.log", filePrefix, i))
		require.NoError(t, os.WriteFile(path, nil, 0600))
		old := time.Now().Add(-time.Duration(i+1) * time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))
		paths = append(paths, path)
	}
	return paths
}

func TestRotationKeepsMaxFiles(t *testing.T) {
	setupTest(t)
	enableLogging(t, "NOTES_DASH_LOGGING_MAX_FILES", "2")

	logDir, err := LogDir()
	require.NoError(t, err)
	old := writeOldLogs(t, logDir, 3)
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "unrelated.log"), nil, 0600))

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	// newest old file plus the new one; the unrelated file is untouched
	_, err = os.Stat(old[0])
	assert.NoError(t, err)
	_, err = os.Stat(old[1])
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(old[2])
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(logDir, "unrelated.log"))
	assert.NoError(t, err)
}

func TestRotationUnderLimitKeepsEverything(t *testing.T) {
	setupTest(t)
	enableLogging(t, "NOTES_DASH_LOGGING_MAX_FILES", "0")

	cfg := FromGlobalConfig()
	require.Equal(t, 10, cfg.MaxFiles, "invalid value falls back to default")

	logDir, err := LogDir()
	require.NoError(t, err)
	writeOldLogs(t, logDir, 5)

	logger, err := Init(cfg)
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestGlobalLogger(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	require.NoError(t, InitGlobal("test"))
	t.Cleanup(func() { _ = ShutdownGlobal() })

	path := CurrentLogFile()
	require.NotEmpty(t, path)
	assert.Contains(t, filepath.Base(path), "_test.log")

	Warn("global warning", "count", 1)
	assert.Contains(t, lastLogLine(t), "global warning")

	require.NoError(t, ShutdownGlobal())
	assert.Empty(t, CurrentLogFile())
	assert.IsType(t, noopLogger{}, GetGlobal())
}

func TestNewConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(&buf, "warn")

	l.Info("hidden")
	l.Warn("visible", "token", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, redacted)
	assert.NotContains(t, out, "abc")
}

func TestLevelParsing(t *testing.T) {
	assert.Equal(t, clog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, clog.InfoLevel, parseLevel("info"))
	assert.Equal(t, clog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, clog.ErrorLevel, parseLevel("ERROR"))
	assert.Equal(t, clog.InfoLevel, parseLevel("unknown"))
}

// Package logging provides structured logging for notes-dash.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/notes-dash/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes any buffered logs and releases resources.
	Shutdown() error
}

// clogLogger wraps charmbracelet/log with redaction of sensitive keys.
type clogLogger struct {
	clogger  *clog.Logger
	closer   io.Closer
	redactor *redactor
	path     string
}

// Init creates a JSON file logger under LogDir. A disabled config yields
// a no-op logger.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return Noop(), nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
	fname := fmt.Sprintf("%s%s_PID%d_%s.log",
		filePrefix,
		time.Now().Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"))
	path := filepath.Join(logDir, fname)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	clogger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	clogger = clogger.With("pid", cfg.PID, "command", cfg.Command)
	return &clogLogger{clogger: clogger, closer: f, redactor: newRedactor(), path: path}, nil
}

// NewConsole returns a text logger writing to w. The server uses it for
// request logs.
func NewConsole(w io.Writer, level string) Logger {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           parseLevel(level),
		Prefix:          "notes-dash",
	})
	return &clogLogger{clogger: clogger, redactor: newRedactor()}
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *clogLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *clogLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *clogLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *clogLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *clogLogger) log(level clog.Level, msg string, args []any) {
	l.clogger.Log(level, msg, l.redactor.redact(args)...)
}

func (l *clogLogger) With(args ...any) Logger {
	return &clogLogger{
		clogger:  l.clogger.With(l.redactor.redact(args)...),
		redactor: l.redactor,
		path:     l.path,
	}
}

// Shutdown closes the log file. Derived loggers share it and do not close it.
func (l *clogLogger) Shutdown() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (n noopLogger) With(...any) Logger { return n }
func (noopLogger) Shutdown() error      { return nil }

// Noop returns a logger that discards everything.
func Noop() Logger { return noopLogger{} }

var (
	globalLogger   Logger
	globalLoggerMu sync.RWMutex
)

// InitGlobal initializes the global logger from the loaded configuration
// and mirrors console output into it. Calling it again replaces the
// previous logger.
func InitGlobal(command string) error {
	cfg := FromGlobalConfig()
	if command != "" {
		cfg.Command = command
	}
	l, err := Init(cfg)
	if err != nil {
		return err
	}
	globalLoggerMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalLoggerMu.Unlock()
	if prev != nil {
		_ = prev.Shutdown()
	}
	if cfg.Enabled {
		colors.SetLogger(l)
		colors.Debug("logging to file:", CurrentLogFile())
	}
	return nil
}

// GetGlobal returns the global logger, or a no-op logger if not initialized.
func GetGlobal() Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

// Debug logs a debug message using the global logger.
func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }

// Info logs an info message using the global logger.
func Info(msg string, args ...any) { GetGlobal().Info(msg, args...) }

// Warn logs a warning message using the global logger.
func Warn(msg string, args ...any) { GetGlobal().Warn(msg, args...) }

// Error logs an error message using the global logger.
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns a new global logger with additional key-value pairs.
func With(args ...any) Logger { return GetGlobal().With(args...) }

// ShutdownGlobal shuts down the global logger.
func ShutdownGlobal() error {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		return nil
	}
	colors.SetLogger(nil)
	err := globalLogger.Shutdown()
	globalLogger = nil
	return err
}

// CurrentLogFile returns the path of the active log file, or "".
func CurrentLogFile() string {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if impl, ok := globalLogger.(*clogLogger); ok {
		return impl.path
	}
	return ""
}

// Package logging provides structured logging for filterstate.
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
	"github.com/ocp-advisor/filterstate/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds the key-value pairs to every entry.
	With(args ...any) Logger
	// Shutdown flushes and releases the underlying file, if any.
	Shutdown() error
}

// clogLogger is the charmbracelet/log based implementation.
type clogLogger struct {
	clogger  *clog.Logger
	closer   io.Closer
	redactor *redactor
	fields   []any
	path     string
}

// Init creates a file logger in LogDir. When cfg.Enabled is false a no-op
// logger is returned. Old log files are rotated before the new one is opened.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
	fname := fmt.Sprintf("%s%s_PID%d_%s.log",
		logFilePrefix,
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
	return &clogLogger{
		clogger:  clogger,
		closer:   f,
		redactor: newRedactor(),
		path:     path,
	}, nil
}

// NewConsole returns a logger writing human readable entries to w.
func NewConsole(w io.Writer, level string) Logger {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           parseLevel(level),
		Prefix:          "filterstate",
	})
	return &clogLogger{clogger: clogger, redactor: newRedactor()}
}

// NewJSON returns a logger writing JSON entries to w.
func NewJSON(w io.Writer, level string) Logger {
	clogger := clog.NewWithOptions(w, clog.Options{
		Level:     parseLevel(level),
		Formatter: clog.JSONFormatter,
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
	all := make([]any, 0, len(l.fields)+len(args))
	all = append(all, l.fields...)
	all = append(all, args...)
	l.clogger.Log(level, msg, l.redactor.redact(all)...)
}

func (l *clogLogger) With(args ...any) Logger {
	fields := make([]any, 0, len(l.fields)+len(args))
	fields = append(fields, l.fields...)
	fields = append(fields, args...)
	return &clogLogger{
		clogger:  l.clogger,
		closer:   l.closer,
		redactor: l.redactor,
		fields:   fields,
		path:     l.path,
	}
}

func (l *clogLogger) Shutdown() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// noopLogger discards all output.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
func (n noopLogger) With(args ...any) Logger     { return n }
func (noopLogger) Shutdown() error               { return nil }

// Nop returns a logger that discards everything.
func Nop() Logger {
	return noopLogger{}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger
)

// InitGlobal initializes the global logger from the global configuration
// and mirrors console output into it. Calling it again replaces the logger.
func InitGlobal() error {
	l, err := Init(FromGlobalConfig())
	if err != nil {
		return err
	}
	globalMu.Lock()
	previous := globalLogger
	globalLogger = l
	globalMu.Unlock()
	if previous != nil {
		_ = previous.Shutdown()
	}

	if _, ok := l.(noopLogger); !ok {
		colors.SetLogger(l)
		colors.Debug("Logging to file:", CurrentLogFile())
	}
	return nil
}

// GetGlobal returns the global logger, or a no-op logger if not initialized.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

// ShutdownGlobal closes the global logger.
func ShutdownGlobal() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		return nil
	}
	colors.SetLogger(nil)
	err := globalLogger.Shutdown()
	globalLogger = nil
	return err
}

// CurrentLogFile returns the path of the active log file, or "" when
// file logging is disabled.
func CurrentLogFile() string {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if impl, ok := globalLogger.(*clogLogger); ok {
		return impl.path
	}
	return ""
}

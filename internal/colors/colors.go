// Package colors provides colored console output mirrored into the structured logger.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled bool
	quiet        bool
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("FILTERSTATE_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses Info and Success output. Errors and warnings are still printed.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the defaults.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout, stderr = out, errOut
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, _, errOut := current()
	if l != nil {
		l.Error(msg)
	}
	write(errOut, fmt.Sprintf("%sError:%s %s%s\n", Red, Reset, msg, Reset))
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, _, errOut := current()
	if l != nil {
		l.Warn(msg)
	}
	write(errOut, fmt.Sprintf("%sWarning:%s %s%s\n", Yellow, Reset, msg, Reset))
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, out, _ := current()
	if l != nil {
		l.Info(msg, "type", "success")
	}
	if isQuiet() {
		return
	}
	write(out, fmt.Sprintf("%s%s%s %s%s\n", Green, checkmark, Reset, msg, Reset))
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, out, _ := current()
	if l != nil {
		l.Info(msg)
	}
	if isQuiet() {
		return
	}
	write(out, fmt.Sprintf("%s%s%s\n", Blue, msg, Reset))
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	msg := strings.Join(msgs, " ")
	l, _, errOut := current()
	if l != nil {
		l.Debug(msg)
	}
	write(errOut, fmt.Sprintf("%sDebug:%s %s%s\n", Cyan, Reset, msg, Reset))
}

func current() (Logger, io.Writer, io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	return logger, stdout, stderr
}

func isQuiet() bool {
	mu.RLock()
	defer mu.RUnlock()
	return quiet
}

// write falls back to a plain stderr line when the target writer fails.
func write(w io.Writer, line string) {
	if _, err := io.WriteString(w, line); err != nil {
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

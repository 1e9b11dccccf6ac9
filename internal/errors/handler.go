// Package errors reports command errors to the user.
package errors

import (
	stderrors "errors"
	"strings"
	"sync"

	"github.com/ocp-advisor/filterstate/internal/filters"
)

// ErrorHandler is the interface for user-facing messages.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler creates a handler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	if colors == nil {
		panic("NewCLIHandler: colors dependency cannot be nil")
	}
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Handle reports err and returns the process exit code: 0 for nil, 2 for
// an unknown view, 1 otherwise.
func (h *CLIHandler) Handle(err error) int {
	if err == nil {
		return 0
	}
	h.Error(err.Error())
	if stderrors.Is(err, filters.ErrInvalidView) {
		h.Info("valid views: " + validViews())
		return 2
	}
	return 1
}

func validViews() string {
	views := filters.Views()
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}

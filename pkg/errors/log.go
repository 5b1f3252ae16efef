package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a UIError to stderr.
func (h *LogHandler) HandleError(err *UIError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[fern error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleHookError logs a HookError to stderr.
func (h *LogHandler) HandleHookError(err *HookError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[fern hook error] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

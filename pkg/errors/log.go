package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs listener errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleListenerError logs a ListenerError to stderr.
func (h *LogHandler) HandleListenerError(err *ListenerError) {
	if err == nil {
		return
	}
	if err.Prop != "" {
		fmt.Fprintf(os.Stderr, "[props listener] %s: %v\n", err.Prop, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[props listener] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

package recovery

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// exit is replaced in tests.
var exit = os.Exit

// HandlePanic should be deferred at the top of main(). Detector contract violations (for example a frame that does
// not match the workspace length) panic; this reports them with a stack trace and exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		report(os.Stderr, r, debug.Stack())
		exit(1)
	}
}

func report(w io.Writer, r any, stack []byte) {
	_, _ = fmt.Fprintf(w, "FATAL: %v\n\nStack trace:\n%s\n", r, stack)
}

// Package logger provides verbose logging for qalint.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show how documents are loaded, parsed and
// checked. Reports themselves never go through the logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	warned  = make(map[string]bool)
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// WarnOnce prints a warning the first time key is seen.
// Used for conditions that would otherwise repeat per code block.
func WarnOnce(key, format string, args ...any) {
	mu.Lock()
	seen := warned[key]
	warned[key] = true
	mu.Unlock()
	if !seen {
		Warn(format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Elapsed logs the time since start, e.g. `defer logger.Elapsed("parse", time.Now())`.
func Elapsed(label string, start time.Time) {
	Debug("%s took %s", label, time.Since(start).Round(time.Microsecond))
}

func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// resetWarnings clears WarnOnce state. Tests only.
func resetWarnings() {
	mu.Lock()
	defer mu.Unlock()
	warned = make(map[string]bool)
}

// Package logger provides stderr logging for the manuals CLI and server.
// Debug and info messages appear only with --verbose. Warnings always
// appear unless --quiet is set. Nothing is ever written to stdout, which
// the MCP stdio transport owns.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	quiet   bool
	output  io.Writer = os.Stderr
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

// SetQuiet suppresses warnings.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// IsQuiet returns true if warnings are suppressed.
func IsQuiet() bool {
	mu.RLock()
	defer mu.RUnlock()
	return quiet
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
	logf(levelVerbose, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	logf(levelVerbose, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(levelVerbose, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message unless quiet mode is enabled.
// Skipped pages, failed sources and reload failures are reported here.
func Warn(format string, args ...any) {
	logf(levelWarn, "[WARN] "+format+"\n", args...)
}

type level int

const (
	levelVerbose level = iota
	levelWarn
)

// logf holds the write lock so concurrent writers never interleave.
func logf(l level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	switch {
	case l == levelVerbose && !verbose:
		return
	case l == levelWarn && quiet:
		return
	}
	fmt.Fprintf(output, format, args...)
}

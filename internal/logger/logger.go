// Package logger provides process logging for Convivio.
// Output always goes to stderr by default: stdout carries the MCP stdio
// transport and must stay clean. Debug, Info and Section messages are
// printed only in verbose mode (--verbose); warnings and errors always.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	base    = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

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

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(w)
}

func log(level slog.Level, gated bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if gated && !verbose {
		return
	}
	base.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	log(slog.LevelDebug, true, format, args...)
}

// Section logs a section marker if verbose mode is enabled.
func Section(name string) {
	log(slog.LevelDebug, true, "=== %s ===", name)
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	log(slog.LevelInfo, true, format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	log(slog.LevelWarn, false, format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	log(slog.LevelError, false, format, args...)
}

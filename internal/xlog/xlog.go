// Package xlog provides the engine's diagnostic logger.
//
// UCI GUIs treat stdout as a protocol channel: anything on it that isn't a
// recognized command response confuses them. Every diagnostic the engine
// emits — malformed-command warnings, fatal invariant violations — goes to
// stderr instead, the same way the teacher's Position.PrettyPrint wrote
// debug output with the standard log package rather than fmt.Println.
package xlog

import (
	"io"
	"log"
	"os"
)

var std = log.New(os.Stderr, "chessica: ", 0)

// SetOutput redirects the logger's output, mainly for tests that want to
// capture or silence it.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Printf logs a formatted diagnostic message.
func Printf(format string, args ...any) {
	std.Printf(format, args...)
}

// Println logs a diagnostic message.
func Println(args ...any) {
	std.Println(args...)
}

// Fatalf logs a formatted diagnostic message and terminates the process.
// Reserved for invariant violations that leave the engine in an unknown
// state; never used for recoverable parse errors.
func Fatalf(format string, args ...any) {
	std.Fatalf(format, args...)
}

package monitoring

import (
	"context"
	"fmt"
	"log"
	"log/slog"
)

// Logf is the package-level diagnostic logger used by the step counting
// pipeline. It defaults to log.Printf and may be replaced by SetLogger, so
// tests or the CLI can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SlogLogf adapts a structured logger to the Logf signature. Messages are
// emitted at debug level so diagnostics stay hidden unless the handler is
// verbose.
func SlogLogf(logger *slog.Logger) func(format string, v ...interface{}) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(format string, v ...interface{}) {
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			return
		}
		logger.Debug(fmt.Sprintf(format, v...))
	}
}

// log_console.go provides the console logger for non-fatal warnings.
//
// Separated from the audit log: audit entries are persisted for later
// queries, while console messages are for the person at the terminal.
// Output goes to stderr so stdout stays clean for piping search results.

package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	console     *slog.Logger
	consoleOnce sync.Once
)

// NewConsole creates a text logger writing to w. Debug enables debug level.
func NewConsole(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps are noise for an interactive command.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Console returns the process-wide console logger. CASKFIND_DEBUG=1 enables
// debug output.
func Console() *slog.Logger {
	consoleOnce.Do(func() {
		console = ConsoleTo(os.Stderr)
	})
	return console
}

// ConsoleTo creates a console logger on w with the process debug setting.
// Used when stderr is shared with a progress indicator.
func ConsoleTo(w io.Writer) *slog.Logger {
	return NewConsole(w, os.Getenv("CASKFIND_DEBUG") == "1")
}

// Warn writes a warning to the console logger.
func Warn(msg string, args ...any) {
	Console().Warn(msg, args...)
}

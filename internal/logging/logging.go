package logging

import (
	"io"
	"log/slog"
	"os"
)

// GetLogger returns the process logger. It writes to stderr so that stdout
// only carries the status lines of a run.
func GetLogger(debug bool) *slog.Logger {
	return NewLogger(os.Stderr, debug)
}

// NewLogger writes text records to w. Debug enables debug records and source locations.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Package logging builds the process logger: JSON lines to a rotating file
// when one is configured, otherwise text to a fallback writer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Options describes where and how much to log.
type Options struct {
	// Level is one of debug, info, warn or error; "" means info.
	Level string
	// File, when set, receives JSON logs and Fallback is ignored.
	File      string
	MaxSizeMB int
	MaxFiles  int
	// Fallback receives text logs when File is empty. nil discards.
	Fallback io.Writer
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
}

// New returns a logger tagged with a fresh run id, and a closer for any file
// it opened. The closer is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var (
		handler slog.Handler
		closer  io.Closer = nopCloser{}
	)
	switch {
	case opts.File != "":
		w, err := NewRotatingFileWriter(opts.File, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		handler = slog.NewJSONHandler(w, handlerOpts)
		closer = w
	case opts.Fallback != nil:
		handler = slog.NewTextHandler(opts.Fallback, handlerOpts)
	default:
		handler = slog.DiscardHandler
	}

	return slog.New(handler).With("run", uuid.NewString()), closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging sets up the structured logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options configures Setup.
type Options struct {
	Level  slog.Level
	File   string    // also write to this file when set
	Format string    // "json" (default) or "text"
	Writer io.Writer // defaults to os.Stderr
}

// Setup configures slog to write to stderr and, when a file is named, to
// that file as well. Returns a logger and a cleanup function to close the
// file handle.
func Setup(opts Options) (*slog.Logger, func(), error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	cleanup := func() {}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(w, f)
		cleanup = func() {
			_ = f.Close()
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		cleanup()
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(handler), cleanup, nil
}

// ParseLevel parses a level name such as "debug" or "warn". An empty name
// means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// ABOUTME: Structured logging configuration using log/slog
// ABOUTME: Stderr handler for commands, append-only debug.log file for the TUI

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the TUI log file inside the config directory
const FileName = "debug.log"

// Options selects level and format
type Options struct {
	Level  string // debug, info, warn, error (default: info)
	Format string // text, json (default: text)
}

// New builds a logger writing to w
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}

	var handler slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Init configures the default slog logger to write to stderr
func Init(opts Options) *slog.Logger {
	l := New(os.Stderr, opts)
	slog.SetDefault(l)
	return l
}

// InitFile configures the default logger to append to debug.log in
// configDir, keeping log output off the terminal while the TUI runs. The
// returned func closes the file. An empty configDir discards logs.
func InitFile(configDir string, opts Options) (*slog.Logger, func() error, error) {
	if configDir == "" {
		l := Discard()
		slog.SetDefault(l)
		return l, func() error { return nil }, nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(configDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	l := New(f, opts)
	slog.SetDefault(l)
	return l, f.Close, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

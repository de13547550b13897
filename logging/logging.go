// Package logging wraps slog with a process-wide logger.
// The terminal app owns stdout, so output goes to a file or is discarded.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// MaxFileSize is the size past which an existing log file is rotated on Init
const MaxFileSize = 10 * 1024 * 1024

// Options selects level and destination
// File takes precedence over Writer, both empty discards output
type Options struct {
	Level  string
	File   string
	Writer io.Writer
	JSON   bool
}

var logger atomic.Pointer[slog.Logger]

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps "debug", "info", "warn", "error" to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Init installs the global logger and returns a closer for the log file
// Calling Init again replaces the logger, the caller closes the previous file
func Init(opts Options) (io.Closer, error) {
	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)

	switch {
	case opts.File != "":
		f, err := openFile(opts.File)
		if err != nil {
			return nopCloser{}, err
		}
		w, closer = f, f
	case opts.Writer != nil:
		w = opts.Writer
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var l *slog.Logger
	if opts.JSON {
		l = slog.New(slog.NewJSONHandler(w, handlerOpts))
	} else {
		l = slog.New(slog.NewTextHandler(w, handlerOpts))
	}
	logger.Store(l)
	slog.SetDefault(l)
	return closer, nil
}

// openFile creates parent directories and rotates an oversized previous log
func openFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: create %s: %w", dir, err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.Size() > MaxFileSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("logging: rotate %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return f, nil
}

// L returns the global logger, discarding until Init is called
func L() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	if logger.CompareAndSwap(nil, l) {
		return l
	}
	return logger.Load()
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger carrying the given attributes
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

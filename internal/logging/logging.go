// Package logging builds the process logger. Output goes to a file because
// the terminal belongs to the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the log file name used when no path is configured.
const DefaultFileName = "usersadmin.log"

// Logger wraps the slog.Logger with the file it writes to.
type Logger struct {
	*slog.Logger
	Path string
	file io.Closer
}

// Configure opens path for appending (creating its directory) and returns a
// JSON logger at level. An empty path falls back to DefaultFileName under
// fallbackDir. If the file cannot be opened the logger discards output and
// the error is returned alongside it, so callers can report and continue.
func Configure(path, fallbackDir string, level slog.Level) (*Logger, error) {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(fallbackDir, DefaultFileName)
	}
	discard := &Logger{Logger: slog.New(slog.DiscardHandler), Path: path}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard, fmt.Errorf("logging: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return discard, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return &Logger{
		Logger: New(f, level),
		Path:   path,
		file:   f,
	}, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Package logging holds the process-wide logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It writes to stderr until ToFile is called.
var Log = logrus.New()

// SetLevel sets the log level by name.
func SetLevel(level string) error {
	// trace and panic levels are not used
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		return fmt.Errorf("bad log level %q", level)
	}
	return nil
}

// ToFile redirects the logger to path while the terminal is owned by the UI.
// The returned function restores the previous output and closes the file.
func ToFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	prev := Log.Out
	Log.SetOutput(file)
	return func() {
		Log.SetOutput(prev)
		if cerr := file.Close(); cerr != nil {
			_ = cerr
		}
	}, nil
}

// Discard silences the logger; used by tests.
func Discard() {
	Log.SetOutput(io.Discard)
}

// Package logging builds the application's logrus logger. The terminal is
// owned by the TUI, so log lines go to a file under the data directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options configures New
type Options struct {
	// Level is a logrus level name; empty means info
	Level string
	// File receives JSON lines. Ignored when Output is set.
	File string
	// Output overrides File
	Output io.Writer
}

// Logger is a logrus logger that owns its output file
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New creates the logger. Unknown levels are an error.
func New(opts Options) (*Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	l := &Logger{Logger: logrus.New()}
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{})

	switch {
	case opts.Output != nil:
		l.SetOutput(opts.Output)
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		l.SetOutput(f)
	default:
		l.SetOutput(io.Discard)
	}
	return l, nil
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Component returns an entry tagged with the component name
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("component", name)
}

// WithFields returns an entry carrying every key of fields
func WithFields(log logrus.FieldLogger, fields map[string]interface{}) *logrus.Entry {
	entry := log.WithFields(nil)
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}
	return entry
}

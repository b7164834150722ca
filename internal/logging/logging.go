// ABOUTME: Process-wide structured logger built on charmbracelet/log
// ABOUTME: Writes to stderr, or to a rotated file when RADAR_LOG_FILE is set
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction
type Options struct {
	Level string // debug, info, warn, error
	File  string // empty means stderr
	JSON  bool
}

// New builds a logger from opts. The returned closer releases the log file, if any.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, err
		}
		level = parsed
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w, closer = rotated, rotated
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if opts.JSON || opts.File != "" {
		logger.SetFormatter(log.JSONFormatter)
		logger.SetTimeFormat(time.RFC3339)
	}
	return logger, closer, nil
}

// Setup builds a logger and installs it as the package default
func Setup(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return closer, nil
}

// Component returns the default logger tagged with a component prefix
func Component(name string) *log.Logger {
	return log.Default().WithPrefix(name)
}

// Discard returns a logger that drops everything (for tests)
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

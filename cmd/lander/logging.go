package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// newLogger builds a logger at the --log-level on w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to --log-file so output never lands on the alt screen.
// The returned close func is always safe to call.
func fileLogger(prefix string) (*log.Logger, func()) {
	path := flagLogFile
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

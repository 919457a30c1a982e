// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the per-run diagnostic logger: a timestamped
// log file plus a console echo. The logger is constructed once at
// startup and handed to each component; nothing logs through package
// globals.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// New creates cfgDir/nepjol_search_<timestamp>.log and returns a logger
// writing to both the file and console. The returned path feeds the
// end-of-run "log file created" message; close flushes the file.
func New(dir, level string, console io.Writer) (logger *log.Logger, path string, close func() error, err error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	path = filepath.Join(dir, fmt.Sprintf("nepjol_search_%s.log", time.Now().Format("20060102_150405")))
	file, err := os.Create(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("creating log file: %w", err)
	}

	logger = log.NewWithOptions(io.MultiWriter(file, console), log.Options{
		ReportTimestamp: true,
		Level:           parseLevel(level),
	})
	return logger, path, file.Close, nil
}

// Discard returns a logger that drops everything, for tests and for
// components run without diagnostics.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// parseLevel maps the config string to a log level, defaulting to debug
// so the run log captures request/response detail.
func parseLevel(level string) log.Level {
	if level == "" {
		return log.DebugLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: unknown log level %q, using debug\n", level)
		return log.DebugLevel
	}
	return parsed
}

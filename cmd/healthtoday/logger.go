package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// newRuntimeLogger opens the JSON log file under ~/.local/state. The TUI owns
// the terminal, so nothing is written to stderr unless the file can't be
// opened.
func newRuntimeLogger(level string) (zerolog.Logger, func()) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out, closeFn := openLogFile()
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Str("version", version).Logger()
	return logger, closeFn
}

func openLogFile() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Stderr, func() {}
	}

	logDir := filepath.Join(home, ".local", "state", "healthtoday")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return os.Stderr, func() {}
	}

	f, err := os.OpenFile(filepath.Join(logDir, "healthtoday.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr, func() {}
	}
	return f, func() { _ = f.Close() }
}

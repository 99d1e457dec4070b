package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	charmLog "github.com/charmbracelet/log"
)

// newLogger opens the profile's log file and returns a logfmt logger that
// tags every line with the session id. The TUI owns the terminal, so there
// is no console sink.
func newLogger(path, level, session string) (*charmLog.Logger, func() error, error) {
	lvl, err := charmLog.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := charmLog.NewWithOptions(f, charmLog.Options{
		Level:           lvl,
		Prefix:          "kanri",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	return logger.With("session", session), f.Close, nil
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const defaultLogFile = "bamboo-breaker/bamboo-breaker.log"

// parseLogLevel parses a log level string (debug, info, warn, error; case-insensitive).
// Unknown values fall back to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logPath returns customPath with ~ expanded, or the XDG state file when empty.
func logPath(customPath string) (string, error) {
	if customPath != "" {
		if strings.HasPrefix(customPath, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				customPath = filepath.Join(home, customPath[2:])
			}
		}
		return customPath, nil
	}
	p, err := xdg.StateFile(defaultLogFile)
	if err != nil {
		return "", fmt.Errorf("could not get log path: %w", err)
	}
	return p, nil
}

func defaultOpenLog(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// The terminal belongs to the TUI, so logs only ever go to a file.
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}

package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogPath_Custom(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "x.log")
	got, err := logPath(p)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != p {
		t.Fatalf("got %q, want %q", got, p)
	}
}

func TestLogPath_ExpandsHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := logPath("~/logs/bamboo.log")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if want := filepath.Join(home, "logs", "bamboo.log"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDefaultOpenLog_CreatesParentDirs(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "nested", "dir", "game.log")
	w, err := defaultOpenLog(p)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("log file missing: %v", err)
	}
}

package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dori/kanri/internal/config"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{Paths: config.Paths{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}}
}

func TestNewAndClose(t *testing.T) {
	opts := testOptions(t)

	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.Profile.Name != "default" {
		t.Errorf("profile = %q, want default", a.Profile.Name)
	}
	if _, err := os.Stat(opts.Paths.DBPath(a.Profile)); err != nil {
		t.Errorf("database not created: %v", err)
	}

	// A second instance on the same profile is refused
	if _, err := New(opts); err == nil || !strings.Contains(err.Error(), "already running") {
		t.Errorf("expected lock error, got %v", err)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	logData, err := os.ReadFile(opts.Paths.LogPath(a.Profile))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(logData), "session=") {
		t.Errorf("log lines should carry the session id: %q", logData)
	}
}

func TestNewUnknownProfile(t *testing.T) {
	opts := testOptions(t)
	opts.Profile = "nobody"
	if _, err := New(opts); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestNewBadLogLevel(t *testing.T) {
	opts := testOptions(t)
	if err := os.MkdirAll(opts.Paths.ConfigDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(opts.Paths.ConfigDir, "config.toml"), []byte(`log_level = "loud"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(opts); err == nil {
		t.Fatal("expected error for bad log level")
	}

	// The lock must have been released on failure
	if err := os.WriteFile(filepath.Join(opts.Paths.ConfigDir, "config.toml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() after failure error = %v", err)
	}
	a.Close()
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/tailpane/internal/keeper"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want %#v", cfg, Default())
	}
	if cfg.HeightLimit != 3000 || cfg.NewHeight != 2500 {
		t.Fatalf("policy = %d/%d, want 3000/2500", cfg.HeightLimit, cfg.NewHeight)
	}
	if !cfg.Tracking {
		t.Fatalf("Tracking = false, want true")
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
height_limit = 600
new_height = 450
row_height = 15
top_inset = 2
tracking = false
log_level = "  debug  "
producers = 0
interval = "1s"
follow_file = "  ~/logs/app.log  "
backfill_lines = 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{
		HeightLimit:   600,
		NewHeight:     450,
		RowHeight:     15,
		TopInset:      2,
		Tracking:      false,
		LogLevel:      "debug",
		Producers:     0,
		Interval:      time.Second,
		FollowFile:    filepath.Join(home, "logs/app.log"),
		BackfillLines: 50,
	}
	if cfg != want {
		t.Fatalf("Load = %#v, want %#v", cfg, want)
	}
	if got := cfg.Policy(); got != (keeper.Policy{HeightLimit: 600, NewHeight: 450}) {
		t.Fatalf("Policy = %#v", got)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, "new_height = 1000\nlog_level = \"   \"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.NewHeight != 1000 || cfg.HeightLimit != keeper.DefaultHeightLimit {
		t.Fatalf("policy = %d/%d, want %d/1000", cfg.HeightLimit, cfg.NewHeight, keeper.DefaultHeightLimit)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.Interval != defaultInterval {
		t.Fatalf("Interval = %v, want %v", cfg.Interval, defaultInterval)
	}
}

func TestLoad_InvalidPolicyFails(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"limit equals new height", "height_limit = 100\nnew_height = 100\n"},
		{"limit below new height", "height_limit = 10\nnew_height = 100\n"},
		{"zero new height", "new_height = 0\n"},
		{"zero row height", "row_height = 0\n"},
		{"negative inset", "top_inset = -1\n"},
		{"negative producers", "producers = -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, keeper.ErrInvalidArgument) {
				t.Fatalf("Load error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `height_limit = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidIntervalFails(t *testing.T) {
	_, err := Load(writeConfig(t, `interval = "soon"`))
	if err == nil || !strings.Contains(err.Error(), "interval") {
		t.Fatalf("Load error = %v, want interval parse error", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultNormalizes(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if !filepath.IsAbs(cfg.Paths.ScratchDir) {
		t.Fatalf("expected absolute scratch dir, got %q", cfg.Paths.ScratchDir)
	}
	if cfg.Paths.HistoryDB != filepath.Join(cfg.Paths.LogDir, "history.db") {
		t.Fatalf("expected history db under log dir, got %q", cfg.Paths.HistoryDB)
	}
	if cfg.FFmpeg.Binary != "ffmpeg" {
		t.Fatalf("expected default ffmpeg binary, got %q", cfg.FFmpeg.Binary)
	}
}

func TestLoadParsesFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`scratch_dir = "` + filepath.ToSlash(filepath.Join(tmp, "scratch")) + `"`,
		"[ffmpeg]",
		`binary = "/opt/rvj/ffmpeg"`,
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.FFmpeg.Binary != "/opt/rvj/ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.FFmpeg.Binary)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
	if cfg.Paths.ScratchDir != filepath.Join(tmp, "scratch") {
		t.Fatalf("unexpected scratch dir: %q", cfg.Paths.ScratchDir)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected default format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid log format")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("sample config did not load: %v", err)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/videos")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "videos") {
		t.Fatalf("ExpandPath = %q, want %q", got, filepath.Join(home, "videos"))
	}
}

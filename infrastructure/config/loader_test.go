package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `ffmpeg:
  binary_path: /opt/ffmpeg/bin/ffmpeg
paths:
  preview_directory: /var/previews
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.FFmpeg.BinaryPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Load() BinaryPath = %q", cfg.FFmpeg.BinaryPath)
	}
	if cfg.Paths.PreviewDirectory != "/var/previews" {
		t.Errorf("Load() PreviewDirectory = %q", cfg.Paths.PreviewDirectory)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Load() Level = %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Config{}
	want.FFmpeg.BinaryPath = "ffmpeg"
	want.Paths.PreviewDirectory = ""
	want.Logging.Level = "info"

	if err := Save(want, path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ril3y/zmatrix/internal/protocol"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zmatrixd.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
interface = "enp3s0"
width = 640
height = 256
fps = 30
brightness = 200
color_order = "grb"
source = "shm"
source_path = "wall"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Interface != "enp3s0" {
		t.Fatalf("interface %q", cfg.Interface)
	}
	if cfg.Width != 640 || cfg.Height != 256 {
		t.Fatalf("dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 {
		t.Fatalf("fps %d", cfg.FPS)
	}
	if cfg.Brightness != 200 {
		t.Fatalf("brightness %d", cfg.Brightness)
	}
	if cfg.ColorOrder != protocol.OrderGRB {
		t.Fatalf("color order %v", cfg.ColorOrder)
	}
	if cfg.SourceKind != "shm" || cfg.SourcePath != "wall" {
		t.Fatalf("source %q %q", cfg.SourceKind, cfg.SourcePath)
	}
}

func TestLoadConfigKeepsDefaultsWhenUnset(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ``))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := defaultConfig()
	if cfg != def {
		t.Fatalf("got %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		`width = -1`,
		`height = 0`,
		`fps = 0`,
		`color_order = "RGBW"`,
		`source = "pipe"`,
	}
	for _, content := range cases {
		if _, err := loadConfig(writeConfig(t, content)); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewSourceKinds(t *testing.T) {
	cfg := defaultConfig()

	cfg.SourceKind = "file"
	if src := cfg.newSource(); src == nil {
		t.Fatalf("file source nil")
	}
	cfg.SourceKind = "shm"
	if src := cfg.newSource(); src == nil {
		t.Fatalf("shm source nil")
	}
	cfg.SourceKind = "fb"
	cfg.SourcePath = ""
	if src := cfg.newSource(); src == nil {
		t.Fatalf("fb source nil")
	}
}

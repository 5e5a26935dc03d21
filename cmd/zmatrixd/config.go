package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ril3y/zmatrix/internal/protocol"
	"github.com/ril3y/zmatrix/internal/source"
)

type daemonConfig struct {
	Interface  string
	Width      int
	Height     int
	FPS        int
	Brightness int
	ColorOrder protocol.ColorOrder

	SourceKind string // file, shm, fb
	SourcePath string
}

func defaultConfig() daemonConfig {
	return daemonConfig{
		Interface:  "eth0",
		Width:      320,
		Height:     128,
		FPS:        60,
		Brightness: 128,
		ColorOrder: protocol.OrderBGR,
		SourceKind: "file",
		SourcePath: "/run/ledmatrix.raw",
	}
}

type fileConfig struct {
	Interface  string `toml:"interface"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	FPS        int    `toml:"fps"`
	Brightness int    `toml:"brightness"`
	ColorOrder string `toml:"color_order"`
	Source     string `toml:"source"`
	SourcePath string `toml:"source_path"`
	FBDevice   string `toml:"fb_device"`
}

func loadConfig(path string) (daemonConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return daemonConfig{}, fmt.Errorf("load daemon config: %w", err)
	}

	if meta.IsDefined("interface") {
		if v := strings.TrimSpace(raw.Interface); v != "" {
			cfg.Interface = v
		}
	}
	if meta.IsDefined("width") {
		if raw.Width <= 0 {
			return daemonConfig{}, fmt.Errorf("width must be positive, got %d", raw.Width)
		}
		cfg.Width = raw.Width
	}
	if meta.IsDefined("height") {
		if raw.Height <= 0 {
			return daemonConfig{}, fmt.Errorf("height must be positive, got %d", raw.Height)
		}
		cfg.Height = raw.Height
	}
	if meta.IsDefined("fps") {
		if raw.FPS <= 0 {
			return daemonConfig{}, fmt.Errorf("fps must be positive, got %d", raw.FPS)
		}
		cfg.FPS = raw.FPS
	}
	if meta.IsDefined("brightness") {
		cfg.Brightness = raw.Brightness
	}
	if meta.IsDefined("color_order") {
		order, err := protocol.ParseColorOrder(raw.ColorOrder)
		if err != nil {
			return daemonConfig{}, err
		}
		cfg.ColorOrder = order
	}
	if meta.IsDefined("source") {
		kind := strings.ToLower(strings.TrimSpace(raw.Source))
		switch kind {
		case "file", "shm", "fb":
			cfg.SourceKind = kind
		default:
			return daemonConfig{}, fmt.Errorf("source must be file, shm or fb, got %q", raw.Source)
		}
	}
	if meta.IsDefined("source_path") {
		cfg.SourcePath = strings.TrimSpace(raw.SourcePath)
	}
	if meta.IsDefined("fb_device") && cfg.SourceKind == "fb" {
		cfg.SourcePath = strings.TrimSpace(raw.FBDevice)
	}

	return cfg, nil
}

func (c daemonConfig) newSource() source.Source {
	switch c.SourceKind {
	case "shm":
		name := c.SourcePath
		if name == "" || name == defaultConfig().SourcePath {
			name = "ledmatrix"
		}
		return source.NewSharedMemorySource(name, c.Width, c.Height)
	case "fb":
		dev := c.SourcePath
		if dev == "" {
			dev = "/dev/fb1"
		}
		return source.NewFramebufferSource(dev, c.Width, c.Height)
	default:
		return source.NewFileSource(c.SourcePath, c.Width, c.Height)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync on by default")
	}
	if cfg.Service.AssetPath != "/static.1/" {
		t.Errorf("expected asset path /static.1/, got %s", cfg.Service.AssetPath)
	}
	if cfg.Service.Timeout != 8*time.Second {
		t.Errorf("expected 8s timeout, got %v", cfg.Service.Timeout)
	}
	if cfg.Viewer.SurfaceThickness != 0.25 {
		t.Errorf("expected surface thickness 0.25, got %f", cfg.Viewer.SurfaceThickness)
	}
	if cfg.Viewer.Background != 0x222222 {
		t.Errorf("expected background 0x222222, got %#x", cfg.Viewer.Background)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

service:
  base_url: "http://bot.example:8080"
  asset_path: "/sprites/"
  timeout: 3s

viewer:
  map_id: 42
  view_size: 14
  background: 1118481

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Window.Width != 1920 || !cfg.Window.Fullscreen || cfg.Window.VSync {
		t.Errorf("window section not applied: %+v", cfg.Window)
	}
	if cfg.Service.BaseURL != "http://bot.example:8080" || cfg.Service.Timeout != 3*time.Second {
		t.Errorf("service section not applied: %+v", cfg.Service)
	}
	if cfg.Viewer.MapID != 42 || cfg.Viewer.ViewSize != 14 || cfg.Viewer.Background != 0x111111 {
		t.Errorf("viewer section not applied: %+v", cfg.Viewer)
	}
	// Unset keys keep their defaults.
	if cfg.Viewer.SurfaceThickness != 0.25 {
		t.Errorf("expected default surface thickness, got %f", cfg.Viewer.SurfaceThickness)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file viewer.log, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalid := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalid), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"empty base url", func(c *Config) { c.Service.BaseURL = "" }, "base_url is empty"},
		{"non http url", func(c *Config) { c.Service.BaseURL = "ftp://x" }, "not an http(s) URL"},
		{"zero timeout", func(c *Config) { c.Service.Timeout = 0 }, "timeout"},
		{"zero view size", func(c *Config) { c.Viewer.ViewSize = 0 }, "view_size"},
		{"zero thickness", func(c *Config) { c.Viewer.SurfaceThickness = 0 }, "surface_thickness"},
		{"bad window", func(c *Config) { c.Window.Width = 0 }, "window size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should be absolute, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "service flag",
			setup: func() { *flagService = "http://10.0.0.2:5000" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Service.BaseURL != "http://10.0.0.2:5000" {
					t.Errorf("expected service override, got %s", cfg.Service.BaseURL)
				}
			},
			teardown: func() { *flagService = "" },
		},
		{
			name:  "map flag",
			setup: func() { *flagMap = 77 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.MapID != 77 {
					t.Errorf("expected map 77, got %d", cfg.Viewer.MapID)
				}
			},
			teardown: func() { *flagMap = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "size flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Viewer.MapID = 9
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Viewer.MapID != 9 {
		t.Errorf("expected map 9 after reload, got %d", loaded.Viewer.MapID)
	}
}

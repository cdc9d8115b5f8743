// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Service ServiceConfig `yaml:"service"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds the drawing surface settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ServiceConfig points at the betting bot's HTTP service.
type ServiceConfig struct {
	BaseURL   string        `yaml:"base_url"`
	AssetPath string        `yaml:"asset_path"` // Sprite directory on the service
	Timeout   time.Duration `yaml:"timeout"`
}

// ViewerConfig holds map viewer tuning.
type ViewerConfig struct {
	MapID            int     `yaml:"map_id"`
	ViewSize         float32 `yaml:"view_size"` // Orthographic half height in world units
	CameraDistance   float32 `yaml:"camera_distance"`
	CameraLift       float32 `yaml:"camera_lift"`
	SurfaceThickness float32 `yaml:"surface_thickness"`
	Background       uint32  `yaml:"background"`
	ScreenshotDir    string  `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the viewer's stock values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Service: ServiceConfig{
			BaseURL:   "http://127.0.0.1:5000",
			AssetPath: "/static.1/",
			Timeout:   8 * time.Second,
		},
		Viewer: ViewerConfig{
			MapID:            1,
			ViewSize:         10,
			CameraDistance:   10,
			CameraLift:       2,
			SurfaceThickness: 0.25,
			Background:       0x222222,
			ScreenshotDir:    "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Track   TrackConfig   `yaml:"track"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the free-fly camera settings.
type CameraConfig struct {
	FOV        float32    `yaml:"fov"` // degrees
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ZoomRate   float32    `yaml:"zoom_rate"`   // units per second
	RotateRate float32    `yaml:"rotate_rate"` // radians per pixel-second
	Position   [3]float32 `yaml:"position,flow"`
	Rotation   [4]float32 `yaml:"rotation,flow"` // x, y, z, w
}

// TrackConfig controls which track is loaded and how it is meshed.
type TrackConfig struct {
	File           string  `yaml:"file"` // empty for the built-in loop
	Samples        int     `yaml:"samples"`
	HalfWidth      float32 `yaml:"half_width"`
	SkipDegenerate bool    `yaml:"skip_degenerate"`
	DebugLines     bool    `yaml:"debug_lines"`
}

// RenderConfig holds rendering settings.
type RenderConfig struct {
	ClearColor [3]float32 `yaml:"clear_color,flow"`
	ShowBounds bool       `yaml:"show_bounds"`
	// ScreenshotDir is where F12 screenshots are written.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Track Ribbon",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FOV:        45,
			Near:       0.1,
			Far:        10000,
			ZoomRate:   16,
			RotateRate: 0.1 * math.Pi,
			Position:   [3]float32{10, 10, 20},
			Rotation:   [4]float32{-0.232, 0.24, 0.06, 0.94},
		},
		Track: TrackConfig{
			Samples:    30,
			HalfWidth:  1,
			DebugLines: true,
		},
		Render: RenderConfig{
			ClearColor:    [3]float32{0, 0, 0},
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("invalid config")

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Track.Samples < 2:
		return fmt.Errorf("%w: track.samples must be at least 2, got %d", ErrInvalid, c.Track.Samples)
	case c.Track.HalfWidth <= 0:
		return fmt.Errorf("%w: track.half_width must be positive, got %g", ErrInvalid, c.Track.HalfWidth)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near %g, far %g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %g", ErrInvalid, c.Camera.FOV)
	}
	return nil
}

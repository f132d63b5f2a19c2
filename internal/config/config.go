// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Loader  LoaderConfig  `yaml:"loader"`
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

// ViewerConfig holds scene and camera settings.
type ViewerConfig struct {
	Background     [3]float32 `yaml:"background"`      // clear color, linear RGB
	FieldOfView    float32    `yaml:"field_of_view"`   // vertical, degrees
	RotationSpeed  float32    `yaml:"rotation_speed"`  // degrees per second, 0 stops
	Wireframe      bool       `yaml:"wireframe"`
	LightAzimuth   float32    `yaml:"light_azimuth"`   // degrees around +Y
	LightElevation float32    `yaml:"light_elevation"` // degrees above the horizon
	HUD            bool       `yaml:"hud"`             // model statistics overlay
	HUDScale       float32    `yaml:"hud_scale"`       // glyph scale, 0 means 1
	LastDir        string     `yaml:"last_dir"`        // start directory of the open dialog
	ScreenshotDir  string     `yaml:"screenshot_dir"`  // F12 output, empty means the working directory
}

// LoaderConfig holds model loading settings.
type LoaderConfig struct {
	// UnknownMaterial is "create" or "fallback".
	UnknownMaterial string `yaml:"unknown_material"`
	Textures        bool   `yaml:"textures"`
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
			Title:  "objview",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Viewer: ViewerConfig{
			Background:     [3]float32{0.1, 0.1, 0.12},
			FieldOfView:    45,
			RotationSpeed:  20,
			LightAzimuth:   35,
			LightElevation: 55,
			HUD:            true,
			HUDScale:       1,
			ScreenshotDir:  "screenshots",
		},
		Loader: LoaderConfig{
			UnknownMaterial: wavefront.UnknownMaterialCreate.String(),
			Textures:        true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// UnknownMaterialPolicy parses Loader.UnknownMaterial.
func (c LoaderConfig) UnknownMaterialPolicy() (wavefront.UnknownMaterialPolicy, error) {
	return wavefront.ParseUnknownMaterialPolicy(c.UnknownMaterial)
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Viewer.FieldOfView <= 0 || c.Viewer.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("field of view %v out of (0, 180)", c.Viewer.FieldOfView))
	}
	if c.Viewer.HUDScale < 0 {
		errs = append(errs, fmt.Errorf("hud scale %v is negative", c.Viewer.HUDScale))
	}
	if _, err := c.Loader.UnknownMaterialPolicy(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

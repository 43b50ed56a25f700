package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Display struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"` // window pixels per framebuffer pixel
}

// Canvas is the animation raster, centred on the display.
type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Host struct {
	Headless   bool   `yaml:"headless"`
	Hz         int    `yaml:"hz"`
	Ticks      uint64 `yaml:"ticks"`       // headless: stop after N ticks, 0 = forever
	StepBudget int    `yaml:"step_budget"` // kernel steps per host frame
}

type Apps struct {
	Autostart string `yaml:"autostart"` // "", "mandelbrot" or "rainbow"

	// Minimum kernel ticks (milliseconds on host) between frames.
	MandelbrotIntervalTicks uint64 `yaml:"mandelbrot_interval_ticks"`
	RainbowIntervalTicks    uint64 `yaml:"rainbow_interval_ticks"`
}

type Rainbow struct {
	MaxBGCounter int `yaml:"max_bg_counter"`
}

// Strip mirrors one canvas row onto an addressable LED strip.
type Strip struct {
	Enabled bool   `yaml:"enabled"`
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0; empty = terminal
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2400000
	Pixels  int    `yaml:"pixels"`
	Row     int    `yaml:"row"`
}

type Config struct {
	LogLevel string `yaml:"log_level"`

	Display Display `yaml:"display"`
	Canvas  Canvas  `yaml:"canvas"`
	Host    Host    `yaml:"host"`
	Apps    Apps    `yaml:"apps"`
	Rainbow Rainbow `yaml:"rainbow"`
	Strip   Strip   `yaml:"strip,omitempty"`
}

// Default matches the badge: a 428x142 canvas filling the screen.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Display:  Display{Width: 428, Height: 142, Scale: 2},
		Canvas:   Canvas{Width: 428, Height: 142},
		Host:     Host{Hz: 60, StepBudget: 256},
		Apps: Apps{
			MandelbrotIntervalTicks: 100,
			RainbowIntervalTicks:    33,
		},
		Rainbow: Rainbow{MaxBGCounter: 600},
		Strip:   Strip{SpeedHz: 2400000, Pixels: 60},
	}
}

// Load reads path over Default, so a partial file only overrides what it names.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Rainbow.MaxBGCounter <= 0 {
		return fmt.Errorf("rainbow.max_bg_counter must be positive, got %d", c.Rainbow.MaxBGCounter)
	}
	switch c.Apps.Autostart {
	case "", "none", "mandelbrot", "rainbow":
	default:
		return fmt.Errorf("apps.autostart: unknown app %q", c.Apps.Autostart)
	}
	if c.Strip.Enabled {
		if c.Strip.Pixels <= 0 {
			return fmt.Errorf("strip.pixels must be positive, got %d", c.Strip.Pixels)
		}
		if c.Strip.Row < 0 || c.Strip.Row >= c.Canvas.Height {
			return fmt.Errorf("strip.row %d outside canvas", c.Strip.Row)
		}
	}
	return nil
}

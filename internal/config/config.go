// Package config loads start-up settings from THINLENS_* environment
// variables. Command-line flags override them through Resolve.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/taigrr/thinlens/pkg/optics"
)

// Config holds the initial simulation inputs and display settings.
type Config struct {
	// Initial form values
	ObjectDistance float64 `envconfig:"OBJECT_DISTANCE" default:"600"`
	ObjectHeight   float64 `envconfig:"OBJECT_HEIGHT" default:"100"`
	FocalLength    float64 `envconfig:"FOCAL_LENGTH" default:"300"`
	Lens           string  `envconfig:"LENS" default:"converging"`

	// Display
	ViewWidth float64 `envconfig:"VIEW_WIDTH" default:"1800"` // Viewport units across the terminal
	FPS       float64 `envconfig:"FPS" default:"30"`
	Palette   string  `envconfig:"PALETTE" default:"auto"`

	// Snapshot
	Supersample int `envconfig:"SUPERSAMPLE" default:"2"`

	Debug bool `envconfig:"DEBUG" default:"false"`
}

// Flags carries command-line overrides. Zero values leave the config alone.
type Flags struct {
	ObjectDistance float64
	ObjectHeight   float64
	HeightSet      bool // ObjectHeight may legitimately be zero
	FocalLength    float64
	Lens           string
	ViewWidth      float64
	FPS            float64
	Palette        string
	Supersample    int
	Debug          bool
}

// Load reads the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("thinlens", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Resolve applies flag overrides.
func (c *Config) Resolve(flags Flags) {
	if flags.ObjectDistance != 0 {
		c.ObjectDistance = flags.ObjectDistance
	}
	if flags.HeightSet {
		c.ObjectHeight = flags.ObjectHeight
	}
	if flags.FocalLength != 0 {
		c.FocalLength = flags.FocalLength
	}
	if flags.Lens != "" {
		c.Lens = flags.Lens
	}
	if flags.ViewWidth > 0 {
		c.ViewWidth = flags.ViewWidth
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Palette != "" {
		c.Palette = flags.Palette
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Debug {
		c.Debug = true
	}
}

// Validate checks values that clamping cannot repair.
func (c *Config) Validate() error {
	if _, ok := optics.ParseLensKind(c.Lens); !ok {
		return fmt.Errorf("config: unknown lens kind %q (use converging or diverging)", c.Lens)
	}
	if c.ViewWidth <= 0 {
		return fmt.Errorf("config: view width must be positive, got %v", c.ViewWidth)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %v", c.FPS)
	}
	if c.Supersample < 1 || c.Supersample > 8 {
		return fmt.Errorf("config: supersample must be 1-8, got %d", c.Supersample)
	}
	return nil
}

// LensKind returns the parsed lens kind; call Validate first.
func (c *Config) LensKind() optics.LensKind {
	k, _ := optics.ParseLensKind(c.Lens)
	return k
}

// Object returns the initial object.
func (c *Config) Object() optics.ObjectSpec {
	return optics.ObjectSpec{Distance: c.ObjectDistance, Height: c.ObjectHeight}
}

// LensParameters returns the initial lens.
func (c *Config) LensParameters() optics.LensParameters {
	return optics.LensParameters{FocalLength: c.FocalLength, Kind: c.LensKind()}
}

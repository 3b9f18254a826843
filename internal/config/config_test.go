package config

import (
	"testing"

	"github.com/taigrr/thinlens/pkg/optics"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ObjectDistance != 600 || cfg.ObjectHeight != 100 || cfg.FocalLength != 300 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.LensKind() != optics.Converging || cfg.Palette != "auto" || cfg.Supersample != 2 {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("THINLENS_OBJECT_DISTANCE", "250")
	t.Setenv("THINLENS_OBJECT_HEIGHT", "-40")
	t.Setenv("THINLENS_LENS", "diverging")
	t.Setenv("THINLENS_FPS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Object() != (optics.ObjectSpec{Distance: 250, Height: -40}) {
		t.Errorf("Object() = %+v", cfg.Object())
	}
	if cfg.LensParameters() != (optics.LensParameters{FocalLength: 300, Kind: optics.Diverging}) {
		t.Errorf("LensParameters() = %+v", cfg.LensParameters())
	}
	if cfg.FPS != 12 {
		t.Errorf("FPS = %v, want 12", cfg.FPS)
	}
}

func TestLoadRejectsBadNumber(t *testing.T) {
	t.Setenv("THINLENS_FOCAL_LENGTH", "wide")
	if _, err := Load(); err == nil {
		t.Error("Load accepted a non-numeric focal length")
	}
}

func TestResolve(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{ObjectDistance: 900, FocalLength: 450, Lens: "concave", Supersample: 4})
	if cfg.ObjectDistance != 900 || cfg.FocalLength != 450 || cfg.Supersample != 4 {
		t.Errorf("Resolve did not apply overrides: %+v", cfg)
	}
	if cfg.ObjectHeight != 100 {
		t.Errorf("ObjectHeight = %v, want untouched 100", cfg.ObjectHeight)
	}
	if cfg.LensKind() != optics.Diverging {
		t.Errorf("LensKind = %v, want diverging", cfg.LensKind())
	}

	cfg.Resolve(Flags{HeightSet: true})
	if cfg.ObjectHeight != 0 {
		t.Errorf("explicit zero height not applied: %v", cfg.ObjectHeight)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"lens", func(c *Config) { c.Lens = "prism" }},
		{"view width", func(c *Config) { c.ViewWidth = 0 }},
		{"fps", func(c *Config) { c.FPS = -1 }},
		{"supersample", func(c *Config) { c.Supersample = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate accepted bad %s", tt.name)
			}
		})
	}
}

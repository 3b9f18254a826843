package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/thinlens/pkg/scene"
)

// Palette maps scene roles and rays to colors.
type Palette struct {
	Background Color
	Ink        Color // Axis, markers and arrows
	LensStroke Color
	LensFill   Color // Drawn over the background with its alpha
	Parallel   Color
	Vertex     Color
	Focal      Color
}

// LightPalette matches a white page.
func LightPalette() Palette {
	return Palette{
		Background: ColorWhite,
		Ink:        ColorBlack,
		LensStroke: RGB(0x66, 0x66, 0x66),
		LensFill:   RGBA(217, 232, 240, 128),
		Parallel:   ColorBlue,
		Vertex:     ColorGreen,
		Focal:      ColorRed,
	}
}

// DarkPalette keeps the ray hues but lifts them so they read on black.
func DarkPalette() Palette {
	p := LightPalette()
	p.Background = ColorBlack
	p.Ink = RGB(0xdd, 0xdd, 0xdd)
	p.LensStroke = RGB(0x99, 0x99, 0x99)
	p.LensFill = RGBA(90, 120, 140, 128)
	p.Parallel = lighten(p.Parallel, 0.35)
	p.Vertex = lighten(p.Vertex, 0.35)
	p.Focal = lighten(p.Focal, 0.2)
	return p
}

// PaletteFor picks the light or dark palette from the background lightness
// and keeps bg as the background.
func PaletteFor(bg Color) Palette {
	p := LightPalette()
	if IsDark(bg) {
		p = DarkPalette()
	}
	p.Background = RGB(bg.R, bg.G, bg.B)
	return p
}

// PaletteByName returns "light", "dark" or, for "auto", the palette for bg.
func PaletteByName(name string, bg Color) (Palette, bool) {
	switch name {
	case "light":
		return LightPalette(), true
	case "dark":
		return DarkPalette(), true
	case "auto", "":
		return PaletteFor(bg), true
	}
	return Palette{}, false
}

// IsDark reports whether c has a CIE L* below one half.
func IsDark(c Color) bool {
	cf, ok := colorful.MakeColor(color.NRGBA{c.R, c.G, c.B, 255})
	if !ok {
		return false
	}
	l, _, _ := cf.Lab()
	return l < 0.5
}

func lighten(c Color, t float64) Color {
	cf, _ := colorful.MakeColor(color.NRGBA{c.R, c.G, c.B, 255})
	r, g, b := cf.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return RGB(r, g, b)
}

// RayColor returns the stroke color for a principal ray.
func (p Palette) RayColor(k scene.RayKind) Color {
	switch k {
	case scene.RayParallel:
		return p.Parallel
	case scene.RayVertex:
		return p.Vertex
	case scene.RayFocal:
		return p.Focal
	default:
		return p.Ink
	}
}

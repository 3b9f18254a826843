// Package render rasterizes a thin-lens scene into a framebuffer that can be
// shown on a terminal or written to PNG/WebP.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Color is an 8-bit RGBA color (straight alpha).
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA returns a color with alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// NRGBA converts to the standard library color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Predefined colors.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorRed   = RGB(255, 0, 0)
	ColorGreen = RGB(0, 128, 0)
	ColorBlue  = RGB(0, 0, 255)
)

// Framebuffer is the raster target. It wraps an *image.RGBA so the vector
// rasterizer can use its fast path.
type Framebuffer struct {
	Width  int
	Height int
	BG     Color

	img *image.RGBA
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{BG: ColorBlack}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates the pixel storage and clears it.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = max(width, 1)
	fb.Height = max(height, 1)
	fb.img = image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.Clear()
}

// Clear fills every pixel with BG.
func (fb *Framebuffer) Clear() {
	c := color.RGBA{fb.BG.R, fb.BG.G, fb.BG.B, 255}
	pix := fb.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// Bounds returns the framebuffer rectangle.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return fb.img.Bounds()
}

// ToImage returns a copy of the framebuffer contents.
func (fb *Framebuffer) ToImage() *image.RGBA {
	out := image.NewRGBA(fb.img.Bounds())
	copy(out.Pix, fb.img.Pix)
	return out
}

// SavePNG writes the framebuffer to path.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

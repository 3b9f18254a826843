package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/taigrr/thinlens/pkg/scene"
	"golang.org/x/image/draw"
)

// Format is an image file format supported for snapshots.
type Format int

const (
	FormatPNG Format = iota
	FormatWebP
)

func (f Format) String() string {
	if f == FormatWebP {
		return "webp"
	}
	return "png"
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".webp":
		return FormatWebP, nil
	default:
		return FormatPNG, fmt.Errorf("unsupported format: %q (use .png or .webp)", ext)
	}
}

// Snapshot renders s at scale pixels per viewport unit. With supersample > 1
// the scene is drawn that many times larger and filtered back down.
func Snapshot(s scene.Scene, palette Palette, scale float64, supersample int) *image.RGBA {
	supersample = max(supersample, 1)
	w := int(s.Viewport.Width * scale)
	h := int(s.Viewport.Height * scale)

	fb := NewFramebuffer(w*supersample, h*supersample)
	p := NewPainter(fb, palette, scale*float64(supersample))
	p.MinStroke = float64(supersample)
	p.Render(s)
	if supersample == 1 {
		return fb.ToImage()
	}

	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), fb.img, fb.img.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes img in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encode webp: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	return nil
}

// SaveImage writes img to path, choosing the format from its extension.
func SaveImage(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package render

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/thinlens/pkg/optics"
	"github.com/taigrr/thinlens/pkg/scene"
)

func testScene(do, ho, f float64, kind optics.LensKind) scene.Scene {
	obj := optics.ObjectSpec{Distance: do, Height: ho}
	lens := optics.LensParameters{FocalLength: f, Kind: kind}
	return scene.Build(obj, lens, optics.ComputeImage(obj, lens), scene.NewViewport(1600, 900, 100))
}

func TestPainterRayColors(t *testing.T) {
	s := testScene(800, 100, 400, optics.Converging)
	fb := NewFramebuffer(1600, 900)
	palette := LightPalette()
	NewPainter(fb, palette, 1).Render(s)

	tests := []struct {
		name string
		x, y int
		want Color
	}{
		{"background", 100, 100, palette.Background},
		{"parallel incident", 400, 400, palette.Parallel},
		{"focal outgoing", 1200, 600, palette.Focal},
		{"curvature marker", 1598, 500, palette.Ink},
	}
	for _, tt := range tests {
		if got := pixelAt(fb, tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel (%d, %d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPainterScale(t *testing.T) {
	s := testScene(800, 100, 400, optics.Converging)
	fb := NewFramebuffer(160, 90)
	palette := DarkPalette()
	NewPainter(fb, palette, 0.1).Render(s)

	// The parallel ray's incident half runs along row 40 at a tenth of the
	// size; the minimum stroke keeps it visible.
	found := false
	for y := 38; y <= 41; y++ {
		if pixelAt(fb, 40, y) != palette.Background {
			found = true
		}
	}
	if !found {
		t.Error("no ray pixels near (40, 40) at scale 0.1")
	}
}

func TestPainterSkipsOffscreen(t *testing.T) {
	// A tiny object far from the lens with a huge virtual image sends
	// primitives well outside the framebuffer; drawing must not fail.
	s := testScene(1, 1000, 800, optics.Converging)
	fb := NewFramebuffer(320, 180)
	NewPainter(fb, LightPalette(), 0.2).Render(s)
}

func TestDashRuns(t *testing.T) {
	runs := dashRuns(0, 30, scene.RayDash)
	want := [][2]float64{{10, 15}, {25, 30}}
	if len(runs) != len(want) {
		t.Fatalf("dashRuns = %v, want %v", runs, want)
	}
	for i := range want {
		if math.Abs(runs[i][0]-want[i][0]) > 1e-9 || math.Abs(runs[i][1]-want[i][1]) > 1e-9 {
			t.Errorf("run %d = %v, want %v", i, runs[i], want[i])
		}
	}

	// Starting mid-pattern keeps the phase of the original start point.
	runs = dashRuns(12, 20, scene.RayDash)
	if len(runs) != 1 || runs[0] != [2]float64{12, 15} {
		t.Errorf("dashRuns(12, 20) = %v, want [[12 15]]", runs)
	}

	axis := dashRuns(0, 100, scene.AxisDash)
	if len(axis) != 3 || axis[0] != [2]float64{0, 10} {
		t.Errorf("axis dashRuns = %v", axis)
	}
}

func TestPalette(t *testing.T) {
	if !IsDark(ColorBlack) || IsDark(ColorWhite) {
		t.Error("IsDark misclassifies black/white")
	}
	p := PaletteFor(RGB(20, 20, 30))
	if p.Ink != DarkPalette().Ink || p.Background != RGB(20, 20, 30) {
		t.Errorf("PaletteFor(dark) = %+v", p)
	}
	if p := PaletteFor(RGB(250, 250, 240)); p.Ink != ColorBlack {
		t.Errorf("PaletteFor(light) ink = %v, want black", p.Ink)
	}
	if _, ok := PaletteByName("sepia", ColorBlack); ok {
		t.Error("PaletteByName accepted an unknown name")
	}
	dark := DarkPalette()
	if dark.Parallel == ColorBlue || dark.Parallel.B < dark.Parallel.R {
		t.Errorf("dark parallel color = %v, want lightened blue", dark.Parallel)
	}
	if dark.RayColor(scene.RayVertex) != dark.Vertex || dark.RayColor(scene.RayNone) != dark.Ink {
		t.Error("RayColor mapping wrong")
	}
}

func TestSnapshot(t *testing.T) {
	s := testScene(200, 50, 400, optics.Converging)
	img := Snapshot(s, LightPalette(), 0.5, 2)
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 450 {
		t.Fatalf("snapshot size = %v, want 800x450", img.Bounds())
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatalf("Encode png: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}

	buf.Reset()
	if err := Encode(&buf, img, FormatWebP); err != nil {
		t.Fatalf("Encode webp: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Error("webp output missing RIFF header")
	}
}

func TestSaveImage(t *testing.T) {
	img := Snapshot(testScene(800, 100, 400, optics.Diverging), LightPalette(), 0.25, 1)
	dir := t.TempDir()
	for _, name := range []string{"lens.png", "lens.webp"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(path, img); err != nil {
			t.Fatalf("SaveImage(%s): %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if err := SaveImage(filepath.Join(dir, "lens.jpg"), img); err == nil {
		t.Error("SaveImage accepted .jpg")
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("a/B.WEBP"); err != nil || f != FormatWebP {
		t.Errorf("FormatFromPath(.WEBP) = %v, %v", f, err)
	}
	if f, err := FormatFromPath("x.png"); err != nil || f != FormatPNG {
		t.Errorf("FormatFromPath(.png) = %v, %v", f, err)
	}
}

func BenchmarkPainterRender(b *testing.B) {
	s := testScene(250, 120, 400, optics.Converging)
	fb := NewFramebuffer(200, 100)
	p := NewPainter(fb, DarkPalette(), 0.125)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Render(s)
	}
}

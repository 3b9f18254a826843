package scene

import "math"

// Lens half-height bounds, in viewport units.
const (
	MinLensHalfHeight = 100
	MaxLensHalfHeight = 200
)

// Viewport is the drawing surface the scene is laid out on. The controls
// strip is reserved at the top; the lens sits centered in what remains.
type Viewport struct {
	Width          float64
	Height         float64
	CenterX        float64
	CenterY        float64
	LensHalfHeight float64
}

// NewViewport derives the lens placement for a surface of the given size
// with controlsHeight units reserved at the top.
func NewViewport(width, height, controlsHeight float64) Viewport {
	vertical := height - controlsHeight
	half := math.Floor(vertical * 0.4)
	half = math.Max(math.Min(half, MaxLensHalfHeight), MinLensHalfHeight)
	return Viewport{
		Width:          width,
		Height:         height,
		CenterX:        math.Floor(width / 2),
		CenterY:        height - math.Floor(vertical/2),
		LensHalfHeight: half,
	}
}

// LeftHalf reports whether x lies on the object side of the surface.
func (v Viewport) LeftHalf(x float64) bool {
	return x < v.Width/2
}

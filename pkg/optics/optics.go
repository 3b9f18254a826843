// Package optics implements the thin-lens equation for a single lens.
//
// Distances are magnitudes measured from the lens. An image distance is
// positive for a real image (opposite side from the object) and negative for
// a virtual image. Heights are positive above the optical axis.
package optics

import (
	"math"
	"strconv"

	"github.com/taigrr/thinlens/pkg/math2d"
)

// Input bounds. Every value is clamped to these before use.
const (
	MinObjectDistance = 1.0
	MaxObjectDistance = 2000.0
	MinObjectHeight   = -1000.0
	MaxObjectHeight   = 1000.0
	MinFocalLength    = 200.0
	MaxFocalLength    = 800.0
)

// LensKind selects the sign of the focal length.
type LensKind int

const (
	Converging LensKind = iota // Positive focal length, biconvex
	Diverging                  // Negative focal length, biconcave
)

func (k LensKind) String() string {
	switch k {
	case Converging:
		return "converging"
	case Diverging:
		return "diverging"
	default:
		return "unknown"
	}
}

// Toggle returns the other lens kind.
func (k LensKind) Toggle() LensKind {
	if k == Converging {
		return Diverging
	}
	return Converging
}

// ParseLensKind accepts "converging"/"convex" and "diverging"/"concave"
// (or their first letter).
func ParseLensKind(s string) (LensKind, bool) {
	switch s {
	case "converging", "convex", "c", "+":
		return Converging, true
	case "diverging", "concave", "d", "-":
		return Diverging, true
	}
	return Converging, false
}

// LensParameters describes the lens. FocalLength is always stored positive;
// Diverging flips its sign inside the formula only.
type LensParameters struct {
	FocalLength float64
	Kind        LensKind
}

// Clamp returns the parameters with the focal length clamped.
func (l LensParameters) Clamp() LensParameters {
	l.FocalLength = ClampFocalLength(l.FocalLength)
	return l
}

// SignedFocalLength returns f for a converging lens and -f for a diverging one.
func (l LensParameters) SignedFocalLength() float64 {
	if l.Kind == Diverging {
		return -l.FocalLength
	}
	return l.FocalLength
}

// ObjectSpec is the object arrow: its distance in front of the lens and its
// height above the axis.
type ObjectSpec struct {
	Distance float64
	Height   float64
}

// Clamp returns the object with distance and height clamped.
func (o ObjectSpec) Clamp() ObjectSpec {
	o.Distance = ClampDistance(o.Distance)
	o.Height = ClampHeight(o.Height)
	return o
}

// ClampDistance limits an object distance to [1, 2000].
func ClampDistance(v float64) float64 {
	return math2d.Clamp(v, MinObjectDistance, MaxObjectDistance)
}

// ClampHeight limits an object height to [-1000, 1000].
func ClampHeight(v float64) float64 {
	return math2d.Clamp(v, MinObjectHeight, MaxObjectHeight)
}

// ClampFocalLength limits a focal length to [200, 800].
func ClampFocalLength(v float64) float64 {
	return math2d.Clamp(v, MinFocalLength, MaxFocalLength)
}

// ImageResult is the image formed by the lens.
type ImageResult struct {
	Distance float64
	Height   float64
}

// ComputeImage clamps its inputs and solves 1/di = 1/f - 1/do.
//
// An object at the focal point of a converging lens yields an image at
// +Inf (IEEE division by zero); see AtInfinity. NaN inputs propagate.
func ComputeImage(object ObjectSpec, lens LensParameters) ImageResult {
	object = object.Clamp()
	lens = lens.Clamp()

	f := lens.SignedFocalLength()
	di := 1 / (1/f - 1/object.Distance)
	return ImageResult{
		Distance: di,
		Height:   -object.Height * di / object.Distance,
	}
}

// Real reports whether the image forms on the far side of the lens.
func (r ImageResult) Real() bool {
	return r.Distance > 0
}

// Virtual reports whether the image is found by backward extension.
func (r ImageResult) Virtual() bool {
	return r.Distance < 0
}

// AtInfinity reports whether the outgoing rays are parallel.
func (r ImageResult) AtInfinity() bool {
	return math.IsInf(r.Distance, 0)
}

// Finite reports whether both distance and height are usable coordinates.
func (r ImageResult) Finite() bool {
	return math2d.Finite(r.Distance) && math2d.Finite(r.Height)
}

// Magnification returns hi/ho, or -di/do when the object height is zero.
func (r ImageResult) Magnification(object ObjectSpec) float64 {
	object = object.Clamp()
	if object.Height != 0 {
		return r.Height / object.Height
	}
	return -r.Distance / object.Distance
}

// Inverted reports whether the image points the opposite way to the object.
func (r ImageResult) Inverted(object ObjectSpec) bool {
	return r.Magnification(object) < 0
}

// Rounded is the display form of an image value.
type Rounded struct {
	Value    int
	Infinite bool // Value is meaningless; the sign is in Negative
	Negative bool
	Invalid  bool // NaN
}

func (r Rounded) String() string {
	switch {
	case r.Invalid:
		return "-"
	case r.Infinite && r.Negative:
		return "-∞"
	case r.Infinite:
		return "∞"
	default:
		return strconv.Itoa(r.Value)
	}
}

// Round converts v for display. Halves round up, so -2.5 becomes -2.
func Round(v float64) Rounded {
	switch {
	case math.IsNaN(v):
		return Rounded{Invalid: true}
	case math.IsInf(v, 0):
		return Rounded{Infinite: true, Negative: v < 0}
	}
	r := math.Floor(v + 0.5)
	if r >= float64(math.MaxInt) || r < float64(math.MinInt) {
		// Too large to show as an integer: the object is a hair off the focal point.
		return Rounded{Infinite: true, Negative: v < 0}
	}
	return Rounded{Value: int(r), Negative: v < 0}
}

// Rounded returns the distance and height as displayed.
func (r ImageResult) Rounded() (distance, height Rounded) {
	return Round(r.Distance), Round(r.Height)
}

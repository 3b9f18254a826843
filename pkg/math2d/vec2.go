// Package math2d provides the screen-space vector type used by the scene
// builder and the rasterizer.
package math2d

import "math"

// Vec2 is a point or direction in screen space (y grows downward).
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Len returns the length of the vector.
func (a Vec2) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

// Normalize returns the unit vector, or zero for a zero vector.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Perpendicular returns a perpendicular vector (90° counter-clockwise).
func (a Vec2) Perpendicular() Vec2 {
	return Vec2{-a.Y, a.X}
}

// Finite reports whether neither component is NaN or infinite.
func (a Vec2) Finite() bool {
	return Finite(a.X) && Finite(a.Y)
}

// Distance returns the distance between two points.
func (a Vec2) Distance(b Vec2) float64 {
	return a.Sub(b).Len()
}

// AtX returns the point on the line through a and b whose X equals x.
// A vertical line yields a.
func AtX(a, b Vec2, x float64) Vec2 {
	dx := b.X - a.X
	if dx == 0 {
		return a
	}
	return Vec2{x, a.Y + (b.Y-a.Y)*(x-a.X)/dx}
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits v to [lo, hi]. NaN passes through unchanged.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClipSegment clips the segment a→b to the rectangle [lo, hi] and returns
// the surviving parameter range along it (Liang-Barsky). ok is false when
// nothing of the segment is inside.
func ClipSegment(a, b, lo, hi Vec2) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	d := b.Sub(a)
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	if clip(-d.X, a.X-lo.X) && clip(d.X, hi.X-a.X) &&
		clip(-d.Y, a.Y-lo.Y) && clip(d.Y, hi.Y-a.Y) {
		return t0, t1, t0 <= t1
	}
	return 0, 0, false
}

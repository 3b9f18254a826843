// Package scene lays out the thin-lens diagram as a list of drawable
// primitives in viewport units (origin top-left, y down).
//
// Heights from the optics package are positive above the axis, so every
// height is negated when it becomes a vertical screen offset.
package scene

import (
	"math"

	"github.com/taigrr/thinlens/pkg/math2d"
	"github.com/taigrr/thinlens/pkg/optics"
)

// DivergingNotchDivisor separates the two concave faces of a diverging lens
// by LensHalfHeight/DivergingNotchDivisor on each side of the lens plane.
const DivergingNotchDivisor = 30

// Scene is an ordered list of primitives, back to front.
type Scene struct {
	Viewport   Viewport
	Primitives []Primitive
}

// Count returns how many primitives carry role.
func (s Scene) Count(role Role) int {
	n := 0
	for _, p := range s.Primitives {
		if p.Role() == role {
			n++
		}
	}
	return n
}

// Segments returns the segments tagged with role, in draw order.
func (s Scene) Segments(role Role) []Segment {
	var out []Segment
	for _, p := range s.Primitives {
		if seg, ok := p.(Segment); ok && seg.Tag == role {
			out = append(out, seg)
		}
	}
	return out
}

// Rays returns the solid principal-ray segments.
func (s Scene) Rays() []Segment { return s.Segments(RoleRay) }

// Extensions returns the dashed backward extensions toward a virtual image.
func (s Scene) Extensions() []Segment { return s.Segments(RoleVirtualExtension) }

// Arrow returns the first arrow with role, if it survived filtering.
func (s Scene) Arrow(role Role) (Arrow, bool) {
	for _, p := range s.Primitives {
		if a, ok := p.(Arrow); ok && a.Tag == role {
			return a, true
		}
	}
	return Arrow{}, false
}

// builder drops primitives that have non-finite coordinates.
type builder struct {
	prims []Primitive
}

func (b *builder) add(p Primitive) {
	if p.Finite() {
		b.prims = append(b.prims, p)
	}
}

// Build lays out the diagram. Object and lens are clamped again here with the
// same bounds the optics package uses, so a caller passing raw values still
// gets geometry consistent with ComputeImage.
func Build(object optics.ObjectSpec, lens optics.LensParameters, image optics.ImageResult, vp Viewport) Scene {
	object = object.Clamp()
	lens = lens.Clamp()

	b := &builder{prims: make([]Primitive, 0, 20)}
	center := math2d.V2(vp.CenterX, vp.CenterY)
	f := lens.FocalLength

	b.add(lensBody(lens, vp))
	b.add(Axis{Center: center, MinX: 0, MaxX: vp.Width})

	b.add(Marker{Kind: MarkerLensCenter, At: center, Radius: MarkerRadius})
	b.add(Marker{Kind: MarkerFocalPoint, At: math2d.V2(vp.CenterX-f, vp.CenterY), Radius: MarkerRadius})
	b.add(Marker{Kind: MarkerFocalPoint, At: math2d.V2(vp.CenterX+f, vp.CenterY), Radius: MarkerRadius})
	b.add(Marker{Kind: MarkerCurvatureCenter, At: math2d.V2(vp.CenterX-2*f, vp.CenterY), Radius: MarkerRadius})
	b.add(Marker{Kind: MarkerCurvatureCenter, At: math2d.V2(vp.CenterX+2*f, vp.CenterY), Radius: MarkerRadius})

	t := newTrace(object, lens, image, vp)
	if lens.Kind == optics.Diverging || image.Distance < 0 {
		for _, s := range t.extensions() {
			b.add(s)
		}
	}
	for _, s := range t.rays() {
		b.add(s)
	}

	b.add(Arrow{
		Tag:    RoleObjectArrow,
		Base:   math2d.V2(vp.CenterX-object.Distance, vp.CenterY),
		Length: -object.Height,
	})
	b.add(Arrow{
		Tag:    RoleImageArrow,
		Base:   math2d.V2(vp.CenterX+image.Distance, vp.CenterY),
		Length: -image.Height,
	})

	return Scene{Viewport: vp, Primitives: b.prims}
}

// lensBody builds the biconvex or biconcave outline from two arcs of radius
// 2f whose chords span the lens height.
func lensBody(lens optics.LensParameters, vp Viewport) LensBody {
	r := 2 * lens.FocalLength
	angle := math.Asin(vp.LensHalfHeight / r)

	var offset float64
	if lens.Kind == optics.Converging {
		offset = r * math.Cos(angle)
	} else {
		offset = r + vp.LensHalfHeight/DivergingNotchDivisor
	}

	return LensBody{
		Kind: lens.Kind,
		Left: Arc{
			Center: math2d.V2(vp.CenterX-offset, vp.CenterY),
			Radius: r,
			Start:  -angle,
			End:    angle,
		},
		Right: Arc{
			Center: math2d.V2(vp.CenterX+offset, vp.CenterY),
			Radius: r,
			Start:  math.Pi - angle,
			End:    math.Pi + angle,
		},
	}
}

// trace holds the screen positions shared by the three principal rays.
type trace struct {
	vp  Viewport
	tip math2d.Vec2 // Object arrow tip

	// Height on the lens plane where the parallel and focal rays cross it.
	parallelY, focalY float64

	// Rise over the distance from the lens to the right edge; the diverging
	// case bends the parallel ray away from the axis instead of toward it.
	parallelRise, vertexRise float64
}

func newTrace(object optics.ObjectSpec, lens optics.LensParameters, image optics.ImageResult, vp Viewport) trace {
	return trace{
		vp:           vp,
		tip:          math2d.V2(vp.CenterX-object.Distance, vp.CenterY-object.Height),
		parallelY:    vp.CenterY - object.Height,
		focalY:       vp.CenterY - image.Height,
		parallelRise: object.Height * vp.CenterX / lens.SignedFocalLength(),
		vertexRise:   object.Height * vp.CenterX / object.Distance,
	}
}

// rays returns the incident and refracted halves of each principal ray.
func (t trace) rays() []Segment {
	cx, w := t.vp.CenterX, t.vp.Width

	parallelHit := math2d.V2(cx, t.parallelY)
	parallelOut := math2d.V2(w, t.parallelY+t.parallelRise)

	// The vertex ray is one straight line; it is split where it crosses the
	// lens plane so every ray has an incident and an outgoing half.
	vertexOut := math2d.V2(w, t.vp.CenterY+t.vertexRise)
	vertexHit := math2d.AtX(t.tip, vertexOut, cx)

	focalHit := math2d.V2(cx, t.focalY)
	focalOut := math2d.V2(w, t.focalY)

	return []Segment{
		{Tag: RoleRay, Ray: RayParallel, From: t.tip, To: parallelHit},
		{Tag: RoleRay, Ray: RayParallel, From: parallelHit, To: parallelOut},
		{Tag: RoleRay, Ray: RayVertex, From: t.tip, To: vertexHit},
		{Tag: RoleRay, Ray: RayVertex, From: vertexHit, To: vertexOut},
		{Tag: RoleRay, Ray: RayFocal, From: t.tip, To: focalHit},
		{Tag: RoleRay, Ray: RayFocal, From: focalHit, To: focalOut},
	}
}

// extensions returns the outgoing rays continued backward to the left edge,
// where they meet at the virtual image.
func (t trace) extensions() []Segment {
	cx := t.vp.CenterX
	return []Segment{
		{
			Tag: RoleVirtualExtension, Ray: RayParallel, Dash: RayDash,
			From: math2d.V2(cx, t.parallelY),
			To:   math2d.V2(0, t.parallelY-t.parallelRise),
		},
		{
			Tag: RoleVirtualExtension, Ray: RayVertex, Dash: RayDash,
			From: t.tip,
			To:   math2d.V2(0, t.vp.CenterY-t.vertexRise),
		},
		{
			Tag: RoleVirtualExtension, Ray: RayFocal, Dash: RayDash,
			From: math2d.V2(cx, t.focalY),
			To:   math2d.V2(0, t.focalY),
		},
	}
}

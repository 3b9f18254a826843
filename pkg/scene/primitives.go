package scene

import (
	"math"

	"github.com/taigrr/thinlens/pkg/math2d"
	"github.com/taigrr/thinlens/pkg/optics"
)

// Role tags what a primitive depicts.
type Role int

const (
	RoleLensBody Role = iota
	RoleAxis
	RoleFocalPoint // Lens center, focal points and centers of curvature
	RoleRay
	RoleVirtualExtension
	RoleObjectArrow
	RoleImageArrow
)

var roleNames = [...]string{
	RoleLensBody:         "lens-body",
	RoleAxis:             "axis",
	RoleFocalPoint:       "focal-point",
	RoleRay:              "principal-ray",
	RoleVirtualExtension: "virtual-extension",
	RoleObjectArrow:      "object-arrow",
	RoleImageArrow:       "image-arrow",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// Primitive is one drawable element of a Scene.
type Primitive interface {
	Role() Role
	// Finite reports whether every coordinate is a real number.
	Finite() bool
}

// RayKind identifies one of the three principal rays.
type RayKind int

const (
	RayNone     RayKind = iota
	RayParallel         // Enters parallel to the axis, leaves through F'
	RayVertex           // Passes undeviated through the lens center
	RayFocal            // Enters through F, leaves parallel to the axis
)

func (k RayKind) String() string {
	switch k {
	case RayParallel:
		return "parallel"
	case RayVertex:
		return "vertex"
	case RayFocal:
		return "focal"
	default:
		return "none"
	}
}

// Dash is a stroke pattern in viewport units. The zero value is solid.
type Dash struct {
	On, Off float64
	Offset  float64
}

// Solid reports whether the pattern draws a continuous line.
func (d Dash) Solid() bool {
	return d.On <= 0 || d.Off <= 0
}

var (
	// RayDash is used for backward extensions to a virtual image.
	RayDash = Dash{On: 5, Off: 10, Offset: 5}
	// AxisDash is used for the optical axis, drawn outward from the lens.
	AxisDash = Dash{On: 20, Off: 20, Offset: 10}
)

// Segment is a straight stroke.
type Segment struct {
	Tag      Role
	Ray      RayKind
	From, To math2d.Vec2
	Dash     Dash
}

func (s Segment) Role() Role { return s.Tag }

func (s Segment) Finite() bool { return s.From.Finite() && s.To.Finite() }

// Dashed reports whether the segment is stroked with a dash pattern.
func (s Segment) Dashed() bool { return !s.Dash.Solid() }

// Axis is the optical axis through the lens center.
type Axis struct {
	Center     math2d.Vec2
	MinX, MaxX float64
}

func (Axis) Role() Role { return RoleAxis }

func (a Axis) Finite() bool {
	return a.Center.Finite() && math2d.Finite(a.MinX) && math2d.Finite(a.MaxX)
}

// Halves splits the axis into two dashed strokes running outward from the
// center, so the dash pattern is symmetric about the lens.
func (a Axis) Halves() [2]Segment {
	return [2]Segment{
		{Tag: RoleAxis, From: a.Center, To: math2d.V2(a.MinX, a.Center.Y), Dash: AxisDash},
		{Tag: RoleAxis, From: a.Center, To: math2d.V2(a.MaxX, a.Center.Y), Dash: AxisDash},
	}
}

// MarkerKind distinguishes the points marked on the axis.
type MarkerKind int

const (
	MarkerLensCenter MarkerKind = iota
	MarkerFocalPoint
	MarkerCurvatureCenter
)

// MarkerRadius is the radius of an axis marker dot.
const MarkerRadius = 4.0

// Marker is a filled dot on the optical axis.
type Marker struct {
	Kind   MarkerKind
	At     math2d.Vec2
	Radius float64
}

func (Marker) Role() Role { return RoleFocalPoint }

func (m Marker) Finite() bool { return m.At.Finite() && math2d.Finite(m.Radius) }

// Arc is a circular arc. Angles are in radians, measured clockwise on screen
// (y down), and the arc runs from Start to End.
type Arc struct {
	Center     math2d.Vec2
	Radius     float64
	Start, End float64
}

// Point returns the point at angle t.
func (a Arc) Point(t float64) math2d.Vec2 {
	return math2d.V2(a.Center.X+a.Radius*math.Cos(t), a.Center.Y+a.Radius*math.Sin(t))
}

// Points tessellates the arc into n+1 points from Start to End.
func (a Arc) Points(n int) []math2d.Vec2 {
	if n < 1 {
		n = 1
	}
	pts := make([]math2d.Vec2, n+1)
	for i := 0; i <= n; i++ {
		t := a.Start + (a.End-a.Start)*float64(i)/float64(n)
		pts[i] = a.Point(t)
	}
	return pts
}

func (a Arc) finite() bool {
	return a.Center.Finite() && math2d.Finite(a.Radius) && math2d.Finite(a.Start) && math2d.Finite(a.End)
}

// LensBody is the closed outline formed by joining Left then Right.
type LensBody struct {
	Kind        optics.LensKind
	Left, Right Arc
}

func (LensBody) Role() Role { return RoleLensBody }

func (l LensBody) Finite() bool { return l.Left.finite() && l.Right.finite() }

// Outline returns the closed polygon approximating the lens silhouette.
func (l LensBody) Outline(stepsPerArc int) []math2d.Vec2 {
	return append(l.Left.Points(stepsPerArc), l.Right.Points(stepsPerArc)...)
}

// Arrow dimensions in viewport units.
const (
	ArrowShaftWidth = 4.0
	ArrowHeadWidth  = 6.0 // Half-width of the head base
	ArrowHeadLength = 8.0
)

// Arrow is a vertical arrow standing on the axis. A positive Length points
// down the screen, a negative one up.
type Arrow struct {
	Tag    Role
	Base   math2d.Vec2
	Length float64
}

func (a Arrow) Role() Role { return a.Tag }

func (a Arrow) Finite() bool { return a.Base.Finite() && math2d.Finite(a.Length) }

func (a Arrow) headLength() float64 {
	if a.Length > 0 {
		return ArrowHeadLength
	}
	return -ArrowHeadLength
}

// Tip returns the point of the arrowhead.
func (a Arrow) Tip() math2d.Vec2 {
	return math2d.V2(a.Base.X, a.Base.Y+a.Length)
}

// Shaft returns the body of the arrow, from the base to the head.
func (a Arrow) Shaft() (from, to math2d.Vec2) {
	return a.Base, math2d.V2(a.Base.X, a.Base.Y+a.Length-a.headLength())
}

// Head returns the arrowhead triangle; the last vertex is the tip.
func (a Arrow) Head() [3]math2d.Vec2 {
	y := a.Base.Y + a.Length - a.headLength()
	return [3]math2d.Vec2{
		math2d.V2(a.Base.X+ArrowHeadWidth, y),
		math2d.V2(a.Base.X-ArrowHeadWidth, y),
		a.Tip(),
	}
}

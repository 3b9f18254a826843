package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/taigrr/thinlens/pkg/math2d"
	"github.com/taigrr/thinlens/pkg/scene"
	"golang.org/x/image/vector"
)

// Stroke widths in viewport units.
const (
	LensStrokeWidth = 2.0
	RayStrokeWidth  = 2.0
	AxisStrokeWidth = 2.0
)

// Painter draws scenes into a framebuffer. Scale converts viewport units to
// framebuffer pixels; strokes never get thinner than MinStroke pixels.
type Painter struct {
	FB        *Framebuffer
	Palette   Palette
	Scale     float64
	MinStroke float64
	ArcSteps  int // Segments per lens arc

	z *vector.Rasterizer
}

// NewPainter creates a painter targeting fb.
func NewPainter(fb *Framebuffer, palette Palette, scale float64) *Painter {
	return &Painter{
		FB:        fb,
		Palette:   palette,
		Scale:     scale,
		MinStroke: 1,
		ArcSteps:  24,
		z:         vector.NewRasterizer(fb.Width, fb.Height),
	}
}

// Render clears the framebuffer to the palette background and draws s.
func (p *Painter) Render(s scene.Scene) {
	p.FB.BG = p.Palette.Background
	p.FB.Clear()
	p.Draw(s)
}

// Draw paints every primitive of s in order over the current contents.
func (p *Painter) Draw(s scene.Scene) {
	for _, prim := range s.Primitives {
		switch v := prim.(type) {
		case scene.LensBody:
			p.drawLens(v)
		case scene.Axis:
			for _, half := range v.Halves() {
				p.stroke(half, AxisStrokeWidth, p.Palette.Ink)
			}
		case scene.Marker:
			p.fillCircle(v.At, v.Radius, p.Palette.Ink)
		case scene.Segment:
			p.stroke(v, RayStrokeWidth, p.Palette.RayColor(v.Ray))
		case scene.Arrow:
			p.drawArrow(v)
		}
	}
}

func (p *Painter) drawLens(l scene.LensBody) {
	outline := l.Outline(p.ArcSteps)
	if !p.fillPolygon(outline, p.Palette.LensFill) {
		return
	}
	w := math.Max(LensStrokeWidth*p.Scale, p.MinStroke)
	p.begin()
	for i := range outline {
		p.quad(outline[i], outline[(i+1)%len(outline)], w)
	}
	p.paint(p.Palette.LensStroke)
}

func (p *Painter) drawArrow(a scene.Arrow) {
	from, to := a.Shaft()
	p.stroke(scene.Segment{Tag: a.Tag, From: from, To: to}, scene.ArrowShaftWidth, p.Palette.Ink)
	head := a.Head()
	p.fillPolygon(head[:], p.Palette.Ink)
}

// toPixels maps a viewport point to framebuffer coordinates.
func (p *Painter) toPixels(v math2d.Vec2) math2d.Vec2 {
	return v.Scale(p.Scale)
}

// viewBounds returns the visible area in viewport units, with a margin so
// wide strokes near the edge keep their ends.
func (p *Painter) viewBounds(margin float64) (lo, hi math2d.Vec2) {
	w := float64(p.FB.Width) / p.Scale
	h := float64(p.FB.Height) / p.Scale
	return math2d.V2(-margin, -margin), math2d.V2(w+margin, h+margin)
}

// stroke draws a line of the given viewport width. The segment is clipped to
// the view first so far-off endpoints cost nothing; dash phase is measured
// from the original start point.
func (p *Painter) stroke(s scene.Segment, width float64, c Color) {
	if !s.Finite() {
		return
	}
	a, b := s.From, s.To
	lo, hi := p.viewBounds(width)
	t0, t1, ok := math2d.ClipSegment(a, b, lo, hi)
	if !ok {
		return
	}
	length := a.Distance(b)
	if length == 0 {
		return
	}
	dir := b.Sub(a).Scale(1 / length)

	pxWidth := math.Max(width*p.Scale, p.MinStroke)
	p.begin()
	if !s.Dashed() {
		p.quad(a.Add(dir.Scale(t0*length)), a.Add(dir.Scale(t1*length)), pxWidth)
	} else {
		for _, d := range dashRuns(t0*length, t1*length, s.Dash) {
			p.quad(a.Add(dir.Scale(d[0])), a.Add(dir.Scale(d[1])), pxWidth)
		}
	}
	p.paint(c)
}

// dashRuns returns the [start, end] distances along a line that are "on"
// within [from, to], for a pattern whose phase is dash.Offset at distance 0.
func dashRuns(from, to float64, dash scene.Dash) [][2]float64 {
	period := dash.On + dash.Off
	var runs [][2]float64
	pos := from
	for pos < to {
		phase := math.Mod(dash.Offset+pos, period)
		if phase < 0 {
			phase += period
		}
		if period-phase < 1e-9 {
			phase = 0
		}
		if phase < dash.On {
			end := math.Min(to, pos+dash.On-phase)
			runs = append(runs, [2]float64{pos, end})
			pos = end + dash.Off
		} else {
			pos += period - phase
		}
	}
	return runs
}

// quad adds a rectangle of pixel width w centered on the viewport segment a→b.
func (p *Painter) quad(a, b math2d.Vec2, w float64) {
	pa, pb := p.toPixels(a), p.toPixels(b)
	n := pb.Sub(pa).Normalize().Perpendicular().Scale(w / 2)
	if n == (math2d.Vec2{}) {
		return
	}
	p.polygon([]math2d.Vec2{pa.Add(n), pb.Add(n), pb.Sub(n), pa.Sub(n)})
}

func (p *Painter) fillCircle(center math2d.Vec2, radius float64, c Color) {
	r := math.Max(radius*p.Scale, p.MinStroke) / p.Scale
	const steps = 16
	pts := make([]math2d.Vec2, steps)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / steps
		pts[i] = math2d.V2(center.X+r*math.Cos(t), center.Y+r*math.Sin(t))
	}
	p.fillPolygon(pts, c)
}

// fillPolygon fills a closed polygon given in viewport units. Polygons
// entirely outside the framebuffer are skipped and report false.
func (p *Painter) fillPolygon(pts []math2d.Vec2, c Color) bool {
	px := make([]math2d.Vec2, 0, len(pts))
	bounds := image.Rectangle{}
	for i, v := range pts {
		if !v.Finite() {
			return false
		}
		q := p.toPixels(v)
		px = append(px, q)
		r := image.Rect(int(math.Floor(q.X)), int(math.Floor(q.Y)), int(math.Ceil(q.X))+1, int(math.Ceil(q.Y))+1)
		if i == 0 {
			bounds = r
		} else {
			bounds = bounds.Union(r)
		}
	}
	if !bounds.Overlaps(p.FB.Bounds()) {
		return false
	}
	p.begin()
	p.polygon(px)
	p.paint(c)
	return true
}

func (p *Painter) begin() {
	p.z.Reset(p.FB.Width, p.FB.Height)
	p.z.DrawOp = draw.Over
}

// polygon appends a closed path in pixel coordinates.
func (p *Painter) polygon(pts []math2d.Vec2) {
	if len(pts) < 3 {
		return
	}
	p.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, v := range pts[1:] {
		p.z.LineTo(float32(v.X), float32(v.Y))
	}
	p.z.ClosePath()
}

func (p *Painter) paint(c Color) {
	p.z.Draw(p.FB.img, p.FB.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{})
}

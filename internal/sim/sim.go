// Package sim holds the live simulation state. Every input runs one
// synchronous cycle: clamp, compute the image, rebuild the scene, present.
package sim

import (
	"fortio.org/log"
	"github.com/taigrr/thinlens/pkg/optics"
	"github.com/taigrr/thinlens/pkg/scene"
)

// Frame is everything a display needs after a recomputation.
type Frame struct {
	Object optics.ObjectSpec
	Lens   optics.LensParameters
	Image  optics.ImageResult
	Scene  scene.Scene
}

// Readout returns the rounded image distance and height for display.
func (f Frame) Readout() (distance, height optics.Rounded) {
	return f.Image.Rounded()
}

// Sink receives each new frame.
type Sink interface {
	Present(Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Frame)

func (fn SinkFunc) Present(f Frame) { fn(f) }

// Simulation owns the parameter snapshot. It is not safe for concurrent use;
// all calls come from the single input loop.
type Simulation struct {
	object   optics.ObjectSpec
	lens     optics.LensParameters
	viewport scene.Viewport
	sink     Sink
	frame    Frame
}

// New creates a simulation and runs the first cycle. sink may be nil.
func New(object optics.ObjectSpec, lens optics.LensParameters, viewport scene.Viewport, sink Sink) *Simulation {
	s := &Simulation{
		object:   object,
		lens:     lens,
		viewport: viewport,
		sink:     sink,
	}
	s.recalculate()
	return s
}

// Frame returns the most recent frame.
func (s *Simulation) Frame() Frame { return s.frame }

// Viewport returns the current viewport.
func (s *Simulation) Viewport() scene.Viewport { return s.viewport }

// SetObjectDistance replaces the object distance.
func (s *Simulation) SetObjectDistance(v float64) {
	s.object.Distance = v
	s.recalculate()
}

// SetObjectHeight replaces the object height.
func (s *Simulation) SetObjectHeight(v float64) {
	s.object.Height = v
	s.recalculate()
}

// SetFocalLength replaces the focal length magnitude.
func (s *Simulation) SetFocalLength(v float64) {
	s.lens.FocalLength = v
	s.recalculate()
}

// SetKind switches between converging and diverging.
func (s *Simulation) SetKind(k optics.LensKind) {
	s.lens.Kind = k
	s.recalculate()
}

// Reset replaces the object and lens in one cycle.
func (s *Simulation) Reset(object optics.ObjectSpec, lens optics.LensParameters) {
	s.object = object
	s.lens = lens
	s.recalculate()
}

// Click moves the object tip to a point on the surface. Clicks on the image
// side (x at or right of the midpoint) are ignored and return false.
func (s *Simulation) Click(x, y float64) bool {
	if !s.viewport.LeftHalf(x) {
		log.Debugf("click at (%.0f, %.0f) ignored: image side", x, y)
		return false
	}
	s.object.Distance = s.viewport.CenterX - x
	s.object.Height = s.viewport.CenterY - y
	s.recalculate()
	return true
}

// Resize replaces the viewport.
func (s *Simulation) Resize(v scene.Viewport) {
	s.viewport = v
	s.recalculate()
}

func (s *Simulation) recalculate() {
	// Clamped values are written back so the form shows what is drawn.
	s.object = s.object.Clamp()
	s.lens = s.lens.Clamp()

	img := optics.ComputeImage(s.object, s.lens)
	if img.AtInfinity() {
		log.Debugf("object at focal point (do=%.0f, f=%.0f): image at infinity", s.object.Distance, s.lens.FocalLength)
	}
	s.frame = Frame{
		Object: s.object,
		Lens:   s.lens,
		Image:  img,
		Scene:  scene.Build(s.object, s.lens, img, s.viewport),
	}
	if n := s.frame.Scene.Count(scene.RoleVirtualExtension); n > 0 {
		log.Debugf("virtual image at %.1f: %d extensions", img.Distance, n)
	}
	if s.sink != nil {
		s.sink.Present(s.frame)
	}
}

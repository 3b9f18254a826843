package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
	"github.com/taigrr/thinlens/internal/config"
	"github.com/taigrr/thinlens/internal/sim"
	"github.com/taigrr/thinlens/pkg/math2d"
	"github.com/taigrr/thinlens/pkg/optics"
	"github.com/taigrr/thinlens/pkg/render"
	"github.com/taigrr/thinlens/pkg/scene"
)

// screenMap converts between terminal cells and scene units. The framebuffer
// has one pixel per column and two per row (half blocks).
type screenMap struct {
	cols, rows int
	viewWidth  float64 // scene units across the terminal
	scale      float64 // framebuffer pixels per scene unit
}

func newScreenMap(viewWidth float64, cols, rows int) screenMap {
	return screenMap{cols: cols, rows: rows, viewWidth: viewWidth, scale: float64(cols) / viewWidth}
}

// units converts framebuffer pixels to scene units.
func (m screenMap) units(px float64) float64 {
	return px * m.viewWidth / float64(m.cols)
}

// Viewport returns the scene-space viewport for the whole terminal, with the
// HUD rows reserved at the top.
func (m screenMap) Viewport() scene.Viewport {
	return scene.NewViewport(
		m.viewWidth,
		m.units(float64(m.rows*2)),
		m.units(float64(controlRows*2)),
	)
}

// ToScene maps a 1-based mouse cell to the scene point at its center.
func (m screenMap) ToScene(mx, my int) math2d.Vec2 {
	px := float64(mx-1) + 0.5
	py := float64(my-1)*2 + 1
	return math2d.V2(m.units(px), m.units(py))
}

// keyAction is a decoded keyboard input.
type keyAction int

const (
	keyNone keyAction = iota
	keyEscape
	keyUp
	keyDown
)

// decodeEscape recognizes the arrow keys and a bare Escape; any other
// sequence (mouse reports, function keys) is ignored.
func decodeEscape(data string) keyAction {
	switch {
	case data == "\x1b":
		return keyEscape
	case data == "\x1b[A" || data == "\x1bOA":
		return keyUp
	case data == "\x1b[B" || data == "\x1bOB":
		return keyDown
	}
	return keyNone
}

// controller applies keyboard and mouse input to the simulation.
type controller struct {
	cfg     *config.Config
	sim     *sim.Simulation
	form    *Form
	hud     *HUD
	palette render.Palette
	fb      *render.Framebuffer // what the terminal shows, nil when headless
	dir     string              // where S and P write files
	dirty   bool
}

// handleKeys processes one read of keyboard input. It returns false to quit.
func (c *controller) handleKeys(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	c.dirty = true
	if data[0] == 27 {
		switch decodeEscape(string(data)) {
		case keyEscape:
			return c.form.Cancel()
		case keyUp:
			c.form.Nudge(c.sim, 1)
		case keyDown:
			c.form.Nudge(c.sim, -1)
		}
		return true
	}
	for _, b := range data {
		switch b {
		case 3, 'q', 'Q': // Ctrl-C
			return false
		case '\t':
			c.form.Next()
		case '\r', '\n':
			if !c.form.Commit(c.sim) {
				log.Debugf("rejected %s input", c.form.Focus())
			}
		case 127, 8: // Backspace
			c.form.Backspace()
		case '+', '=':
			c.form.Nudge(c.sim, 1)
		case 'c', 'C':
			c.sim.SetKind(optics.Converging)
		case 'd', 'D':
			c.sim.SetKind(optics.Diverging)
		case ' ':
			c.sim.SetKind(c.sim.Frame().Lens.Kind.Toggle())
		case 'r', 'R':
			c.form.Cancel()
			c.sim.Reset(c.cfg.Object(), c.cfg.LensParameters())
		case 's', 'S':
			c.snapshot()
		case 'p', 'P':
			c.screenGrab()
		case '?':
			c.hud.ToggleHelp()
		default:
			c.form.Type(b)
		}
	}
	return true
}

// handleClick routes a left click at a 1-based cell to the HUD or the scene.
func (c *controller) handleClick(m screenMap, mx, my int) {
	if my-1 < controlRows {
		switch c.hud.HitTest(c.sim.Frame(), mx-1, my-1) {
		case actionFocusDistance:
			c.form.Select(FieldDistance)
		case actionFocusHeight:
			c.form.Select(FieldHeight)
		case actionFocusFocal:
			c.form.Select(FieldFocal)
		case actionConverging:
			c.sim.SetKind(optics.Converging)
		case actionDiverging:
			c.sim.SetKind(optics.Diverging)
		case actionNone:
		}
		c.dirty = true
		return
	}
	p := m.ToScene(mx, my)
	if c.sim.Click(p.X, p.Y) {
		c.form.Cancel()
	}
}

func (c *controller) outputPath(kind string) string {
	return filepath.Join(c.dir, "thinlens-"+kind+time.Now().Format("20060102-150405")+".png")
}

// snapshot renders the scene at one pixel per unit.
func (c *controller) snapshot() {
	name := c.outputPath("")
	img := render.Snapshot(c.sim.Frame().Scene, c.palette, 1, c.cfg.Supersample)
	if err := render.SaveImage(name, img); err != nil {
		log.Debugf("snapshot failed: %v", err)
		c.hud.SetStatus("snapshot failed: %v", err)
		return
	}
	c.hud.SetStatus("saved %s", name)
}

// screenGrab saves the framebuffer exactly as the terminal shows it.
func (c *controller) screenGrab() {
	if c.fb == nil {
		return
	}
	name := c.outputPath("screen-")
	if err := c.fb.SavePNG(name); err != nil {
		log.Debugf("screen grab failed: %v", err)
		c.hud.SetStatus("screen grab failed: %v", err)
		return
	}
	c.hud.SetStatus("saved %s", name)
}

func run(cfg *config.Config) error {
	ap := ansipixels.NewAnsiPixels(cfg.FPS)
	if err := ap.Open(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.SyncBackgroundColor()
	ap.MouseTrackingOn()
	ap.HideCursor()

	if ap.W <= 0 || ap.H <= controlRows {
		return fmt.Errorf("invalid terminal size: %dx%d", ap.W, ap.H)
	}

	bg := render.RGB(ap.Background.R, ap.Background.G, ap.Background.B)
	palette, ok := render.PaletteByName(cfg.Palette, bg)
	if !ok {
		return fmt.Errorf("unknown palette %q (use auto, light or dark)", cfg.Palette)
	}

	// 2x height for half-block characters
	fb := render.NewFramebuffer(ap.W, ap.H*2)
	screen := newScreenMap(cfg.ViewWidth, ap.W, ap.H)
	painter := render.NewPainter(fb, palette, screen.scale)

	form := &Form{}
	c := &controller{cfg: cfg, form: form, hud: NewHUD(form), palette: palette, fb: fb, dirty: true}
	c.sim = sim.New(cfg.Object(), cfg.LensParameters(), screen.Viewport(),
		sim.SinkFunc(func(sim.Frame) { c.dirty = true }))

	ap.OnMouse = func() {
		if ap.LeftClick() || ap.LeftDrag() {
			c.handleClick(screen, ap.Mx, ap.My)
		}
	}
	ap.OnResize = func() error {
		fb.Resize(ap.W, ap.H*2)
		screen = newScreenMap(cfg.ViewWidth, ap.W, ap.H)
		painter.Scale = screen.scale
		c.sim.Resize(screen.Viewport())
		log.Debugf("resized to %dx%d cells, scale %.3f", ap.W, ap.H, screen.scale)
		return nil
	}

	err := ap.FPSTicks(func() bool {
		// Mouse reports are consumed by OnMouse.
		if !strings.HasPrefix(string(ap.Data), "\x1b[<") && !c.handleKeys(ap.Data) {
			return false
		}
		if !c.dirty {
			return true
		}
		c.dirty = false

		fr := c.sim.Frame()
		painter.Render(fr.Scene)

		ap.ClearScreen()
		if err := ap.ShowScaledImage(fb.ToImage()); err != nil {
			log.Errf("show image: %v", err)
			return false
		}
		c.hud.Draw(ap, fr)
		return true
	})
	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/terminal/ansipixels"
	"fortio.org/terminal/ansipixels/tcolor"
	"github.com/taigrr/thinlens/internal/sim"
	"github.com/taigrr/thinlens/pkg/optics"
)

// controlRows is how many terminal rows the HUD reserves above the scene.
const controlRows = 2

// hudAction is what clicking a HUD item does.
type hudAction int

const (
	actionNone hudAction = iota
	actionFocusDistance
	actionFocusHeight
	actionFocusFocal
	actionConverging
	actionDiverging
)

// hudItem is one clickable piece of the control row.
type hudItem struct {
	x, width int
	text     string
	action   hudAction
	active   bool
}

// HUD renders the form, readout and key help over the scene.
type HUD struct {
	form     *Form
	showHelp bool
	status   string
}

// NewHUD creates a HUD bound to the form.
func NewHUD(form *Form) *HUD {
	return &HUD{form: form}
}

// ToggleHelp shows or hides the key help line.
func (h *HUD) ToggleHelp() { h.showHelp = !h.showHelp }

// SetStatus sets a one-line message shown until the next one.
func (h *HUD) SetStatus(format string, args ...any) {
	h.status = fmt.Sprintf(format, args...)
}

// layout places the control row items left to right.
func (h *HUD) layout(fr sim.Frame) []hudItem {
	focus := [numFields]hudAction{actionFocusDistance, actionFocusHeight, actionFocusFocal}
	var items []hudItem
	x := 1
	add := func(text string, action hudAction, active bool) {
		w := utf8.RuneCountInString(text)
		items = append(items, hudItem{x: x, width: w, text: text, action: action, active: active})
		x += w + 2
	}
	for f := Field(0); f < numFields; f++ {
		text := fmt.Sprintf("%s [%s]", f, h.form.Text(fr, f))
		if h.form.Editing() && f == h.form.Focus() {
			text = fmt.Sprintf("%s [%s_]", f, h.form.Text(fr, f))
		}
		add(text, focus[f], f == h.form.Focus())
	}
	add(radio(fr.Lens.Kind == optics.Converging)+" Converging", actionConverging, false)
	add(radio(fr.Lens.Kind == optics.Diverging)+" Diverging", actionDiverging, false)
	return items
}

// HitTest returns the action under a 0-based cell on the control row.
func (h *HUD) HitTest(fr sim.Frame, col, row int) hudAction {
	if row != 0 {
		return actionNone
	}
	for _, it := range h.layout(fr) {
		if col >= it.x && col < it.x+it.width {
			return it.action
		}
	}
	return actionNone
}

// Draw renders the HUD overlay to the terminal using ansipixels.
func (h *HUD) Draw(ap *ansipixels.AnsiPixels, fr sim.Frame) {
	for _, it := range h.layout(fr) {
		if it.active {
			ap.WriteAt(it.x, 0, "%s%s%s", tcolor.BrightYellow.Foreground(), it.text, tcolor.Reset)
			continue
		}
		ap.WriteAtStr(it.x, 0, it.text)
	}

	d, hgt := fr.Readout()
	ap.WriteAt(1, 1, "Image distance: %s%s%s   Image height: %s%s%s   %s",
		tcolor.Green.Foreground(), d, tcolor.Reset,
		tcolor.Green.Foreground(), hgt, tcolor.Reset,
		describeImage(fr.Object, fr.Image))

	if h.status != "" {
		ap.WriteRight(1, "%s%s%s", tcolor.Cyan.Foreground(), h.status, tcolor.Reset)
	}

	if h.showHelp {
		ap.WriteAt(0, ap.H-1, "Click: move object  Tab: field  0-9/-: edit  Enter: apply  Up/Down: ±10  C/D/Space: lens  R: reset  S/P: snapshot/screen  Q: quit")
		return
	}
	ap.WriteRight(ap.H-1, "%s?: help%s", tcolor.Yellow.Foreground(), tcolor.Reset)
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}

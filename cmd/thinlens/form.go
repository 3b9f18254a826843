package main

import (
	"strconv"
	"strings"

	"github.com/taigrr/thinlens/internal/sim"
)

// Field identifies an editable numeric input.
type Field int

const (
	FieldDistance Field = iota
	FieldHeight
	FieldFocal
	numFields
)

var fieldLabels = [numFields]string{"Object distance", "Object height", "Focal length"}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldLabels[f]
}

// nudgeStep is how far Up/Down move the focused field.
const nudgeStep = 10

// Form is the text-entry side of the controls. Edits stay in a buffer until
// committed, then go through the simulation which clamps and writes back.
type Form struct {
	focus   Field
	buf     string
	editing bool
}

// Focus returns the focused field.
func (f *Form) Focus() Field { return f.focus }

// Editing reports whether an uncommitted edit is pending.
func (f *Form) Editing() bool { return f.editing }

// Next moves focus to the next field, dropping any pending edit.
func (f *Form) Next() {
	f.Cancel()
	f.focus = (f.focus + 1) % numFields
}

// Select focuses a field directly.
func (f *Form) Select(field Field) {
	if field < 0 || field >= numFields || field == f.focus {
		return
	}
	f.Cancel()
	f.focus = field
}

// Type appends a digit or a leading minus sign to the edit buffer.
func (f *Form) Type(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
	case b == '-' && (!f.editing || f.buf == ""):
	default:
		return false
	}
	if !f.editing {
		f.buf = ""
		f.editing = true
	}
	f.buf += string(b)
	return true
}

// Backspace removes the last typed character.
func (f *Form) Backspace() {
	if !f.editing || f.buf == "" {
		return
	}
	f.buf = f.buf[:len(f.buf)-1]
}

// Cancel drops the pending edit. It reports whether there was one.
func (f *Form) Cancel() bool {
	had := f.editing
	f.buf, f.editing = "", false
	return had
}

// Commit parses the edit buffer and applies it. Text that does not start
// with an integer is rejected and the field keeps its value.
func (f *Form) Commit(s *sim.Simulation) bool {
	if !f.editing {
		return false
	}
	text := f.buf
	f.Cancel()
	v, ok := ParseInt(text)
	if !ok {
		return false
	}
	f.apply(s, float64(v))
	return true
}

// Nudge moves the focused field by delta steps.
func (f *Form) Nudge(s *sim.Simulation, delta int) {
	f.Cancel()
	f.apply(s, f.Value(s.Frame())+float64(delta*nudgeStep))
}

// Value returns the committed value of the focused field.
func (f *Form) Value(fr sim.Frame) float64 {
	return fieldValue(fr, f.focus)
}

// Text returns what the field shows: the pending buffer while editing that
// field, otherwise the committed value.
func (f *Form) Text(fr sim.Frame, field Field) string {
	if f.editing && field == f.focus {
		return f.buf
	}
	return strconv.FormatFloat(fieldValue(fr, field), 'f', -1, 64)
}

func (f *Form) apply(s *sim.Simulation, v float64) {
	switch f.focus {
	case FieldDistance:
		s.SetObjectDistance(v)
	case FieldHeight:
		s.SetObjectHeight(v)
	case FieldFocal:
		s.SetFocalLength(v)
	}
}

func fieldValue(fr sim.Frame, field Field) float64 {
	switch field {
	case FieldDistance:
		return fr.Object.Distance
	case FieldHeight:
		return fr.Object.Height
	case FieldFocal:
		return fr.Lens.FocalLength
	}
	return 0
}

// ParseInt reads an optionally signed decimal integer prefix, ignoring
// leading whitespace and anything after the digits. "12px" is 12, "-3.7"
// is -3, "abc" and "-" are rejected.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of int range; clamping will pin it anyway.
		if s[0] == '-' {
			return -1 << 31, true
		}
		return 1<<31 - 1, true
	}
	return v, true
}

package render

import (
	"image/color"

	"nocturne-fx/internal/core"
)

// OpKind identifies a recorded canvas call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFade
	OpRect
	OpCircle
	OpStroke
	OpGlow
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFade:
		return "fade"
	case OpRect:
		return "rect"
	case OpCircle:
		return "circle"
	case OpStroke:
		return "stroke"
	case OpGlow:
		return "glow"
	}
	return "unknown"
}

// Op is one recorded draw call. Unused geometry fields are zero.
type Op struct {
	Kind  OpKind
	X, Y  float64
	W, H  float64
	R     float64
	Width float64
	Alpha float64
	Color color.NRGBA
}

// Recorder is a Canvas that keeps the calls of the current frame. It backs
// tests and the headless tools.
type Recorder struct {
	size   core.Size
	ops    []Op
	frames int
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{size: core.Size{W: w, H: h}}
}

// SetSize changes the reported surface size.
func (r *Recorder) SetSize(w, h int) { r.size = core.Size{W: w, H: h} }

func (r *Recorder) Size() core.Size { return r.size }

// Clear starts a new frame.
func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
	r.frames++
	r.ops = append(r.ops, Op{Kind: OpClear})
}

// Fade starts a new frame in trail mode.
func (r *Recorder) Fade(alpha float64) {
	r.ops = r.ops[:0]
	r.frames++
	r.ops = append(r.ops, Op{Kind: OpFade, Alpha: alpha})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.ops = append(r.ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c color.NRGBA) {
	r.ops = append(r.ops, Op{Kind: OpCircle, X: cx, Y: cy, R: rad, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float64, c color.NRGBA) {
	r.ops = append(r.ops, Op{Kind: OpStroke, X: cx, Y: cy, R: rad, Width: width, Color: c})
}

func (r *Recorder) RadialGlow(cx, cy, rad float64, c color.NRGBA) {
	r.ops = append(r.ops, Op{Kind: OpGlow, X: cx, Y: cy, R: rad, Color: c})
}

// Ops returns the calls since the last Clear or Fade.
func (r *Recorder) Ops() []Op { return r.ops }

// Count returns how many calls of kind were recorded this frame.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Frames returns the number of frames begun.
func (r *Recorder) Frames() int { return r.frames }

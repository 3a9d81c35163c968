package ui

import (
	"image"
	"math"
	"strconv"

	"nocturne-fx/internal/core"
)

// Tunable is the engine surface the HUD adjusts.
type Tunable interface {
	Parameters() core.ParameterSnapshot
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
}

type control struct {
	def   core.ParameterControl
	text  string
	i     int
	f     float64
	valid bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// Panel holds the HUD control state independent of any graphics backend.
type Panel struct {
	target   Tunable
	Title    string
	controls []control
	width    int
}

// NewPanel lists the target's controls. Values are filled by Refresh.
func NewPanel(target Tunable, title string) *Panel {
	p := &Panel{target: target, Title: title}
	if target == nil {
		return p
	}
	for _, def := range target.ParameterControls() {
		p.controls = append(p.controls, control{def: def, text: "--"})
	}
	return p
}

// Len returns the number of controls.
func (p *Panel) Len() int { return len(p.controls) }

// Label returns the label and formatted value of control i.
func (p *Panel) Label(i int) (label, value string) {
	c := &p.controls[i]
	return c.def.Label, c.text
}

// Refresh reads current values from the target snapshot.
func (p *Panel) Refresh() {
	if p.target == nil {
		return
	}
	snap := p.target.Parameters()
	for i := range p.controls {
		c := &p.controls[i]
		c.valid = false
		c.text = "--"
		param, ok := snap.Lookup(c.def.Key)
		if !ok {
			continue
		}
		switch c.def.Type {
		case core.ParamTypeInt:
			if v, err := strconv.Atoi(param.Value); err == nil {
				c.i, c.f, c.valid = v, float64(v), true
				c.text = strconv.Itoa(v)
			}
		case core.ParamTypeFloat:
			if v, err := strconv.ParseFloat(param.Value, 64); err == nil {
				c.f, c.valid = v, true
				c.text = formatFloat(c.def.Step, v)
			}
		}
	}
}

// next returns the clamped value one step in dir, and whether it differs
// from the current value.
func (c *control) next(dir int) (float64, bool) {
	step := c.def.Step
	if c.def.Type == core.ParamTypeInt {
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	} else if step <= 0 {
		step = 0.05
	}
	v := c.f + float64(dir)*step
	if c.def.HasMin && v < c.def.Min {
		v = c.def.Min
	}
	if c.def.HasMax && v > c.def.Max {
		v = c.def.Max
	}
	return v, math.Abs(v-c.f) > 1e-9
}

// CanAdjust reports whether stepping control i in dir would change it.
func (p *Panel) CanAdjust(i, dir int) bool {
	if i < 0 || i >= len(p.controls) || dir == 0 || p.target == nil {
		return false
	}
	c := &p.controls[i]
	if !c.valid {
		return false
	}
	_, changed := c.next(dir)
	return changed
}

// Adjust steps control i in dir and reports whether the target accepted it.
func (p *Panel) Adjust(i, dir int) bool {
	if !p.CanAdjust(i, dir) {
		return false
	}
	c := &p.controls[i]
	v, _ := c.next(dir)
	switch c.def.Type {
	case core.ParamTypeInt:
		n := int(math.Round(v))
		if !p.target.SetIntParameter(c.def.Key, n) {
			return false
		}
		c.i, c.f, c.text = n, float64(n), strconv.Itoa(n)
	case core.ParamTypeFloat:
		if !p.target.SetFloatParameter(c.def.Key, v) {
			return false
		}
		c.f, c.text = v, formatFloat(c.def.Step, v)
	default:
		return false
	}
	return true
}

// Layout places the +/- buttons for a panel of the given width.
func (p *Panel) Layout(width int) {
	p.width = width
	for i := range p.controls {
		top := controlsTop + i*lineHeight
		y := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, y, plus.Min.X-buttonGap, y+buttonSize)
		p.controls[i].top = top
		p.controls[i].minus = minus
		p.controls[i].plus = plus
	}
}

// Hit maps a panel-relative point to a control button.
func (p *Panel) Hit(x, y int) (index, dir int, ok bool) {
	pt := image.Pt(x, y)
	for i := range p.controls {
		if pt.In(p.controls[i].minus) {
			return i, -1, true
		}
		if pt.In(p.controls[i].plus) {
			return i, 1, true
		}
	}
	return 0, 0, false
}

// Click applies a panel-relative click and reports whether a value changed.
func (p *Panel) Click(x, y int) bool {
	i, dir, ok := p.Hit(x, y)
	if !ok {
		return false
	}
	return p.Adjust(i, dir)
}

func formatFloat(step, v float64) string {
	precision := 1
	switch {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

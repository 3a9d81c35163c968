package render

import (
	"math"

	"nocturne-fx/internal/particle"
)

const (
	DefaultFadeAlpha = 0.1

	glowBoxFactor = 2.0
	trailRadius   = 0.7
	trailAlpha    = 0.3
	haloAlpha     = 0.5
	pulseSize     = 0.2
	pulseBase     = 0.6
	pulseAlpha    = 0.4
)

// Dispatcher issues the per-kind drawing sequence for each particle.
type Dispatcher struct {
	// Trail fades the previous frame instead of clearing it.
	Trail     bool
	FadeAlpha float64

	// Glow scales the halo around energy and event discs.
	Glow float64
}

// NewDispatcher returns a dispatcher that clears between frames.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{FadeAlpha: DefaultFadeAlpha, Glow: 1}
}

// Begin prepares the canvas for a new frame.
func (d *Dispatcher) Begin(c Canvas) {
	if d.Trail {
		c.Fade(d.FadeAlpha)
		return
	}
	c.Clear()
}

// Paint draws every particle in order. It never mutates the slice.
func (d *Dispatcher) Paint(c Canvas, ps []particle.Particle) int {
	drawn := 0
	for i := range ps {
		if d.paintOne(c, &ps[i]) {
			drawn++
		}
	}
	return drawn
}

func (d *Dispatcher) paintOne(c Canvas, p *particle.Particle) bool {
	if p.Opacity <= 0 || p.Size <= 0 {
		return false
	}
	col := Fade(p.Color, p.Opacity)
	x, y, s := p.Pos.X, p.Pos.Y, p.Size

	switch p.Kind {
	case particle.KindSparkle:
		c.FillRect(x-s/2, y-s/2, s, s, col)
	case particle.KindGlow:
		c.RadialGlow(x, y, s*glowBoxFactor, col)
	case particle.KindRing:
		c.StrokeCircle(x, y, s, 1, col)
	case particle.KindMote:
		pulse := math.Sin(p.Phase)
		c.FillCircle(x, y, s*(1+pulseSize*pulse), Fade(p.Color, p.Opacity*(pulseBase+pulseAlpha*pulse)))
	default:
		if p.Kind.Monetary() {
			tail := p.Pos.Sub(p.Vel)
			c.FillCircle(tail.X, tail.Y, s*trailRadius, Fade(p.Color, p.Opacity*trailAlpha))
		}
		glow := d.Glow
		if glow < 0 {
			glow = 0
		}
		c.RadialGlow(x, y, s*(1+glow), Fade(col, haloAlpha))
		c.FillCircle(x, y, s, col)
	}
	return true
}

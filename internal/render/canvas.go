// Package render paints particles onto a 2D canvas. The dispatcher only
// reads particle state; every backend implements the small Canvas surface.
package render

import (
	"image/color"

	"nocturne-fx/internal/core"
)

// Canvas is the drawing surface the dispatcher needs. Coordinates are in
// surface units; colors arrive with the opacity multiplier already applied.
type Canvas interface {
	Size() core.Size
	Clear()
	// Fade darkens the previous frame by painting the background at alpha.
	Fade(alpha float64)
	FillRect(x, y, w, h float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeCircle(cx, cy, r, width float64, c color.NRGBA)
	// RadialGlow draws a gradient from c at the centre to transparent at r.
	RadialGlow(cx, cy, r float64, c color.NRGBA)
}

// Fade returns c with its alpha multiplied by k in [0, 1].
func Fade(c color.NRGBA, k float64) color.NRGBA {
	k = core.Clamp01(k)
	c.A = uint8(float64(c.A)*k + 0.5)
	return c
}

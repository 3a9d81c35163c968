//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"nocturne-fx/internal/core"
)

const glowSpriteSize = 64

// EbitenCanvas draws onto an ebiten image. Glows are a pre-rendered
// gradient sprite scaled and tinted per call.
type EbitenCanvas struct {
	dst  *ebiten.Image
	glow *ebiten.Image
	bg   color.NRGBA
}

// NewEbitenCanvas allocates the glow sprite. Call SetTarget before drawing.
func NewEbitenCanvas(bg color.NRGBA) *EbitenCanvas {
	glow := ebiten.NewImage(glowSpriteSize, glowSpriteSize)
	glow.WritePixels(GlowPixels(glowSpriteSize))
	return &EbitenCanvas{glow: glow, bg: bg}
}

// SetTarget selects the image that subsequent calls draw on.
func (c *EbitenCanvas) SetTarget(dst *ebiten.Image) { c.dst = dst }

func (c *EbitenCanvas) Size() core.Size {
	if c.dst == nil {
		return core.Size{}
	}
	b := c.dst.Bounds()
	return core.Size{W: b.Dx(), H: b.Dy()}
}

func (c *EbitenCanvas) Clear() {
	if c.dst != nil {
		c.dst.Fill(c.bg)
	}
}

func (c *EbitenCanvas) Fade(alpha float64) {
	if c.dst == nil {
		return
	}
	s := c.Size()
	vector.DrawFilledRect(c.dst, 0, 0, float32(s.W), float32(s.H), Fade(c.bg, alpha), false)
}

func (c *EbitenCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if c.dst == nil {
		return
	}
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *EbitenCanvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if c.dst == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col, true)
}

func (c *EbitenCanvas) StrokeCircle(cx, cy, r, width float64, col color.NRGBA) {
	if c.dst == nil || r <= 0 {
		return
	}
	vector.StrokeCircle(c.dst, float32(cx), float32(cy), float32(r), float32(width), col, true)
}

func (c *EbitenCanvas) RadialGlow(cx, cy, r float64, col color.NRGBA) {
	if c.dst == nil || r <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	k := 2 * r / glowSpriteSize
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(cx-r, cy-r)
	op.ColorScale.ScaleWithColor(col)
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(c.glow, op)
}

//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 230}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonBG    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOffBG = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonFG    = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonOffFG = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD draws the tunables panel along the right edge of the window.
type HUD struct {
	panel   *Panel
	width   int
	offsetX int
	img     *ebiten.Image
}

// NewHUD builds a HUD of the given width for target.
func NewHUD(target Tunable, width int) *HUD {
	if width <= 0 || target == nil {
		return nil
	}
	p := NewPanel(target, "Particle Controls")
	p.Layout(width)
	return &HUD{panel: p, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes values and applies clicks. offsetX is the panel's left
// edge in screen coordinates.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	h.panel.Refresh()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < offsetX {
		return
	}
	h.panel.Click(mx-offsetX, my)
}

// Contains reports whether a screen point lies on the panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && x >= h.offsetX && x < h.offsetX+h.width
}

// Draw paints the panel at its offset.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.img == nil || h.img.Bounds().Dy() != height {
		h.img = ebiten.NewImage(h.width, height)
	}
	h.img.Fill(panelBG)

	face := basicfont.Face7x13
	text.Draw(h.img, h.panel.Title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if h.panel.Len() == 0 {
		text.Draw(h.img, "No adjustable parameters", face, panelPadding, panelPadding+headerBaseline+lineHeight, dimColor)
	}
	for i := 0; i < h.panel.Len(); i++ {
		c := &h.panel.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.img, c.def.Label, face, panelPadding, y, labelColor)

		col := labelColor
		if !c.valid {
			col = dimColor
		}
		w := text.BoundString(face, c.text).Dx()
		text.Draw(h.img, c.text, face, c.minus.Min.X-buttonGap-w, y, col)

		h.drawButton(c.minus, "-", h.panel.CanAdjust(i, -1))
		h.drawButton(c.plus, "+", h.panel.CanAdjust(i, 1))
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(h.offsetX), 0)
	screen.DrawImage(h.img, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonBG, buttonFG
	if !enabled {
		bg, fg = buttonOffBG, buttonOffFG
	}
	vector.DrawFilledRect(h.img, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.img, label, face, x, y, fg)
}

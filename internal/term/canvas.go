// Package term renders the particle engine into a terminal with tcell.
// Each cell covers CellW x CellH surface units; draw calls blend colors into
// a persistent cell buffer and Flush pushes it to the screen.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"nocturne-fx/internal/core"
)

const (
	DefaultCellW = 8.0
	DefaultCellH = 16.0
)

// glyphs are ordered by ink level.
var glyphs = []rune{' ', '·', '∙', '•', '●', '█'}

type cell struct {
	col   colorful.Color
	level float64
}

// Canvas is a render.Canvas over a tcell screen.
type Canvas struct {
	screen tcell.Screen
	CellW  float64
	CellH  float64

	bg    colorful.Color
	bgTC  tcell.Color
	cols  int
	rows  int
	cells []cell
}

// NewCanvas sizes the buffer from the screen.
func NewCanvas(screen tcell.Screen, cellW, cellH float64, bg color.NRGBA) *Canvas {
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	c := &Canvas{
		screen: screen,
		CellW:  cellW,
		CellH:  cellH,
		bg:     toColorful(bg),
		bgTC:   tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)),
	}
	w, h := screen.Size()
	c.Resize(w, h)
	return c
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Resize reallocates the cell buffer for cols x rows and clears it.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
	c.Clear()
}

// Grid returns the buffer dimensions in cells.
func (c *Canvas) Grid() (cols, rows int) { return c.cols, c.rows }

// Size returns the surface size in units.
func (c *Canvas) Size() core.Size {
	return core.Size{W: int(float64(c.cols) * c.CellW), H: int(float64(c.rows) * c.CellH)}
}

// ToSurface maps a cell coordinate to the surface point at its centre.
func (c *Canvas) ToSurface(x, y int) core.Vec2 {
	return core.Vec2{X: (float64(x) + 0.5) * c.CellW, Y: (float64(y) + 0.5) * c.CellH}
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{col: c.bg}
	}
}

func (c *Canvas) Fade(alpha float64) {
	a := core.Clamp01(alpha)
	for i := range c.cells {
		c.cells[i].col = c.cells[i].col.BlendRgb(c.bg, a)
		c.cells[i].level *= 1 - a
	}
}

func (c *Canvas) blend(x, y int, col color.NRGBA, k float64) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	a := core.Clamp01(k * float64(col.A) / 255)
	if a <= 0 {
		return
	}
	p := &c.cells[y*c.cols+x]
	p.col = p.col.BlendRgb(toColorful(col), a).Clamped()
	p.level = 1 - (1-p.level)*(1-a)
}

// span returns the cell range covering [lo, hi) on one axis; a zero-width
// range still yields the cell containing lo.
func span(lo, hi, unit float64) (int, int) {
	a := int(math.Floor(lo / unit))
	b := int(math.Ceil(hi/unit)) - 1
	if b < a {
		b = a
	}
	return a, b
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	x0, x1 := span(x, x+w, c.CellW)
	y0, y1 := span(y, y+h, c.CellH)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			c.blend(cx, cy, col, 1)
		}
	}
}

// each visits cells whose box intersects the circle's bounding box, with
// the distance from the circle centre to the cell centre.
func (c *Canvas) each(cx, cy, r float64, fn func(x, y int, d float64)) {
	x0, x1 := span(cx-r, cx+r, c.CellW)
	y0, y1 := span(cy-r, cy+r, c.CellH)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := c.ToSurface(x, y)
			fn(x, y, math.Hypot(p.X-cx, p.Y-cy))
		}
	}
}

func (c *Canvas) home(cx, cy float64) (int, int) {
	return int(math.Floor(cx / c.CellW)), int(math.Floor(cy / c.CellH))
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	hx, hy := c.home(cx, cy)
	c.each(cx, cy, r, func(x, y int, d float64) {
		if d <= r || (x == hx && y == hy) {
			c.blend(x, y, col, 1)
		}
	})
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col color.NRGBA) {
	tol := math.Max(width, math.Min(c.CellW, c.CellH)/2)
	hx, hy := c.home(cx, cy)
	hit := false
	c.each(cx, cy, r+tol, func(x, y int, d float64) {
		if math.Abs(d-r) <= tol {
			c.blend(x, y, col, 1)
			if x == hx && y == hy {
				hit = true
			}
		}
	})
	// Rings smaller than a cell collapse to a faint dot.
	if !hit && r < math.Min(c.CellW, c.CellH) {
		c.blend(hx, hy, col, 0.5)
	}
}

func (c *Canvas) RadialGlow(cx, cy, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	hx, hy := c.home(cx, cy)
	c.each(cx, cy, r, func(x, y int, d float64) {
		t := 1 - d/r
		if x == hx && y == hy && t < 0.5 {
			t = 0.5
		}
		if t > 0 {
			c.blend(x, y, col, t*t)
		}
	})
}

// Level returns the ink level of a cell in [0, 1].
func (c *Canvas) Level(x, y int) float64 {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return 0
	}
	return c.cells[y*c.cols+x].level
}

// Flush writes the buffer to the screen and shows it.
func (c *Canvas) Flush() {
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			p := c.cells[y*c.cols+x]
			g := glyphs[int(math.Min(p.level, 0.999)*float64(len(glyphs)))]
			r, gg, b := p.col.Clamped().RGB255()
			style := tcell.StyleDefault.
				Background(c.bgTC).
				Foreground(tcell.NewRGBColor(int32(r), int32(gg), int32(b)))
			c.screen.SetContent(x, y, g, nil, style)
		}
	}
	c.screen.Show()
}

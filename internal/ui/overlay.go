//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"nocturne-fx/internal/engine"
	"nocturne-fx/internal/governor"
)

const (
	historyLen  = 120
	graphW      = 120
	graphH      = 40
	graphMaxFPS = 75.0
	lineStep    = 16
)

var (
	graphBG      = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	graphFull    = color.RGBA{R: 110, G: 220, B: 140, A: 255}
	graphReduced = color.RGBA{R: 240, G: 120, B: 80, A: 255}
	graphMark    = color.RGBA{R: 200, G: 200, B: 210, A: 90}
)

// Overlay shows engine diagnostics and a rolling fps graph. F3 toggles it.
type Overlay struct {
	source  func() engine.Diagnostics
	visible bool
	history []float64
	states  []governor.State
	low     float64
	high    float64
}

// NewOverlay reads diagnostics from source each update.
func NewOverlay(source func() engine.Diagnostics) *Overlay {
	return &Overlay{source: source, visible: true, low: 45, high: 58}
}

// SetWatermarks marks the governor thresholds on the graph.
func (o *Overlay) SetWatermarks(low, high float64) { o.low, o.high = low, high }

// Update samples diagnostics and handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		o.visible = !o.visible
	}
	if o.source == nil {
		return
	}
	d := o.source()
	o.history = append(o.history, d.FPS)
	o.states = append(o.states, d.State)
	if len(o.history) > historyLen {
		o.history = o.history[1:]
		o.states = o.states[1:]
	}
}

// Draw renders the text block and the graph in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.source == nil {
		return
	}
	lines := DiagnosticsLines(o.source())
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 8, 6+i*lineStep)
	}
	o.drawGraph(screen, 8, float32(12+len(lines)*lineStep))
}

func (o *Overlay) drawGraph(screen *ebiten.Image, x, y float32) {
	vector.DrawFilledRect(screen, x, y, graphW, graphH, graphBG, false)
	for _, mark := range []float64{o.low, o.high} {
		my := y + graphH - float32(mark/graphMaxFPS)*graphH
		vector.StrokeLine(screen, x, my, x+graphW, my, 1, graphMark, false)
	}
	if len(o.history) < 2 {
		return
	}
	dx := float32(graphW) / float32(historyLen-1)
	for i := 1; i < len(o.history); i++ {
		col := graphFull
		if o.states[i] == governor.Reduced {
			col = graphReduced
		}
		x0 := x + float32(i-1)*dx
		x1 := x + float32(i)*dx
		y0 := y + graphH - float32(clamp01(o.history[i-1]/graphMaxFPS))*graphH
		y1 := y + graphH - float32(clamp01(o.history[i]/graphMaxFPS))*graphH
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, col, true)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

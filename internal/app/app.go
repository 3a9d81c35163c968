//go:build ebiten

package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nocturne-fx/internal/core"
	"nocturne-fx/internal/demo"
	"nocturne-fx/internal/engine"
	"nocturne-fx/internal/particle"
	"nocturne-fx/internal/render"
	"nocturne-fx/internal/theme"
	"nocturne-fx/internal/ui"
)

var burstKeys = map[ebiten.Key]particle.Kind{
	ebiten.Key1: particle.KindProfit,
	ebiten.Key2: particle.KindLoss,
	ebiten.Key3: particle.KindOrder,
	ebiten.Key4: particle.KindAlert,
}

const keyMagnitude = 400.0

// Game adapts the particle engine to ebiten. It is the engine's host: frame
// callbacks fire from Draw, input is forwarded from Update.
type Game struct {
	*engine.Loop

	Engine *engine.Engine

	canvas  *render.EbitenCanvas
	layer   *ebiten.Image
	hud     *ui.HUD
	overlay *ui.Overlay
	emitter *demo.Emitter

	start   time.Time
	outW    int
	outH    int
	paused  bool
	focused bool
	inside  bool
}

// New builds the game and attaches an engine configured by cfg and opts.
func New(cfg *Config, opts engine.Options) *Game {
	g := &Game{
		Loop:    engine.NewLoop(),
		canvas:  render.NewEbitenCanvas(Background),
		start:   time.Now(),
		outW:    cfg.Width,
		outH:    cfg.Height,
		focused: true,
	}
	g.ensureLayer(cfg.Width, cfg.Height)
	g.Engine = engine.Attach(g, g.canvas, cfg.Theme, opts)

	if cfg.HUD {
		g.hud = ui.NewHUD(g.Engine, cfg.HUDWidth)
		g.ensureLayer(cfg.Width-g.hud.Width(), cfg.Height)
	}
	g.overlay = ui.NewOverlay(g.Engine.Diagnostics)
	g.overlay.SetWatermarks(opts.Governor.Low, opts.Governor.High)
	if cfg.Demo {
		g.emitter = demo.NewEmitter(cfg.Seed)
	}
	return g
}

func (g *Game) ensureLayer(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if g.layer != nil {
		if b := g.layer.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		g.layer.Deallocate()
	}
	g.layer = ebiten.NewImage(w, h)
	g.layer.Fill(Background)
	g.canvas.SetTarget(g.layer)
	g.Resize(w, h)
}

// Update handles input and the demo feed.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Engine.Detach()
		return ebiten.Termination
	}
	g.ensureLayer(g.outW-g.hud.Width(), g.outH)

	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		g.SetPaused(g.paused || !g.focused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.SetPaused(g.paused || !g.focused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.Engine.SetTheme(theme.Next(g.Engine.Theme().ID))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.Engine.SetMode(g.Engine.Mode().Next())
	}

	g.trackPointer()
	for key, kind := range burstKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		pos := g.burstOrigin()
		switch kind {
		case particle.KindProfit:
			g.Engine.SpawnBurstValue(pos, kind, keyMagnitude)
		case particle.KindLoss:
			g.Engine.SpawnBurstValue(pos, kind, -keyMagnitude)
		default:
			g.Engine.SpawnBurst(pos, kind)
		}
	}

	if g.emitter != nil && !g.paused {
		b := g.layer.Bounds()
		if burst, ok := g.emitter.Tick(time.Since(g.start), core.Size{W: b.Dx(), H: b.Dy()}); ok {
			if burst.HasMagnitude {
				g.Engine.SpawnBurstValue(burst.Pos, burst.Kind, burst.Magnitude)
			} else {
				g.Engine.SpawnBurst(burst.Pos, burst.Kind)
			}
		}
	}

	g.hud.Update(g.layer.Bounds().Dx())
	g.overlay.Update()
	return nil
}

func (g *Game) trackPointer() {
	x, y := ebiten.CursorPosition()
	b := g.layer.Bounds()
	inside := x >= 0 && y >= 0 && x < b.Dx() && y < b.Dy() && !g.hud.Contains(x, y)
	switch {
	case inside:
		g.PointerMove(float64(x), float64(y))
	case g.inside:
		g.PointerLeave()
	}
	g.inside = inside
}

func (g *Game) burstOrigin() core.Vec2 {
	if g.inside {
		x, y := ebiten.CursorPosition()
		return core.Vec2{X: float64(x), Y: float64(y)}
	}
	b := g.layer.Bounds()
	return core.Vec2{X: float64(b.Dx()) / 2, Y: float64(b.Dy()) / 2}
}

// Draw fires the pending frame into the persistent layer and composites it
// with the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Fire(time.Since(g.start))
	screen.Fill(Background)
	screen.DrawImage(g.layer, nil)
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
}

// Layout tracks the window size; the particle layer follows it on the next
// update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"nocturne-fx/internal/core"
	"nocturne-fx/internal/demo"
	"nocturne-fx/internal/engine"
	"nocturne-fx/internal/particle"
	"nocturne-fx/internal/theme"
)

// burstKeys maps number keys to burst kinds.
var burstKeys = map[rune]particle.Kind{
	'1': particle.KindProfit,
	'2': particle.KindLoss,
	'3': particle.KindOrder,
	'4': particle.KindAlert,
}

// keyMagnitude is the magnitude of keyboard profit/loss bursts.
const keyMagnitude = 400.0

// Host drives an engine from a tcell screen: it paces frame callbacks,
// forwards mouse, focus and resize events, and handles the keyboard.
// All engine calls happen on the goroutine running Run.
type Host struct {
	*engine.Loop

	Screen  tcell.Screen
	Canvas  *Canvas
	Engine  *engine.Engine
	Emitter *demo.Emitter

	pacer   *core.FixedStep
	start   time.Time
	now     func() time.Time
	paused  bool
	pointer core.Vec2
}

// NewHost returns a host pacing frames at tps.
func NewHost(screen tcell.Screen, canvas *Canvas, tps int) *Host {
	h := &Host{
		Loop:   engine.NewLoop(),
		Screen: screen,
		Canvas: canvas,
		pacer:  core.NewFixedStep(tps),
		now:    time.Now,
	}
	h.start = h.now()
	return h
}

// SetClock replaces the time source of the host and its pacer.
func (h *Host) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	h.now = now
	h.pacer.SetClock(now)
	h.start = now()
}

// Elapsed returns the host clock relative to its start.
func (h *Host) Elapsed() time.Duration { return h.now().Sub(h.start) }

// HandleEvent applies one tcell event and reports whether to keep running.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.Canvas.Resize(cols, rows)
		s := h.Canvas.Size()
		h.Resize(s.W, s.H)
		h.Screen.Sync()
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.pointer = h.Canvas.ToSurface(x, y)
		h.PointerMove(h.pointer.X, h.pointer.Y)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.PointerLeave()
		}
	case *tcell.EventKey:
		return h.handleKey(ev)
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	r := ev.Rune()
	switch r {
	case 'q', 'Q':
		return false
	case ' ':
		h.paused = !h.paused
		h.SetPaused(h.paused)
	case 't', 'T':
		if h.Engine != nil {
			h.Engine.SetTheme(theme.Next(h.Engine.Theme().ID))
		}
	default:
		kind, ok := burstKeys[r]
		if !ok || h.Engine == nil {
			return true
		}
		pos := h.pointer
		if pos == (core.Vec2{}) {
			s := h.Canvas.Size()
			pos = core.Vec2{X: float64(s.W) / 2, Y: float64(s.H) / 2}
		}
		if kind.Monetary() {
			m := keyMagnitude
			if kind == particle.KindLoss {
				m = -m
			}
			h.Engine.SpawnBurstValue(pos, kind, m)
		} else {
			h.Engine.SpawnBurst(pos, kind)
		}
	}
	return true
}

// Tick fires a frame when one is due and flushes the canvas. It reports
// whether a frame ran.
func (h *Host) Tick() bool {
	if !h.pacer.ShouldStep() {
		return false
	}
	now := h.Elapsed()
	if h.Emitter != nil && h.Engine != nil && !h.paused {
		if b, ok := h.Emitter.Tick(now, h.Canvas.Size()); ok {
			if b.HasMagnitude {
				h.Engine.SpawnBurstValue(b.Pos, b.Kind, b.Magnitude)
			} else {
				h.Engine.SpawnBurst(b.Pos, b.Kind)
			}
		}
	}
	if !h.Fire(now) {
		return false
	}
	h.Canvas.Flush()
	return true
}

// wait is the delay until the pacer's next tick, never below one
// millisecond.
func (h *Host) wait() time.Duration {
	return max(h.pacer.Remaining(), time.Millisecond)
}

// Run pumps screen events and frames until quit or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := h.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	timer := time.NewTimer(h.wait())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.HandleEvent(ev) {
				return nil
			}
		case <-timer.C:
			h.Tick()
			timer.Reset(h.wait())
		}
	}
}

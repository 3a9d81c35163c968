// Package governor estimates rendering throughput from frame durations and
// gates the ambient population with a two-watermark hysteresis machine.
package governor

import (
	"math"
	"time"
)

// State is the quality level chosen by the hysteresis machine.
type State uint8

const (
	Full State = iota
	Reduced
)

func (s State) String() string {
	if s == Reduced {
		return "reduced"
	}
	return "full"
}

// Config holds the tunable constants. Low must stay below High; the gap
// between them is what keeps the state from flapping.
type Config struct {
	Window          int
	Low             float64
	High            float64
	ReductionFactor float64
}

// DefaultConfig returns the calibrated desktop defaults.
func DefaultConfig() Config {
	return Config{
		Window:          60,
		Low:             45,
		High:            58,
		ReductionFactor: 0.5,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Window <= 0 {
		c.Window = d.Window
	}
	if c.Low <= 0 {
		c.Low = d.Low
	}
	if c.High <= c.Low {
		c.High = c.Low + (d.High - d.Low)
	}
	if c.ReductionFactor <= 0 || c.ReductionFactor > 1 || math.IsNaN(c.ReductionFactor) {
		c.ReductionFactor = d.ReductionFactor
	}
	return c
}

// Governor tracks the rolling frame rate and the quality state.
type Governor struct {
	cfg   Config
	ring  *Ring
	mode  Mode
	state State
	fps   float64
	flips int
}

// New returns a governor in the Full state and automatic mode.
func New(cfg Config) *Governor {
	cfg = cfg.normalized()
	return &Governor{cfg: cfg, ring: NewRing(cfg.Window)}
}

// Config returns the active constants.
func (g *Governor) Config() Config { return g.cfg }

// SetConfig replaces the constants. Changing the window drops collected
// samples; the current state is kept.
func (g *Governor) SetConfig(cfg Config) {
	cfg = cfg.normalized()
	if cfg.Window != g.cfg.Window {
		g.ring = NewRing(cfg.Window)
		g.fps = 0
	}
	g.cfg = cfg
}

// Sample records one inter-frame duration and reports whether the state
// changed. Non-positive durations are ignored.
func (g *Governor) Sample(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	g.ring.Push(float64(d) / float64(time.Millisecond))
	if !g.ring.Full() {
		return false
	}
	mean := g.ring.Mean()
	if mean <= 0 {
		return false
	}
	g.fps = 1000 / mean
	if g.mode.Manual() {
		return false
	}
	return g.Observe(g.fps)
}

// Observe runs the hysteresis machine on one fps estimate and reports
// whether the state changed.
func (g *Governor) Observe(fps float64) bool {
	if math.IsNaN(fps) {
		return false
	}
	switch g.state {
	case Full:
		if fps < g.cfg.Low {
			g.state = Reduced
			g.flips++
			return true
		}
	case Reduced:
		if fps > g.cfg.High {
			g.state = Full
			g.flips++
			return true
		}
	}
	return false
}

// State returns the current quality state.
func (g *Governor) State() State { return g.state }

// FPS returns the rolling estimate, or 0 until the window has filled.
func (g *Governor) FPS() float64 { return g.fps }

// Transitions counts state changes since construction or Reset.
func (g *Governor) Transitions() int { return g.flips }

// Mode returns the performance mode.
func (g *Governor) Mode() Mode { return g.mode }

// SetMode switches the performance mode. Leaving a manual mode restarts
// automatic governance from Full.
func (g *Governor) SetMode(m Mode) {
	if int(m) >= len(modeNames) {
		return
	}
	if g.mode.Manual() && !m.Manual() {
		g.state = Full
	}
	g.mode = m
}

// Reset drops samples and returns to Full. The mode is kept.
func (g *Governor) Reset() {
	g.ring.Reset()
	g.state = Full
	g.fps = 0
	g.flips = 0
}

// TargetCapacity returns the ambient population to maintain for base.
func (g *Governor) TargetCapacity(base int) int {
	if base <= 0 {
		return 0
	}
	if g.mode.Manual() {
		return int(math.Floor(float64(base) * modeScale[g.mode]))
	}
	if g.state == Reduced {
		return int(math.Floor(float64(base) * g.cfg.ReductionFactor))
	}
	return base
}

// Package demo fires random trading bursts so the effect can be watched
// without a live event source.
package demo

import (
	"time"

	"nocturne-fx/internal/core"
	"nocturne-fx/internal/particle"
)

const (
	minGap = 2 * time.Second
	maxGap = 5 * time.Second

	magnitudeBase   = 50.0
	magnitudeSpread = 500.0
)

// Burst is one scheduled demo event.
type Burst struct {
	Pos          core.Vec2
	Kind         particle.Kind
	Magnitude    float64
	HasMagnitude bool
}

// Emitter schedules bursts at random intervals between two and five
// seconds, at random points of the surface.
type Emitter struct {
	rng  *core.RNG
	next time.Duration
	init bool
}

// NewEmitter returns an emitter seeded for reproducible demos.
func NewEmitter(seed int64) *Emitter {
	return &Emitter{rng: core.NewRNG(seed)}
}

// Tick reports a burst when one is due at now. The first call only arms
// the timer.
func (e *Emitter) Tick(now time.Duration, bounds core.Size) (Burst, bool) {
	if !e.init {
		e.init = true
		e.next = now + e.gap()
		return Burst{}, false
	}
	if now < e.next || bounds.Empty() {
		return Burst{}, false
	}
	e.next = now + e.gap()

	kinds := particle.EventKinds()
	b := Burst{
		Kind: kinds[e.rng.IntN(len(kinds))],
		Pos: core.Vec2{
			X: e.rng.Range(0, float64(bounds.W)),
			Y: e.rng.Range(0, float64(bounds.H)),
		},
	}
	if b.Kind.Monetary() {
		b.Magnitude = magnitudeBase + e.rng.Float64()*magnitudeSpread
		if b.Kind == particle.KindLoss {
			b.Magnitude = -b.Magnitude
		}
		b.HasMagnitude = true
	}
	return b, true
}

func (e *Emitter) gap() time.Duration {
	return minGap + time.Duration(e.rng.Float64()*float64(maxGap-minGap))
}

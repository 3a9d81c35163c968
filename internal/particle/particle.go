// Package particle holds the particle record, the bounded store, the
// spawn-time factory and the deterministic physics stepper.
package particle

import (
	"image/color"

	"nocturne-fx/internal/core"
)

// Particle is a single animated visual unit.
//
// Age and MaxLife are measured in time-slices (one slice is 1/60 s).
// Opacity is derived from Age by the stepper and always lies in [0, 1].
type Particle struct {
	ID      uint64
	Pos     core.Vec2
	Vel     core.Vec2
	Size    float64
	Color   color.NRGBA
	Opacity float64
	Age     float64
	MaxLife float64
	Kind    Kind

	// Phase drives the pulse of mote particles; Pulse is its advance per
	// slice, drawn at spawn.
	Phase float64
	Pulse float64
}

// Expired reports whether the particle has reached the end of its life.
func (p *Particle) Expired() bool { return p.Age >= p.MaxLife }

// LifeFraction returns Age/MaxLife clamped to [0, 1].
func (p *Particle) LifeFraction() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	return core.Clamp01(p.Age / p.MaxLife)
}

// Pointer is the read-only pointer snapshot consumed by the stepper.
type Pointer struct {
	Pos    core.Vec2
	Active bool
}

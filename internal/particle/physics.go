package particle

import (
	"nocturne-fx/internal/core"
)

// Default stepper constants, in surface units and time-slices.
const (
	DefaultGravity         = 0.1
	DefaultAttractRadius   = 100.0
	DefaultAttractStrength = 0.008
)

// Stepper advances particles by one time-slice. It is deterministic: given
// dt and the current state it always produces the same result.
type Stepper struct {
	Bounds      core.Size
	SpeedFactor float64
	Gravity     float64

	// Interactive enables pointer attraction for ambient particles.
	Interactive     bool
	AttractRadius   float64
	AttractStrength float64
}

// NewStepper returns a stepper with the default constants.
func NewStepper(bounds core.Size) *Stepper {
	return &Stepper{
		Bounds:          bounds,
		SpeedFactor:     1,
		Gravity:         DefaultGravity,
		AttractRadius:   DefaultAttractRadius,
		AttractStrength: DefaultAttractStrength,
	}
}

// StepAll advances every particle in the store.
func (s *Stepper) StepAll(store *Store, dt float64, ptr Pointer) {
	for i := range store.items {
		s.Step(&store.items[i], dt, ptr)
	}
}

// Step advances p by dt time-slices.
func (s *Stepper) Step(p *Particle, dt float64, ptr Pointer) {
	if dt < 0 {
		dt = 0
	}
	event := p.Kind.IsEvent()

	if event {
		p.Vel.Y += s.Gravity * dt
	} else if s.Interactive && ptr.Active {
		p.Vel = p.Vel.Add(s.attraction(p.Pos, ptr.Pos).Scale(dt))
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt * s.SpeedFactor))

	p.Age += dt
	if p.MaxLife > 0 && p.Age > p.MaxLife {
		p.Age = p.MaxLife
	}
	p.Opacity = 1 - p.LifeFraction()

	if p.Kind == KindMote {
		p.Phase += p.Pulse * dt
	}

	if !event {
		s.wrap(p)
	}
}

// attraction returns the velocity change per slice toward the pointer. The
// pull falls off linearly to zero at the interaction radius, so particles
// outside the radius are unaffected.
func (s *Stepper) attraction(pos, target core.Vec2) core.Vec2 {
	d := target.Sub(pos)
	dist := d.Len()
	if dist <= 0 || dist >= s.AttractRadius {
		return core.Vec2{}
	}
	force := (s.AttractRadius - dist) / s.AttractRadius * s.AttractStrength
	return d.Scale(force / dist)
}

func (s *Stepper) wrap(p *Particle) {
	if s.Bounds.Empty() {
		return
	}
	p.Pos.X = core.Wrap(p.Pos.X, float64(s.Bounds.W))
	p.Pos.Y = core.Wrap(p.Pos.Y, float64(s.Bounds.H))
}

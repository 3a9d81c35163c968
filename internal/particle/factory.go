package particle

import (
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"

	"nocturne-fx/internal/core"
)

// Profile carries the theme-dependent spawn parameters for ambient particles.
type Profile struct {
	Palette []color.NRGBA
	Kinds   []Kind
	Speed   float64

	SizeMin, SizeMax float64
	LifeMin, LifeMax float64

	// Flow in [0, 1] blends the random initial heading with a heading
	// sampled from a Perlin flow field at the spawn position.
	Flow float64
}

const (
	minSize = 0.5

	eventJitter      = 20.0
	eventSpeed       = 4.0
	eventLift        = 2.0
	eventLifeMin     = 60.0
	eventLifeMax     = 120.0
	eventSizeMin     = 3.0
	eventSizeMax     = 12.0
	eventSizePerUnit = 0.01

	flowScale = 0.004

	pulseMin = 0.01
	pulseMax = 0.03
)

// Factory builds particle records. All randomness of the engine lives here;
// the stepper never draws random numbers.
type Factory struct {
	rng   *core.RNG
	noise *perlin.Perlin
}

// NewFactory returns a factory seeded for reproducible runs.
func NewFactory(seed int64) *Factory {
	rng := core.NewRNG(seed)
	return &Factory{
		rng:   rng,
		noise: perlin.NewPerlin(2, 2, 3, rng.Int64()),
	}
}

// AmbientAnywhere spawns an ambient particle at a random point of bounds.
func (f *Factory) AmbientAnywhere(pr Profile, bounds core.Size) Particle {
	pos := core.Vec2{
		X: f.rng.Range(0, float64(bounds.W)),
		Y: f.rng.Range(0, float64(bounds.H)),
	}
	return f.Ambient(pr, pos)
}

// Ambient spawns an ambient particle at pos using the profile's ranges.
func (f *Factory) Ambient(pr Profile, pos core.Vec2) Particle {
	kind := KindSparkle
	if len(pr.Kinds) > 0 {
		kind = pr.Kinds[f.rng.IntN(len(pr.Kinds))]
	}
	col := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if len(pr.Palette) > 0 {
		col = pr.Palette[f.rng.IntN(len(pr.Palette))]
	}

	vel := core.Vec2{X: f.rng.Signed(pr.Speed), Y: f.rng.Signed(pr.Speed)}
	if pr.Flow > 0 {
		flow := core.Clamp01(pr.Flow)
		angle := f.noise.Noise2D(pos.X*flowScale, pos.Y*flowScale) * 2 * math.Pi
		speed := f.rng.Range(0.25, 0.5) * pr.Speed
		heading := core.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
		vel = vel.Scale(1 - flow).Add(heading.Scale(flow))
	}

	size := f.rng.Range(pr.SizeMin, pr.SizeMax)
	if size < minSize {
		size = minSize
	}
	life := f.rng.Range(pr.LifeMin, pr.LifeMax)
	if life <= 0 {
		life = 1
	}

	p := Particle{
		Pos:     pos,
		Vel:     vel,
		Size:    size,
		Color:   col,
		Opacity: 1,
		MaxLife: life,
		Kind:    kind,
	}
	if kind == KindMote {
		p.Phase = f.rng.Range(0, 2*math.Pi)
		p.Pulse = f.rng.Range(pulseMin, pulseMax)
	}
	return p
}

// Event spawns one particle of a burst. Position is jittered around pos.
// For monetary kinds the magnitude sets size (clamped to [3, 12]) and the
// base alpha; override, when non-nil, replaces the event palette color.
func (f *Factory) Event(kind Kind, pos core.Vec2, magnitude float64, override *color.NRGBA) Particle {
	pos = pos.Add(core.Vec2{X: f.rng.Signed(eventJitter), Y: f.rng.Signed(eventJitter)})
	vel := core.Vec2{
		X: f.rng.Signed(eventSpeed),
		Y: f.rng.Signed(eventSpeed) - eventLift,
	}

	var size float64
	if kind.Monetary() {
		size = EventSize(magnitude)
	} else {
		size = f.rng.Range(4, 8)
	}

	col := EventColor(kind, magnitude)
	if override != nil {
		col = *override
	}

	return Particle{
		Pos:     pos,
		Vel:     vel,
		Size:    size,
		Color:   col,
		Opacity: 1,
		MaxLife: f.rng.Range(eventLifeMin, eventLifeMax),
		Kind:    kind,
	}
}

// EventSize maps a monetary magnitude to a particle size in [3, 12].
func EventSize(magnitude float64) float64 {
	return core.Clamp(math.Abs(magnitude)*eventSizePerUnit, eventSizeMin, eventSizeMax)
}

// EventColor returns the fixed event palette entry for kind. Profit and loss
// encode intensity in alpha: 0.6 + 0.4*min(1, |magnitude|/1000).
func EventColor(kind Kind, magnitude float64) color.NRGBA {
	switch kind {
	case KindProfit:
		return color.NRGBA{R: 0, G: 255, B: 136, A: intensityAlpha(magnitude)}
	case KindLoss:
		return color.NRGBA{R: 255, G: 68, B: 68, A: intensityAlpha(magnitude)}
	case KindOrder:
		return color.NRGBA{R: 138, G: 43, B: 226, A: 204}
	case KindAlert:
		return color.NRGBA{R: 255, G: 215, B: 0, A: 204}
	default:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 153}
	}
}

func intensityAlpha(magnitude float64) uint8 {
	intensity := math.Min(1, math.Abs(magnitude)/1000)
	return uint8(math.Round((0.6 + 0.4*intensity) * 255))
}

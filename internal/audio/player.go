package audio

import (
	"time"

	"github.com/gopxl/beep"

	"nocturne-fx/internal/particle"
)

// DefaultMinGap is the shortest interval between two cues of the same kind.
const DefaultMinGap = 120 * time.Millisecond

// Sink receives streamers to play.
type Sink func(beep.Streamer)

// Player rate-limits cues per kind and hands them to a sink.
type Player struct {
	rate   beep.SampleRate
	sink   Sink
	MinGap time.Duration
	Muted  bool

	last map[particle.Kind]time.Time
	now  func() time.Time
}

// NewPlayer returns a player writing to sink at rate.
func NewPlayer(rate beep.SampleRate, sink Sink) *Player {
	return &Player{
		rate:   rate,
		sink:   sink,
		MinGap: DefaultMinGap,
		last:   make(map[particle.Kind]time.Time),
		now:    time.Now,
	}
}

// SetClock replaces the time source.
func (p *Player) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	p.now = now
}

// Play queues the cue for kind and reports whether it was sent.
func (p *Player) Play(kind particle.Kind, magnitude float64) bool {
	if p == nil || p.Muted || p.sink == nil {
		return false
	}
	now := p.now()
	if last, ok := p.last[kind]; ok && now.Sub(last) < p.MinGap {
		return false
	}
	s := Cue(kind, magnitude, p.rate)
	if s == nil {
		return false
	}
	p.last[kind] = now
	p.sink(s)
	return true
}

// OnBurst adapts Play to the engine burst callback.
func (p *Player) OnBurst(kind particle.Kind, magnitude float64) { p.Play(kind, magnitude) }

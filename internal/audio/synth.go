// Package audio turns burst events into short synthesized cues.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// sweep is an oscillator whose frequency moves linearly from f0 to f1 over
// its duration.
type sweep struct {
	f0, f1   float64
	wave     Wave
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newSweep(f0, f1 float64, d time.Duration, wave Wave, rate beep.SampleRate) *sweep {
	return &sweep{f0: f0, f1: f1, wave: wave, rate: rate, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			v = -1
			if s.phase < 0.5 {
				v = 1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		case WaveTriangle:
			v = 4*math.Abs(s.phase-0.5) - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(s.position) / float64(s.total)
		freq := s.f0 + (s.f1-s.f0)*t
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release over a fixed length.
type envelope struct {
	s        beep.Streamer
	attack   int
	release  int
	total    int
	position int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

func tone(f0, f1 float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newSweep(f0, f1, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Package sweep replays synthetic frame-time traces through a headless
// engine to compare governor watermark settings.
package sweep

import (
	"fmt"
	"time"

	"nocturne-fx/internal/engine"
	"nocturne-fx/internal/governor"
	"nocturne-fx/internal/render"
	"nocturne-fx/internal/theme"
)

const (
	slice60 = time.Second / 60
	slice40 = time.Second / 40
	slice50 = time.Second / 50
	slice59 = time.Second / 59
)

// Trace yields the frame duration for frame i.
type Trace struct {
	Name  string
	Frame func(i int) time.Duration
}

// Traces returns the built-in frame-time scenarios.
func Traces() []Trace {
	return []Trace{
		{Name: "steady", Frame: func(int) time.Duration { return slice60 }},
		{Name: "sag", Frame: func(i int) time.Duration {
			if i >= 60 && i < 180 {
				return slice40
			}
			return slice60
		}},
		{Name: "oscillate", Frame: func(i int) time.Duration {
			if (i/30)%2 == 0 {
				return slice50
			}
			return slice59
		}},
		{Name: "spike", Frame: func(i int) time.Duration {
			if i%90 == 89 {
				return 100 * time.Millisecond
			}
			return slice60
		}},
	}
}

// Candidate is one watermark pair under test.
type Candidate struct {
	Low  float64
	High float64
}

func (c Candidate) String() string { return fmt.Sprintf("low=%.0f high=%.0f", c.Low, c.High) }

// Grid returns every pair with low < high.
func Grid(lows, highs []float64) []Candidate {
	var out []Candidate
	for _, lo := range lows {
		for _, hi := range highs {
			if lo < hi {
				out = append(out, Candidate{Low: lo, High: hi})
			}
		}
	}
	return out
}

// Result summarizes one replay.
type Result struct {
	Trace       string
	Candidate   Candidate
	Frames      int
	Transitions int
	Reduced     int
	Final       governor.State
	MeanTarget  float64
}

// ReducedShare is the fraction of frames spent in the reduced state.
func (r Result) ReducedShare() float64 {
	if r.Frames == 0 {
		return 0
	}
	return float64(r.Reduced) / float64(r.Frames)
}

// Run replays tr for the given number of frames against a fresh engine.
func Run(c Candidate, tr Trace, frames int, opts engine.Options) Result {
	opts.Governor.Low = c.Low
	opts.Governor.High = c.High
	opts.Mode = governor.ModeAuto

	loop := engine.NewLoop()
	e := engine.Attach(loop, render.NewRecorder(800, 600), theme.DefaultID, opts)
	defer e.Detach()

	res := Result{Trace: tr.Name, Candidate: c, Frames: frames, Final: governor.Full}
	var now time.Duration
	var targets int
	for i := 0; i < frames; i++ {
		now += tr.Frame(i)
		loop.Fire(now)
		d := e.Diagnostics()
		if d.State == governor.Reduced {
			res.Reduced++
		}
		targets += d.Target
		res.Transitions = d.Flips
		res.Final = d.State
	}
	if frames > 0 {
		res.MeanTarget = float64(targets) / float64(frames)
	}
	return res
}

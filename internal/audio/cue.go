package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"nocturne-fx/internal/particle"
)

// DefaultSampleRate is used by commands that open the speaker.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue builds the sound for a burst of kind. Profit and loss get louder with
// |magnitude|. Ambient kinds have no cue and return nil.
func Cue(kind particle.Kind, magnitude float64, rate beep.SampleRate) beep.Streamer {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	gain := 0.5
	if kind.Monetary() {
		gain = 0.3 + 0.5*math.Min(1, math.Abs(magnitude)/1000)
	}

	switch kind {
	case particle.KindProfit:
		note := 80 * time.Millisecond
		return volume(beep.Seq(
			tone(523.25, 523.25, note, WaveSine, rate),
			tone(659.25, 659.25, note, WaveSine, rate),
			tone(783.99, 783.99, 2*note, WaveSine, rate),
		), gain)
	case particle.KindLoss:
		return volume(tone(400, 200, 250*time.Millisecond, WaveSaw, rate), gain*0.6)
	case particle.KindOrder:
		return volume(tone(800, 1200, 120*time.Millisecond, WaveTriangle, rate), gain)
	case particle.KindAlert:
		beat := 100 * time.Millisecond
		return volume(beep.Seq(
			tone(880, 880, beat, WaveSquare, rate),
			tone(660, 660, beat, WaveSquare, rate),
		), gain*0.4)
	}
	return nil
}

// Duration returns the length of the cue for kind, or zero.
func Duration(kind particle.Kind) time.Duration {
	switch kind {
	case particle.KindProfit:
		return 320 * time.Millisecond
	case particle.KindLoss:
		return 250 * time.Millisecond
	case particle.KindOrder:
		return 120 * time.Millisecond
	case particle.KindAlert:
		return 200 * time.Millisecond
	}
	return 0
}

// Package speakersink opens the system audio device for cue playback.
package speakersink

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"nocturne-fx/internal/audio"
)

// Open initializes the speaker with a 100ms buffer and returns a sink that
// mixes cues into it.
func Open(rate beep.SampleRate) (audio.Sink, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return func(s beep.Streamer) { speaker.Play(s) }, nil
}

// Close releases the audio device.
func Close() { speaker.Close() }

package engine

import (
	"io"
	"log"
	"strconv"

	"nocturne-fx/internal/governor"
	"nocturne-fx/internal/particle"
)

// DefaultCap bounds the live particle count of one engine.
const DefaultCap = 200

// referenceArea is the surface area at which AreaScaling leaves the target
// unchanged.
const referenceArea = 1920 * 1080

// Options configures an engine at attach time.
type Options struct {
	Intensity   governor.Intensity
	Interactive bool
	Mode        governor.Mode

	Cap         int
	Seed        int64
	SpeedFactor float64

	// Trail fades the previous frame instead of clearing.
	Trail bool

	// AreaScaling scales the ambient target by min(area/1920x1080, 2).
	AreaScaling bool

	Governor governor.Config

	// PerFrame caps ambient spawns per frame.
	PerFrame int

	Logger *log.Logger

	// OnBurst is called once per drained event request.
	OnBurst func(kind particle.Kind, magnitude float64)
}

// DefaultOptions returns the desktop defaults.
func DefaultOptions() Options {
	return Options{
		Intensity:   governor.IntensityMedium,
		Interactive: true,
		Mode:        governor.ModeAuto,
		Cap:         DefaultCap,
		Seed:        1,
		SpeedFactor: 1,
		Governor:    governor.DefaultConfig(),
		PerFrame:    10,
	}
}

// OptionsFromMap applies string overrides on top of DefaultOptions.
// Unparseable values are ignored.
func OptionsFromMap(m map[string]string) Options {
	o := DefaultOptions()
	if m == nil {
		return o
	}
	if v, ok := m["intensity"]; ok {
		if parsed, err := governor.ParseIntensity(v); err == nil {
			o.Intensity = parsed
		}
	}
	if v, ok := m["mode"]; ok {
		if parsed, err := governor.ParseMode(v); err == nil {
			o.Mode = parsed
		}
	}
	if v, ok := m["interactive"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			o.Interactive = parsed
		}
	}
	if v, ok := m["trail"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			o.Trail = parsed
		}
	}
	if v, ok := m["area_scaling"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			o.AreaScaling = parsed
		}
	}
	if v, ok := m["cap"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Cap = parsed
		}
	}
	if v, ok := m["per_frame"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.PerFrame = parsed
		}
	}
	if v, ok := m["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			o.Seed = parsed
		}
	}
	if v, ok := m["speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			o.SpeedFactor = parsed
		}
	}
	if v, ok := m["fps_window"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Governor.Window = parsed
		}
	}
	if v, ok := m["fps_low"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			o.Governor.Low = parsed
		}
	}
	if v, ok := m["fps_high"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			o.Governor.High = parsed
		}
	}
	if v, ok := m["reduction"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			o.Governor.ReductionFactor = parsed
		}
	}
	return o
}

func (o Options) normalized() Options {
	if o.Cap <= 0 {
		o.Cap = DefaultCap
	}
	if o.SpeedFactor <= 0 {
		o.SpeedFactor = 1
	}
	if o.PerFrame <= 0 {
		o.PerFrame = 10
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	return o
}

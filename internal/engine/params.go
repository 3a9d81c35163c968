package engine

import (
	"nocturne-fx/internal/core"
)

// Parameters returns the HUD snapshot of tunables and live values.
func (e *Engine) Parameters() core.ParameterSnapshot {
	d := e.Diagnostics()
	cfg := e.gov.Config()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Population",
			Params: []core.Parameter{
				core.StringParam("theme", "Theme", e.theme.ID),
				core.StringParam("intensity", "Intensity", e.opts.Intensity.String()),
				core.IntParam("base", "Ambient base", e.baseCount()),
				core.IntParam("cap", "Hard cap", e.store.Cap()),
				core.IntParam("per_frame", "Spawns per frame", e.opts.PerFrame),
				core.FloatParam("speed", "Speed factor", e.stepper.SpeedFactor),
				core.BoolParam("interactive", "Pointer attraction", e.stepper.Interactive),
			},
		},
		{
			Name: "Governor",
			Params: []core.Parameter{
				core.StringParam("mode", "Mode", e.gov.Mode().String()),
				core.StringParam("state", "State", e.gov.State().String()),
				core.FloatParam("fps_low", "Low watermark", cfg.Low),
				core.FloatParam("fps_high", "High watermark", cfg.High),
				core.FloatParam("reduction", "Reduction factor", cfg.ReductionFactor),
				core.IntParam("target", "Target", d.Target),
			},
		},
	}}
}

// ParameterControls lists the values the HUD may adjust.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "base", Label: "Ambient base", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 1000, HasMin: true, HasMax: true},
		{Key: "cap", Label: "Hard cap", Type: core.ParamTypeInt, Step: 25, Min: 1, Max: 2000, HasMin: true, HasMax: true},
		{Key: "per_frame", Label: "Spawns per frame", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 100, HasMin: true, HasMax: true},
		{Key: "speed", Label: "Speed factor", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 5, HasMin: true, HasMax: true},
		{Key: "fps_low", Label: "Low watermark", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 240, HasMin: true, HasMax: true},
		{Key: "fps_high", Label: "High watermark", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 240, HasMin: true, HasMax: true},
		{Key: "reduction", Label: "Reduction factor", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
	}
}

func (e *Engine) baseCount() int {
	if e.base > 0 {
		return e.base
	}
	return e.opts.Intensity.Base()
}

// SetIntParameter updates an integer tunable by key.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "base":
		if value < 0 {
			return false
		}
		e.base = value
	case "cap":
		if value < 1 {
			return false
		}
		e.store.SetCap(value)
	case "per_frame":
		if value < 1 {
			return false
		}
		e.opts.PerFrame = value
	default:
		return false
	}
	e.target = e.targetCapacity()
	return true
}

// SetFloatParameter updates a float tunable by key. Watermarks that would
// close the hysteresis gap are rejected.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	cfg := e.gov.Config()
	switch key {
	case "speed":
		if value <= 0 {
			return false
		}
		e.stepper.SpeedFactor = value
		return true
	case "fps_low":
		if value <= 0 || value >= cfg.High {
			return false
		}
		cfg.Low = value
	case "fps_high":
		if value <= cfg.Low {
			return false
		}
		cfg.High = value
	case "reduction":
		if value <= 0 || value > 1 {
			return false
		}
		cfg.ReductionFactor = value
	default:
		return false
	}
	e.gov.SetConfig(cfg)
	e.target = e.targetCapacity()
	return true
}

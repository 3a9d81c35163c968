package governor

import (
	"fmt"
	"strings"
)

// Mode selects automatic governance or a fixed quality level.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeHigh
	ModeBalanced
	ModeLow
)

var modeNames = [...]string{"auto", "high", "balanced", "low"}

// modeScale fixes the capacity multiplier of the manual modes.
var modeScale = [...]float64{ModeAuto: 1, ModeHigh: 1, ModeBalanced: 0.6, ModeLow: 0.25}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// Manual reports whether m bypasses the hysteresis machine.
func (m Mode) Manual() bool { return m != ModeAuto }

// Next cycles through the modes in declaration order.
func (m Mode) Next() Mode { return (m + 1) % Mode(len(modeNames)) }

// ParseMode accepts the lower-case mode names.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return ModeAuto, fmt.Errorf("unknown performance mode %q", s)
}

// Intensity names a base ambient population.
type Intensity uint8

const (
	IntensityLow Intensity = iota
	IntensityMedium
	IntensityHigh
	IntensityUltra
)

var intensityNames = [...]string{"low", "medium", "high", "ultra"}

var intensityBase = [...]int{20, 50, 100, 200}

// burstScale multiplies event burst counts per intensity.
var burstScale = [...]float64{0.5, 1, 1.5, 2}

func (i Intensity) String() string {
	if int(i) < len(intensityNames) {
		return intensityNames[i]
	}
	return fmt.Sprintf("intensity(%d)", i)
}

// Base returns the ambient particle count for full quality.
func (i Intensity) Base() int {
	if int(i) < len(intensityBase) {
		return intensityBase[i]
	}
	return intensityBase[IntensityMedium]
}

// BurstScale returns the multiplier applied to event burst counts.
func (i Intensity) BurstScale() float64 {
	if int(i) < len(burstScale) {
		return burstScale[i]
	}
	return 1
}

// ParseIntensity accepts the lower-case intensity names.
func ParseIntensity(s string) (Intensity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range intensityNames {
		if s == name {
			return Intensity(i), nil
		}
	}
	return IntensityMedium, fmt.Errorf("unknown intensity %q", s)
}

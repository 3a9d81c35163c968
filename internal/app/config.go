package app

import (
	"flag"
	"fmt"
	"image/color"
	"strings"

	"nocturne-fx/internal/engine"
	"nocturne-fx/internal/theme"
)

// Background is the surface color behind the particles.
var Background = color.NRGBA{R: 10, G: 10, B: 16, A: 255}

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string { return strings.Join(*l, ",") }

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map; later keys win.
func (l KVList) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m
}

// Config holds the command-line parameters shared by the front ends.
type Config struct {
	Theme     string
	Width     int
	Height    int
	TPS       int
	Seed      int64
	Demo      bool
	Audio     bool
	HUD       bool
	HUDWidth  int
	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Theme:    theme.DefaultID,
		Width:    1280,
		Height:   720,
		TPS:      60,
		Seed:     42,
		HUDWidth: 260,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Theme, "theme", c.Theme, "theme id ("+strings.Join(theme.IDs(), ", ")+")")
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for particle randomness")
	fs.BoolVar(&c.Demo, "demo", c.Demo, "fire random trading bursts")
	fs.BoolVar(&c.Audio, "audio", c.Audio, "play burst audio cues")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the tunables panel")
	fs.IntVar(&c.HUDWidth, "hud-width", c.HUDWidth, "tunables panel width")
	fs.Var(&c.Overrides, "set", "engine option in key=value form (repeatable)")
}

// EngineOptions builds engine options from the overrides. The seed flag
// applies unless an override names one.
func (c *Config) EngineOptions() engine.Options {
	m := c.Overrides.Map()
	if _, ok := m["seed"]; !ok {
		m["seed"] = fmt.Sprint(c.Seed)
	}
	return engine.OptionsFromMap(m)
}

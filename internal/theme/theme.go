// Package theme is the static catalog of visual themes: palette, allowed
// ambient kinds, speed and glow multipliers.
package theme

import (
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"nocturne-fx/internal/particle"
)

// DefaultID is the theme used when none or an unknown one is requested.
const DefaultID = "cult"

// Config is an immutable theme record. Callers receive copies; the catalog
// itself is never mutated after init.
type Config struct {
	ID   string
	Name string

	// Glow scales halo size for energy/event discs and was applied to the
	// palette saturation when the catalog was built.
	Glow float64

	// Interactive is false for themes whose particles ignore the pointer.
	Interactive bool

	Profile particle.Profile
}

// Speed returns the base speed multiplier.
func (c Config) Speed() float64 { return c.Profile.Speed }

// Palette returns the theme colors.
func (c Config) Palette() []color.NRGBA { return c.Profile.Palette }

// Kinds returns the ambient kinds the theme spawns.
func (c Config) Kinds() []particle.Kind { return c.Profile.Kinds }

type spec struct {
	name        string
	hex         []string
	kinds       []particle.Kind
	speed       float64
	glow        float64
	interactive bool
	alpha       float64
	flow        float64
}

var specs = map[string]spec{
	"cult": {
		name:        "Cult",
		hex:         []string{"#9c88ff", "#7c4dff", "#b39ddb", "#e1bee7"},
		kinds:       []particle.Kind{particle.KindSparkle, particle.KindGlow, particle.KindRing},
		speed:       1.2,
		glow:        0.8,
		interactive: true,
		alpha:       1,
	},
	"mystical": {
		name:        "Mystical",
		hex:         []string{"#4fc3f7", "#29b6f6", "#81c784", "#aed581"},
		kinds:       []particle.Kind{particle.KindSparkle, particle.KindEnergy},
		speed:       1.5,
		glow:        1.0,
		interactive: true,
		alpha:       1,
		flow:        0.4,
	},
	"neon": {
		name:        "Neon",
		hex:         []string{"#ff4081", "#e91e63", "#ff6ec7", "#f48fb1"},
		kinds:       []particle.Kind{particle.KindGlow, particle.KindEnergy},
		speed:       2.0,
		glow:        1.2,
		interactive: true,
		alpha:       1,
	},
	"ethereal": {
		name:  "Ethereal",
		hex:   []string{"#ffffff", "#f5f5f5", "#e8eaf6", "#c5cae9"},
		kinds: []particle.Kind{particle.KindSparkle, particle.KindGlow},
		speed: 0.8,
		glow:  0.6,
		alpha: 1,
		flow:  0.6,
	},
	"cosmic": {
		name:        "Cosmic",
		hex:         []string{"#673ab7", "#9c27b0", "#e91e63", "#f06292"},
		kinds:       []particle.Kind{particle.KindSparkle, particle.KindGlow, particle.KindMote},
		speed:       1.5,
		glow:        1.8,
		interactive: true,
		alpha:       1,
		flow:        0.3,
	},
	"shadow": {
		name:  "Shadow",
		hex:   []string{"#424242", "#616161", "#9e9e9e", "#bdbdbd"},
		kinds: []particle.Kind{particle.KindGlow, particle.KindMote},
		speed: 0.8,
		glow:  0.5,
		alpha: 1,
	},
	"cyber": {
		name:        "Cyber",
		hex:         []string{"#00ffff", "#ff00ff", "#00ff7f"},
		kinds:       []particle.Kind{particle.KindSparkle, particle.KindEnergy, particle.KindMote},
		speed:       1.6,
		glow:        1.0,
		interactive: true,
		alpha:       0.5,
	},
	"ember": {
		name:        "Ember",
		hex:         []string{"#ff8c00", "#ff4500", "#ffd700"},
		kinds:       []particle.Kind{particle.KindGlow, particle.KindMote},
		speed:       1.0,
		glow:        0.9,
		interactive: true,
		alpha:       0.6,
		flow:        0.5,
	},
}

var catalog = buildCatalog()

func buildCatalog() map[string]Config {
	out := make(map[string]Config, len(specs))
	for id, s := range specs {
		out[id] = Config{
			ID:          id,
			Name:        s.name,
			Glow:        s.glow,
			Interactive: s.interactive,
			Profile: particle.Profile{
				Palette: buildPalette(s.hex, s.glow, s.alpha),
				Kinds:   s.kinds,
				Speed:   s.speed,
				SizeMin: 1,
				SizeMax: 4,
				LifeMin: 200,
				LifeMax: 500,
				Flow:    s.flow,
			},
		}
	}
	return out
}

func buildPalette(hex []string, glow, alpha float64) []color.NRGBA {
	out := make([]color.NRGBA, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		out = append(out, toNRGBA(Saturate(c, glow), alpha))
	}
	return out
}

// Saturate scales the HSV saturation of c by factor, clamped to [0, 1].
func Saturate(c colorful.Color, factor float64) colorful.Color {
	h, s, v := c.Hsv()
	s *= factor
	if s > 1 {
		s = 1
	}
	if s < 0 {
		s = 0
	}
	return colorful.Hsv(h, s, v).Clamped()
}

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.RGB255()
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// Lookup returns the theme registered under id.
func Lookup(id string) (Config, bool) {
	c, ok := catalog[id]
	return c.clone(), ok
}

// Default returns the default theme.
func Default() Config { return catalog[DefaultID].clone() }

// Resolve returns the theme for id, or the default when id is unknown.
func Resolve(id string) Config {
	if c, ok := Lookup(id); ok {
		return c
	}
	return Default()
}

func (c Config) clone() Config {
	c.Profile.Palette = append([]color.NRGBA(nil), c.Profile.Palette...)
	c.Profile.Kinds = append([]particle.Kind(nil), c.Profile.Kinds...)
	return c
}

// IDs lists the registered theme ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Next returns the id following current in sorted order, wrapping around.
func Next(current string) string {
	ids := IDs()
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return DefaultID
}

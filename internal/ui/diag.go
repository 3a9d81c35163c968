package ui

import (
	"fmt"

	"nocturne-fx/internal/engine"
)

// DiagnosticsLines formats an engine snapshot for the debug overlay.
func DiagnosticsLines(d engine.Diagnostics) []string {
	fps := "--"
	if d.FPS > 0 {
		fps = fmt.Sprintf("%.1f", d.FPS)
	}
	lines := []string{
		fmt.Sprintf("fps %s  %s (%d flips)  mode %s", fps, d.State, d.Flips, d.Mode),
		fmt.Sprintf("particles %d/%d  target %d", d.Particles, d.Cap, d.Target),
		fmt.Sprintf("ambient %d  events %d  drawn %d", d.Ambient, d.Events, d.Drawn),
		fmt.Sprintf("theme %s  frame %d", d.Theme, d.Frames),
	}
	if d.Dropped > 0 {
		lines = append(lines, fmt.Sprintf("dropped %d", d.Dropped))
	}
	if d.Paused {
		lines = append(lines, "paused")
	}
	return lines
}

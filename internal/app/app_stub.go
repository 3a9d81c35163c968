//go:build !ebiten

package app

import "nocturne-fx/internal/engine"

// Game is a placeholder used when the ebiten build tag is absent.
type Game struct{}

// New panics because the GUI requires the ebiten build tag.
func New(*Config, engine.Options) *Game {
	panic("app: the GUI requires the ebiten build tag")
}

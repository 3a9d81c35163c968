//go:build !ebiten

package ui

import "nocturne-fx/internal/engine"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(func() engine.Diagnostics) *Overlay { return &Overlay{} }

// SetWatermarks is a no-op in headless builds.
func (o *Overlay) SetWatermarks(float64, float64) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}

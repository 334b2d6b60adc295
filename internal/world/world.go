// Package world holds the static arena: its bounds and the platform layout.
package world

import (
	"math"

	"github.com/vovakirdan/colosseum/internal/core"
)

// Platform is a static axis-aligned rectangle that entities can land on.
type Platform = core.Box

// Layout fractions relative to the viewport.
const (
	floorFraction = 0.05

	ledgeWidth  = 0.25
	ledgeHeight = 0.02

	sideLedgeTop   = 0.62
	leftLedgeLeft  = 0.10
	rightLedgeLeft = 0.65

	centerLedgeLeft = 0.375
	centerLedgeTop  = 0.38
)

// World is the arena: bounds plus an ordered platform list whose first entry is the floor.
type World struct {
	width     float64
	height    float64
	platforms []Platform
}

// New creates an empty, unsized world.
func New() *World {
	return &World{}
}

// BuildMap regenerates the fixed layout for a width x height viewport.
// Non-positive dimensions clear the arena.
func (w *World) BuildMap(width, height float64) {
	if width <= 0 || height <= 0 {
		w.width, w.height = 0, 0
		w.platforms = nil
		return
	}
	w.width, w.height = width, height

	floor := math.Max(1, height*floorFraction)
	lh := height * ledgeHeight
	lw := width * ledgeWidth

	w.platforms = []Platform{
		core.NewBox(0, height-floor, width, floor),
		core.NewBox(width*leftLedgeLeft, height*sideLedgeTop, lw, lh),
		core.NewBox(width*rightLedgeLeft, height*sideLedgeTop, lw, lh),
		core.NewBox(width*centerLedgeLeft, height*centerLedgeTop, lw, lh),
	}
}

// Clear removes every platform and zeroes the bounds.
func (w *World) Clear() {
	w.BuildMap(0, 0)
}

// SetPlatforms replaces the layout while keeping the bounds.
// Used by headless scenarios that need a custom arena.
func (w *World) SetPlatforms(ps []Platform) {
	w.platforms = append([]Platform(nil), ps...)
}

// Platforms returns the current platform list in collision order.
func (w *World) Platforms() []Platform {
	return w.platforms
}

// Floor returns the top edge of the floor platform, or false if there are no platforms.
func (w *World) Floor() (float64, bool) {
	if len(w.platforms) == 0 {
		return 0, false
	}
	return w.platforms[0].Y, true
}

// Width returns the viewport width in pixels.
func (w *World) Width() float64 { return w.width }

// Height returns the viewport height in pixels.
func (w *World) Height() float64 { return w.height }

// Sized reports whether the arena has positive dimensions.
func (w *World) Sized() bool {
	return w.width > 0 && w.height > 0
}

// Bounds returns the arena as a box anchored at the origin.
func (w *World) Bounds() core.Box {
	return core.NewBox(0, 0, w.width, w.height)
}

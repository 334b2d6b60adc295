// Package entity defines simulated actors and the components they are built from.
package entity

import (
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/world"
)

// Direction is the way an entity faces.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Sign returns -1 for Left and +1 for Right.
func (d Direction) Sign() float64 {
	if d == Left {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// DirectionOf returns the direction of a signed value. Zero faces right.
func DirectionOf(v float64) Direction {
	if v < 0 {
		return Left
	}
	return Right
}

// Entity is anything the engine updates and renders each tick.
type Entity interface {
	Common() *Base
	Update(dt float64, w *world.World)
	Render(c Canvas, m TextMeasurer, font string)
}

// Destroyer removes entities from the live set.
type Destroyer interface {
	DestroyEntity(e Entity)
}

// Base holds the fields shared by every entity. X and Y are the center.
type Base struct {
	Name   string
	Color  core.Color
	X, Y   float64
	Width  float64 // collision box
	Height float64

	ImageWidth  float64 // visual box
	ImageHeight float64

	Facing Direction
	Action string

	components []Component
}

// NewBase creates a base with a fixed component list.
func NewBase(name string, color core.Color, components ...Component) Base {
	return Base{
		Name:       name,
		Color:      color,
		Facing:     Right,
		components: components,
	}
}

// Common returns the shared fields. Embedding types satisfy part of Entity through it.
func (b *Base) Common() *Base { return b }

// Bounds returns the collision box around the center.
func (b *Base) Bounds() core.Box {
	return core.BoxAround(b.X, b.Y, b.Width, b.Height)
}

// ImageBounds returns the visual box around the center.
func (b *Base) ImageBounds() core.Box {
	return core.BoxAround(b.X, b.Y, b.ImageWidth, b.ImageHeight)
}

// Top returns the y-coordinate of the collision box top edge.
func (b *Base) Top() float64 { return b.Y - b.Height/2 }

// BottomEdge returns the y-coordinate of the collision box bottom edge.
func (b *Base) BottomEdge() float64 { return b.Y + b.Height/2 }

// Components returns the component list in update and render order.
func (b *Base) Components() []Component {
	return b.components
}

// UpdateComponents runs every component update hook with b as owner.
func (b *Base) UpdateComponents(dt float64) {
	for _, c := range b.components {
		if u, ok := c.(Updater); ok {
			u.Update(dt, b)
		}
	}
}

// RenderComponents renders every component after the entity body.
func (b *Base) RenderComponents(c Canvas) {
	for _, comp := range b.components {
		if r, ok := comp.(Renderer); ok {
			r.Render(c, b)
		}
	}
}

// Find returns the first component of type T attached to b.
func Find[T Component](b *Base) (T, bool) {
	for _, c := range b.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// SetDebug toggles collider overlays on e.
func SetDebug(e Entity, on bool) {
	if c, ok := Find[*Collider](e.Common()); ok {
		c.Visible = on
	}
}

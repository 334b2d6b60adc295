package engine

import (
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
)

// Render draws the platforms and then every live entity in update order.
func (e *Engine) Render(c entity.Canvas, m entity.TextMeasurer, font string) {
	if m == nil {
		m = entity.NoMeasurer{}
	}
	for _, pl := range e.world.Platforms() {
		c.DrawRect(pl, entity.Solid(core.ColorGray))
	}
	for _, en := range e.entities {
		en.Render(c, m, font)
	}
}

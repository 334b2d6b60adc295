// Package hazard implements the transient arena entities: falling rocks,
// runaway cars and the touch ring effect.
package hazard

import (
	"math"

	"github.com/vovakirdan/colosseum/internal/assets"
	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/world"
)

// FallingRock drops from above the ceiling, bounces once and leaves through the bottom.
type FallingRock struct {
	entity.Base

	cfg       config.RockConfig
	destroyer entity.Destroyer
	sprite    *entity.Sprite

	vy         float64
	hasBounced bool
	destroyed  bool
}

// NewFallingRock creates a w x h rock centered at x, resting just above the ceiling.
func NewFallingRock(set *assets.AnimationSet, cfg config.RockConfig, d entity.Destroyer, x, w, h float64) *FallingRock {
	r := &FallingRock{
		cfg:       cfg,
		destroyer: d,
		sprite:    entity.NewSprite(set),
	}
	r.Base = entity.NewBase("rock", core.ColorGray, r.sprite, &entity.Collider{})
	r.X, r.Y = x, -h/2
	r.Width, r.Height = w, h
	r.ImageWidth, r.ImageHeight = w, h
	r.Action = "fall"
	return r
}

// HasBounced reports whether the single bounce has been used.
func (r *FallingRock) HasBounced() bool { return r.hasBounced }

// VelocityY returns the vertical velocity in px/s.
func (r *FallingRock) VelocityY() float64 { return r.vy }

func (r *FallingRock) Update(dt float64, w *world.World) {
	if r.destroyed {
		return
	}
	r.UpdateComponents(dt)

	prevBottom := r.BottomEdge()
	r.vy += r.cfg.Gravity * dt
	r.Y += r.vy * dt

	if !r.hasBounced && r.vy > 0 {
		bottom := r.BottomEdge()
		box := r.Bounds()
		for _, pl := range w.Platforms() {
			if prevBottom <= pl.Y && bottom >= pl.Y && box.OverlapsX(pl) {
				r.Y = pl.Y - r.Height/2
				r.vy = -r.vy * r.cfg.Restitution
				r.hasBounced = true
				break
			}
		}
	}

	if w.Sized() && r.Top() > w.Height() {
		r.destroyed = true
		if r.destroyer != nil {
			r.destroyer.DestroyEntity(r)
		}
	}
}

func (r *FallingRock) Render(c entity.Canvas, _ entity.TextMeasurer, font string) {
	style := entity.Solid(r.Color)
	c.DrawCircle(r.X, r.Y, math.Min(r.Width, r.Height)/2, style)
	if frame, ok := r.sprite.Frame(); ok {
		c.DrawText(r.X, r.Y, frame, font, entity.Solid(core.ColorWhite))
	}
	r.RenderComponents(c)
}

package hazard

import (
	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/world"
)

// TouchEffect is a cosmetic ring expanding from where the arena was touched.
type TouchEffect struct {
	entity.Base

	cfg       config.TouchConfig
	destroyer entity.Destroyer
	radius    float64
	destroyed bool
}

// NewTouchEffect creates a ring centered at (x, y).
func NewTouchEffect(cfg config.TouchConfig, d entity.Destroyer, x, y float64) *TouchEffect {
	t := &TouchEffect{
		cfg:       cfg,
		destroyer: d,
		radius:    cfg.MinRadius,
	}
	t.Base = entity.NewBase("touch", core.ColorBrightWhite)
	t.X, t.Y = x, y
	t.syncSize()
	return t
}

func (t *TouchEffect) syncSize() {
	t.ImageWidth, t.ImageHeight = 2*t.radius, 2*t.radius
}

// Radius returns the current ring radius in pixels.
func (t *TouchEffect) Radius() float64 { return t.radius }

// Alpha fades linearly from 1 at the minimum radius to 0 at the maximum.
func (t *TouchEffect) Alpha() float64 {
	span := t.cfg.MaxRadius - t.cfg.MinRadius
	if span <= 0 {
		return 0
	}
	return core.ClampF(1-(t.radius-t.cfg.MinRadius)/span, 0, 1)
}

func (t *TouchEffect) Update(dt float64, _ *world.World) {
	if t.destroyed {
		return
	}
	t.radius += t.cfg.Speed * dt
	if t.radius >= t.cfg.MaxRadius {
		t.radius = t.cfg.MaxRadius
		t.destroyed = true
		if t.destroyer != nil {
			t.destroyer.DestroyEntity(t)
		}
	}
	t.syncSize()
}

func (t *TouchEffect) Render(c entity.Canvas, _ entity.TextMeasurer, _ string) {
	c.DrawCircle(t.X, t.Y, t.radius, entity.Style{Color: t.Color, Alpha: t.Alpha(), LineWidth: 2})
}

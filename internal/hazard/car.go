package hazard

import (
	"github.com/vovakirdan/colosseum/internal/assets"
	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/world"
)

// RunningCar races toward the viewer: it grows at floor level until it reaches
// full width, crashes, and disappears a few seconds later.
type RunningCar struct {
	entity.Base

	cfg       config.CarConfig
	destroyer entity.Destroyer
	sprite    *entity.Sprite
	ground    float64

	// OnCrash runs once when the car reaches its final width.
	OnCrash func(c *RunningCar)

	elapsed    float64
	crashed    bool
	sinceCrash float64
	destroyed  bool
}

// NewRunningCar creates a car centered at x whose wheels rest on ground.
func NewRunningCar(set *assets.AnimationSet, cfg config.CarConfig, d entity.Destroyer, x, ground float64) *RunningCar {
	c := &RunningCar{
		cfg:       cfg,
		destroyer: d,
		sprite:    entity.NewSprite(set),
		ground:    ground,
	}
	c.Base = entity.NewBase("car", core.ColorOrange, c.sprite, &entity.Collider{})
	c.X = x
	c.Action = "drive"
	c.resize(cfg.InitialWidth)
	return c
}

func (c *RunningCar) resize(width float64) {
	c.Width = width
	c.Height = width * c.cfg.Aspect
	c.ImageWidth, c.ImageHeight = c.Width, c.Height
	c.Y = c.ground - c.Height/2
}

// Progress returns the growth progress in [0, 1].
func (c *RunningCar) Progress() float64 {
	if c.cfg.GrowTime <= 0 {
		return 1
	}
	return core.ClampF(c.elapsed/c.cfg.GrowTime, 0, 1)
}

// Alpha follows growth progress.
func (c *RunningCar) Alpha() float64 { return c.Progress() }

// Crashed reports whether the car has reached its final width.
func (c *RunningCar) Crashed() bool { return c.crashed }

func (c *RunningCar) Update(dt float64, _ *world.World) {
	if c.destroyed {
		return
	}
	c.UpdateComponents(dt)

	if !c.crashed {
		c.elapsed += dt
		p := c.Progress()
		c.resize(c.cfg.InitialWidth + (c.cfg.FinalWidth-c.cfg.InitialWidth)*p)
		if p >= 1 {
			c.crashed = true
			c.Action = "crashed"
			if c.OnCrash != nil {
				c.OnCrash(c)
			}
		}
		return
	}

	c.sinceCrash += dt
	if c.sinceCrash >= c.cfg.CrashLinger {
		c.destroyed = true
		if c.destroyer != nil {
			c.destroyer.DestroyEntity(c)
		}
	}
}

func (c *RunningCar) Render(cv entity.Canvas, _ entity.TextMeasurer, font string) {
	style := entity.Solid(c.Color)
	style.Alpha = c.Alpha()
	cv.DrawRect(c.Bounds(), style)
	if frame, ok := c.sprite.Frame(); ok {
		label := entity.Solid(core.ColorBrightWhite)
		label.Alpha = style.Alpha
		cv.DrawText(c.X, c.Y, frame, font, label)
	}
	c.RenderComponents(cv)
}

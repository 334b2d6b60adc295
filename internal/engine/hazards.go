package engine

import (
	"context"
	"slices"

	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/hazard"
	"github.com/vovakirdan/colosseum/internal/registry"
)

// SpawnHazard creates a registered hazard and adds it to the arena.
func (e *Engine) SpawnHazard(ctx context.Context, kind string) (entity.Entity, error) {
	if !e.world.Sized() {
		return nil, ErrArenaNotSized
	}
	h, err := registry.Create(ctx, kind, registry.Spawn{
		World:     e.world,
		Match:     e.mc,
		Config:    &e.cfg.Hazards,
		Loader:    e.loader,
		Destroyer: e,
	})
	if err != nil {
		return nil, err
	}
	e.add(h)
	b := h.Common()
	e.logger.Debug("hazard spawned", "kind", kind, "x", b.X, "w", b.Width, "h", b.Height)
	return h, nil
}

// Touch starts a ring effect at (x, y) in arena pixels.
func (e *Engine) Touch(x, y float64) entity.Entity {
	t := hazard.NewTouchEffect(e.cfg.Hazards.Touch, e, x, y)
	e.add(t)
	return t
}

// DestroyEntity removes en from the arena once the current update pass is over.
func (e *Engine) DestroyEntity(en entity.Entity) {
	e.doomed = append(e.doomed, en)
}

func (e *Engine) add(en entity.Entity) {
	entity.SetDebug(en, e.debug)
	e.entities = append(e.entities, en)
}

func (e *Engine) flushDestroyed() {
	if len(e.doomed) == 0 {
		return
	}
	doomed := e.doomed
	e.doomed = nil
	e.entities = slices.DeleteFunc(e.entities, func(en entity.Entity) bool {
		return slices.Contains(doomed, en)
	})
}

// autoSpawn drops hazards on the intervals configured for them, shortened by pacing.
func (e *Engine) autoSpawn(dt float64) {
	elapsed := e.mc.Elapsed().Seconds()
	e.rockTimer = e.tickSpawn(hazard.KindRock, e.rockTimer+dt, e.pacing.Interval(e.cfg.Hazards.Rock.Interval, elapsed))
	e.carTimer = e.tickSpawn(hazard.KindCar, e.carTimer+dt, e.pacing.Interval(e.cfg.Hazards.Car.Interval, elapsed))
}

func (e *Engine) tickSpawn(kind string, timer, interval float64) float64 {
	if interval <= 0 {
		return 0
	}
	if timer < interval {
		return timer
	}
	if _, err := e.SpawnHazard(context.Background(), kind); err != nil {
		e.logger.Warn("auto spawn failed", "kind", kind, "err", err)
	}
	return 0
}

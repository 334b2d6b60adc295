package hazard

import (
	"context"
	"fmt"

	"github.com/vovakirdan/colosseum/internal/assets"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/registry"
)

// Registered hazard kinds.
const (
	KindRock = "rock"
	KindCar  = "car"
)

var (
	rockSpec = assets.Spec{Actions: []string{"fall"}}
	carSpec  = assets.Spec{Actions: []string{"drive", "crashed"}}
)

// Requests lists the animation sets hazards need, for warming a loader up front.
func Requests() []assets.Request {
	return []assets.Request{
		{ID: KindRock, Spec: rockSpec},
		{ID: KindCar, Spec: carSpec},
	}
}

func init() {
	registry.Register(KindRock, "Falling rock", spawnRock)
	registry.Register(KindCar, "Runaway car", spawnCar)
}

func spawnRock(ctx context.Context, s registry.Spawn) (entity.Entity, error) {
	set, err := s.Loader.Load(ctx, KindRock, rockSpec)
	if err != nil {
		return nil, fmt.Errorf("hazard: rock: %w", err)
	}
	cfg := s.Config.Rock
	rng := s.Match.Rand
	w := cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize)
	h := cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize)
	x := randomX(rng.Float64(), s.World.Width(), w)
	return NewFallingRock(set, cfg, s.Destroyer, x, w, h), nil
}

func spawnCar(ctx context.Context, s registry.Spawn) (entity.Entity, error) {
	set, err := s.Loader.Load(ctx, KindCar, carSpec)
	if err != nil {
		return nil, fmt.Errorf("hazard: car: %w", err)
	}
	ground, ok := s.World.Floor()
	if !ok {
		ground = s.World.Height()
	}
	cfg := s.Config.Car
	x := randomX(s.Match.Rand.Float64(), s.World.Width(), cfg.InitialWidth)
	car := NewRunningCar(set, cfg, s.Destroyer, x, ground)
	mc := s.Match
	car.OnCrash = func(*RunningCar) {
		mc.System("A runaway car crashed into the arena!")
		mc.Logger.Debug("car crashed", "x", x)
	}
	return car, nil
}

// randomX picks a center so that a w wide body fits inside width when possible.
func randomX(u, width, w float64) float64 {
	if width <= w {
		return width / 2
	}
	return core.ClampF(w/2+u*(width-w), w/2, width-w/2)
}

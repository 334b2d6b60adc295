package config

import "math"

// minSpawnInterval keeps auto-spawned hazards from flooding the arena.
const minSpawnInterval = 0.5

// PacingManager ramps hazard pressure up as a match ages.
type PacingManager struct {
	cfg          PacingConfig
	initialLevel float64
}

// NewPacingManager creates a new pacing manager.
func NewPacingManager(cfg PacingConfig) *PacingManager {
	return &PacingManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// SetEnabled enables or disables pacing progression.
func (p *PacingManager) SetEnabled(enabled bool) {
	p.cfg.Enabled = enabled
}

// IsEnabled returns whether pacing progression is active.
func (p *PacingManager) IsEnabled() bool {
	return p.cfg.Enabled
}

// Level returns the current pressure level (0.0 to 1.0) for the elapsed match seconds.
func (p *PacingManager) Level(elapsed float64) float64 {
	if !p.cfg.Enabled {
		return p.initialLevel
	}

	maxAt := p.cfg.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(elapsed/maxAt, 0, 1)

	// Interpolate from initial level to 1.0
	return p.initialLevel + progress*(1.0-p.initialLevel)
}

// Interval returns the auto-spawn interval for a hazard whose base interval is base.
// A non-positive base means auto-spawning is disabled and is returned unchanged.
func (p *PacingManager) Interval(base, elapsed float64) float64 {
	if base <= 0 {
		return base
	}
	level := p.Level(elapsed)
	result := base * (1.0 - level*p.cfg.IntervalReduction)
	if result < minSpawnInterval {
		result = minSpawnInterval
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

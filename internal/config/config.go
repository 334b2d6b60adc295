// Package config provides YAML-based configuration loading, validation and
// pacing management for the colosseum simulation.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/colosseum/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config contains all tunables of the simulation.
type Config struct {
	Arena    ArenaConfig   `yaml:"arena"`
	Physics  PhysicsConfig `yaml:"physics"`
	Player   PlayerConfig  `yaml:"player"`
	AI       AIConfig      `yaml:"ai"`
	Hazards  HazardsConfig `yaml:"hazards"`
	Match    MatchConfig   `yaml:"match"`
	Pacing   PacingConfig  `yaml:"pacing"`
	Display  DisplayConfig `yaml:"display"`
	Dialogue [][]string    `yaml:"dialogue"`
}

// ArenaConfig is the virtual arena size in pixels used by headless runs.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines player physics parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`        // px/s²
	Friction      float64 `yaml:"friction"`       // per-tick velocity factor while grounded
	StopThreshold float64 `yaml:"stop_threshold"` // |vx| below this snaps to 0
	MaxSpeed      float64 `yaml:"max_speed"`      // px/s
	MaxDelta      float64 `yaml:"max_delta"`      // seconds, per-step clamp
}

// PlayerConfig defines player body and combat parameters.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	ImageWidth    float64 `yaml:"image_width"`
	ImageHeight   float64 `yaml:"image_height"`
	DefaultHP     int     `yaml:"default_hp"`
	MinHP         int     `yaml:"min_hp"`
	MaxHP         int     `yaml:"max_hp"`
	AttackReach   float64 `yaml:"attack_reach"`
	AttackPower   float64 `yaml:"attack_power"`
	PrepareTime   float64 `yaml:"prepare_time"`
	ExecuteTime   float64 `yaml:"execute_time"`
	Invincibility float64 `yaml:"invincibility"`
	SpeechLine    float64 `yaml:"speech_line"`
}

// AIConfig defines the weighted decision model.
type AIConfig struct {
	IdleChance     float64       `yaml:"idle_chance"`
	CooldownMax    float64       `yaml:"cooldown_max"`
	MoveImpulseMin float64       `yaml:"move_impulse_min"`
	MoveImpulseMax float64       `yaml:"move_impulse_max"`
	JumpImpulseMin float64       `yaml:"jump_impulse_min"` // most negative (strongest) jump
	JumpImpulseMax float64       `yaml:"jump_impulse_max"` // least negative jump
	RangeFactor    float64       `yaml:"range_factor"`     // effective range = reach * factor
	NearbyFactor   float64       `yaml:"nearby_factor"`    // nearby radius = reach * factor
	Weights        WeightsConfig `yaml:"weights"`
	Modifiers      AIModifiers   `yaml:"modifiers"`
}

// WeightsConfig holds the base action weights.
type WeightsConfig struct {
	Move     float64 `yaml:"move"`
	Jump     float64 `yaml:"jump"`
	Attack   float64 `yaml:"attack"`
	MoveJump float64 `yaml:"move_jump"`
	Speech   float64 `yaml:"speech"`
}

// AIModifiers scale the base weights depending on what a player senses.
type AIModifiers struct {
	EvadeBoost    float64 `yaml:"evade_boost"`     // MOVE/JUMP/MOVE_JUMP when threatened
	EvadeAttack   float64 `yaml:"evade_attack"`    // ATTACK when threatened
	InFrontAttack float64 `yaml:"in_front_attack"` // ATTACK per enemy in front and in range
	NearbyAttack  float64 `yaml:"nearby_attack"`   // ATTACK when nearest enemy is nearby and in front
	FarAttack     float64 `yaml:"far_attack"`      // ATTACK otherwise
}

// HazardsConfig groups the transient hazard parameters.
type HazardsConfig struct {
	Rock  RockConfig  `yaml:"rock"`
	Car   CarConfig   `yaml:"car"`
	Touch TouchConfig `yaml:"touch"`
}

// RockConfig defines falling rock parameters.
type RockConfig struct {
	Gravity     float64 `yaml:"gravity"`
	MinSize     float64 `yaml:"min_size"`
	MaxSize     float64 `yaml:"max_size"`
	Restitution float64 `yaml:"restitution"`
	Interval    float64 `yaml:"interval"` // auto-spawn seconds, 0 disables
}

// CarConfig defines runaway car parameters.
type CarConfig struct {
	InitialWidth float64 `yaml:"initial_width"`
	FinalWidth   float64 `yaml:"final_width"`
	Aspect       float64 `yaml:"aspect"` // height / width
	GrowTime     float64 `yaml:"grow_time"`
	CrashLinger  float64 `yaml:"crash_linger"`
	Interval     float64 `yaml:"interval"` // auto-spawn seconds, 0 disables
}

// TouchConfig defines the touch ring effect.
type TouchConfig struct {
	Speed     float64 `yaml:"speed"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

// MatchConfig defines scoring and bookkeeping parameters.
type MatchConfig struct {
	SurvivorBonus float64 `yaml:"survivor_bonus"` // seconds added to survivors
	QuickExit     float64 `yaml:"quick_exit"`     // seconds
	LogCapacity   int     `yaml:"log_capacity"`
	RestartDelay  float64 `yaml:"restart_delay"` // seconds, spectator hub only
	MaxDuration   float64 `yaml:"max_duration"`  // seconds, sim stops longer matches; 0 disables
}

// DisplayConfig maps arena pixels onto terminal cells.
type DisplayConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Debug      bool    `yaml:"debug"`
}

// PacingConfig defines how hazard pressure ramps up during a match.
type PacingConfig struct {
	Enabled           bool    `yaml:"enabled"`
	InitialLevel      float64 `yaml:"initial_level"` // 0.0 = relaxed, 1.0 = frantic
	MaxAt             float64 `yaml:"max_at"`        // seconds at which max pressure is reached
	IntervalReduction float64 `yaml:"interval_reduction"`
}

// Validate checks every precondition the simulation relies on.
// Negative weights are rejected rather than clamped since they change AI behavior.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	w := c.AI.Weights
	for name, v := range map[string]float64{
		"move": w.Move, "jump": w.Jump, "attack": w.Attack, "move_jump": w.MoveJump, "speech": w.Speech,
	} {
		check(v >= 0, "ai.weights.%s must not be negative (got %v)", name, v)
	}
	m := c.AI.Modifiers
	check(m.EvadeBoost >= 0 && m.EvadeAttack >= 0 && m.InFrontAttack >= 0 && m.NearbyAttack >= 0 && m.FarAttack >= 0,
		"ai.modifiers must not be negative")
	check(c.AI.IdleChance >= 0 && c.AI.IdleChance <= 1, "ai.idle_chance must be within [0, 1]")
	check(c.AI.MoveImpulseMin <= c.AI.MoveImpulseMax, "ai.move_impulse_min exceeds move_impulse_max")
	check(c.AI.JumpImpulseMin <= c.AI.JumpImpulseMax, "ai.jump_impulse_min exceeds jump_impulse_max")

	check(c.Physics.MaxDelta > 0, "physics.max_delta must be positive")
	check(c.Physics.MaxSpeed > 0, "physics.max_speed must be positive")
	check(c.Physics.Friction > 0 && c.Physics.Friction <= 1, "physics.friction must be within (0, 1]")

	p := c.Player
	check(p.Width > 0 && p.Height > 0, "player size must be positive")
	check(p.MinHP >= 1 && p.MinHP <= p.MaxHP, "player hp bounds are inconsistent")
	check(p.PrepareTime > 0 && p.ExecuteTime > 0, "player attack timings must be positive")
	check(p.SpeechLine > 0, "player.speech_line must be positive")

	check(c.Hazards.Rock.MinSize > 0 && c.Hazards.Rock.MinSize <= c.Hazards.Rock.MaxSize, "hazards.rock size bounds are inconsistent")
	check(c.Hazards.Car.GrowTime > 0, "hazards.car.grow_time must be positive")
	check(c.Hazards.Car.InitialWidth > 0 && c.Hazards.Car.InitialWidth <= c.Hazards.Car.FinalWidth, "hazards.car widths are inconsistent")
	check(c.Hazards.Touch.Speed > 0 && c.Hazards.Touch.MinRadius < c.Hazards.Touch.MaxRadius, "hazards.touch is inconsistent")

	check(c.Match.LogCapacity > 0, "match.log_capacity must be positive")
	check(c.Display.CellWidth > 0 && c.Display.CellHeight > 0, "display cell size must be positive")

	return errors.Join(errs...)
}

// ClampHP restricts a starting hp to the configured bounds.
func (c Config) ClampHP(hp int) int {
	return core.Clamp(hp, c.Player.MinHP, c.Player.MaxHP)
}

// Preset represents a named tuning of AI aggression and hazard pressure.
type Preset string

const (
	PresetCalm   Preset = "calm"
	PresetNormal Preset = "normal"
	PresetFrenzy Preset = "frenzy"
)

// ParsePreset converts a CLI string into a preset. Empty selects normal.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetCalm, PresetFrenzy:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("%w: unknown preset %q", ErrInvalid, s)
	}
}

// ApplyPreset modifies the config based on a preset.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetCalm:
		cfg.AI.Weights.Attack *= 0.5
		cfg.AI.IdleChance *= 2
		cfg.Pacing.Enabled = false
	case PresetFrenzy:
		cfg.AI.Weights.Attack *= 2
		cfg.AI.CooldownMax /= 2
		cfg.Pacing.Enabled = true
		cfg.Pacing.InitialLevel = 0.5
	}
}

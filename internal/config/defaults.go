package config

import _ "embed"

//go:embed defaults/colosseum.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Default returns the hardcoded default configuration.
// It mirrors defaults/colosseum.yaml and is used when the embed cannot be parsed.
func Default() Config {
	return Config{
		Arena: ArenaConfig{Width: 1280, Height: 720},
		Physics: PhysicsConfig{
			Gravity:       980,
			Friction:      0.95,
			StopThreshold: 1,
			MaxSpeed:      3000,
			MaxDelta:      0.03,
		},
		Player: PlayerConfig{
			Width:         40,
			Height:        80,
			ImageWidth:    80,
			ImageHeight:   100,
			DefaultHP:     3,
			MinHP:         1,
			MaxHP:         10,
			AttackReach:   60,
			AttackPower:   600,
			PrepareTime:   1.0,
			ExecuteTime:   0.3,
			Invincibility: 0.8,
			SpeechLine:    2.0,
		},
		AI: AIConfig{
			IdleChance:     0.02,
			CooldownMax:    0.5,
			MoveImpulseMin: 200,
			MoveImpulseMax: 1000,
			JumpImpulseMin: -1000,
			JumpImpulseMax: -500,
			RangeFactor:    1.5,
			NearbyFactor:   4,
			Weights: WeightsConfig{
				Move:     1.0,
				Jump:     0.5,
				Attack:   1.0,
				MoveJump: 0.5,
				Speech:   0.1,
			},
			Modifiers: AIModifiers{
				EvadeBoost:    3.0,
				EvadeAttack:   0.2,
				InFrontAttack: 2.0,
				NearbyAttack:  1.5,
				FarAttack:     0.3,
			},
		},
		Hazards: HazardsConfig{
			Rock: RockConfig{
				Gravity:     1500,
				MinSize:     64,
				MaxSize:     192,
				Restitution: 0.4,
				Interval:    0,
			},
			Car: CarConfig{
				InitialWidth: 96,
				FinalWidth:   960,
				Aspect:       0.5,
				GrowTime:     3,
				CrashLinger:  3,
				Interval:     0,
			},
			Touch: TouchConfig{
				Speed:     150,
				MinRadius: 10,
				MaxRadius: 60,
			},
		},
		Match: MatchConfig{
			SurvivorBonus: 60,
			QuickExit:     10,
			LogCapacity:   200,
			RestartDelay:  5,
			MaxDuration:   600,
		},
		Pacing: PacingConfig{
			Enabled:           false,
			InitialLevel:      0,
			MaxAt:             120,
			IntervalReduction: 0.6,
		},
		Display: DisplayConfig{
			CellWidth:  16,
			CellHeight: 32,
			Debug:      false,
		},
		Dialogue: [][]string{
			{"Is this the colosseum?", "It smells like sand and regret."},
			{"I trained for this.", "Mostly by watching."},
			{"Hey!", "Over here!", "...nobody listens."},
			{"Stay back!"},
			{"The crowd loves me.", "I can feel it."},
		},
	}
}

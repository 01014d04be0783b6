package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultNyankoConfig returns the default Nyanko Jump configuration.
func DefaultNyankoConfig() NyankoConfig {
	return NyankoConfig{
		Physics: PlatformPhysics{
			Gravity:      0.6,
			JumpImpulse:  -24,
			MoveSpeed:    8,
			MaxFallSpeed: 20,
			JumpDebounce: 3,
		},
		Fish: CollectConfig{
			Count:  5,
			Reach:  30,
			Points: 1,
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
		},
	}
}

// DefaultLizardConfig returns the default Lizard Climb configuration.
func DefaultLizardConfig() LizardConfig {
	return LizardConfig{
		Physics: PlatformPhysics{
			Gravity:      0.5,
			MoveSpeed:    6,
			MaxFallSpeed: 8,
		},
		Wind: WindBurst{
			Strength: 8,
			Cooldown: 18, // 300ms at 60fps
		},
		Cling: WallCling{
			Distance: 60,
			MaxSlide: 2,
		},
		Insects: CollectConfig{
			Count:  3,
			Reach:  40,
			Points: 1,
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
		},
	}
}

// DefaultRunnerConfig returns the default Heart Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PlatformPhysics{
			Gravity:     0.8,
			JumpImpulse: -18,
			MoveSpeed:   5,
		},
		Items: SpawnConfig{
			Probability: 0.02,
			Speed:       3,
			Reach:       60,
		},
		Obstacles: SpawnConfig{
			Probability: 0.01,
			Speed:       4,
			Reach:       30,
		},
		CullX: -30,
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				SpawnMultiplier: 1.0,
			},
		},
	}
}

// DefaultSDGConfig returns the default SDG Runner configuration.
func DefaultSDGConfig() SDGConfig {
	runner := DefaultRunnerConfig()
	runner.Difficulty.Enabled = false
	return SDGConfig{
		Runner: runner,
		Health: HealthConfig{
			Max:      100,
			Drain:    0.05,
			ItemHeal: 5,
			Damage:   20,
		},
		Goals: 17,
	}
}

// DefaultGondolaConfig returns the default Gondola Sky configuration.
func DefaultGondolaConfig() GondolaConfig {
	return GondolaConfig{
		Physics: FloatPhysics{
			Accel:    0.5,
			Decel:    0.1,
			MaxSpeed: 8,
			Buoyancy: 0.4,
			Damping:  0.98,
			Bounce:   0.5,
			MinY:     100,
			MaxY:     400,
		},
		Balloons: BalloonConfig{
			BaseProbability: 0.01,
			SpeedFactor:     0.005,
			MinRadius:       10,
			MaxRadius:       15,
			HitMargin:       20,
			AvoidPoints:     10,
			SpeedUpEvery:    5,
			SpeedUp:         0.2,
		},
		Wind: WindDrift{
			Strength: 0.6,
			Scale:    0.01,
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
			Scaling:     ScalingConfig{SpawnMultiplier: 1.0},
		},
	}
}

// DefaultBubbleLiftConfig returns the default Puchi Bubble Lift configuration.
func DefaultBubbleLiftConfig() BubbleLiftConfig {
	return BubbleLiftConfig{
		Bubble: BubbleConfig{
			MinSize:   20,
			MaxSize:   60,
			SizeStep:  5,
			StartSize: 30,
			Move:      12,
			Rise:      0.4,
		},
		Bars: BarConfig{
			Interval:  45,
			Height:    20,
			GapFactor: 3,
			Speed:     1.8,
			Margin:    5,
		},
		WinAfter: 900,
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultYAML returns the embedded default YAML for a game, or nil.
func DefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}

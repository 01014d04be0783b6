// Package config provides YAML-based game tuning and difficulty management
// for the arcade games.
package config

import "fmt"

// NyankoConfig tunes Nyanko Jump.
type NyankoConfig struct {
	Physics    PlatformPhysics  `yaml:"physics"`
	Fish       CollectConfig    `yaml:"fish"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LizardConfig tunes Lizard Climb.
type LizardConfig struct {
	Physics    PlatformPhysics  `yaml:"physics"`
	Wind       WindBurst        `yaml:"wind"`
	Cling      WallCling        `yaml:"cling"`
	Insects    CollectConfig    `yaml:"insects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerConfig tunes Heart Runner and the runner part of SDG Runner.
type RunnerConfig struct {
	Physics    PlatformPhysics  `yaml:"physics"`
	Items      SpawnConfig      `yaml:"items"`
	Obstacles  SpawnConfig      `yaml:"obstacles"`
	CullX      float64          `yaml:"cull_x"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SDGConfig tunes SDG Runner.
type SDGConfig struct {
	Runner RunnerConfig `yaml:"runner"`
	Health HealthConfig `yaml:"health"`
	Goals  int          `yaml:"goals"`
}

// GondolaConfig tunes Gondola Sky.
type GondolaConfig struct {
	Physics    FloatPhysics     `yaml:"physics"`
	Balloons   BalloonConfig    `yaml:"balloons"`
	Wind       WindDrift        `yaml:"wind"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BubbleLiftConfig tunes Puchi Bubble Lift.
type BubbleLiftConfig struct {
	Bubble     BubbleConfig     `yaml:"bubble"`
	Bars       BarConfig        `yaml:"bars"`
	WinAfter   int              `yaml:"win_after"` // ticks survived to win
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlatformPhysics defines gravity-driven movement.
type PlatformPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MoveSpeed    float64 `yaml:"move_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	JumpDebounce int     `yaml:"jump_debounce"` // ticks
}

// FloatPhysics defines accelerated, buoyant movement.
type FloatPhysics struct {
	Accel    float64 `yaml:"accel"`
	Decel    float64 `yaml:"decel"`
	MaxSpeed float64 `yaml:"max_speed"`
	Buoyancy float64 `yaml:"buoyancy"`
	Damping  float64 `yaml:"damping"`
	Bounce   float64 `yaml:"bounce"`
	MinY     float64 `yaml:"min_y"`
	MaxY     float64 `yaml:"max_y"`
}

// CollectConfig defines a fixed set of respawning collectibles.
type CollectConfig struct {
	Count  int     `yaml:"count"`
	Reach  float64 `yaml:"reach"` // collect distance
	Points int     `yaml:"points"`
}

// SpawnConfig defines randomly spawned scrolling entities.
type SpawnConfig struct {
	Probability float64 `yaml:"probability"` // per tick
	Speed       float64 `yaml:"speed"`
	Reach       float64 `yaml:"reach"`
}

// WindBurst defines the lizard's downward gust.
type WindBurst struct {
	Strength float64 `yaml:"strength"`
	Cooldown int     `yaml:"cooldown"`
}

// WallCling defines slowed sliding near the walls.
type WallCling struct {
	Distance float64 `yaml:"distance"`
	MaxSlide float64 `yaml:"max_slide"`
}

// HealthConfig defines draining health.
type HealthConfig struct {
	Max      float64 `yaml:"max"`
	Drain    float64 `yaml:"drain"` // per tick
	ItemHeal float64 `yaml:"item_heal"`
	Damage   float64 `yaml:"damage"`
}

// BalloonConfig defines falling balloons.
type BalloonConfig struct {
	BaseProbability float64 `yaml:"base_probability"`
	SpeedFactor     float64 `yaml:"speed_factor"`
	MinRadius       float64 `yaml:"min_radius"`
	MaxRadius       float64 `yaml:"max_radius"`
	HitMargin       float64 `yaml:"hit_margin"`
	AvoidPoints     int     `yaml:"avoid_points"`
	SpeedUpEvery    int     `yaml:"speed_up_every"`
	SpeedUp         float64 `yaml:"speed_up"`
}

// WindDrift defines the noise-driven sideways drift of balloons.
type WindDrift struct {
	Strength float64 `yaml:"strength"`
	Scale    float64 `yaml:"scale"` // noise steps per tick
}

// BubbleConfig defines the rising bubble.
type BubbleConfig struct {
	MinSize   int     `yaml:"min_size"`
	MaxSize   int     `yaml:"max_size"`
	SizeStep  int     `yaml:"size_step"`
	StartSize int     `yaml:"start_size"`
	Move      float64 `yaml:"move"`
	Rise      float64 `yaml:"rise"`
}

// BarConfig defines the falling bars with gaps.
type BarConfig struct {
	Interval  int     `yaml:"interval"` // ticks
	Height    float64 `yaml:"height"`
	GapFactor float64 `yaml:"gap_factor"` // gap = bubble size * factor
	Speed     float64 `yaml:"speed"`
	Margin    float64 `yaml:"margin"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to speed at max difficulty
	SpawnMultiplier float64 `yaml:"spawn_multiplier"` // added to spawn probability at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name selects normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies a difficulty section for a preset.
// Fixed disables progression and keeps the configured initial level.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(preset)
}

// ApplyNamedPreset parses name and applies it. An empty name leaves cfg as loaded.
func ApplyNamedPreset(cfg *DifficultyConfig, name string) error {
	if name == "" {
		return nil
	}
	p, err := ParsePreset(name)
	if err != nil {
		return err
	}
	ApplyPreset(cfg, p)
	return nil
}

// Package heartrunner implements Heart Runner, a side-scrolling runner.
// Hearts and rocks scroll in from the right; the runner jumps to grab hearts
// and must not touch a rock.
//
// The rules are exported so other runners can reuse the scrolling, spawning
// and jump handling with their own item and obstacle outcomes.
package heartrunner

import (
	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// World layout in pixels.
const (
	FieldW  = 1000.0
	FieldH  = 400.0
	RestY   = 316.0 // runner's center when standing
	PlayerX = 250.0
	PlayerW = 40.0

	// SpawnReach is how far past the right edge entities may start.
	SpawnReach = 300.0
)

// Entity kinds.
const (
	KindItem     = "item"
	KindObstacle = "obstacle"
)

// Visual characters for rendering
const (
	RunnerRight  = "|o>"
	RunnerLeft   = "<o|"
	HeartChar    = '♥'
	RockChar     = '▲'
	GrassChar    = '▀'
	SoilChar     = '░'
	ItemFallback = '*'
)

// Game is the Heart Runner definition.
type Game struct{}

// New creates a new Heart Runner game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "heartrunner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Heart Runner"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ run  Space/↑ jump  avoid rocks"
}

// Rules loads the tuning and returns fresh rules.
func (g *Game) Rules(cfg core.RuntimeConfig) (engine.Rules, error) {
	c := config.DefaultRunnerConfig()
	if err := config.Load(g.ID(), cfg.ConfigPath, &c); err != nil {
		return nil, err
	}
	if err := config.ApplyNamedPreset(&c.Difficulty, cfg.Difficulty); err != nil {
		return nil, err
	}
	return NewRules(c), nil
}

// Rules is the runner simulation.
type Rules struct {
	engine.BaseRules
	Cfg  config.RunnerConfig
	Diff *config.DifficultyManager

	// ItemTag labels each spawned item. Nil leaves items untagged.
	ItemTag func(rng engine.RNG) string
	// Item resolves a touched item. Nil collects it for one point.
	Item func(e *engine.Entity) engine.Outcome
	// Obstacle resolves a touched obstacle. Nil ends the run.
	Obstacle func(e *engine.Entity) engine.Outcome
}

// NewRules creates runner rules from a configuration.
func NewRules(c config.RunnerConfig) *Rules {
	return &Rules{Cfg: c, Diff: config.NewDifficultyManager(c.Difficulty)}
}

// Apex is the highest point of a jump from rest.
func (r *Rules) Apex() float64 {
	p := r.Cfg.Physics
	if p.Gravity <= 0 {
		return RestY
	}
	return RestY - p.JumpImpulse*p.JumpImpulse/(2*p.Gravity)
}

func (r *Rules) Setup(w *engine.World) {
	p := r.Cfg.Physics
	w.Field = core.NewBox(0, 0, FieldW, FieldH)
	w.Kin = engine.Kinematics{
		MoveSpeed:        p.MoveSpeed,
		Gravity:          p.Gravity,
		TerminalVelocity: p.MaxFallSpeed,
		Bounds:           core.NewBox(0, 0, FieldW-PlayerW, RestY),
	}
	w.Actor = engine.Actor{Pos: core.V(PlayerX, RestY), State: engine.MotionGrounded, Facing: 1, W: PlayerW, H: PlayerW}
	w.CullBounds = core.NewBox(r.Cfg.CullX, -FieldH, FieldW-r.Cfg.CullX+SpawnReach, 3*FieldH)
	if p.JumpDebounce > 0 {
		w.SetCooldown(core.KeyAction, p.JumpDebounce)
		w.SetCooldown(core.KeyUp, p.JumpDebounce)
	}

	w.Collision = engine.CollisionRule{
		Test:    engine.Proximity(0),
		Resolve: r.resolve,
	}
}

func (r *Rules) resolve(e *engine.Entity) engine.Outcome {
	switch e.Kind {
	case KindItem:
		if r.Item != nil {
			return r.Item(e)
		}
		return engine.Outcome{Kind: engine.OutcomeCollect, Score: 1}
	case KindObstacle:
		if r.Obstacle != nil {
			return r.Obstacle(e)
		}
		return engine.Outcome{Kind: engine.OutcomeBlocked, Message: "You hit a rock!"}
	}
	return engine.Outcome{}
}

func (r *Rules) Control(w *engine.World, in *engine.InputState) {
	if in.Pressed(core.KeyAction) || in.Pressed(core.KeyUp) {
		if w.Actor.Jump(r.Cfg.Physics.JumpImpulse) {
			w.Cue(engine.CueJump)
		}
	}
}

// Spawn rolls one item and one obstacle per tick at the right edge.
func (r *Rules) Spawn(w *engine.World) {
	w.Pool.TrySpawn(w.RNG, r.Diff.Spawn(r.Cfg.Items.Probability, w.Score, w.Tick), func(rng engine.RNG) engine.Entity {
		return r.NewItem(w, rng, FieldW)
	})
	w.Pool.TrySpawn(w.RNG, r.Diff.Spawn(r.Cfg.Obstacles.Probability, w.Score, w.Tick), func(engine.RNG) engine.Entity {
		return r.NewObstacle(w, FieldW)
	})
}

// NewItem builds an item at x, at a random height the runner can reach.
func (r *Rules) NewItem(w *engine.World, rng engine.RNG, x float64) engine.Entity {
	it := r.Cfg.Items
	e := engine.Entity{
		Kind:   KindItem,
		Pos:    core.V(x, engine.Between(rng, r.Apex(), RestY)),
		Vel:    core.V(-r.Diff.Speed(it.Speed, w.Score, w.Tick), 0),
		Radius: it.Reach,
		Color:  core.ColorBrightRed,
	}
	if r.ItemTag != nil {
		e.Tag = r.ItemTag(rng)
	}
	return e
}

// NewObstacle builds an obstacle at x on the ground.
func (r *Rules) NewObstacle(w *engine.World, x float64) engine.Entity {
	ob := r.Cfg.Obstacles
	return engine.Entity{
		Kind:   KindObstacle,
		Pos:    core.V(x, RestY),
		Vel:    core.V(-r.Diff.Speed(ob.Speed, w.Score, w.Tick), 0),
		Radius: ob.Reach,
		Color:  core.ColorGray,
	}
}

func (r *Rules) Settle(w *engine.World) {
	if r.Diff.IsEnabled() {
		w.Level = 1 + int(r.Diff.Level(w.Score, w.Tick)*9)
	}
}

// Render draws the ground, hearts, rocks and the runner.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	Draw(s, dst, func(engine.EntityView) rune { return HeartChar })
}

// Draw renders a runner snapshot, using item to pick each item's glyph.
func Draw(s engine.Snapshot, dst *core.Screen, item func(engine.EntityView) rune) {
	vp := core.Fit(s.Field, dst)

	_, gy := vp.Project(core.V(0, RestY+PlayerW/2))
	dst.DrawHLine(0, gy, dst.Width(), GrassChar, core.ColorGreen)
	for y := gy + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), SoilChar, core.ColorBrown)
	}

	for _, e := range s.Entities {
		x, y := vp.Project(e.Pos)
		switch e.Kind {
		case KindItem:
			ch := item(e)
			if ch == 0 {
				ch = ItemFallback
			}
			dst.SetColored(x, y, ch, e.Color)
		case KindObstacle:
			dst.SetColored(x, y, RockChar, e.Color)
		}
	}

	sprite := RunnerRight
	if s.Actor.Facing < 0 {
		sprite = RunnerLeft
	}
	x, y := vp.Project(s.Actor.Pos)
	dst.DrawTextColored(x-1, y, sprite, core.ColorBrightYellow)
}

func init() {
	registry.Register("heartrunner", func() registry.Game {
		return New()
	})
}

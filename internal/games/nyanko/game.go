// Package nyanko implements Nyanko Jump.
// A cat runs along the ground and jumps to catch fish floating in the air.
package nyanko

import (
	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// World layout in pixels.
const (
	FieldW = 800.0
	FieldH = 600.0
	Ground = 500.0 // cat's feet rest here
	Margin = 50.0  // horizontal keep-out at both walls
	StartX = 100.0
)

// Visual characters for rendering
const (
	CatSprite  = "=^.^="
	FishSprite = "<><"
	GroundChar = '▀'
)

// Game is the Nyanko Jump definition.
type Game struct{}

// New creates a new Nyanko Jump game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "nyanko"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Nyanko Jump"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ run  Space/↑ jump"
}

// Rules loads the tuning and returns fresh rules.
func (g *Game) Rules(cfg core.RuntimeConfig) (engine.Rules, error) {
	c := config.DefaultNyankoConfig()
	if err := config.Load(g.ID(), cfg.ConfigPath, &c); err != nil {
		return nil, err
	}
	if err := config.ApplyNamedPreset(&c.Difficulty, cfg.Difficulty); err != nil {
		return nil, err
	}
	return &rules{cfg: c}, nil
}

type rules struct {
	engine.BaseRules
	cfg config.NyankoConfig
}

func (r *rules) Setup(w *engine.World) {
	p := r.cfg.Physics
	w.Field = core.NewBox(0, 0, FieldW, FieldH)
	w.Kin = engine.Kinematics{
		MoveSpeed:        p.MoveSpeed,
		Gravity:          p.Gravity,
		TerminalVelocity: p.MaxFallSpeed,
		Bounds:           core.NewBox(Margin, 0, FieldW-2*Margin, Ground),
	}
	w.Actor = engine.Actor{Pos: core.V(StartX, Ground), State: engine.MotionGrounded, W: 40, H: 30}
	w.SetCooldown(core.KeyAction, p.JumpDebounce)
	w.SetCooldown(core.KeyUp, p.JumpDebounce)

	w.Collision = engine.CollisionRule{
		Test: engine.Proximity(r.cfg.Fish.Reach),
		Resolve: func(*engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeCollect, Score: r.cfg.Fish.Points}
		},
	}
	r.refill(w)
}

func (r *rules) Control(w *engine.World, in *engine.InputState) {
	if in.Pressed(core.KeyAction) || in.Pressed(core.KeyUp) {
		if w.Actor.Jump(r.cfg.Physics.JumpImpulse) {
			w.Cue(engine.CueJump)
		}
	}
}

// Settle respawns caught fish so the sky always holds the same number.
func (r *rules) Settle(w *engine.World) {
	r.refill(w)
}

func (r *rules) refill(w *engine.World) {
	for w.Pool.Count("fish") < r.cfg.Fish.Count {
		w.Pool.Spawn(engine.Entity{
			Kind:  "fish",
			Pos:   core.V(engine.Between(w.RNG, Margin, FieldW-Margin), engine.Between(w.RNG, Margin, Ground-Margin)),
			Color: core.ColorBrightCyan,
		})
	}
}

// Render draws the ground, the fish and the cat.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)

	_, gy := vp.Project(core.V(0, Ground))
	dst.DrawHLine(0, gy+1, dst.Width(), GroundChar, core.ColorGreen)

	for _, f := range s.EntitiesOf("fish") {
		x, y := vp.Project(f.Pos)
		dst.DrawTextColored(x-1, y, FishSprite, f.Color)
	}

	x, y := vp.Project(s.Actor.Pos)
	dst.DrawTextColored(x-2, y, CatSprite, core.ColorOrange)
}

func init() {
	registry.Register("nyanko", func() registry.Game {
		return New()
	})
}

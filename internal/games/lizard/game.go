// Package lizard implements Lizard Climb. A lizard scurries along the
// ground, rides gusts of wind upward and clings to the side walls while it
// hunts insects.
package lizard

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
	Edge   = 50.0  // keep-out at the walls and ceiling
	Floor  = 500.0 // lizard's lowest position
	StartX = 100.0
)

// Visual characters for rendering
const (
	LizardRight = "~:>"
	LizardLeft  = "<:~"
	InsectChar  = '¤'
	WindChar    = '≈'
	WallChar    = '▓'
)

// Game is the Lizard Climb definition.
type Game struct{}

// New creates a new Lizard Climb game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "lizard"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lizard Climb"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ move  hold Space for wind  cling to walls"
}

// Rules loads the tuning and returns fresh rules.
func (g *Game) Rules(cfg core.RuntimeConfig) (engine.Rules, error) {
	c := config.DefaultLizardConfig()
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
	cfg config.LizardConfig
}

func (r *rules) Setup(w *engine.World) {
	p := r.cfg.Physics
	w.Field = core.NewBox(0, 0, FieldW, FieldH)
	w.Kin = engine.Kinematics{
		MoveSpeed:        p.MoveSpeed,
		Gravity:          p.Gravity,
		TerminalVelocity: p.MaxFallSpeed,
		Bounds:           core.NewBox(Edge, Edge, FieldW-2*Edge, Floor-Edge),
	}
	w.Actor = engine.Actor{Pos: core.V(StartX, Floor), Facing: 1, W: 40, H: 20}
	w.SetCooldown(core.KeyAction, r.cfg.Wind.Cooldown)

	w.Collision = engine.CollisionRule{
		Test: engine.Proximity(r.cfg.Insects.Reach),
		Resolve: func(*engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeCollect, Score: r.cfg.Insects.Points}
		},
	}
	r.refill(w)
}

// Control starts a gust on a fresh press and keeps it blowing while the key
// is held. Gravity is suspended while the lizard clings to a wall.
func (r *rules) Control(w *engine.World, in *engine.InputState) {
	a := &w.Actor
	if !in.ActionHeld() {
		a.Charge = 0
	}
	if in.Pressed(core.KeyAction) {
		a.Charge = r.cfg.Wind.Strength
		w.Cue(engine.CueWind)
	}

	g := r.cfg.Physics.Gravity
	w.Kin.Gravity = g
	if a.Flag {
		w.Kin.Gravity = 0
	}
	w.Kin.Lift = 0
	if a.Charge > 0 {
		w.Kin.Lift = w.Kin.Gravity + 1
	}
}

func (r *rules) Settle(w *engine.World) {
	a := &w.Actor
	if a.Vel.Y < -r.cfg.Wind.Strength {
		a.Vel.Y = -r.cfg.Wind.Strength
	}

	d := r.cfg.Cling.Distance
	a.Flag = a.Pos.X <= d || a.Pos.X >= FieldW-d
	if a.Flag && a.Vel.Y > r.cfg.Cling.MaxSlide {
		a.Vel.Y = r.cfg.Cling.MaxSlide
	}

	r.refill(w)
}

func (r *rules) refill(w *engine.World) {
	for w.Pool.Count("insect") < r.cfg.Insects.Count {
		w.Pool.Spawn(engine.Entity{
			Kind:  "insect",
			Pos:   core.V(engine.Between(w.RNG, 100, FieldW-100), engine.Between(w.RNG, 100, Floor)),
			Color: core.ColorBrightGreen,
		})
	}
}

// Render draws the walls, insects and the lizard with its gust.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)

	lx, _ := vp.Project(core.V(Edge/2, 0))
	rx, _ := vp.Project(core.V(FieldW-Edge/2, 0))
	dst.DrawVLine(lx, 0, dst.Height(), WallChar, core.ColorBrown)
	dst.DrawVLine(rx, 0, dst.Height(), WallChar, core.ColorBrown)

	for _, e := range s.EntitiesOf("insect") {
		x, y := vp.Project(e.Pos)
		dst.SetColored(x, y, InsectChar, e.Color)
	}

	x, y := vp.Project(s.Actor.Pos)
	sprite := LizardRight
	if s.Actor.Facing < 0 {
		sprite = LizardLeft
	}
	color := core.ColorGreen
	if s.Actor.Flag {
		color = core.ColorBrightGreen
	}
	dst.DrawTextColored(x-1, y, sprite, color)
	if s.Actor.Charge > 0 {
		dst.DrawTextColored(x-1, y+1, string([]rune{WindChar, WindChar, WindChar}), core.ColorCyan)
	}
}

func init() {
	registry.Register("lizard", func() registry.Game {
		return New()
	})
}

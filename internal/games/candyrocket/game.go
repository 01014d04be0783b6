// Package candyrocket implements Candy Rocket Gymnastics. A rocket is
// lined up along the ground, launched straight up and collects the stars
// it flies through.
package candyrocket

import (
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Sky layout in percent. Heights grow upward.
const (
	SkySize   = 100.0
	Ceiling   = 98.0 // a rocket reaching this height lands again
	Climb     = 1.5  // height gained per tick
	StarReach = 4.0
	StarScore = 100
)

// KindStar is the entity kind of a star.
const KindStar = "star"

// Stars lists the star positions as (x, height).
var Stars = []core.Vec{
	core.V(20, 20),
	core.V(40, 40),
	core.V(60, 60),
	core.V(80, 80),
	core.V(30, 70),
	core.V(70, 30),
}

// Visual characters for rendering
const (
	RocketChar = 'A'
	ParkedChar = '^'
	StarChar   = '*'
	PadChar    = '='
)

// Game is the Candy Rocket definition.
type Game struct{}

// New creates a new Candy Rocket game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "candyrocket"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Candy Rocket Gymnastics"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ line up  Space launches"
}

// Rules returns fresh rules. Candy Rocket has no tuning file.
func (g *Game) Rules(core.RuntimeConfig) (engine.Rules, error) {
	return rules{}, nil
}

type rules struct {
	engine.BaseRules
}

func (rules) Setup(w *engine.World) {
	w.Field = core.NewBox(0, 0, SkySize, SkySize)
	w.Kin = engine.Kinematics{Bounds: core.NewBox(0, 0, SkySize, SkySize)}
	w.Actor = engine.Actor{Pos: core.V(SkySize/2, 0)}
	w.AutoStart = true
	w.Collision = engine.CollisionRule{
		// Flag is set while the rocket is in flight.
		Test: func(a *engine.Actor, e *engine.Entity) bool {
			return a.Flag && engine.Proximity(StarReach)(a, e)
		},
		Resolve: func(*engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeCollect, Score: StarScore}
		},
	}
	for _, p := range Stars {
		w.Pool.Spawn(engine.Entity{Kind: KindStar, Pos: p, Color: core.ColorBrightYellow})
	}
}

// Control lines the rocket up one step per press and launches it. Input is
// ignored while the rocket flies.
func (rules) Control(w *engine.World, in *engine.InputState) {
	a := &w.Actor
	if a.Flag {
		a.Vel = core.V(0, Climb)
		return
	}
	dx, _ := in.PressedDirection()
	a.Vel = core.V(float64(dx), 0)
	if in.Pressed(core.KeyAction) {
		a.Flag = true
		a.Vel = core.V(0, Climb)
		w.Cue(engine.CueJump)
	}
}

func (rules) Settle(w *engine.World) {
	a := &w.Actor
	if a.Flag && a.Pos.Y >= Ceiling {
		a.Flag = false
		a.Pos.Y = 0
		a.Vel = core.Vec{}
		w.Count("flights", 1)
	}

	left := w.Pool.Count(KindStar)
	w.SetProgress(100 * float64(len(Stars)-left) / float64(len(Stars)))
	if left == 0 {
		w.End(engine.PhaseWon, "Every star collected!")
	}
}

// Render draws the sky with heights flipped so the ground is at the bottom.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)
	flip := func(p core.Vec) (int, int) {
		return vp.Project(core.V(p.X, SkySize-p.Y))
	}

	_, gy := flip(core.V(0, 0))
	dst.DrawHLine(0, gy, dst.Width(), PadChar, core.ColorGray)

	for _, e := range s.EntitiesOf(KindStar) {
		x, y := flip(e.Pos)
		dst.SetColored(x, y, StarChar, e.Color)
	}

	ch, c := ParkedChar, core.ColorPink
	if s.Actor.Flag {
		ch, c = RocketChar, core.ColorBrightRed
	}
	x, y := flip(s.Actor.Pos)
	dst.SetColored(x, y, ch, c)
}

func init() {
	registry.Register("candyrocket", func() registry.Game {
		return New()
	})
}

// Package hockey implements Mini Field Hockey. The player slides the stick
// along the baseline, picks a shot angle and drives the ball up the field at
// the goal.
package hockey

import (
	"math"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Field layout in percent. Y grows toward the goal.
const (
	FieldSize = 100.0
	StickStep = 2.0
	BallStart = 7.0 // ball height when struck
	BallSpeed = 2.0
	GoalLeft  = 40.0
	GoalRight = 60.0

	AngleStep = 5.0
	MaxAngle  = 45.0
)

// KindBall is the entity kind of a ball in play.
const KindBall = "ball"

// Visual characters for rendering
const (
	StickChar = '_'
	BallChar  = 'o'
	GoalChar  = '#'
	AimChar   = '.'
)

// Game is the Mini Field Hockey definition.
type Game struct{}

// New creates a new Mini Field Hockey game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "hockey"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Mini Field Hockey"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ move or aim  Space aims then shoots"
}

// Rules returns fresh rules. Mini Field Hockey has no tuning file.
func (g *Game) Rules(core.RuntimeConfig) (engine.Rules, error) {
	return rules{}, nil
}

type rules struct {
	engine.BaseRules
}

func (rules) Setup(w *engine.World) {
	w.Field = core.NewBox(0, 0, FieldSize, FieldSize)
	w.Kin = engine.Kinematics{Bounds: core.NewBox(0, 0, FieldSize, 0)}
	w.Actor = engine.Actor{Pos: core.V(FieldSize/2, 0)}
	w.AutoStart = true
	w.Collision = engine.CollisionRule{
		Test: func(_ *engine.Actor, e *engine.Entity) bool {
			return e.Kind == KindBall && e.Pos.Y >= FieldSize
		},
		Resolve: func(e *engine.Entity) engine.Outcome {
			if e.Pos.X >= GoalLeft && e.Pos.X <= GoalRight {
				return engine.Outcome{Kind: engine.OutcomeCollect, Score: 1, Cue: engine.CueScore, Message: "Goal!", Counter: "goals"}
			}
			return engine.Outcome{Kind: engine.OutcomePass, Message: "Missed!", Counter: "misses"}
		},
	}
}

// Shot returns the ball velocity for an angle in degrees. Zero shoots
// straight at the goal; positive angles lean right.
func Shot(angle float64) core.Vec {
	rad := angle * math.Pi / 180
	return core.V(BallSpeed*math.Sin(rad), BallSpeed*math.Cos(rad))
}

// Control has two modes. Flag selects aiming, where Charge holds the angle.
// The stick is frozen while a ball is in play.
func (rules) Control(w *engine.World, in *engine.InputState) {
	a := &w.Actor
	a.Vel = core.Vec{}
	if w.Pool.Count(KindBall) > 0 {
		return
	}

	dx, _ := in.PressedDirection()
	shoot := in.Pressed(core.KeyAction)

	if !a.Flag {
		a.Vel.X = float64(dx) * StickStep
		if shoot {
			a.Flag, a.Charge = true, 0
		}
		return
	}

	a.Charge = core.ClampF(a.Charge+float64(dx)*AngleStep, -MaxAngle, MaxAngle)
	if shoot {
		w.Pool.Spawn(engine.Entity{
			Kind:  KindBall,
			Pos:   core.V(a.Pos.X, BallStart),
			Vel:   Shot(a.Charge),
			Color: core.ColorBrightWhite,
		})
		a.Flag = false
		w.Cue(engine.CueHit)
	}
}

// Settle clears a missed ball, which the collision rule only marks.
func (rules) Settle(w *engine.World) {
	w.Pool.RemoveIf(func(e *engine.Entity) bool { return e.Passed })
}

// Render draws the goal mouth, the ball, the stick and the aim line.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)
	flip := func(p core.Vec) (int, int) {
		return vp.Project(core.V(p.X, FieldSize-p.Y))
	}

	gl, gy := flip(core.V(GoalLeft, FieldSize))
	gr, _ := flip(core.V(GoalRight, FieldSize))
	dst.DrawHLine(gl, gy, gr-gl+1, GoalChar, core.ColorBrightWhite)

	balls := s.EntitiesOf(KindBall)
	for _, b := range balls {
		x, y := flip(b.Pos)
		dst.SetColored(x, y, BallChar, b.Color)
	}
	if len(balls) == 0 {
		rest := core.V(s.Actor.Pos.X, BallStart)
		if s.Actor.Flag {
			v := Shot(s.Actor.Charge)
			for i := 1; i <= 4; i++ {
				x, y := flip(rest.Add(v.Scale(float64(i) * 3)))
				dst.SetColored(x, y, AimChar, core.ColorYellow)
			}
		}
		x, y := flip(rest)
		dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
	}

	x, y := flip(s.Actor.Pos)
	dst.DrawHLine(x-1, y, 3, StickChar, core.ColorBrown)
}

func init() {
	registry.Register("hockey", func() registry.Game {
		return New()
	})
}

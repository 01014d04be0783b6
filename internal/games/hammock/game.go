// Package hammock implements Rainbow Hammock Relay. A hammock slides under
// the rainbow, picks up animals waiting on the left and carries them to the
// goal on the right.
package hammock

import (
	"math"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Track layout in percent.
const (
	TrackLength = 100.0
	Step        = 5.0
	PickupZone  = 20.0 // pickups happen at or left of this
	GoalZone    = 80.0 // deliveries happen at or right of this
	Reach       = 5.0
	Target      = 10 // animals to deliver
	Batch       = 3  // animals waiting after each refill
)

// Animal states, kept in the entity tag.
const (
	TagWaiting = "waiting"
	TagOnboard = "onboard"
)

// Animals are the entity kinds that can wait for a ride.
var Animals = []string{"dog", "cat", "rabbit", "fox", "bear"}

var animalGlyphs = map[string]rune{
	"dog":    'd',
	"cat":    'c',
	"rabbit": 'r',
	"fox":    'f',
	"bear":   'b',
}

// Visual characters for rendering
const (
	HammockChar = '~'
	GoalChar    = '|'
)

// Game is the Rainbow Hammock Relay definition.
type Game struct{}

// New creates a new Rainbow Hammock Relay game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "hammock"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Rainbow Hammock Relay"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ slide  Space picks up or drops off"
}

// Rules returns fresh rules. Rainbow Hammock Relay has no tuning file.
func (g *Game) Rules(core.RuntimeConfig) (engine.Rules, error) {
	return rules{}, nil
}

type rules struct {
	engine.BaseRules
}

func (rules) Setup(w *engine.World) {
	w.Field = core.NewBox(0, 0, TrackLength, 10)
	w.Kin = engine.Kinematics{Bounds: core.NewBox(0, 0, TrackLength, 0)}
	w.Actor = engine.Actor{Pos: core.V(TrackLength/2, 0)}
	w.AutoStart = true
	w.Collision = engine.CollisionRule{
		// Flag marks an action press this tick.
		Test: func(a *engine.Actor, e *engine.Entity) bool {
			return a.Flag && a.Pos.X <= PickupZone && e.Tag == TagWaiting &&
				math.Abs(a.Pos.X-e.Pos.X) <= Reach
		},
		Resolve: func(e *engine.Entity) engine.Outcome {
			e.Tag = TagOnboard
			return engine.Outcome{Kind: engine.OutcomeCollect, Keep: true, Counter: "picked"}
		},
	}
	refill(w)
}

// refill lines up a new batch of waiting animals in the pickup zone.
func refill(w *engine.World) {
	for i := 0; i < Batch; i++ {
		x := 5 + w.RNG.Intn(16)
		kind := Animals[w.RNG.Intn(len(Animals))]
		w.Pool.Spawn(engine.Entity{Kind: kind, Pos: core.V(float64(x), 0), Tag: TagWaiting, Color: core.Rainbow[i%len(core.Rainbow)]})
	}
}

func countTag(w *engine.World, tag string) int {
	n := 0
	for _, e := range w.Pool.Items() {
		if e.Tag == tag {
			n++
		}
	}
	return n
}

func (rules) Control(w *engine.World, in *engine.InputState) {
	a := &w.Actor
	dx, _ := in.PressedDirection()
	a.Vel = core.V(float64(dx)*Step, 0)
	if dx != 0 {
		w.Cue(engine.CueMove)
	}
	a.Flag = in.Pressed(core.KeyAction)
}

// Settle carries riders with the hammock, drops them off in the goal zone
// and refills the pickup zone once it is empty.
func (rules) Settle(w *engine.World) {
	a := &w.Actor
	for _, e := range w.Pool.Items() {
		if e.Tag == TagOnboard {
			e.Pos.X = a.Pos.X
		}
	}

	if a.Flag && a.Pos.X >= GoalZone {
		if n := w.Pool.RemoveIf(func(e *engine.Entity) bool { return e.Tag == TagOnboard }); n > 0 {
			w.AddScore(n)
			w.Count("delivered", n)
			w.Cue(engine.CueScore)
			w.Message = "Welcome to the rainbow!"
		}
	}

	if countTag(w, TagWaiting) == 0 {
		refill(w)
	}

	w.SetProgress(100 * float64(w.Score) / Target)
	if w.Score >= Target {
		w.End(engine.PhaseWon, "Everyone rode the rainbow!")
	}
}

// Render draws the rainbow, the zones, waiting animals and the hammock
// with its riders.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)

	for i, c := range core.Rainbow {
		if i >= dst.Height()-3 {
			break
		}
		dst.DrawHLine(0, i, dst.Width(), '▀', c)
	}

	_, ground := vp.Project(core.V(0, 10))
	px, _ := vp.Project(core.V(PickupZone, 0))
	gx, _ := vp.Project(core.V(GoalZone, 0))
	dst.DrawHLine(0, ground, px+1, '░', core.ColorGreen)
	dst.DrawVLine(gx, ground-2, 3, GoalChar, core.ColorBrightYellow)

	hx, _ := vp.Project(s.Actor.Pos)
	riders := 0
	for _, e := range s.Entities {
		x, _ := vp.Project(e.Pos)
		if e.Tag == TagOnboard {
			dst.SetColored(hx-1+riders%3, ground-2, animalGlyphs[e.Kind], e.Color)
			riders++
			continue
		}
		dst.SetColored(x, ground-1, animalGlyphs[e.Kind], e.Color)
	}

	dst.DrawHLine(hx-2, ground-1, 5, HammockChar, core.ColorBrightMagenta)
}

func init() {
	registry.Register("hammock", func() registry.Game {
		return New()
	})
}

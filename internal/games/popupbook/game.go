// Package popupbook implements Pop-up Book Land. The reader walks through a
// book page by page and jumps over the pop-ups that spring out of it.
package popupbook

import (
	"math"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Book layout in pages.
const (
	BookLength = 100.0
	PopupWidth = 3.0
	JumpTicks  = 30
	ViewWidth  = 20.0 // pages visible around the reader
)

// KindPopup is the entity kind of a pop-up obstacle.
const KindPopup = "popup"

// PopupAt lists the pop-up positions along the book.
var PopupAt = []float64{15, 30, 45, 60, 75, 90}

// Visual characters for rendering
const (
	ReaderChar = '@'
	PopupChar  = '▲'
	PageChar   = '▁'
	EndChar    = '★'
)

// Game is the Pop-up Book Land definition.
type Game struct{}

// New creates a new Pop-up Book game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "popupbook"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pop-up Book Land"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ turn pages  Space jumps"
}

// Rules returns fresh rules. Pop-up Book has no tuning file.
func (g *Game) Rules(core.RuntimeConfig) (engine.Rules, error) {
	return rules{}, nil
}

type rules struct {
	engine.BaseRules
}

func (rules) Setup(w *engine.World) {
	w.Field = core.NewBox(0, 0, BookLength, 6)
	w.Kin = engine.Kinematics{Bounds: core.NewBox(0, 0, BookLength, 0)}
	w.Actor = engine.Actor{Pos: core.V(0, 0)}
	w.Message = "Press Space to open the book"
	w.Collision = engine.CollisionRule{
		// Flag is set while airborne.
		Test: func(a *engine.Actor, e *engine.Entity) bool {
			return !a.Flag && !e.Passed && math.Abs(a.Pos.X-e.Pos.X) < e.W/2
		},
		Resolve: func(*engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeBlocked, Message: "A pop-up knocked you over!"}
		},
	}
	for _, x := range PopupAt {
		w.Pool.Spawn(engine.Entity{Kind: KindPopup, Pos: core.V(x, 0), W: PopupWidth, Color: core.ColorRed})
	}
}

// Control moves one page per press and starts a jump. A jump cannot be
// started again until the reader lands.
func (rules) Control(w *engine.World, in *engine.InputState) {
	a := &w.Actor
	dx, _ := in.PressedDirection()
	a.Vel = core.V(float64(dx), 0)
	if dx != 0 {
		a.Facing = dx
	}

	if in.Pressed(core.KeyAction) && !a.Flag {
		a.Flag = true
		a.Charge = JumpTicks
		w.Cue(engine.CueJump)
	}
}

func (rules) Settle(w *engine.World) {
	a := &w.Actor
	if a.Flag {
		a.Charge--
		if a.Charge <= 0 {
			a.Flag, a.Charge = false, 0
		}
	}

	for _, e := range w.Pool.Items() {
		if !e.Passed && a.Pos.X > e.Pos.X+e.W/2 {
			w.Apply(engine.Outcome{Kind: engine.OutcomePass, Entity: e, Score: 1, Cue: engine.CueScore})
		}
	}

	w.SetProgress(100 * a.Pos.X / BookLength)
	if a.Pos.X >= BookLength {
		w.End(engine.PhaseWon, "You reached the last page!")
	}
}

// Render draws a window of pages around the reader.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	start := core.ClampF(s.Actor.Pos.X-ViewWidth/2, 0, BookLength-ViewWidth)
	vp := core.Fit(core.NewBox(start, 0, ViewWidth, 6), dst)

	_, ground := vp.Project(core.V(0, 5))
	dst.DrawHLine(0, ground, dst.Width(), PageChar, core.ColorYellow)

	if start+ViewWidth >= BookLength {
		x, y := vp.Project(core.V(BookLength, 4))
		dst.SetColored(x, y, EndChar, core.ColorBrightYellow)
	}

	for _, e := range s.EntitiesOf(KindPopup) {
		if e.Pos.X < start || e.Pos.X > start+ViewWidth {
			continue
		}
		c := e.Color
		if e.Passed {
			c = core.ColorGray
		}
		dst.DrawRect(vp.ProjectBox(core.NewBox(e.Pos.X-e.W/2, 2, e.W, 3)), PopupChar, c)
	}

	row := 4.0
	if s.Actor.Flag {
		row = 1
	}
	x, y := vp.Project(core.V(s.Actor.Pos.X, row))
	dst.SetColored(x, y, ReaderChar, core.ColorBrightBlue)
}

func init() {
	registry.Register("popupbook", func() registry.Game {
		return New()
	})
}

// Package diyhouse implements DIY House, a grid game. The player carries
// boards one at a time to marked spots until the floor, walls and roof of a
// small house are in place.
package diyhouse

import (
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Grid dimensions in cells.
const (
	GridW = 10
	GridH = 8
)

// Entity kinds.
const (
	KindSpot  = "spot"
	KindBoard = "board"
)

// Messages shown while building.
const (
	MsgStart    = "Carry the board to the marked spot!"
	MsgMiss     = "Not quite! Line it up with the marked spot."
	MsgNext     = "Nice! Bring the next board."
	MsgComplete = "The house is finished!"
)

var (
	startCell = core.V(5, 4)

	// Targets are the board positions in building order: floor, left wall,
	// right wall, roof.
	Targets = []core.Vec{
		core.V(5, 6),
		core.V(4, 4),
		core.V(6, 4),
		core.V(5, 2),
	}
)

// Visual characters for rendering
const (
	CarriedChar = '▒'
	BoardChar   = '█'
	SpotChar    = '□'
	EmptyChar   = '·'
)

// Game is the DIY House definition.
type Game struct{}

// New creates a new DIY House game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "diyhouse"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "DIY House"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "arrows carry the board  Space places it"
}

// Rules returns fresh rules. DIY House has no tuning file.
func (g *Game) Rules(core.RuntimeConfig) (engine.Rules, error) {
	return rules{}, nil
}

type rules struct {
	engine.BaseRules
}

func (rules) Setup(w *engine.World) {
	w.Field = core.NewBox(-0.5, -0.5, GridW, GridH)
	w.Kin = engine.Kinematics{Bounds: core.NewBox(0, 0, GridW-1, GridH-1)}
	w.Actor = engine.Actor{Pos: startCell}
	w.AutoStart = true
	w.Message = MsgStart
	w.Collision = engine.CollisionRule{
		// Flag marks a placement attempt this tick; only the open spot counts.
		Test: func(a *engine.Actor, e *engine.Entity) bool {
			return a.Flag && e.Kind == KindSpot && engine.SameCell()(a, e)
		},
		Resolve: func(*engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeCollect, Score: 1, Cue: engine.CuePlace, Message: MsgNext}
		},
	}
	openSpot(w, 0)
}

func openSpot(w *engine.World, i int) {
	w.Pool.Spawn(engine.Entity{Kind: KindSpot, Pos: Targets[i], Points: i, Color: core.ColorBrightRed})
}

func (rules) Control(w *engine.World, in *engine.InputState) {
	a := &w.Actor
	dx, dy := in.PressedDirection()
	if dx != 0 {
		dy = 0
	}
	a.Vel = core.V(float64(dx), float64(dy))

	a.Flag = in.Pressed(core.KeyAction)
	if a.Flag {
		w.Message = MsgMiss
	}
}

// Settle lays a board where the spot was taken and opens the next spot.
func (rules) Settle(w *engine.World) {
	if w.Pool.Count(KindSpot) > 0 {
		return
	}
	w.Pool.Spawn(engine.Entity{Kind: KindBoard, Pos: w.Actor.Pos, Color: core.ColorBrown})

	placed := w.Pool.Count(KindBoard)
	w.SetProgress(100 * float64(placed) / float64(len(Targets)))
	if placed == len(Targets) {
		w.Cue(engine.CueComplete)
		w.End(engine.PhaseWon, MsgComplete)
		return
	}
	openSpot(w, placed)
	w.Actor.Pos = startCell
}

// Render draws the building grid, placed boards, the open spot and the
// carried board.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)

	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			cx, cy := vp.Project(core.V(float64(x), float64(y)))
			dst.SetColored(cx, cy, EmptyChar, core.ColorGray)
		}
	}

	for _, e := range s.Entities {
		r := vp.ProjectBox(core.NewBox(e.Pos.X-0.5, e.Pos.Y-0.5, 1, 1))
		switch e.Kind {
		case KindBoard:
			dst.DrawRect(r, BoardChar, e.Color)
		case KindSpot:
			dst.DrawRect(r, SpotChar, e.Color)
		}
	}

	if s.Phase != engine.PhaseWon {
		r := vp.ProjectBox(core.NewBox(s.Actor.Pos.X-0.5, s.Actor.Pos.Y-0.5, 1, 1))
		dst.DrawRect(r, CarriedChar, core.ColorOrange)
	}
}

func init() {
	registry.Register("diyhouse", func() registry.Game {
		return New()
	})
}

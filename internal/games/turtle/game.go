// Package turtle implements Turtle Crossing, a grid game. The turtle steps
// across a river of drifting obstacles toward the far bank and can hide in
// its shell to let them pass over it.
package turtle

import (
	"fmt"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Grid dimensions in cells.
const (
	GridW    = 10
	GridH    = 10
	RiverTop = 2 // first river row
	RiverEnd = 8 // first bank row below the river
)

var (
	startCell = core.V(2, GridH-1)
	kinds     = []string{"water", "tree", "rock"}
)

// Visual characters for rendering
const (
	TurtleChar = '@'
	ShellChar  = 'O'
	WaterChar  = '~'
	GoalChar   = '*'
)

var obstacleGlyphs = map[string]rune{
	"water": '≈',
	"tree":  '♣',
	"rock":  '●',
}

// Game is the Turtle Crossing definition.
type Game struct{}

// New creates a new Turtle Crossing game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "turtle"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Turtle Crossing"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "arrows step  Space hides in the shell"
}

// Rules returns fresh rules. Turtle Crossing has no tuning file.
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
	w.Collision = engine.CollisionRule{
		Test: func(a *engine.Actor, e *engine.Entity) bool {
			return !a.Flag && engine.SameCell()(a, e)
		},
		Resolve: func(e *engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeBlocked, Message: "Bumped into " + article(e.Kind)}
		},
	}
	fillRiver(w)
}

func article(kind string) string {
	switch kind {
	case "water":
		return "a wave!"
	case "tree":
		return "a log!"
	}
	return "a " + kind + "!"
}

// fillRiver places two to four obstacles on every river row.
func fillRiver(w *engine.World) {
	for y := RiverTop; y < RiverEnd; y++ {
		n := 2 + w.RNG.Intn(3)
		for i := 0; i < n; i++ {
			x := w.RNG.Intn(GridW)
			kind := kinds[w.RNG.Intn(len(kinds))]
			w.Pool.Spawn(engine.Entity{
				Kind:  kind,
				Pos:   core.V(float64(x), float64(y)),
				Color: core.ColorBlue,
			})
		}
	}
}

// StepInterval is the number of ticks between obstacle moves at a level.
func StepInterval(level int) int64 {
	return int64(max(15-level, 3))
}

// Control toggles the shell and moves one cell per accepted press. A press
// with both axes moves horizontally.
func (rules) Control(w *engine.World, in *engine.InputState) {
	a := &w.Actor
	a.Vel = core.Vec{}

	if in.Pressed(core.KeyAction) {
		a.Flag = !a.Flag
		w.Cue(engine.CueShell)
	}
	if a.Flag {
		return
	}

	dx, dy := in.PressedDirection()
	if dx != 0 {
		dy = 0
	}
	next := a.Pos.Add(core.V(float64(dx), float64(dy)))
	if (dx != 0 || dy != 0) && w.Kin.Bounds.Contains(next) {
		a.Vel = core.V(float64(dx), float64(dy))
		w.Cue(engine.CueMove)
	}
}

// Spawn drifts the river: even rows to the right, odd rows to the left,
// wrapping at the edges.
func (rules) Spawn(w *engine.World) {
	if !w.Every(StepInterval(w.Level)) {
		return
	}
	for _, e := range w.Pool.Items() {
		x, y := engine.Cell(e.Pos)
		if y%2 == 0 {
			x = (x + 1) % GridW
		} else {
			x = (x - 1 + GridW) % GridW
		}
		e.Pos.X = float64(x)
	}
}

func (rules) Settle(w *engine.World) {
	if _, y := engine.Cell(w.Actor.Pos); y != 0 {
		return
	}
	w.AddScore(100 * w.Level)
	w.Level++
	w.Cue(engine.CueComplete)
	w.Message = fmt.Sprintf("Level %d!", w.Level)

	w.Actor.Pos = startCell
	w.Actor.Flag = false
	w.Pool.Reset()
	fillRiver(w)
}

// Render draws the river, the far bank, obstacles and the turtle.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)

	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			r := vp.ProjectBox(core.NewBox(float64(x)-0.5, float64(y)-0.5, 1, 1))
			switch {
			case y == 0:
				dst.DrawRect(r, GoalChar, core.ColorGreen)
			case y >= RiverTop && y < RiverEnd:
				dst.DrawRect(r, WaterChar, core.ColorCyan)
			}
		}
	}

	for _, e := range s.Entities {
		x, y := vp.Project(e.Pos)
		dst.SetColored(x, y, obstacleGlyphs[e.Kind], e.Color)
	}

	ch, c := TurtleChar, core.ColorBrightGreen
	if s.Actor.Flag {
		ch, c = ShellChar, core.ColorBrown
	}
	x, y := vp.Project(s.Actor.Pos)
	dst.SetColored(x, y, ch, c)
}

func init() {
	registry.Register("turtle", func() registry.Game {
		return New()
	})
}

// Package bubblelift implements Puchi Bubble Lift. A soap bubble floats
// upward through bars that slide down the screen. Each bar has a gap; the
// bubble can change size to squeeze through, and it wins by staying intact
// long enough.
package bubblelift

import (
	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// World layout in pixels.
const (
	FieldW = 300.0
	FieldH = 450.0
	StartX = 150.0
	StartY = 300.0
)

// Visual characters for rendering
const (
	BubbleChar = 'o'
	BigBubble  = 'O'
	BarChar    = '█'
)

// gapSlots are relative gap positions for the three spawn patterns,
// selected by score: left to right, right to left, then alternating.
var gapSlots = [3][3]float64{
	{0.1, 0.4, 0.7},
	{0.7, 0.4, 0.1},
	{0.2, 0.6, 0.2},
}

// Game is the Puchi Bubble Lift definition.
type Game struct{}

// New creates a new Puchi Bubble Lift game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "bubblelift"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Puchi Bubble Lift"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "arrows nudge  Space changes size  slip through the gaps"
}

// Rules loads the tuning and returns fresh rules.
func (g *Game) Rules(cfg core.RuntimeConfig) (engine.Rules, error) {
	c := config.DefaultBubbleLiftConfig()
	if err := config.Load(g.ID(), cfg.ConfigPath, &c); err != nil {
		return nil, err
	}
	if err := config.ApplyNamedPreset(&c.Difficulty, cfg.Difficulty); err != nil {
		return nil, err
	}
	return newRules(c), nil
}

type rules struct {
	engine.BaseRules
	cfg  config.BubbleLiftConfig
	diff *config.DifficultyManager
}

func newRules(c config.BubbleLiftConfig) *rules {
	return &rules{cfg: c, diff: config.NewDifficultyManager(c.Difficulty)}
}

func (r *rules) Setup(w *engine.World) {
	w.Field = core.NewBox(0, 0, FieldW, FieldH)
	w.Actor = engine.Actor{Pos: core.V(StartX, StartY)}
	r.resize(w, float64(r.cfg.Bubble.StartSize))
	w.CullBounds = core.NewBox(-10, -100, FieldW+20, FieldH+120)
	w.Collision = engine.CollisionRule{
		Test: barHit(r.cfg.Bars.Margin),
		Resolve: func(*engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeBlocked, Message: "Pop! The bubble burst"}
		},
	}

	w.Pool.Spawn(r.bar(w, 80, 100, 100))
	w.Pool.Spawn(r.bar(w, 220, 50, 90))
}

// resize sets the bubble diameter and keeps the bubble fully on screen.
func (r *rules) resize(w *engine.World, size float64) {
	a := &w.Actor
	a.Charge = size
	a.W, a.H = size, size
	a.Radius = size / 2
	w.Kin.Bounds = core.NewBox(size/2, size/2, FieldW-size, FieldH-size)
}

// NextSize cycles the bubble through its sizes, wrapping to the smallest.
func NextSize(size, step, lo, hi int) int {
	next := (size + step) % (hi + step)
	if next < lo {
		return lo
	}
	return next
}

func (r *rules) bar(w *engine.World, y, gapX, gapW float64) engine.Entity {
	return engine.Entity{
		Kind:  "bar",
		Pos:   core.V(gapX, y),
		Vel:   core.V(0, r.diff.Speed(r.cfg.Bars.Speed, w.Score, w.Tick)),
		W:     gapW,
		H:     r.cfg.Bars.Height,
		Color: core.ColorBrightCyan,
	}
}

// barHit reports contact between the bubble and the solid parts of a bar,
// shrinking both by margin.
func barHit(margin float64) engine.HitTest {
	return func(a *engine.Actor, e *engine.Entity) bool {
		half := a.Charge / 2
		if a.Pos.Y+half-margin <= e.Pos.Y || a.Pos.Y-half+margin >= e.Pos.Y+e.H {
			return false
		}
		left := a.Pos.X - half + margin
		right := a.Pos.X + half - margin
		gapL, gapR := e.Pos.X, e.Pos.X+e.W

		hitLeft := left < gapL-margin && right > margin
		hitRight := left < FieldW-margin && right > gapR+margin
		return hitLeft || hitRight
	}
}

func (r *rules) Control(w *engine.World, in *engine.InputState) {
	b := r.cfg.Bubble
	dx, dy := in.PressedDirection()
	w.Actor.Vel = core.V(float64(dx)*b.Move, float64(dy)*b.Move-b.Rise)
	if dx != 0 || dy != 0 {
		w.Cue(engine.CueMove)
	}

	if in.Pressed(core.KeyAction) {
		size := NextSize(int(w.Actor.Charge), b.SizeStep, b.MinSize, b.MaxSize)
		r.resize(w, float64(size))
	}
}

func (r *rules) Spawn(w *engine.World) {
	bars := r.cfg.Bars
	if !w.Every(int64(bars.Interval)) {
		return
	}
	gapW := w.Actor.Charge * bars.GapFactor
	slot := gapSlots[(w.Score/3)%3][w.Score%3]
	w.Pool.Spawn(r.bar(w, 0, (FieldW-gapW)*slot, gapW))
}

func (r *rules) Settle(w *engine.World) {
	for _, e := range w.Pool.Items() {
		if !e.Passed && e.Pos.Y > w.Actor.Pos.Y {
			w.Apply(engine.Outcome{Kind: engine.OutcomePass, Entity: e, Score: 1, Cue: engine.CueScore})
		}
	}

	if r.cfg.WinAfter > 0 {
		w.SetProgress(100 * float64(w.Tick) / float64(r.cfg.WinAfter))
		if w.Tick >= int64(r.cfg.WinAfter) {
			w.End(engine.PhaseWon, "The bubble made it!")
		}
	}
}

// Render draws the bars with their gaps and the bubble.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)

	for _, e := range s.EntitiesOf("bar") {
		left := vp.ProjectBox(core.NewBox(0, e.Pos.Y, e.Pos.X, e.H))
		right := vp.ProjectBox(core.NewBox(e.Pos.X+e.W, e.Pos.Y, FieldW-e.Pos.X-e.W, e.H))
		left.H, right.H = 1, 1
		if e.Pos.X > 0 {
			dst.DrawRect(left, BarChar, e.Color)
		}
		if e.Pos.X+e.W < FieldW {
			dst.DrawRect(right, BarChar, e.Color)
		}
	}

	ch := BubbleChar
	if s.Actor.Charge > 40 {
		ch = BigBubble
	}
	x, y := vp.Project(s.Actor.Pos)
	dst.SetColored(x, y, ch, core.ColorBrightMagenta)
}

func init() {
	registry.Register("bubblelift", func() registry.Game {
		return New()
	})
}

// Package nukazuke implements Shaka-Shaka Nuka-Zuke. Vegetables are dropped
// into a rice-bran pickling bed and the bed is stirred until the pickles are
// ready.
package nukazuke

import (
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Bed layout.
const (
	BedW      = 100.0
	BedH      = 60.0
	Jitter    = 30.0 // full width of the shift a stir applies
	StirsDone = 10
)

// Vegetables maps the arrow keys to the vegetable they drop in.
var Vegetables = map[core.Key]string{
	core.KeyLeft:  "carrot",
	core.KeyRight: "eggplant",
	core.KeyUp:    "tomato",
	core.KeyDown:  "cucumber",
}

var dropOrder = []core.Key{core.KeyLeft, core.KeyRight, core.KeyUp, core.KeyDown}

var vegetableLook = map[string]struct {
	ch rune
	c  core.Color
}{
	"carrot":   {'v', core.ColorOrange},
	"eggplant": {'o', core.ColorMagenta},
	"tomato":   {'@', core.ColorRed},
	"cucumber": {'=', core.ColorGreen},
}

// BranChar fills the pickling bed.
const BranChar = '░'

// Game is the Shaka-Shaka Nuka-Zuke definition.
type Game struct{}

// New creates a new Shaka-Shaka Nuka-Zuke game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "nukazuke"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Shaka-Shaka Nuka-Zuke"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "arrows add vegetables  Space stirs"
}

// Rules returns fresh rules. Nuka-Zuke has no tuning file.
func (g *Game) Rules(core.RuntimeConfig) (engine.Rules, error) {
	return rules{}, nil
}

type rules struct {
	engine.BaseRules
}

func (rules) Setup(w *engine.World) {
	w.Field = core.NewBox(0, 0, BedW, BedH)
	w.Actor = engine.Actor{Pos: core.V(BedW/2, BedH/2)}
	w.Kin = engine.Kinematics{Bounds: core.NewBox(BedW/2, BedH/2, 0, 0)}
	w.Message = "Press Space to start pickling"

	// the first carrot waits at the right edge of the bed
	w.Pool.Spawn(engine.Entity{Kind: "carrot", Pos: core.V(BedW, w.RNG.Float64()*BedH)})
}

// Control drops one vegetable per arrow press and stirs on action.
func (rules) Control(w *engine.World, in *engine.InputState) {
	for _, k := range dropOrder {
		if !in.Pressed(k) {
			continue
		}
		x := w.RNG.Float64() * BedW
		y := w.RNG.Float64() * BedH
		w.Pool.Spawn(engine.Entity{Kind: Vegetables[k], Pos: core.V(x, y)})
		w.Cue(engine.CuePlace)
	}

	if !in.Pressed(core.KeyAction) {
		return
	}
	stir(w)
	n := w.Count("stirs", 1)
	w.Cue(engine.CueStir)
	w.SetProgress(100 * float64(n) / StirsDone)
	if n >= StirsDone {
		w.End(engine.PhaseWon, "The pickles are ready!")
	}
}

// stir nudges every vegetable by up to half the jitter on each axis, keeping
// it inside the bed.
func stir(w *engine.World) {
	bed := w.Field
	for _, e := range w.Pool.Items() {
		e.Pos.X += (w.RNG.Float64() - 0.5) * Jitter
		e.Pos.Y += (w.RNG.Float64() - 0.5) * Jitter
		e.Pos = bed.Clamp(e.Pos)
	}
}

// Render draws the bed and the vegetables in it.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)
	dst.DrawRect(vp.ProjectBox(s.Field), BranChar, core.ColorBrown)

	for _, e := range s.Entities {
		look := vegetableLook[e.Kind]
		x, y := vp.Project(e.Pos)
		dst.SetColored(x, y, look.ch, look.c)
	}
}

func init() {
	registry.Register("nukazuke", func() registry.Game {
		return New()
	})
}

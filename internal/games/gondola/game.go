// Package gondola implements Gondola Sky. A gondola drifts between falling
// balloons; each balloon that makes it past the bottom scores, and touching
// one ends the flight. Wind pushes the balloons sideways along a smooth
// noise curve.
package gondola

import (
	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// World layout in pixels.
const (
	FieldW   = 320.0
	FieldH   = 480.0
	GondolaW = 40.0
	GondolaH = 25.0
	StartY   = FieldH - 150
	SpawnY   = -30.0
)

const avoidedCounter = "avoided"

// Visual characters for rendering
const (
	GondolaSprite = "[_o_]"
	RopeChar      = '|'
	BalloonChar   = 'O'
	CloudChar     = '~'
)

// Game is the Gondola Sky definition.
type Game struct{}

// New creates a new Gondola Sky game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "gondola"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Gondola Sky"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ steer  ↑/↓ buoyancy  dodge the balloons"
}

// Rules loads the tuning and returns fresh rules.
func (g *Game) Rules(cfg core.RuntimeConfig) (engine.Rules, error) {
	c := config.DefaultGondolaConfig()
	if err := config.Load(g.ID(), cfg.ConfigPath, &c); err != nil {
		return nil, err
	}
	if err := config.ApplyNamedPreset(&c.Difficulty, cfg.Difficulty); err != nil {
		return nil, err
	}
	return &rules{cfg: c, diff: config.NewDifficultyManager(c.Difficulty)}, nil
}

type rules struct {
	engine.BaseRules
	cfg  config.GondolaConfig
	diff *config.DifficultyManager

	// wind is reseeded from the world RNG on every reset
	wind *perlin.Perlin
}

func (r *rules) Setup(w *engine.World) {
	p := r.cfg.Physics
	w.Field = core.NewBox(0, 0, FieldW, FieldH)
	w.Kin = engine.Kinematics{
		Accel:         p.Accel,
		Decel:         p.Decel,
		MaxSpeedX:     p.MaxSpeed,
		VerticalAccel: p.Buoyancy,
		Damping:       p.Damping,
		BounceX:       p.Bounce,
		Bounds:        core.NewBox(GondolaW/2, p.MinY, FieldW-GondolaW, p.MaxY-p.MinY),
	}
	w.Actor = engine.Actor{
		Pos:    core.V(FieldW/2, StartY),
		Radius: r.cfg.Balloons.HitMargin,
		W:      GondolaW,
		H:      GondolaH,
	}
	w.CullBounds = core.NewBox(-100, -100, FieldW+200, FieldH+115)
	w.Collision = engine.CollisionRule{
		Test: engine.Proximity(0),
		Resolve: func(*engine.Entity) engine.Outcome {
			return engine.Outcome{Kind: engine.OutcomeBlocked, Message: "Popped a balloon!"}
		},
	}

	r.wind = perlin.NewPerlin(2, 2, 3, int64(w.RNG.Intn(1<<30)))
}

// speed is the balloons' base fall speed, raised every few avoided balloons.
func (r *rules) speed(w *engine.World) float64 {
	b := r.cfg.Balloons
	if b.SpeedUpEvery <= 0 {
		return 1
	}
	return 1 + b.SpeedUp*float64(w.Counter(avoidedCounter)/b.SpeedUpEvery)
}

func (r *rules) Spawn(w *engine.World) {
	b := r.cfg.Balloons
	speed := r.speed(w)

	if r.wind != nil && r.cfg.Wind.Strength != 0 {
		for _, e := range w.Pool.Items() {
			x := float64(w.Tick)*r.cfg.Wind.Scale + float64(e.ID)
			e.Vel.X = r.wind.Noise1D(x) * r.cfg.Wind.Strength
		}
	}

	prob := r.diff.Spawn(b.BaseProbability+speed*b.SpeedFactor, w.Score, w.Tick)
	w.Pool.TrySpawn(w.RNG, prob, func(rng engine.RNG) engine.Entity {
		return engine.Entity{
			Kind:   "balloon",
			Pos:    core.V(engine.Between(rng, 20, FieldW-20), SpawnY),
			Radius: engine.Between(rng, b.MinRadius, b.MaxRadius),
			Vel:    core.V(0, rng.Float64()+speed),
			Color:  core.Rainbow[rng.Intn(len(core.Rainbow))],
		}
	})
}

// Culled credits balloons that fell past the bottom edge.
func (r *rules) Culled(w *engine.World, e *engine.Entity) {
	if e.Pos.Y <= FieldH {
		return
	}
	w.AddScore(r.cfg.Balloons.AvoidPoints)
	n := w.Count(avoidedCounter, 1)
	if every := r.cfg.Balloons.SpeedUpEvery; every > 0 {
		w.Level = 1 + n/every
	}
}

// Render draws clouds, balloons and the gondola.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	vp := core.Fit(s.Field, dst)

	for i, y := range []float64{60, 200, 380} {
		cx, cy := vp.Project(core.V(float64(40+i*110), y))
		dst.DrawTextColored(cx, cy, string([]rune{CloudChar, CloudChar, CloudChar}), core.ColorGray)
	}

	// ropes first so a stacked balloon is never hidden under the rope above it
	balloons := s.EntitiesOf("balloon")
	for _, e := range balloons {
		x, y := vp.Project(e.Pos)
		dst.SetColored(x, y+1, RopeChar, core.ColorWhite)
	}
	for _, e := range balloons {
		x, y := vp.Project(e.Pos)
		dst.SetColored(x, y, BalloonChar, e.Color)
	}

	x, y := vp.Project(s.Actor.Pos)
	dst.SetColored(x, y-1, RopeChar, core.ColorBrown)
	dst.DrawTextColored(x-2, y, GondolaSprite, core.ColorOrange)
}

func init() {
	registry.Register("gondola", func() registry.Game {
		return New()
	})
}

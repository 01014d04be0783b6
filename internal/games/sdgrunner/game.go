// Package sdgrunner implements SDG Runner. It plays like Heart Runner, but
// the Earth's health drains every tick, goal icons heal it, rocks damage it,
// and the run is won once every goal has been collected.
package sdgrunner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/games/heartrunner"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// GoalNames lists the Sustainable Development Goals in order.
var GoalNames = []string{
	"No Poverty",
	"Zero Hunger",
	"Good Health",
	"Quality Education",
	"Gender Equality",
	"Clean Water",
	"Clean Energy",
	"Decent Work",
	"Industry & Innovation",
	"Reduced Inequalities",
	"Sustainable Cities",
	"Responsible Consumption",
	"Climate Action",
	"Life Below Water",
	"Life on Land",
	"Peace & Justice",
	"Partnerships",
}

// goalGlyphs are single-cell labels for goals 1 to 17.
const goalGlyphs = "123456789ABCDEFGH"

// Game is the SDG Runner definition.
type Game struct{}

// New creates a new SDG Runner game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sdgrunner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "SDG Runner"
}

// Help returns the controls.
func (g *Game) Help() string {
	return "←/→ run  Space/↑ jump  collect all 17 goals"
}

// Rules loads the tuning and returns fresh rules.
func (g *Game) Rules(cfg core.RuntimeConfig) (engine.Rules, error) {
	c := config.DefaultSDGConfig()
	if err := config.Load(g.ID(), cfg.ConfigPath, &c); err != nil {
		return nil, err
	}
	if err := config.ApplyNamedPreset(&c.Runner.Difficulty, cfg.Difficulty); err != nil {
		return nil, err
	}
	return newRules(c), nil
}

// GoalTag returns the item tag and counter name for goal i.
func GoalTag(i int) string {
	return "goal:" + strconv.Itoa(i)
}

// goalIndex parses a goal tag, returning -1 for anything else.
func goalIndex(tag string) int {
	n, ok := strings.CutPrefix(tag, "goal:")
	if !ok {
		return -1
	}
	i, err := strconv.Atoi(n)
	if err != nil {
		return -1
	}
	return i
}

type rules struct {
	*heartrunner.Rules
	cfg config.SDGConfig
}

func newRules(c config.SDGConfig) *rules {
	r := &rules{Rules: heartrunner.NewRules(c.Runner), cfg: c}
	r.ItemTag = func(rng engine.RNG) string {
		return GoalTag(rng.Intn(r.goals()))
	}
	r.Item = func(e *engine.Entity) engine.Outcome {
		return engine.Outcome{
			Kind:    engine.OutcomeCollect,
			Score:   1,
			Health:  c.Health.ItemHeal,
			Counter: e.Tag,
		}
	}
	r.Obstacle = func(*engine.Entity) engine.Outcome {
		return engine.Outcome{Kind: engine.OutcomeDamage, Health: -c.Health.Damage}
	}
	return r
}

func (r *rules) goals() int {
	return max(1, min(r.cfg.Goals, len(GoalNames)))
}

func (r *rules) Setup(w *engine.World) {
	r.Rules.Setup(w)
	w.MaxHealth = r.cfg.Health.Max
	w.Health = r.cfg.Health.Max

	// one goal and one rock are already on their way
	w.Pool.Spawn(r.NewItem(w, w.RNG, heartrunner.FieldW))
	w.Pool.Spawn(r.NewObstacle(w, heartrunner.FieldW+200))
}

func (r *rules) Settle(w *engine.World) {
	r.Rules.Settle(w)
	w.Heal(-r.cfg.Health.Drain)

	n := collected(w.Counter, r.goals())
	w.SetProgress(100 * float64(n) / float64(r.goals()))
	if n == r.goals() {
		w.End(engine.PhaseWon, "Every goal collected!")
		return
	}
	if w.Health <= 0 {
		w.End(engine.PhaseGameOver, "The Earth ran out of health")
	}
}

// collected counts the distinct goals with a positive counter.
func collected(counter func(string) int, goals int) int {
	n := 0
	for i := 0; i < goals; i++ {
		if counter(GoalTag(i)) > 0 {
			n++
		}
	}
	return n
}

// Collected returns the names of the goals gathered so far in a snapshot.
func Collected(s engine.Snapshot) []string {
	var out []string
	for i, name := range GoalNames {
		if s.Counter(GoalTag(i)) > 0 {
			out = append(out, name)
		}
	}
	return out
}

// Render draws the runner scene with goal numbers and the collected goals.
func (g *Game) Render(s engine.Snapshot, dst *core.Screen) {
	heartrunner.Draw(s, dst, func(e engine.EntityView) rune {
		i := goalIndex(e.Tag)
		if i < 0 || i >= len(goalGlyphs) {
			return 0
		}
		return rune(goalGlyphs[i])
	})

	var sb strings.Builder
	for i := range GoalNames {
		if s.Counter(GoalTag(i)) > 0 {
			sb.WriteByte(goalGlyphs[i])
		} else {
			sb.WriteByte('.')
		}
	}
	dst.DrawTextColored(0, 0, fmt.Sprintf("Goals %s", sb.String()), core.ColorBrightCyan)
}

func init() {
	registry.Register("sdgrunner", func() registry.Game {
		return New()
	})
}

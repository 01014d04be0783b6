package gondola

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// steady spawns one balloon per tick with no wind.
func steady() config.GondolaConfig {
	c := config.DefaultGondolaConfig()
	c.Balloons.BaseProbability = 1
	c.Balloons.SpeedFactor = 0
	c.Wind.Strength = 0
	return c
}

func start(c config.GondolaConfig, rng engine.RNG) *engine.Loop {
	r := &rules{cfg: c, diff: config.NewDifficultyManager(c.Difficulty)}
	l := engine.NewLoop(r, engine.Options{Game: "gondola", RNG: rng, Logger: log.New(io.Discard)})
	l.Input().OnKeyDown(core.KeyAction)
	l.Input().OnKeyUp(core.KeyAction)
	return l
}

func until(l *engine.Loop, limit int, stop func(engine.Snapshot) bool) engine.Snapshot {
	var s engine.Snapshot
	for i := 0; i < limit; i++ {
		s = l.Tick()
		if stop(s) {
			break
		}
	}
	return s
}

func never(engine.Snapshot) bool { return false }

func TestGondolaBalloonHit(t *testing.T) {
	// every balloon drops at x=160, radius 12.5, 1.5 per tick
	l := start(steady(), engine.NewSequence(0.5))

	s := until(l, 400, engine.Snapshot.Terminal)
	require.Equal(t, engine.PhaseGameOver, s.Phase)
	assert.Equal(t, int64(220), s.Tick)
	assert.Equal(t, "Popped a balloon!", s.Message)
}

func TestGondolaAvoidedBalloonsScore(t *testing.T) {
	l := start(steady(), engine.NewSequence(0.5))
	l.Input().OnKeyDown(core.KeyLeft)

	s := until(l, 400, func(s engine.Snapshot) bool { return s.Score > 0 })
	require.Equal(t, engine.PhaseRunning, s.Phase)
	assert.Equal(t, GondolaW/2, s.Actor.Pos.X)
	assert.Equal(t, int64(352), s.Tick)
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 1, s.Counter(avoidedCounter))

	s = until(l, 20, func(s engine.Snapshot) bool { return s.Score >= 50 })
	assert.Equal(t, 50, s.Score)
	assert.Equal(t, 2, s.Level)
}

func TestGondolaBuoyancy(t *testing.T) {
	l := start(steady(), engine.NewSequence(0.5))
	l.Input().OnKeyDown(core.KeyUp)

	s := l.Tick()
	assert.Less(t, s.Actor.Pos.Y, StartY)
	assert.Equal(t, engine.MotionRising, s.Actor.State)

	s = until(l, 200, never)
	assert.Equal(t, config.DefaultGondolaConfig().Physics.MinY, s.Actor.Pos.Y)
}

func TestGondolaWindDrift(t *testing.T) {
	calm := steady()
	windy := steady()
	windy.Wind.Strength = 0.6

	a := until(start(calm, engine.NewRNG(9)), 30, never)
	b := until(start(windy, engine.NewRNG(9)), 30, never)

	require.NotEmpty(t, a.Entities)
	require.Equal(t, len(a.Entities), len(b.Entities))
	assert.Equal(t, a.Entities[0].Pos.Y, b.Entities[0].Pos.Y)
	assert.NotEqual(t, a.Entities[0].Pos.X, b.Entities[0].Pos.X)
}

func TestGondolaRender(t *testing.T) {
	l := start(steady(), engine.NewSequence(0.5))
	s := until(l, 100, never)

	scr := core.NewScreen(40, 30)
	New().Render(s, scr)
	assert.Contains(t, scr.String(), GondolaSprite)
	assert.Contains(t, scr.String(), string(BalloonChar))
}

func TestGondolaRenderStackedBalloons(t *testing.T) {
	// one balloon per tick in a single column, less than a row apart
	s := until(start(steady(), engine.NewSequence(0.5)), 100, never)
	require.Greater(t, len(s.EntitiesOf("balloon")), 50)

	scr := core.NewScreen(40, 30)
	New().Render(s, scr)

	vp := core.Fit(s.Field, scr)
	oldest := s.EntitiesOf("balloon")[0]
	x, y := vp.Project(oldest.Pos)
	assert.Equal(t, BalloonChar, scr.Get(x, y), "a rope must not cover a balloon")
}

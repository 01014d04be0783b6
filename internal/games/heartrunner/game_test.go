package heartrunner

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

// steady returns the default tuning with progression off and fixed spawn rates.
func steady(itemProb, obstacleProb float64) config.RunnerConfig {
	c := config.DefaultRunnerConfig()
	c.Difficulty.Enabled = false
	c.Items.Probability = itemProb
	c.Obstacles.Probability = obstacleProb
	return c
}

func start(r engine.Rules, rng engine.RNG) *engine.Loop {
	l := engine.NewLoop(r, engine.Options{Game: "heartrunner", RNG: rng, Logger: log.New(io.Discard)})
	l.Input().OnKeyDown(core.KeyAction)
	l.Input().OnKeyUp(core.KeyAction)
	return l
}

func runUntil(l *engine.Loop, limit int, stop func(engine.Snapshot) bool) engine.Snapshot {
	var s engine.Snapshot
	for i := 0; i < limit; i++ {
		s = l.Tick()
		if stop(s) {
			break
		}
	}
	return s
}

func TestRunnerApex(t *testing.T) {
	r := NewRules(config.DefaultRunnerConfig())
	assert.InDelta(t, 113.5, r.Apex(), 1e-9)
}

func TestRunnerRockEndsRun(t *testing.T) {
	l := start(NewRules(steady(0, 1)), engine.NewSequence(0.5))

	s := runUntil(l, 500, engine.Snapshot.Terminal)
	require.Equal(t, engine.PhaseGameOver, s.Phase)
	// first rock spawns on tick 1 at x=1000 and closes 4 per tick;
	// x=280 is exactly at reach and misses
	assert.Equal(t, int64(182), s.Tick)
	assert.Equal(t, "You hit a rock!", s.Message)
	assert.Contains(t, s.Cues, engine.CueHit)
}

func TestRunnerCollectsHeart(t *testing.T) {
	l := start(NewRules(steady(1, 0)), engine.NewSequence(0.999))

	s := runUntil(l, 500, func(s engine.Snapshot) bool { return s.Score > 0 })
	require.Equal(t, engine.PhaseRunning, s.Phase)
	assert.Equal(t, int64(232), s.Tick)
	assert.Equal(t, 1, s.Score)
	assert.Contains(t, s.Cues, engine.CueCollect)
}

func TestRunnerCullsPassedEntities(t *testing.T) {
	l := start(NewRules(steady(1, 0)), engine.NewSequence(0.0))

	// hearts at the apex fly over a standing runner and leave on the left
	s := runUntil(l, 600, func(engine.Snapshot) bool { return false })
	assert.Zero(t, s.Score)
	for _, e := range s.Entities {
		assert.GreaterOrEqual(t, e.Pos.X, -30.0)
	}
	// after the first heart leaves, spawns and culls balance out
	assert.Less(t, len(s.Entities), 400)
}

func TestRunnerJumpOverRock(t *testing.T) {
	l := start(NewRules(steady(0, 1)), engine.NewSequence(0.5))

	// jump early enough that the first rock passes below
	runUntil(l, 160, func(engine.Snapshot) bool { return false })
	l.Input().OnKeyDown(core.KeyUp)
	s := l.Tick()
	assert.Contains(t, s.Cues, engine.CueJump)
	s = runUntil(l, 20, engine.Snapshot.Terminal)
	assert.Equal(t, engine.PhaseRunning, s.Phase)
}

func TestRunnerHooks(t *testing.T) {
	r := NewRules(steady(1, 0))
	r.ItemTag = func(engine.RNG) string { return "gem" }
	r.Item = func(e *engine.Entity) engine.Outcome {
		return engine.Outcome{Kind: engine.OutcomeCollect, Score: 10, Counter: e.Tag}
	}
	l := start(r, engine.NewSequence(0.999))

	s := runUntil(l, 500, func(s engine.Snapshot) bool { return s.Score > 0 })
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 1, s.Counter("gem"))
}

func TestRunnerUnknownPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := core.DefaultConfig()
	cfg.Difficulty = "insane"
	_, err := New().Rules(cfg)
	assert.Error(t, err)
}

func TestRunnerRender(t *testing.T) {
	l := start(NewRules(steady(1, 1)), engine.NewSequence(0.5))
	s := runUntil(l, 30, func(engine.Snapshot) bool { return false })

	scr := core.NewScreen(80, 24)
	New().Render(s, scr)
	out := scr.String()
	assert.Contains(t, out, RunnerRight)
	assert.Contains(t, out, string(HeartChar))
	assert.Contains(t, out, string(RockChar))
}

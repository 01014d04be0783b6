package sdgrunner

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

// quiet returns the default tuning with no random spawns after setup.
func quiet() config.SDGConfig {
	c := config.DefaultSDGConfig()
	c.Runner.Items.Probability = 0
	c.Runner.Obstacles.Probability = 0
	return c
}

func start(c config.SDGConfig, rng engine.RNG) *engine.Loop {
	l := engine.NewLoop(newRules(c), engine.Options{Game: "sdgrunner", RNG: rng, Logger: log.New(io.Discard)})
	l.Input().OnKeyDown(core.KeyAction)
	l.Input().OnKeyUp(core.KeyAction)
	return l
}

func tickN(l *engine.Loop, n int) engine.Snapshot {
	var s engine.Snapshot
	for i := 0; i < n; i++ {
		s = l.Tick()
	}
	return s
}

func TestSDGSetup(t *testing.T) {
	l := start(quiet(), engine.NewSequence(0.0))
	s := l.Snapshot()

	assert.True(t, s.HasHealth())
	assert.Equal(t, 100.0, s.Health)
	require.Len(t, s.Entities, 2)
	assert.Equal(t, "goal:0", s.Entities[0].Tag)
	assert.Equal(t, 1200.0, s.Entities[1].Pos.X)
}

func TestSDGHealthDrains(t *testing.T) {
	l := start(quiet(), engine.NewSequence(0.0))

	s := tickN(l, 100)
	assert.InDelta(t, 95.0, s.Health, 1e-9)
	assert.Equal(t, engine.PhaseRunning, s.Phase)
}

func TestSDGRockDamages(t *testing.T) {
	l := start(quiet(), engine.NewSequence(0.0))

	// the first rock starts at x=1200 and reaches the runner on tick 231
	s := tickN(l, 230)
	assert.InDelta(t, 100-230*0.05, s.Health, 1e-9)

	s = l.Tick()
	assert.InDelta(t, 100-231*0.05-20, s.Health, 1e-9)
	assert.Contains(t, s.Cues, engine.CueHit)
	assert.Empty(t, s.EntitiesOf("obstacle"), "the rock is consumed")
	assert.Equal(t, engine.PhaseRunning, s.Phase)
}

func TestSDGAllGoalsWins(t *testing.T) {
	c := quiet()
	c.Goals = 1
	c.Runner.Obstacles.Reach = 0
	l := start(c, engine.NewSequence(0.999))

	var s engine.Snapshot
	for i := 0; i < 400 && !s.Terminal(); i++ {
		s = l.Tick()
	}
	require.Equal(t, engine.PhaseWon, s.Phase)
	assert.Equal(t, int64(231), s.Tick)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 100.0, s.Progress)
	assert.Equal(t, []string{"No Poverty"}, Collected(s))
	assert.Contains(t, s.Cues, engine.CueWin)
}

func TestSDGHealthRunsOut(t *testing.T) {
	c := quiet()
	c.Health.Drain = 25
	l := start(c, engine.NewSequence(0.0))

	s := tickN(l, 4)
	assert.Equal(t, engine.PhaseGameOver, s.Phase)
	assert.Equal(t, "The Earth ran out of health", s.Message)
	assert.Zero(t, s.Health)
}

func TestSDGDistinctGoals(t *testing.T) {
	counts := map[string]int{GoalTag(0): 3, GoalTag(4): 1, GoalTag(16): 1}
	get := func(name string) int { return counts[name] }

	assert.Equal(t, 3, collected(get, 17))
	assert.Equal(t, 1, collected(get, 1))
	assert.Equal(t, 16, goalIndex("goal:16"))
	assert.Equal(t, -1, goalIndex("heart"))
}

func TestSDGRender(t *testing.T) {
	l := start(quiet(), engine.NewSequence(0.0))
	s := tickN(l, 40)

	scr := core.NewScreen(80, 24)
	New().Render(s, scr)
	assert.Contains(t, scr.Row(0), "Goals .................")
	assert.Contains(t, scr.String(), "1")
}

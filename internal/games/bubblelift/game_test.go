package bubblelift

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

func start(c config.BubbleLiftConfig) *engine.Loop {
	l := engine.NewLoop(newRules(c), engine.Options{Game: "bubblelift", Seed: 1, Logger: log.New(io.Discard)})
	tap(l, core.KeyAction)
	return l
}

func tap(l *engine.Loop, k core.Key) {
	l.Input().OnKeyDown(k)
	l.Input().OnKeyUp(k)
}

func tickN(l *engine.Loop, n int) engine.Snapshot {
	var s engine.Snapshot
	for i := 0; i < n && !s.Terminal(); i++ {
		s = l.Tick()
	}
	return s
}

func TestBubbleStandingStillBursts(t *testing.T) {
	l := start(config.DefaultBubbleLiftConfig())

	// the bar at y=220 has its gap at [50, 140]; the bubble sits at x=150
	s := tickN(l, 22)
	require.Equal(t, engine.PhaseRunning, s.Phase)

	s = l.Tick()
	assert.Equal(t, engine.PhaseGameOver, s.Phase)
	assert.Equal(t, int64(23), s.Tick)
	assert.Equal(t, "Pop! The bubble burst", s.Message)
}

func TestBubbleSlipsThroughGaps(t *testing.T) {
	l := start(config.DefaultBubbleLiftConfig())
	l.Tick()
	tap(l, core.KeyLeft)
	l.Tick()
	tap(l, core.KeyLeft)
	s := l.Tick()
	require.InDelta(t, 126.0, s.Actor.Pos.X, 1e-9)
	assert.Contains(t, s.Cues, engine.CueMove)

	s = tickN(l, 117)
	require.Equal(t, engine.PhaseRunning, s.Phase, s.Message)
	assert.Equal(t, int64(120), s.Tick)
	assert.Equal(t, 2, s.Score)
	assert.InDelta(t, 300-0.4*120, s.Actor.Pos.Y, 1e-9)

	var spawned []engine.EntityView
	for _, e := range s.EntitiesOf("bar") {
		if !e.Passed {
			spawned = append(spawned, e)
		}
	}
	require.Len(t, spawned, 2)
	assert.InDelta(t, 84.0, spawned[0].Pos.X, 1e-9)
	assert.Equal(t, 90.0, spawned[0].W)
}

func TestBubbleSizeCycle(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{30, 35},
		{55, 60},
		{60, 20},
		{20, 25},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NextSize(tc.size, 5, 20, 60), "from %d", tc.size)
	}
}

func TestBubbleResizeKeepsBounds(t *testing.T) {
	l := start(config.DefaultBubbleLiftConfig())
	l.Tick()

	for i := 0; i < 7; i++ {
		tap(l, core.KeyAction)
		l.Tick()
	}
	s := l.Snapshot()
	assert.Equal(t, 20.0, s.Actor.Charge, "30 grows to 60 then wraps to 20")
	assert.Equal(t, 10.0, s.Actor.Radius)

	for i := 0; i < 14; i++ {
		tap(l, core.KeyRight)
		s = l.Tick()
	}
	assert.Equal(t, FieldW-10, s.Actor.Pos.X)
}

func TestBubbleWinsAfterSurviving(t *testing.T) {
	c := config.DefaultBubbleLiftConfig()
	c.WinAfter = 10
	l := start(c)

	s := tickN(l, 9)
	assert.InDelta(t, 90.0, s.Progress, 1e-9)

	s = l.Tick()
	assert.Equal(t, engine.PhaseWon, s.Phase)
	assert.Equal(t, 100.0, s.Progress)
	assert.Contains(t, s.Cues, engine.CueWin)
}

func TestBubbleBarHit(t *testing.T) {
	hit := barHit(5)
	bar := &engine.Entity{Pos: core.V(100, 200), W: 90, H: 20}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside gap", 145, 210, false},
		{"on left segment", 60, 210, true},
		{"on right segment", 230, 210, true},
		{"above bar", 60, 170, false},
		{"below bar", 60, 240, false},
		{"grazing gap edge", 112, 210, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &engine.Actor{Pos: core.V(tc.x, tc.y), Charge: 30}
			assert.Equal(t, tc.want, hit(a, bar))
		})
	}
}

func TestBubbleRender(t *testing.T) {
	l := start(config.DefaultBubbleLiftConfig())
	scr := core.NewScreen(30, 20)
	New().Render(l.Snapshot(), scr)
	assert.Contains(t, scr.String(), string(BarChar))
	assert.Contains(t, scr.String(), string(BubbleChar))
}

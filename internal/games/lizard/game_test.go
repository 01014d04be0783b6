package lizard

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

func start(t *testing.T) *engine.Loop {
	t.Helper()
	l := engine.NewLoop(&rules{cfg: config.DefaultLizardConfig()}, engine.Options{
		Game:   "lizard",
		Seed:   4,
		Logger: log.New(io.Discard),
	})
	l.Input().OnKeyDown(core.KeyAction)
	l.Input().OnKeyUp(core.KeyAction)
	s := l.Tick()
	require.Equal(t, engine.PhaseRunning, s.Phase)
	return l
}

func tickN(l *engine.Loop, n int) engine.Snapshot {
	var s engine.Snapshot
	for i := 0; i < n; i++ {
		s = l.Tick()
	}
	return s
}

func TestLizardWindLifts(t *testing.T) {
	l := start(t)
	s := tickN(l, 20)
	require.Equal(t, Floor, s.Actor.Pos.Y)

	l.Input().OnKeyDown(core.KeyAction)
	s = l.Tick()
	assert.Contains(t, s.Cues, engine.CueWind)
	assert.InDelta(t, -1.0, s.Actor.Vel.Y, 1e-9)
	assert.InDelta(t, Floor-1, s.Actor.Pos.Y, 1e-9)

	prev := s.Actor.Pos.Y
	for i := 0; i < 15; i++ {
		s = l.Tick()
		assert.Less(t, s.Actor.Pos.Y, prev)
		assert.GreaterOrEqual(t, s.Actor.Vel.Y, -8.0)
		prev = s.Actor.Pos.Y
	}

	l.Input().OnKeyUp(core.KeyAction)
	s = l.Tick()
	assert.Zero(t, s.Actor.Charge)
	assert.InDelta(t, -7.5, s.Actor.Vel.Y, 1e-9)
}

func TestLizardWindCooldown(t *testing.T) {
	l := start(t)

	// the start press opened an 18 tick cooldown on the action key
	l.Input().OnKeyDown(core.KeyAction)
	s := l.Tick()
	assert.NotContains(t, s.Cues, engine.CueWind)
	assert.Zero(t, s.Actor.Charge)
}

func TestLizardWallCling(t *testing.T) {
	r := &rules{cfg: config.DefaultLizardConfig()}

	tests := []struct {
		name     string
		pos      core.Vec
		vy       float64
		wantVY   float64
		wantFlag bool
	}{
		{"left wall slows fall", core.V(55, 300), 7, 2, true},
		{"right wall slows fall", core.V(745, 300), 5, 2, true},
		{"wall keeps slow fall", core.V(60, 300), 1, 1, true},
		{"open air", core.V(400, 300), 7, 7, false},
		{"rise capped", core.V(400, 300), -12, -8, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := &engine.World{Pool: engine.NewEntityPool(), RNG: engine.NewRNG(1)}
			w.Actor.Pos = tc.pos
			w.Actor.Vel.Y = tc.vy

			r.Settle(w)
			assert.Equal(t, tc.wantVY, w.Actor.Vel.Y)
			assert.Equal(t, tc.wantFlag, w.Actor.Flag)
			assert.Equal(t, 3, w.Pool.Count("insect"))
		})
	}
}

func TestLizardNoGravityOnWall(t *testing.T) {
	l := start(t)
	l.Input().OnKeyDown(core.KeyLeft)

	s := tickN(l, 12)
	require.Equal(t, Edge, s.Actor.Pos.X)
	assert.True(t, s.Actor.Flag)
	assert.Equal(t, Floor, s.Actor.Pos.Y)
	assert.Zero(t, s.Actor.Vel.Y)
}

func TestLizardRender(t *testing.T) {
	l := start(t)
	scr := core.NewScreen(80, 24)
	New().Render(l.Snapshot(), scr)
	assert.Contains(t, scr.String(), LizardRight)
	assert.Contains(t, scr.String(), string(InsectChar))
}

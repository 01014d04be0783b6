package diyhouse

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

func newLoop() *engine.Loop {
	return engine.NewLoop(rules{}, engine.Options{Game: "diyhouse", Seed: 1, Logger: log.New(io.Discard)})
}

func tap(l *engine.Loop, k core.Key) engine.Snapshot {
	l.Input().OnKeyDown(k)
	l.Input().OnKeyUp(k)
	return l.Tick()
}

// walk steps from the start cell to target one press per tick.
func walk(l *engine.Loop, target core.Vec) engine.Snapshot {
	s := l.Snapshot()
	for s.Actor.Pos != target {
		switch {
		case target.X < s.Actor.Pos.X:
			s = tap(l, core.KeyLeft)
		case target.X > s.Actor.Pos.X:
			s = tap(l, core.KeyRight)
		case target.Y < s.Actor.Pos.Y:
			s = tap(l, core.KeyUp)
		default:
			s = tap(l, core.KeyDown)
		}
	}
	return s
}

func TestHouseStartsRunning(t *testing.T) {
	s := newLoop().Snapshot()
	assert.Equal(t, engine.PhaseRunning, s.Phase)
	assert.Equal(t, MsgStart, s.Message)
	require.Len(t, s.EntitiesOf(KindSpot), 1)
	assert.Equal(t, Targets[0], s.EntitiesOf(KindSpot)[0].Pos)
}

func TestHouseOffByOneIsAMiss(t *testing.T) {
	l := newLoop()

	s := tap(l, core.KeyDown)
	require.Equal(t, core.V(5, 5), s.Actor.Pos)

	s = tap(l, core.KeyAction)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, MsgMiss, s.Message)
	assert.Empty(t, s.EntitiesOf(KindBoard))

	tap(l, core.KeyDown)
	s = tap(l, core.KeyAction)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, MsgNext, s.Message)
	assert.Contains(t, s.Cues, engine.CuePlace)
	assert.Equal(t, startCell, s.Actor.Pos, "a new board starts at the pile")
	assert.Equal(t, Targets[1], s.EntitiesOf(KindSpot)[0].Pos)
	assert.Equal(t, 25.0, s.Progress)
}

func TestHouseOnlyCurrentSpotCounts(t *testing.T) {
	l := newLoop()

	// (4, 4) is the second spot; placing there first does nothing
	walk(l, Targets[1])
	s := tap(l, core.KeyAction)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, MsgMiss, s.Message)
}

func TestHouseComplete(t *testing.T) {
	l := newLoop()

	var s engine.Snapshot
	for i, target := range Targets {
		walk(l, target)
		s = tap(l, core.KeyAction)
		require.Equal(t, i+1, s.Score)
	}

	assert.Equal(t, engine.PhaseWon, s.Phase)
	assert.Equal(t, MsgComplete, s.Message)
	assert.Equal(t, 100.0, s.Progress)
	assert.Contains(t, s.Cues, engine.CueComplete)
	assert.Contains(t, s.Cues, engine.CueWin)

	var boards []core.Vec
	for _, b := range s.EntitiesOf(KindBoard) {
		boards = append(boards, b.Pos)
	}
	assert.Equal(t, Targets, boards)

	// a press after winning rebuilds from scratch
	tap(l, core.KeyAction)
	s = l.Snapshot()
	assert.Equal(t, engine.PhaseRunning, s.Phase)
	assert.Zero(t, s.Score)
}

func TestHouseRender(t *testing.T) {
	l := newLoop()
	scr := core.NewScreen(20, 8)
	New().Render(l.Snapshot(), scr)
	assert.Contains(t, scr.String(), string(SpotChar))
	assert.Contains(t, scr.String(), string(CarriedChar))
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func stormRules() *scripted {
	return &scripted{
		setup: func(w *World) {
			w.Field = core.NewBox(0, 0, 300, 200)
			w.Kin = Kinematics{MoveSpeed: 4, Gravity: 0.5, TerminalVelocity: 8, Bounds: core.NewBox(0, 0, 300, 180)}
			w.Actor = Actor{Pos: core.V(150, 180), State: MotionGrounded, Radius: 8}
			w.CullBounds = core.NewBox(-20, -20, 340, 240)
			w.Collision = CollisionRule{Test: Proximity(0), Resolve: func(e *Entity) Outcome {
				return Outcome{Kind: OutcomeCollect, Score: e.Points}
			}}
			w.AutoStart = true
		},
		control: func(w *World, in *InputState) {
			if in.Pressed(core.KeyUp) {
				w.Actor.Jump(-9)
			}
		},
		spawn: func(w *World) {
			w.Pool.TrySpawn(w.RNG, 0.08, func(r RNG) Entity {
				return Entity{
					Kind:   "star",
					Pos:    core.V(Between(r, 0, 300), 0),
					Vel:    core.V(0, Between(r, 1, 3)),
					Radius: 6,
					Points: 1 + r.Intn(5),
				}
			})
		},
	}
}

func TestReplayReproducesRun(t *testing.T) {
	j := &Journal{}
	opts := quietOptions()
	opts.Seed = 99
	opts.Recorder = j
	l := NewLoop(stormRules(), opts)

	script := map[int]core.InputEvent{
		10:  core.Press(core.KeyLeft),
		40:  core.Press(core.KeyUp),
		41:  core.Release(core.KeyUp),
		70:  core.Release(core.KeyLeft),
		71:  core.Press(core.KeyRight),
		120: core.Press(core.KeyUp),
		150: core.Blur(),
		200: core.Press(core.KeyLeft),
	}

	const frames = 400
	var live Snapshot
	for f := 0; f < frames; f++ {
		if ev, ok := script[f]; ok {
			l.Input().Post(ev)
		}
		live = l.Tick()
	}
	require.NotEmpty(t, j.Entries())

	opts.Recorder = nil
	replayed := Replay(stormRules(), opts, j.Entries(), frames)

	assert.Equal(t, live.Frame, replayed.Frame)
	assert.Equal(t, live.Score, replayed.Score)
	assert.Equal(t, live.Actor, replayed.Actor)
	assert.Equal(t, live.Entities, replayed.Entities)
}

func TestReplayDifferentSeedDiverges(t *testing.T) {
	opts := quietOptions()
	opts.Seed = 1
	a := Replay(stormRules(), opts, nil, 300)
	opts.Seed = 2
	b := Replay(stormRules(), opts, nil, 300)

	assert.NotEqual(t, a.Entities, b.Entities)
}

func TestJournalEntriesAreCopies(t *testing.T) {
	j := &Journal{}
	j.Record(3, []core.InputEvent{core.Press(core.KeyAction)})

	got := j.Entries()
	got[0].Frame = 100
	assert.Equal(t, int64(3), j.Entries()[0].Frame)
}

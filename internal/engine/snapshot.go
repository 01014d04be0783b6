package engine

import (
	"maps"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// ActorView is the read-only actor state published to renderers.
type ActorView struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	W, H   float64
	State  MotionState
	Facing int
	Charge float64
	Flag   bool
}

// EntityView is the read-only entity state published to renderers.
type EntityView struct {
	ID     int
	Kind   string
	Pos    core.Vec
	Radius float64
	W, H   float64
	Points int
	Color  core.Color
	Tag    string
	Passed bool
}

// Snapshot is a deep copy of a game instance after a tick. Renderers read it
// and never mutate game state.
type Snapshot struct {
	Game      string
	Frame     int64
	Tick      int64
	Phase     Phase
	Field     core.Box
	Actor     ActorView
	Entities  []EntityView
	Score     int
	Health    float64
	MaxHealth float64
	Progress  float64
	Level     int
	Message   string
	Fault     string
	Counters  map[string]int
	Cues      []Cue
}

// Terminal reports whether the snapshot shows GameOver or Won.
func (s Snapshot) Terminal() bool {
	return s.Phase.Terminal()
}

// HasHealth reports whether the game tracks health.
func (s Snapshot) HasHealth() bool {
	return s.MaxHealth > 0
}

// Counter returns a named counter.
func (s Snapshot) Counter(name string) int {
	return s.Counters[name]
}

// EntitiesOf returns the entities of one kind, in pool order.
func (s Snapshot) EntitiesOf(kind string) []EntityView {
	var out []EntityView
	for _, e := range s.Entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot returns a deep copy of the current state.
func (l *Loop) Snapshot() Snapshot {
	w := l.world
	a := w.Actor
	s := Snapshot{
		Game:  l.game,
		Frame: l.frame,
		Tick:  w.Tick,
		Phase: l.phase,
		Field: w.Field,
		Actor: ActorView{
			Pos:    a.Pos,
			Vel:    a.Vel,
			Radius: a.Radius,
			W:      a.W,
			H:      a.H,
			State:  a.State,
			Facing: a.Facing,
			Charge: a.Charge,
			Flag:   a.Flag,
		},
		Entities:  make([]EntityView, 0, w.Pool.Len()),
		Score:     w.Score,
		Health:    w.Health,
		MaxHealth: w.MaxHealth,
		Progress:  w.Progress,
		Level:     w.Level,
		Message:   w.Message,
		Fault:     l.fault,
		Counters:  maps.Clone(w.counters),
		Cues:      append([]Cue(nil), w.cues...),
	}
	for _, e := range w.Pool.Items() {
		s.Entities = append(s.Entities, EntityView{
			ID:     e.ID,
			Kind:   e.Kind,
			Pos:    e.Pos,
			Radius: e.Radius,
			W:      e.W,
			H:      e.H,
			Points: e.Points,
			Color:  e.Color,
			Tag:    e.Tag,
			Passed: e.Passed,
		})
	}
	return s
}

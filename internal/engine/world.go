package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// Rules supplies the game-specific parts of a tick. The loop calls them in a
// fixed order and always passes the current world, so rules must not keep
// references to world state between calls.
type Rules interface {
	// Setup populates a freshly reset world: playfield, actor, kinematics,
	// collision rule and initial entities.
	Setup(w *World)
	// Control turns input into actor intent, impulses and actions.
	Control(w *World, in *InputState)
	// Spawn adds entities after the pool has advanced.
	Spawn(w *World)
	// Culled is called for each entity removed by out-of-bounds culling.
	Culled(w *World, e *Entity)
	// Settle runs after collisions for bookkeeping and terminal checks.
	Settle(w *World)
}

// BaseRules provides no-op implementations for embedding.
type BaseRules struct{}

func (BaseRules) Setup(*World)                {}
func (BaseRules) Control(*World, *InputState) {}
func (BaseRules) Spawn(*World)                {}
func (BaseRules) Culled(*World, *Entity)      {}
func (BaseRules) Settle(*World)               {}

// World is the complete mutable state of one game instance between resets.
type World struct {
	// Field is the playfield in world units.
	Field  core.Box
	Actor  Actor
	Kin    Kinematics
	Intent Intent
	Pool   *EntityPool

	Collision CollisionRule
	// CullBounds removes entities outside it every tick. A zero box disables culling.
	CullBounds core.Box

	Score     int
	Health    float64
	MaxHealth float64 // zero disables health
	Progress  float64 // percent, [0, 100]
	Level     int
	Message   string

	// AutoStart skips NotStarted after reset.
	AutoStart bool

	// Tick counts running ticks since the last reset.
	Tick int64
	RNG  RNG

	counters map[string]int
	cues     []Cue
	ended    bool
	endPhase Phase

	input  *InputState
	audio  AudioSink
	logger *log.Logger
}

func newWorld(rng RNG, input *InputState, audio AudioSink, logger *log.Logger) *World {
	return &World{
		Pool:     NewEntityPool(),
		RNG:      rng,
		Level:    1,
		counters: make(map[string]int),
		input:    input,
		audio:    audio,
		logger:   logger,
	}
}

// Cue plays a sound effect and records it in the tick's snapshot.
func (w *World) Cue(c Cue) {
	if c == CueNone {
		return
	}
	w.cues = append(w.cues, c)
	safePlay(w.audio, c, w.logger)
}

// AddScore adds n to the score.
func (w *World) AddScore(n int) {
	w.Score += n
}

// Heal adds d to health, clamped to [0, MaxHealth]. Negative d damages.
func (w *World) Heal(d float64) {
	if w.MaxHealth <= 0 {
		return
	}
	w.Health = core.ClampF(w.Health+d, 0, w.MaxHealth)
}

// SetProgress sets the progress percentage, clamped to [0, 100].
func (w *World) SetProgress(pct float64) {
	w.Progress = core.ClampF(pct, 0, 100)
}

// Count adds d to a named counter and returns the new value.
func (w *World) Count(name string, d int) int {
	w.counters[name] += d
	return w.counters[name]
}

// Counter returns a named counter.
func (w *World) Counter(name string) int {
	return w.counters[name]
}

// SetCooldown configures an input cooldown in ticks.
func (w *World) SetCooldown(k core.Key, ticks int) {
	if w.input != nil {
		w.input.SetCooldown(k, ticks)
	}
}

// Every reports whether the running tick is a multiple of n.
func (w *World) Every(n int64) bool {
	return n > 0 && w.Tick%n == 0
}

// End requests a terminal phase. The first request in a tick wins.
func (w *World) End(p Phase, msg string) {
	if w.ended || !p.Terminal() {
		return
	}
	w.ended = true
	w.endPhase = p
	if msg != "" {
		w.Message = msg
	}
}

// Ended reports whether a terminal phase has been requested.
func (w *World) Ended() bool {
	return w.ended
}

// Apply performs an outcome on the world.
func (w *World) Apply(o Outcome) {
	switch o.Kind {
	case OutcomeCollect:
		if o.Entity != nil && !o.Keep {
			o.Entity.Consumed = true
		}
		w.AddScore(o.Score)
		w.Heal(o.Health)
		w.Cue(orCue(o.Cue, CueCollect))
	case OutcomeDamage:
		if o.Entity != nil && !o.Keep {
			o.Entity.Consumed = true
		}
		w.AddScore(o.Score)
		w.Heal(o.Health)
		w.Cue(orCue(o.Cue, CueHit))
	case OutcomeBlocked:
		w.Cue(orCue(o.Cue, CueHit))
		w.End(PhaseGameOver, orString(o.Message, "Game Over"))
		return
	case OutcomePass:
		if o.Entity != nil {
			o.Entity.Passed = true
		}
		w.AddScore(o.Score)
		w.Cue(o.Cue)
	}
	if o.Counter != "" {
		w.Count(o.Counter, 1)
	}
	if o.Message != "" {
		w.Message = o.Message
	}
}

func orCue(c, def Cue) Cue {
	if c == CueNone {
		return def
	}
	return c
}

func orString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

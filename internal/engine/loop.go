// Package engine implements the fixed-tick mini-game core shared by every
// game: input latching, actor kinematics, the entity pool, collision rules and
// the loop state machine. A game only supplies Rules.
package engine

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// Phase is the loop state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether p halts simulation until a reset.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWon
}

// Recorder receives the input events latched at each tick.
type Recorder interface {
	Record(frame int64, events []core.InputEvent)
}

// Options configures a loop instance.
type Options struct {
	// Game is the game id, used in snapshots and log lines.
	Game string
	// Seed seeds the default RNG. Ignored when RNG is set.
	Seed int64
	// RNG overrides the spawn randomness source.
	RNG RNG
	// Audio receives cues. Nil discards them.
	Audio AudioSink
	// Logger receives fault reports. Nil logs to stderr.
	Logger *log.Logger
	// Recorder journals latched input. Optional.
	Recorder Recorder
}

// Loop drives one game instance. It is not safe for concurrent use except
// through Input(), whose methods may be called from any goroutine.
type Loop struct {
	rules    Rules
	game     string
	input    *InputState
	world    *World
	phase    Phase
	frame    int64
	rng      RNG
	audio    AudioSink
	logger   *log.Logger
	recorder Recorder

	resetQueued bool
	fault       string
}

// NewLoop creates a loop and performs the initial reset.
func NewLoop(rules Rules, opts Options) *Loop {
	rng := opts.RNG
	if rng == nil {
		rng = NewRNG(opts.Seed)
	}
	audio := opts.Audio
	if audio == nil {
		audio = NopAudio{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "engine",
		})
	}

	l := &Loop{
		rules:    rules,
		game:     opts.Game,
		input:    NewInputState(),
		rng:      rng,
		audio:    audio,
		logger:   logger,
		recorder: opts.Recorder,
	}
	l.guard(l.reset)
	return l
}

// Input returns the instance's input state for posting events.
func (l *Loop) Input() *InputState {
	return l.input
}

// Phase returns the current loop state.
func (l *Loop) Phase() Phase {
	return l.phase
}

// Frame returns the number of ticks performed since creation.
func (l *Loop) Frame() int64 {
	return l.frame
}

// Start leaves NotStarted. It has no effect in other phases.
func (l *Loop) Start() {
	if l.phase == PhaseNotStarted {
		l.phase = PhaseRunning
	}
}

// Pause suspends a running game.
func (l *Loop) Pause() {
	if l.phase == PhaseRunning {
		l.phase = PhasePaused
	}
}

// Resume continues a paused game.
func (l *Loop) Resume() {
	if l.phase == PhasePaused {
		l.phase = PhaseRunning
	}
}

// Reset queues a full reinitialization, applied at the start of the next tick.
func (l *Loop) Reset() {
	l.resetQueued = true
}

// Tick performs one simulation step and returns the resulting snapshot.
func (l *Loop) Tick() Snapshot {
	frame := l.frame
	l.frame++

	events := l.input.Latch(frame)
	if l.recorder != nil && len(events) > 0 {
		l.recorder.Record(frame, events)
	}
	l.world.cues = l.world.cues[:0]

	l.guard(func() {
		l.lifecycle()
		if l.resetQueued {
			l.reset()
			return
		}
		if l.phase == PhaseRunning {
			l.step()
		}
	})
	return l.Snapshot()
}

// guard runs fn and converts a panic into a halted instance.
func (l *Loop) guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.fail(r)
		}
	}()
	fn()
}

func (l *Loop) fail(r any) {
	l.fault = fmt.Sprint(r)
	l.logger.Error("game instance halted", "game", l.game, "frame", l.frame, "panic", r)
	l.resetQueued = false
	l.phase = PhaseGameOver
	if l.world == nil {
		l.world = newWorld(l.rng, l.input, l.audio, l.logger)
	}
	l.world.Message = "Something went wrong"
}

// lifecycle handles keys that drive the state machine rather than the game.
func (l *Loop) lifecycle() {
	in := l.input
	switch l.phase {
	case PhaseNotStarted:
		if in.Consume(core.KeyAction) {
			l.phase = PhaseRunning
		}
	case PhaseRunning:
		switch {
		case in.Consume(core.KeyPause):
			l.phase = PhasePaused
		case in.Consume(core.KeyRestart):
			l.resetQueued = true
		}
	case PhasePaused:
		switch {
		case in.Consume(core.KeyPause):
			l.phase = PhaseRunning
		case in.Consume(core.KeyRestart):
			l.resetQueued = true
		}
	case PhaseGameOver, PhaseWon:
		if in.Consume(core.KeyRestart) || in.Consume(core.KeyAction) {
			l.resetQueued = true
		}
	}
}

func (l *Loop) reset() {
	l.resetQueued = false
	l.fault = ""
	l.input.forgetTriggers()
	clear(l.input.cooldown)

	w := newWorld(l.rng, l.input, l.audio, l.logger)
	l.world = w
	l.rules.Setup(w)
	w.Actor.Pos = w.Kin.Bounds.Clamp(w.Actor.Pos)

	if w.AutoStart {
		l.phase = PhaseRunning
	} else {
		l.phase = PhaseNotStarted
	}
}

// step runs one tick in the order: control, integrate, advance and cull,
// spawn, collide, settle. It stops at the first stage that ends the game.
func (l *Loop) step() {
	w := l.world
	w.Tick++

	w.Intent = IntentFrom(l.input)
	l.rules.Control(w, l.input)
	if w.ended {
		l.finish()
		return
	}

	w.Actor.Integrate(w.Kin, w.Intent)

	w.Pool.Advance(1)
	if w.CullBounds != (core.Box{}) {
		w.Pool.Cull(w.CullBounds, func(e *Entity) { l.rules.Culled(w, e) })
	}

	l.rules.Spawn(w)

	for _, o := range w.Collision.Evaluate(&w.Actor, w.Pool) {
		w.Apply(o)
		if w.ended {
			break
		}
	}
	w.Pool.Sweep()

	if !w.ended {
		l.rules.Settle(w)
	}
	if !w.ended && w.MaxHealth > 0 && w.Health <= 0 {
		w.End(PhaseGameOver, "Out of energy")
	}
	l.finish()
}

func (l *Loop) finish() {
	w := l.world
	if !w.ended {
		return
	}
	l.phase = w.endPhase
	if w.endPhase == PhaseWon {
		w.Cue(CueWin)
	}
}

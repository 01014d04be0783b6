package engine

import (
	"sync"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// InputState tracks held keys and edge-triggered presses for one game
// instance. Events may arrive from any goroutine; they are buffered and only
// become visible when the loop latches them at a tick boundary.
type InputState struct {
	mu      sync.Mutex
	pending []core.InputEvent

	// Owned by the loop goroutine.
	held     map[core.Key]bool
	pressed  map[core.Key]bool
	cooldown map[core.Key]int64
	accepted map[core.Key]int64
	tick     int64
	latched  []core.InputEvent
}

// NewInputState returns an empty input state.
func NewInputState() *InputState {
	return &InputState{
		held:     make(map[core.Key]bool),
		pressed:  make(map[core.Key]bool),
		cooldown: make(map[core.Key]int64),
		accepted: make(map[core.Key]int64),
	}
}

// OnKeyDown buffers a press. Unknown keys are ignored.
func (s *InputState) OnKeyDown(k core.Key) {
	s.Post(core.Press(k))
}

// OnKeyUp buffers a release. Unknown keys are ignored.
func (s *InputState) OnKeyUp(k core.Key) {
	s.Post(core.Release(k))
}

// Blur buffers a focus loss, which releases every held key.
func (s *InputState) Blur() {
	s.Post(core.Blur())
}

// Post buffers events. Events posted together are latched in the same tick.
func (s *InputState) Post(evs ...core.InputEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range evs {
		if ev.Kind != core.EventBlur && !ev.Key.Valid() {
			continue
		}
		s.pending = append(s.pending, ev)
	}
}

// SetCooldown sets the minimum number of ticks between two accepted presses
// of k. Zero removes the cooldown.
func (s *InputState) SetCooldown(k core.Key, ticks int) {
	if ticks <= 0 {
		delete(s.cooldown, k)
		return
	}
	s.cooldown[k] = int64(ticks)
}

// Latch applies buffered events in arrival order and returns them.
// Edges from the previous tick are cleared first.
func (s *InputState) Latch(tick int64) []core.InputEvent {
	s.mu.Lock()
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	s.tick = tick
	clear(s.pressed)
	for _, ev := range events {
		s.apply(ev)
	}
	s.latched = events
	return events
}

func (s *InputState) apply(ev core.InputEvent) {
	switch ev.Kind {
	case core.EventBlur:
		clear(s.held)
	case core.EventKeyUp:
		delete(s.held, ev.Key)
	case core.EventKeyDown:
		if s.held[ev.Key] {
			return // repeat
		}
		s.held[ev.Key] = true
		if cd, ok := s.cooldown[ev.Key]; ok {
			if last, seen := s.accepted[ev.Key]; seen && s.tick-last < cd {
				return
			}
		}
		s.pressed[ev.Key] = true
		s.accepted[ev.Key] = s.tick
	}
}

// Held reports whether k is currently held.
func (s *InputState) Held(k core.Key) bool {
	return s.held[k]
}

// Pressed reports whether k had an accepted press edge in the latched tick.
func (s *InputState) Pressed(k core.Key) bool {
	return s.pressed[k]
}

// Consume reports Pressed(k) and clears the edge so later checks in the same
// tick see no press.
func (s *InputState) Consume(k core.Key) bool {
	if !s.pressed[k] {
		return false
	}
	delete(s.pressed, k)
	return true
}

// ActionHeld reports whether the action key is held.
func (s *InputState) ActionHeld() bool {
	return s.held[core.KeyAction]
}

// DirectionalIntent returns right minus left and down minus up.
// Opposing keys held together cancel out.
func (s *InputState) DirectionalIntent() (dx, dy int) {
	if s.held[core.KeyRight] {
		dx++
	}
	if s.held[core.KeyLeft] {
		dx--
	}
	if s.held[core.KeyDown] {
		dy++
	}
	if s.held[core.KeyUp] {
		dy--
	}
	return dx, dy
}

// PressedDirection returns the direction of arrow presses accepted this tick,
// for grid games that move one cell per press.
func (s *InputState) PressedDirection() (dx, dy int) {
	if s.pressed[core.KeyRight] {
		dx++
	}
	if s.pressed[core.KeyLeft] {
		dx--
	}
	if s.pressed[core.KeyDown] {
		dy++
	}
	if s.pressed[core.KeyUp] {
		dy--
	}
	return dx, dy
}

// Latched returns the events applied by the last Latch.
func (s *InputState) Latched() []core.InputEvent {
	return s.latched
}

// forgetTriggers clears edges and cooldown history. Held keys stay held.
func (s *InputState) forgetTriggers() {
	clear(s.pressed)
	clear(s.accepted)
}

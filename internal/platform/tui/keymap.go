package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// Hold windows for synthesized releases. Terminals only report presses, so
// a key counts as held until no repeat has arrived for the window.
const (
	firstRepeatWindow = 500 * time.Millisecond
	repeatWindow      = 120 * time.Millisecond
)

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Action     key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Action: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "action"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings shown under the game.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Action, k.Pause, k.Restart},
		{k.Back, k.Screenshot, k.Quit},
	}
}

// Logical translates a terminal key to the logical key games see.
// Returns KeyNone for keys that do not reach the engine.
func (k KeyMap) Logical(msg tea.KeyMsg) core.Key {
	switch {
	case key.Matches(msg, k.Left):
		return core.KeyLeft
	case key.Matches(msg, k.Right):
		return core.KeyRight
	case key.Matches(msg, k.Up):
		return core.KeyUp
	case key.Matches(msg, k.Down):
		return core.KeyDown
	case key.Matches(msg, k.Action):
		return core.KeyAction
	case key.Matches(msg, k.Pause):
		return core.KeyPause
	case key.Matches(msg, k.Restart):
		return core.KeyRestart
	}
	return core.KeyNone
}

type hold struct {
	last      time.Time
	repeating bool
}

// holdTracker turns a stream of terminal presses into press and release
// events. A press of a key already held is an auto-repeat and is reported as
// a release followed by a fresh press.
type holdTracker struct {
	held map[core.Key]*hold
}

func newHoldTracker() *holdTracker {
	return &holdTracker{held: make(map[core.Key]*hold)}
}

// Press records a terminal press of k at now.
func (h *holdTracker) Press(k core.Key, now time.Time) []core.InputEvent {
	if st, ok := h.held[k]; ok {
		st.last = now
		st.repeating = true
		return []core.InputEvent{core.Release(k), core.Press(k)}
	}
	h.held[k] = &hold{last: now}
	return []core.InputEvent{core.Press(k)}
}

// Expire releases every key whose hold window has passed at now.
// Releases are returned in key order.
func (h *holdTracker) Expire(now time.Time) []core.InputEvent {
	var keys []core.Key
	for k, st := range h.held {
		window := firstRepeatWindow
		if st.repeating {
			window = repeatWindow
		}
		if now.Sub(st.last) >= window {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	events := make([]core.InputEvent, 0, len(keys))
	for _, k := range keys {
		delete(h.held, k)
		events = append(events, core.Release(k))
	}
	return events
}

// Reset forgets every held key, as on focus loss.
func (h *holdTracker) Reset() {
	clear(h.held)
}

// Held reports whether k is considered held.
func (h *holdTracker) Held(k core.Key) bool {
	_, ok := h.held[k]
	return ok
}

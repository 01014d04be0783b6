package core

// Key is a logical input key, abstracted from physical keys and touch buttons.
// Games react to keys through the engine's InputState, never to raw terminal input.
type Key int

const (
	KeyNone    Key = iota
	KeyLeft        // Left arrow, A, H
	KeyRight       // Right arrow, D, L
	KeyUp          // Up arrow, W, K
	KeyDown        // Down arrow, S, J
	KeyAction      // Space - jump, fire, toggle, place
	KeyCancel      // Escape - leave the game
	KeyPause       // P
	KeyRestart     // R - restart after a terminal state

	keyCount
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyAction:
		return "action"
	case KeyCancel:
		return "cancel"
	case KeyPause:
		return "pause"
	case KeyRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known key other than KeyNone.
func (k Key) Valid() bool {
	return k > KeyNone && k < keyCount
}

// ParseKey is the inverse of Key.String. Unknown names map to KeyNone.
func ParseKey(name string) Key {
	for k := KeyNone; k < keyCount; k++ {
		if k.String() == name {
			return k
		}
	}
	return KeyNone
}

// AllKeys returns every valid key in declaration order.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyLeft; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// EventKind distinguishes press, release and focus loss.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventBlur // focus lost; every held key is released
)

// String returns the journal name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "down"
	case EventKeyUp:
		return "up"
	case EventBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// ParseEventKind is the inverse of EventKind.String.
// The second return value is false for unknown names.
func ParseEventKind(name string) (EventKind, bool) {
	switch name {
	case "down":
		return EventKeyDown, true
	case "up":
		return EventKeyUp, true
	case "blur":
		return EventBlur, true
	}
	return EventKeyDown, false
}

// InputEvent is a single press/release/blur as delivered by a platform.
type InputEvent struct {
	Kind EventKind
	Key  Key
}

// Press builds a key-down event.
func Press(k Key) InputEvent { return InputEvent{Kind: EventKeyDown, Key: k} }

// Release builds a key-up event.
func Release(k Key) InputEvent { return InputEvent{Kind: EventKeyUp, Key: k} }

// Blur builds a focus-loss event.
func Blur() InputEvent { return InputEvent{Kind: EventBlur} }

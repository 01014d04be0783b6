package core

import "testing"

func TestKeyStringRoundTrip(t *testing.T) {
	for _, k := range AllKeys() {
		if got := ParseKey(k.String()); got != k {
			t.Errorf("ParseKey(%q) = %v, expected %v", k.String(), got, k)
		}
		if !k.Valid() {
			t.Errorf("%v should be valid", k)
		}
	}
}

func TestKeyInvalid(t *testing.T) {
	if KeyNone.Valid() {
		t.Error("KeyNone should not be valid")
	}
	if Key(99).Valid() {
		t.Error("Key(99) should not be valid")
	}
	if ParseKey("banana") != KeyNone {
		t.Error("unknown names should parse to KeyNone")
	}
}

func TestParseEventKind(t *testing.T) {
	for _, k := range []EventKind{EventKeyDown, EventKeyUp, EventBlur} {
		got, ok := ParseEventKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseEventKind("sideways"); ok {
		t.Error("unknown kind should not parse")
	}
}

func TestEventBuilders(t *testing.T) {
	tests := []struct {
		name string
		ev   InputEvent
		kind EventKind
		key  Key
	}{
		{"press", Press(KeyDown), EventKeyDown, KeyDown},
		{"release", Release(KeyUp), EventKeyUp, KeyUp},
		{"blur", Blur(), EventBlur, KeyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ev.Kind != tt.kind || tt.ev.Key != tt.key {
				t.Errorf("got %v %v, expected %v %v", tt.ev.Kind, tt.ev.Key, tt.kind, tt.key)
			}
		})
	}
}

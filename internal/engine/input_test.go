package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func TestInputEventsInvisibleUntilLatch(t *testing.T) {
	in := NewInputState()
	in.OnKeyDown(core.KeyLeft)

	assert.False(t, in.Held(core.KeyLeft), "event must not apply before the tick boundary")

	in.Latch(0)
	assert.True(t, in.Held(core.KeyLeft))
	assert.True(t, in.Pressed(core.KeyLeft))

	in.Latch(1)
	assert.True(t, in.Held(core.KeyLeft), "held persists across ticks")
	assert.False(t, in.Pressed(core.KeyLeft), "edge lasts one tick")
}

func TestInputRepeatIsNotAnEdge(t *testing.T) {
	in := NewInputState()
	in.OnKeyDown(core.KeyAction)
	in.Latch(0)
	require.True(t, in.Pressed(core.KeyAction))

	in.OnKeyDown(core.KeyAction) // auto-repeat while held
	in.Latch(1)
	assert.False(t, in.Pressed(core.KeyAction))
	assert.True(t, in.ActionHeld())
}

func TestInputTapWithinOneTick(t *testing.T) {
	in := NewInputState()
	in.OnKeyDown(core.KeyAction)
	in.OnKeyUp(core.KeyAction)
	in.Latch(0)

	assert.True(t, in.Pressed(core.KeyAction), "a tap between ticks still triggers")
	assert.False(t, in.Held(core.KeyAction))
}

func TestInputCooldown(t *testing.T) {
	in := NewInputState()
	in.SetCooldown(core.KeyAction, 18)

	press := func(tick int64) bool {
		in.OnKeyDown(core.KeyAction)
		in.OnKeyUp(core.KeyAction)
		in.Latch(tick)
		return in.Pressed(core.KeyAction)
	}

	assert.True(t, press(0))
	assert.False(t, press(5), "inside cooldown")
	assert.False(t, press(17), "one tick short")
	assert.True(t, press(18), "cooldown elapsed")
	assert.False(t, press(20))
}

func TestInputBlurReleasesEverything(t *testing.T) {
	in := NewInputState()
	in.OnKeyDown(core.KeyLeft)
	in.OnKeyDown(core.KeyAction)
	in.Latch(0)

	in.Blur()
	in.Latch(1)

	assert.False(t, in.Held(core.KeyLeft))
	assert.False(t, in.ActionHeld())
	dx, dy := in.DirectionalIntent()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestInputDirectionalIntent(t *testing.T) {
	tests := []struct {
		name   string
		keys   []core.Key
		dx, dy int
	}{
		{"none", nil, 0, 0},
		{"right", []core.Key{core.KeyRight}, 1, 0},
		{"left", []core.Key{core.KeyLeft}, -1, 0},
		{"opposing cancel", []core.Key{core.KeyLeft, core.KeyRight}, 0, 0},
		{"diagonal", []core.Key{core.KeyUp, core.KeyRight}, 1, -1},
		{"vertical cancel", []core.Key{core.KeyUp, core.KeyDown, core.KeyLeft}, -1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInputState()
			for _, k := range tc.keys {
				in.OnKeyDown(k)
			}
			in.Latch(0)
			dx, dy := in.DirectionalIntent()
			assert.Equal(t, tc.dx, dx)
			assert.Equal(t, tc.dy, dy)
		})
	}
}

func TestInputUnknownKeysIgnored(t *testing.T) {
	in := NewInputState()
	in.OnKeyDown(core.KeyNone)
	in.OnKeyDown(core.Key(250))
	events := in.Latch(0)

	assert.Empty(t, events)
	for _, k := range core.AllKeys() {
		assert.False(t, in.Held(k))
	}
}

func TestInputConsume(t *testing.T) {
	in := NewInputState()
	in.OnKeyDown(core.KeyAction)
	in.Latch(0)

	assert.True(t, in.Consume(core.KeyAction))
	assert.False(t, in.Consume(core.KeyAction))
	assert.False(t, in.Pressed(core.KeyAction))
	assert.True(t, in.Held(core.KeyAction))
}

func TestInputConcurrentPosting(t *testing.T) {
	in := NewInputState()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				in.OnKeyDown(core.KeyRight)
				in.OnKeyUp(core.KeyRight)
			}
		}()
	}
	wg.Wait()

	events := in.Latch(0)
	assert.Len(t, events, 1600)
	assert.False(t, in.Held(core.KeyRight))
}

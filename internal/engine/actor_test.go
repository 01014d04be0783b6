package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func platformer() Kinematics {
	return Kinematics{
		MoveSpeed:        8,
		Gravity:          0.6,
		TerminalVelocity: 20,
		Bounds:           core.NewBox(50, 0, 700, 500),
	}
}

func TestActorBoundsInvariant(t *testing.T) {
	kinematics := []struct {
		name string
		k    Kinematics
	}{
		{"platformer", platformer()},
		{"floater", Kinematics{
			Accel: 0.5, Decel: 0.1, MaxSpeedX: 8,
			VerticalAccel: 0.4, Damping: 0.98, BounceX: 0.5,
			Bounds: core.NewBox(20, 100, 280, 300),
		}},
		{"direct", Kinematics{
			MoveSpeed: 12, VerticalSpeed: 12,
			Bounds: core.NewBox(10, 10, 280, 430),
		}},
	}

	rng := NewRNG(7)
	for _, tc := range kinematics {
		t.Run(tc.name, func(t *testing.T) {
			a := Actor{Pos: tc.k.Bounds.Clamp(core.V(150, 200)), State: MotionGrounded}
			for i := 0; i < 2000; i++ {
				in := Intent{DX: rng.Intn(3) - 1, DY: rng.Intn(3) - 1, Action: rng.Intn(2) == 0}
				if rng.Intn(10) == 0 {
					a.Jump(-30)
				}
				a.Integrate(tc.k, in)
				require.True(t, tc.k.Bounds.Contains(a.Pos), "tick %d: %v outside %v", i, a.Pos, tc.k.Bounds)
			}
		})
	}
}

func TestActorJumpOnlyWhenGrounded(t *testing.T) {
	a := Actor{Pos: core.V(100, 500), State: MotionGrounded}

	require.True(t, a.Jump(-24))
	assert.Equal(t, MotionJumping, a.State)
	assert.False(t, a.Jump(-24), "no double jump")
}

func TestActorLandsAndZeroesVelocity(t *testing.T) {
	k := platformer()
	a := Actor{Pos: core.V(100, 500), State: MotionGrounded}
	a.Jump(-6)

	landed := false
	for i := 0; i < 100; i++ {
		prev := a.State
		a.Integrate(k, Intent{})
		if a.State == MotionGrounded {
			assert.Equal(t, MotionJumping, prev, "only Jumping turns into Grounded")
			landed = true
			break
		}
	}

	require.True(t, landed)
	assert.Equal(t, 500.0, a.Pos.Y)
	assert.Zero(t, a.Vel.Y)
}

func TestActorCeilingContact(t *testing.T) {
	k := Kinematics{Bounds: core.NewBox(0, 100, 300, 300), VerticalAccel: 0.4}
	a := Actor{Pos: core.V(150, 101), Vel: core.V(0, -5)}

	a.Integrate(k, Intent{DY: -1})
	assert.Equal(t, 100.0, a.Pos.Y)
	assert.Zero(t, a.Vel.Y)
}

func TestActorReadThenWriteOnce(t *testing.T) {
	k := Kinematics{Gravity: 1, Bounds: core.NewBox(0, 0, 1000, 1000)}
	a := Actor{Pos: core.V(0, 100)}

	a.Integrate(k, Intent{})
	// velocity is updated first, then position moves with the new velocity
	assert.Equal(t, 1.0, a.Vel.Y)
	assert.Equal(t, 101.0, a.Pos.Y)
}

func TestActorOpposingKeysCancel(t *testing.T) {
	k := platformer()
	a := Actor{Pos: core.V(100, 500), State: MotionGrounded}

	in := NewInputState()
	in.OnKeyDown(core.KeyLeft)
	in.OnKeyDown(core.KeyRight)
	in.Latch(0)

	a.Integrate(k, IntentFrom(in))
	assert.Equal(t, 100.0, a.Pos.X)
	assert.Zero(t, a.Vel.X)
}

func TestActorAccelerationMode(t *testing.T) {
	k := Kinematics{Accel: 0.5, Decel: 0.1, MaxSpeedX: 8, BounceX: 0.5, Bounds: core.NewBox(20, 0, 280, 480)}
	a := Actor{Pos: core.V(160, 200)}

	for i := 0; i < 40; i++ {
		a.Integrate(k, Intent{DX: 1})
	}
	assert.LessOrEqual(t, a.Vel.X, 8.0)

	// coast and decelerate towards zero without overshooting
	a.Pos.X = 100
	a.Vel.X = 0.25
	a.Integrate(k, Intent{})
	assert.InDelta(t, 0.15, a.Vel.X, 1e-9)
	a.Integrate(k, Intent{})
	a.Integrate(k, Intent{})
	assert.Zero(t, a.Vel.X)
}

func TestActorSideBounce(t *testing.T) {
	k := Kinematics{Accel: 0.5, MaxSpeedX: 8, BounceX: 0.5, Bounds: core.NewBox(20, 0, 280, 480)}
	a := Actor{Pos: core.V(295, 200), Vel: core.V(8, 0)}

	a.Integrate(k, Intent{DX: 1})
	assert.Equal(t, 300.0, a.Pos.X)
	assert.Equal(t, -4.0, a.Vel.X)
}

func TestActorFloatStates(t *testing.T) {
	k := Kinematics{VerticalAccel: 0.4, Damping: 0.98, Bounds: core.NewBox(0, 100, 320, 300)}
	a := Actor{Pos: core.V(160, 300)}

	a.Integrate(k, Intent{DY: -1})
	assert.Equal(t, MotionRising, a.State)

	for i := 0; i < 5; i++ {
		a.Integrate(k, Intent{DY: 1})
	}
	assert.Equal(t, MotionSinking, a.State)
}

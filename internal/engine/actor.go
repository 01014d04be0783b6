package engine

import (
	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// MotionState is the discrete motion state of the Actor.
type MotionState int

const (
	MotionIdle MotionState = iota
	MotionMoving
	MotionGrounded
	MotionJumping
	MotionRising
	MotionSinking
)

func (m MotionState) String() string {
	switch m {
	case MotionIdle:
		return "idle"
	case MotionMoving:
		return "moving"
	case MotionGrounded:
		return "grounded"
	case MotionJumping:
		return "jumping"
	case MotionRising:
		return "rising"
	case MotionSinking:
		return "sinking"
	default:
		return "unknown"
	}
}

// Actor is the player-controlled body.
type Actor struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64 // collision radius for proximity rules
	W, H   float64 // collision box for range-overlap rules
	State  MotionState
	Facing int // -1 left, 1 right

	// Charge is a game-specific scalar: jump charge, wind power, bubble size.
	Charge float64
	// Flag is a game-specific toggle, such as a turtle's shell.
	Flag bool
}

// Box returns the actor's collision box centered on its position.
func (a *Actor) Box() core.Box {
	return core.Centered(a.Pos, a.W, a.H)
}

// Intent is the movement request derived from input for one tick.
type Intent struct {
	DX, DY int
	Action bool
}

// IntentFrom reads the directional intent and action flag from in.
func IntentFrom(in *InputState) Intent {
	dx, dy := in.DirectionalIntent()
	return Intent{DX: dx, DY: dy, Action: in.ActionHeld()}
}

// Kinematics holds per-game motion constants, all expressed per tick.
// Zero fields disable the corresponding behavior.
type Kinematics struct {
	// MoveSpeed sets vx directly from horizontal intent when Accel is zero.
	MoveSpeed float64
	// Accel, Decel and MaxSpeedX select acceleration mode horizontally.
	Accel     float64
	Decel     float64
	MaxSpeedX float64

	// VerticalSpeed sets vy directly from vertical intent. It overrides forces.
	VerticalSpeed float64
	// Gravity is a constant downward acceleration.
	Gravity float64
	// TerminalVelocity caps downward speed when positive.
	TerminalVelocity float64
	// Lift is an upward acceleration applied while the action key is held.
	Lift float64
	// VerticalAccel is applied along vertical intent.
	VerticalAccel float64
	// Damping multiplies vy after the position update when positive.
	Damping float64

	// BounceX is the restitution applied on side wall contact.
	BounceX float64

	// Bounds is the box the actor's position is clamped to.
	Bounds core.Box
}

// Jump applies a vertical impulse when the actor is grounded.
// Negative impulses point up. Reports whether the jump happened.
func (a *Actor) Jump(impulse float64) bool {
	if a.State != MotionGrounded {
		return false
	}
	a.Vel.Y = impulse
	a.State = MotionJumping
	return true
}

// Integrate advances the actor by one tick. Velocity is computed from the
// current velocity, forces and intent, then the position moves once with the
// new velocity and is clamped to k.Bounds.
func (a *Actor) Integrate(k Kinematics, in Intent) {
	vel := a.Vel
	if in.DX != 0 {
		a.Facing = in.DX
	}

	switch {
	case k.Accel > 0:
		if in.DX != 0 {
			vel.X += float64(in.DX) * k.Accel
			if k.MaxSpeedX > 0 {
				vel.X = core.ClampF(vel.X, -k.MaxSpeedX, k.MaxSpeedX)
			}
		} else if vel.X > 0 {
			vel.X = max(0, vel.X-k.Decel)
		} else if vel.X < 0 {
			vel.X = min(0, vel.X+k.Decel)
		}
	case k.MoveSpeed > 0:
		vel.X = float64(in.DX) * k.MoveSpeed
	}

	if k.VerticalSpeed > 0 {
		vel.Y = float64(in.DY) * k.VerticalSpeed
	} else {
		vel.Y += k.Gravity
		vel.Y += float64(in.DY) * k.VerticalAccel
		if in.Action {
			vel.Y -= k.Lift
		}
		if k.TerminalVelocity > 0 && vel.Y > k.TerminalVelocity {
			vel.Y = k.TerminalVelocity
		}
	}

	pos := a.Pos.Add(vel)
	b := k.Bounds
	onFloor := false

	if pos.X < b.Min.X {
		pos.X = b.Min.X
		vel.X = -vel.X * k.BounceX
	} else if pos.X > b.Max.X {
		pos.X = b.Max.X
		vel.X = -vel.X * k.BounceX
	}
	if pos.Y <= b.Min.Y {
		pos.Y = b.Min.Y
		if vel.Y < 0 {
			vel.Y = 0
		}
	}
	if pos.Y >= b.Max.Y {
		pos.Y = b.Max.Y
		onFloor = true
		if vel.Y > 0 {
			vel.Y = 0
		}
	}

	if k.Damping > 0 {
		vel.Y *= k.Damping
	}

	a.Pos, a.Vel = pos, vel
	a.State = nextMotion(k, a.State, vel, onFloor)
}

// nextMotion picks the state for the end of a tick. It is evaluated once per
// Integrate so a tick performs at most one transition.
func nextMotion(k Kinematics, cur MotionState, vel core.Vec, onFloor bool) MotionState {
	const eps = 1e-9
	switch {
	case k.Gravity > 0:
		if onFloor && vel.Y >= 0 {
			return MotionGrounded
		}
		return MotionJumping
	case k.VerticalAccel > 0 || k.Lift > 0:
		switch {
		case vel.Y < -eps:
			return MotionRising
		case vel.Y > eps:
			return MotionSinking
		}
		return MotionIdle
	default:
		if vel.Len() > eps {
			return MotionMoving
		}
		if cur == MotionGrounded || cur == MotionJumping {
			return cur
		}
		return MotionIdle
	}
}

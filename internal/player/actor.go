// Package player implements first-person movement: the actor state, the
// per-sub-step motion integrator, pointer look with head-bob, and the
// control loop that runs integration and collision each frame.
package player

import (
	"github.com/Faultbox/gallery-walk/internal/collision"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Mode selects the integration branch.
type Mode int

// Modes in increasing precedence.
const (
	ModeGrounded Mode = iota
	ModeSwimming
	ModeFlying
)

func (m Mode) String() string {
	switch m {
	case ModeFlying:
		return "flying"
	case ModeSwimming:
		return "swimming"
	default:
		return "grounded"
	}
}

// Actor is the player. Position is the capsule's local origin (eye level).
type Actor struct {
	Position     math.Vec3
	Velocity     math.Vec3 // x strafe, y vertical, z forward/back
	TurnVelocity math.Vec3 // x yaw, z pitch
	Intent       Intent

	OnGround   bool
	Underwater bool
	Flying     bool
	Slowed     bool
	Noclip     bool

	Capsule collision.Capsule
	Look    *PointerLook
}

// NewActor returns an actor at rest. It starts grounded so gravity does not
// accumulate before the first collision pass.
func NewActor(capsule collision.Capsule) *Actor {
	return &Actor{
		OnGround: true,
		Capsule:  capsule,
		Look:     NewPointerLook(),
	}
}

// Mode returns the active movement mode. Flying wins over swimming, which
// wins over grounded.
func (a *Actor) Mode() Mode {
	switch {
	case a.Flying:
		return ModeFlying
	case a.Underwater:
		return ModeSwimming
	default:
		return ModeGrounded
	}
}

// EyePosition returns the camera position: the actor position plus the
// camera-local offset accumulated by head-bob.
func (a *Actor) EyePosition() math.Vec3 {
	return a.Position.Add(a.Look.Offset)
}

// Teleport places the actor, clearing motion.
func (a *Actor) Teleport(pos math.Vec3) {
	a.Position = pos
	a.Velocity = math.Vec3{}
	a.TurnVelocity = math.Vec3{}
}

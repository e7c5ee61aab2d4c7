package player

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

// cameraNudge is the camera-local vertical offset applied per sub-step while
// up or down is held outside flying mode.
const cameraNudge float32 = 0.001

// Step is one physics sub-step.
type Step struct {
	DT         float32 // sub-step length, seconds
	FrameDelta float32 // whole frame length; drives head-bob
	WalkSpeed  float32
}

// Integrator advances an actor by one sub-step. It never touches collision;
// the resulting position is tentative.
type Integrator struct {
	Settings *Settings
}

// NewIntegrator returns an integrator reading s on every step.
func NewIntegrator(s *Settings) *Integrator {
	return &Integrator{Settings: s}
}

// Integrate runs the mode's update sequence. The order of the stages
// decides which forces compound within a step.
func (in *Integrator) Integrate(a *Actor, st Step) {
	dir := a.Intent.Direction()
	turn := a.Intent.TurnDirection()

	if a.Mode() == ModeFlying {
		in.decelerate(a, st.DT)
		in.flyingLift(a, st.DT)
		in.accelerate(a, dir, turn, st)
		in.move(a, st)
		return
	}

	in.swim(a, st.DT)
	in.gravity(a, st.DT)
	in.decelerate(a, st.DT)
	in.accelerate(a, dir, turn, st)
	in.move(a, st)
	in.nudgeCamera(a)
}

// swim adds upward velocity while swimming forward, bounded to MaxVelocity
// in either direction.
func (in *Integrator) swim(a *Actor, dt float32) {
	if a.Mode() != ModeSwimming || !a.Intent.Forward {
		return
	}
	limit := math32.Abs(in.Settings.MaxVelocity)
	a.Velocity.Y += in.Settings.SwimSpeed * dt
	if math32.Abs(a.Velocity.Y) > limit {
		a.Velocity.Y = math32.Copysign(limit, a.Velocity.Y)
	}
}

// gravity accelerates while airborne and under the speed limit, or always
// when gravity points up, then applies vertical velocity to position.
func (in *Integrator) gravity(a *Actor, dt float32) {
	s := in.Settings
	if a.Noclip || !s.GravityEnabled {
		return
	}
	if (math32.Abs(a.Velocity.Y) <= math32.Abs(s.MaxVelocity) && !a.OnGround) || s.Gravity > 0 {
		a.Velocity.Y += dt * s.Gravity
	}
	a.Position.Y += a.Velocity.Y * dt
}

// decelerate decays horizontal and turn velocity. The per-step factor is
// capped at 1 so large steps stop motion instead of reversing it.
func (in *Integrator) decelerate(a *Actor, dt float32) {
	k := math32.Min(in.Settings.Decceleration*dt, 1)
	a.Velocity.X -= a.Velocity.X * k
	a.Velocity.Z -= a.Velocity.Z * k

	kt := math32.Min(in.Settings.TurnDecay*dt, 1)
	a.TurnVelocity.X -= a.TurnVelocity.X * kt
	a.TurnVelocity.Z -= a.TurnVelocity.Z * kt
}

// flyingLift sets vertical velocity from the view pitch so looking up while
// moving forward climbs.
func (in *Integrator) flyingLift(a *Actor, dt float32) {
	a.Velocity.Y = a.Look.Direction().Y * -a.Velocity.Z
	a.Position.Y += a.Velocity.Y * dt
}

// accelerate adds walk and turn velocity for held intents only, so released
// keys leave momentum to decay.
func (in *Integrator) accelerate(a *Actor, dir, turn math.Vec3, st Step) {
	i := a.Intent
	if i.Forward || i.Backward {
		a.Velocity.Z -= dir.Z * st.WalkSpeed * st.DT
	}
	if i.Left || i.Right {
		a.Velocity.X -= dir.X * st.WalkSpeed * st.DT
	}
	if i.TurnLeft || i.TurnRight {
		a.TurnVelocity.X -= turn.X * in.Settings.TurnSpeed * st.DT
	}
	if i.TurnUp || i.TurnDown {
		a.TurnVelocity.Z -= turn.Z * in.Settings.TurnSpeed * st.DT
	}
}

// move applies turn velocity to the look, horizontal velocity to position,
// then advances head-bob.
func (in *Integrator) move(a *Actor, st Step) {
	a.Look.Update(-1, 0, a.TurnVelocity.X)
	a.Look.Update(0, 1, a.TurnVelocity.Z)

	a.Position = a.Position.
		Add(a.Look.MoveRight(-a.Velocity.X * st.DT)).
		Add(a.Look.MoveForward(-a.Velocity.Z * st.DT))

	if in.Settings.HeadBob && a.Mode() == ModeGrounded {
		a.Look.UpdateHeadBob(st.FrameDelta, st.WalkSpeed)
	}
}

func (in *Integrator) nudgeCamera(a *Actor) {
	switch {
	case a.Intent.Up:
		a.Look.Offset.Y += cameraNudge
	case a.Intent.Down:
		a.Look.Offset.Y -= cameraNudge
	}
}

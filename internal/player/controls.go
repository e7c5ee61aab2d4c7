package player

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/collision"
	"github.com/Faultbox/gallery-walk/internal/logger"
)

// Controls is the per-frame control loop: it splits the frame into fixed
// sub-steps and runs integration then collision resolution for each.
type Controls struct {
	Actor      *Actor
	Settings   *Settings
	Integrator *Integrator
	Resolver   collision.Resolver

	// Enabled gates the loop entirely, e.g. while a modal is open.
	Enabled bool
	// VR scales walk speed for headset play.
	VR bool

	playing  func() bool
	collider *collision.Collider
	log      *zap.Logger
}

// NewControls wires a control loop. playing reports whether the game is in
// its interactive phase; physics only runs while it returns true.
func NewControls(actor *Actor, settings Settings, playing func() bool) *Controls {
	s := &settings
	return &Controls{
		Actor:      actor,
		Settings:   s,
		Integrator: NewIntegrator(s),
		Resolver:   collision.Resolver{GroundCheck: s.GroundCheck},
		Enabled:    true,
		playing:    playing,
		log:        logger.Named("controls"),
	}
}

// SetCollider installs the active level collider. Pass nil to clear it.
// Must not be called while Tick is running.
func (c *Controls) SetCollider(col *collision.Collider) {
	c.collider = col
}

// Collider returns the active collider.
func (c *Controls) Collider() *collision.Collider {
	return c.collider
}

// WalkSpeed returns the current horizontal acceleration.
func (c *Controls) WalkSpeed() float32 {
	speed := c.Settings.PlayerSpeed
	if c.Actor.Slowed {
		speed *= c.Settings.SlowFactor
	}
	if c.VR {
		speed *= c.Settings.VRSpeedFactor
	}
	return speed
}

// Tick advances the actor by frameDelta seconds.
func (c *Controls) Tick(frameDelta float32) {
	if !c.Enabled || c.playing == nil || !c.playing() {
		return
	}
	steps := c.Settings.PhysicsSteps
	if steps < 1 {
		steps = 1
	}
	dt := frameDelta / float32(steps)
	for i := 0; i < steps; i++ {
		c.step(dt, frameDelta)
	}
}

func (c *Controls) step(dt, frameDelta float32) {
	a := c.Actor
	c.Integrator.Integrate(a, Step{DT: dt, FrameDelta: frameDelta, WalkSpeed: c.WalkSpeed()})

	if c.collider == nil || a.Noclip {
		return
	}

	c.Resolver.GroundCheck = c.Settings.GroundCheck
	res := c.Resolver.Resolve(c.collider, collision.Body{
		Position:  a.Position,
		VelocityY: a.Velocity.Y,
		Capsule:   a.Capsule,
	}, dt)

	a.Position = res.Position
	a.OnGround = res.OnGround
	a.Velocity.Y = res.VelocityY
}

// Jump launches the actor upward.
func (c *Controls) Jump() {
	c.Actor.Velocity.Y = c.Settings.JumpForce
}

// ToggleNoclip flips collision and head-bob together.
func (c *Controls) ToggleNoclip() {
	c.Actor.Noclip = !c.Actor.Noclip
	c.Settings.HeadBob = !c.Settings.HeadBob
	c.log.Info("noclip toggled", zap.Bool("noclip", c.Actor.Noclip), zap.Bool("head_bob", c.Settings.HeadBob))
}

// LogLocation logs the current pose as config lines that can be pasted
// into the actor section.
func (c *Controls) LogLocation() string {
	d := c.Actor.Look.Direction()
	p := c.Actor.Position
	line := fmt.Sprintf("spawn_direction: [%.2f, %.2f, %.2f]  spawn_position: [%.2f, %.2f, %.2f]",
		d.X, d.Y, d.Z, p.X, p.Y, p.Z)
	c.log.Info("location", zap.String("actor", line))
	return line
}

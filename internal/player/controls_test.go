package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gallery-walk/internal/collision"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

func floor(t *testing.T) *collision.Collider {
	t.Helper()
	root := scene.NewNode("level")
	root.Add(scene.NewMesh("floor", scene.PlaneGeometry(40, 40)))
	col, err := collision.NewBuilder(nil).Build(root)
	require.NoError(t, err)
	return col
}

func alwaysPlaying() bool { return true }

func TestTickGated(t *testing.T) {
	a := newTestActor()
	a.OnGround = false

	playing := false
	c := NewControls(a, DefaultSettings(), func() bool { return playing })
	c.Tick(0.1)
	assert.Zero(t, a.Velocity.Y, "paused")

	playing = true
	c.Enabled = false
	c.Tick(0.1)
	assert.Zero(t, a.Velocity.Y, "disabled")

	c.Enabled = true
	c.Tick(0.1)
	assert.InDelta(t, -0.5, a.Velocity.Y, 1e-5, "sub-steps sum to the frame")
}

func TestTickLandsOnFloor(t *testing.T) {
	s := DefaultSettings()
	s.PhysicsSteps = 1

	a := newTestActor()
	a.OnGround = false
	// Segment end 0.3 above the floor, radius 0.4.
	a.Position = math.Vec3{X: 1, Y: 2.3, Z: 1}

	c := NewControls(a, s, alwaysPlaying)
	c.SetCollider(floor(t))
	c.Tick(0.01)

	// Gravity: vy = -0.05, y = 2.2995. Push = 0.4 - 0.2995.
	assert.InDelta(t, 2.4-1e-5, a.Position.Y, 1e-4)
	assert.True(t, a.OnGround)
	assert.InDelta(t, 0.005, a.Velocity.Y, 1e-6)
	assert.InDelta(t, 1, a.Position.X, 1e-6)
	assert.InDelta(t, 1, a.Position.Z, 1e-6)
}

func TestTickSettlesAtRest(t *testing.T) {
	a := newTestActor()
	a.OnGround = false
	a.Position = math.Vec3{Y: 3}

	c := NewControls(a, DefaultSettings(), alwaysPlaying)
	c.SetCollider(floor(t))
	for i := 0; i < 240; i++ {
		c.Tick(1.0 / 60)
	}

	assert.InDelta(t, 2.4, a.Position.Y, 0.01, "segment end one radius above the floor")
}

func TestTickWalksAcrossFloor(t *testing.T) {
	a := newTestActor()
	a.Position = math.Vec3{Y: 2.4}

	c := NewControls(a, DefaultSettings(), alwaysPlaying)
	c.SetCollider(floor(t))
	a.Intent.Forward = true
	for i := 0; i < 60; i++ {
		c.Tick(1.0 / 60)
	}

	assert.Less(t, a.Position.Z, float32(-1))
	assert.InDelta(t, 2.4, a.Position.Y, 0.01, "stays on the floor")
}

func TestNoclipSkipsCollision(t *testing.T) {
	a := newTestActor()
	a.Position = math.Vec3{Y: 1}

	c := NewControls(a, DefaultSettings(), alwaysPlaying)
	c.SetCollider(floor(t))
	bob := c.Settings.HeadBob

	c.ToggleNoclip()
	assert.True(t, a.Noclip)
	assert.Equal(t, !bob, c.Settings.HeadBob)

	c.Tick(0.1)
	assert.Equal(t, float32(1), a.Position.Y, "penetration left alone")

	c.ToggleNoclip()
	assert.False(t, a.Noclip)
	assert.Equal(t, bob, c.Settings.HeadBob)
}

func TestTickWithoutCollider(t *testing.T) {
	a := newTestActor()
	a.OnGround = false
	c := NewControls(a, DefaultSettings(), alwaysPlaying)
	assert.Nil(t, c.Collider())

	c.Tick(0.1)
	assert.Less(t, a.Position.Y, float32(0), "falls freely")
}

func TestWalkSpeed(t *testing.T) {
	c := NewControls(newTestActor(), DefaultSettings(), alwaysPlaying)
	assert.Equal(t, float32(40), c.WalkSpeed())

	c.Actor.Slowed = true
	assert.InDelta(t, 20, c.WalkSpeed(), 1e-6)

	c.VR = true
	assert.InDelta(t, 15, c.WalkSpeed(), 1e-6)
}

func TestJump(t *testing.T) {
	c := NewControls(newTestActor(), DefaultSettings(), alwaysPlaying)
	c.Jump()
	assert.Equal(t, c.Settings.JumpForce, c.Actor.Velocity.Y)
}

func TestLogLocation(t *testing.T) {
	a := newTestActor()
	a.Position = math.Vec3{X: 1.5, Y: 2, Z: -3.25}
	c := NewControls(a, DefaultSettings(), alwaysPlaying)

	line := c.LogLocation()
	assert.Contains(t, line, "spawn_position: [1.50, 2.00, -3.25]")
	assert.Contains(t, line, "spawn_direction: [")
}

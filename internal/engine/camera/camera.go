// Package camera provides the first-person camera used for rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

// FirstPersonCamera sits at the player's eye and carries the look
// rotation. The player body itself is translation only.
type FirstPersonCamera struct {
	Position math.Vec3
	Rotation math.Quat

	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Zoomed bool
	// ZoomFactor divides the FOV while zoomed.
	ZoomFactor float32
}

// NewFirstPersonCamera creates a camera with the given vertical FOV.
func NewFirstPersonCamera(fov float32) *FirstPersonCamera {
	return &FirstPersonCamera{
		Rotation:   math.QuatIdentity(),
		FOV:        fov,
		Near:       0.1,
		Far:        1000,
		ZoomFactor: 2,
	}
}

// Follow places the camera at eye with orientation rot.
func (c *FirstPersonCamera) Follow(eye math.Vec3, rot math.Quat) {
	c.Position = eye
	c.Rotation = rot
}

// EffectiveFOV returns the vertical FOV in degrees, accounting for zoom.
func (c *FirstPersonCamera) EffectiveFOV() float32 {
	if c.Zoomed && c.ZoomFactor > 0 {
		return c.FOV / c.ZoomFactor
	}
	return c.FOV
}

// Forward returns the view direction.
func (c *FirstPersonCamera) Forward() math.Vec3 {
	return c.Rotation.Rotate(math.Vec3{Z: -1})
}

// ViewMatrix returns the world-to-camera transform.
func (c *FirstPersonCamera) ViewMatrix() math.Mat4 {
	return math.Compose(c.Position, c.Rotation, math.Vec3{X: 1, Y: 1, Z: 1}).Inverse()
}

// ProjectionMatrix returns the perspective projection for aspect
// (width / height).
func (c *FirstPersonCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.EffectiveFOV()*math32.Pi/180, aspect, c.Near, c.Far)
}

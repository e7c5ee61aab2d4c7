package player

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Look sensitivities for raw pointer deltas.
const (
	MouseMultiplier float32 = 0.002
	TouchMultiplier float32 = 0.01
)

// PointerLook is a yaw/pitch camera orientation (YXZ order, no roll) with a
// camera-local offset used for head-bob.
type PointerLook struct {
	Yaw   float32
	Pitch float32

	// Pitch is clamped to [π/2 - MaxPolar, π/2 - MinPolar].
	MinPolar float32
	MaxPolar float32

	// Offset is the camera position relative to the actor.
	Offset math.Vec3

	bobActive bool
	bobTimer  float32
}

// NewPointerLook returns a look facing -Z with the full polar range.
func NewPointerLook() *PointerLook {
	return &PointerLook{MinPolar: 0, MaxPolar: math32.Pi}
}

// Update applies a pointer delta scaled by multiplier.
func (l *PointerLook) Update(dx, dy, multiplier float32) {
	l.Yaw -= dx * multiplier
	l.Pitch -= dy * multiplier

	lo := math32.Pi/2 - l.MaxPolar
	hi := math32.Pi/2 - l.MinPolar
	l.Pitch = math32.Max(lo, math32.Min(hi, l.Pitch))
}

// Rotation returns the camera orientation.
func (l *PointerLook) Rotation() math.Quat {
	return math.QuatFromYawPitch(l.Yaw, l.Pitch)
}

// Direction returns the world-space view direction.
func (l *PointerLook) Direction() math.Vec3 {
	sy, cy := math32.Sincos(l.Yaw)
	sp, cp := math32.Sincos(l.Pitch)
	return math.Vec3{X: -sy * cp, Y: sp, Z: -cy * cp}
}

// Right returns the camera right axis. It is always horizontal.
func (l *PointerLook) Right() math.Vec3 {
	sy, cy := math32.Sincos(l.Yaw)
	return math.Vec3{X: cy, Z: -sy}
}

// Forward returns the horizontal forward axis (up x right).
func (l *PointerLook) Forward() math.Vec3 {
	return math.Up.Cross(l.Right())
}

// LookAt points the camera along dir. A zero dir is ignored.
func (l *PointerLook) LookAt(dir math.Vec3) {
	dir = dir.Normalize()
	if dir == (math.Vec3{}) {
		return
	}
	l.Pitch = math32.Asin(math32.Max(-1, math32.Min(1, dir.Y)))
	l.Yaw = math32.Atan2(-dir.X, -dir.Z)
}

// MoveRight returns the displacement for moving d along the right axis.
func (l *PointerLook) MoveRight(d float32) math.Vec3 {
	return l.Right().Scale(d)
}

// MoveForward returns the displacement for moving d along the horizontal
// forward axis. Moving forward by more than a millimetre starts a bob step.
func (l *PointerLook) MoveForward(d float32) math.Vec3 {
	if d > 0.001 {
		l.bobActive = true
	}
	return l.Forward().Scale(d)
}

// HeadBobActive reports whether a bob step is in progress.
func (l *PointerLook) HeadBobActive() bool {
	return l.bobActive
}

// UpdateHeadBob advances the bob by dt seconds at walking speed. The timer
// stops on the next step boundary, ending the step there.
func (l *PointerLook) UpdateHeadBob(dt, speed float32) {
	if !l.bobActive {
		return
	}

	capped := math32.Min(speed, 15)
	verticalFreq := 0.205 * capped
	lateralFreq := 0.1 * capped
	amplitude := 0.0001 * (1 - math32.Exp(-speed/5))
	if verticalFreq <= 0 {
		l.bobActive = false
		return
	}

	const wavelength = 2 * math32.Pi
	nextStep := 1 + math32.Floor((l.bobTimer+0.000001)*verticalFreq/wavelength)
	nextStepTime := nextStep * wavelength / verticalFreq

	l.bobTimer = math32.Min(l.bobTimer+dt, nextStepTime)

	l.Offset.Y += math32.Sin(l.bobTimer*verticalFreq) * amplitude
	l.Offset.X += math32.Cos(l.bobTimer*lateralFreq) * amplitude

	if l.bobTimer == nextStepTime {
		l.bobActive = false
	}
}

package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// floorCollider is one large triangle in the y=0 plane covering x,z in
// roughly [-8, 16].
func floorCollider(t *testing.T) *Collider {
	t.Helper()
	root := scene.NewNode("root")
	root.Add(scene.NewMesh("floor", &scene.Geometry{Positions: []float32{
		-8, 0, -8,
		-8, 0, 24,
		24, 0, -8,
	}}))
	col, err := NewBuilder(nil).Build(root)
	require.NoError(t, err)
	return col
}

func TestResolveNoCollider(t *testing.T) {
	p := Body{Position: math.Vec3{X: 1, Y: 2, Z: 3}, VelocityY: -1, Capsule: NewCapsule(0.4, 2)}
	res := Resolver{GroundCheck: 0.25}.Resolve(nil, p, 0.01)
	assert.Equal(t, p.Position, res.Position)
	assert.Equal(t, float32(-1), res.VelocityY)
	assert.False(t, res.OnGround)
}

func TestResolvePushesOutOfFloor(t *testing.T) {
	col := floorCollider(t)

	// Capsule bottom 0.25 above the floor with radius 0.5: 0.25 penetration.
	p := Body{Position: math.Vec3{X: 1, Y: 1.25, Z: 1}, VelocityY: -2, Capsule: NewCapsule(0.5, 1)}
	res := Resolver{GroundCheck: 0.1}.Resolve(col, p, 0.5)

	assert.InDelta(t, 0.25-restEpsilon, res.Delta.Y, 1e-6)
	assert.InDelta(t, 1.5-restEpsilon, res.Position.Y, 1e-6)
	assert.True(t, res.OnGround)
	assert.InDelta(t, 0.2, res.VelocityY, 1e-6, "damped to 10% and made positive")
}

func TestResolveGroundBoundaryIsStrict(t *testing.T) {
	col := floorCollider(t)

	// Correction is exactly 0.25; |dt * vy * groundCheck| = |0.5 * -2 * 0.25| = 0.25.
	p := Body{Position: math.Vec3{X: 1, Y: 1.25, Z: 1}, VelocityY: -2, Capsule: NewCapsule(0.5, 1)}
	res := Resolver{GroundCheck: 0.25}.Resolve(col, p, 0.5)

	assert.InDelta(t, 0.25-restEpsilon, res.Delta.Y, 1e-6)
	assert.False(t, res.OnGround)
	assert.Equal(t, float32(-2), res.VelocityY, "no damping when airborne")
}

func TestResolveTouchingIsNotPenetrating(t *testing.T) {
	col := floorCollider(t)

	// Bottom point exactly one radius above the floor.
	p := Body{Position: math.Vec3{X: 1, Y: 1.25, Z: 1}, VelocityY: 0, Capsule: NewCapsule(0.25, 1)}
	res := Resolver{GroundCheck: 0.25}.Resolve(col, p, 0.01)

	assert.Equal(t, math.Vec3{}, res.Delta)
	assert.Equal(t, p.Position, res.Position)
	assert.False(t, res.OnGround)
}

func TestResolveClearsPenetration(t *testing.T) {
	root := scene.NewNode("root")
	ramp := scene.NewMesh("ramp", &scene.Geometry{Positions: []float32{
		-5, 0, -5,
		-5, 0, 5,
		5, 3, 0,
	}})
	root.Add(ramp)
	col, err := NewBuilder(nil).Build(root)
	require.NoError(t, err)
	tri := col.Geometry.Triangle(0)

	capsule := NewCapsule(0.4, 1.5)
	positions := []math.Vec3{
		{X: 0, Y: 3.2, Z: 0},
		{X: 1, Y: 3.4, Z: 0.5},
		{X: -2, Y: 2.6, Z: -1},
		{X: 2.5, Y: 3.9, Z: 0},
		{X: 5.2, Y: 3.1, Z: 0},
	}

	for _, pos := range positions {
		before, _, _ := tri.ClosestPointToSegment(capsule.Segment.Translate(pos))
		require.Less(t, before, capsule.Radius, "setup must penetrate at %v", pos)

		res := Resolver{GroundCheck: 0.25}.Resolve(col, Body{Position: pos, Capsule: capsule}, 0.01)

		after, _, _ := tri.ClosestPointToSegment(capsule.Segment.Translate(res.Position))
		assert.GreaterOrEqual(t, after, capsule.Radius-1e-4, "still penetrating at %v", pos)
	}
}

func TestResolveHonoursColliderTransform(t *testing.T) {
	col := floorCollider(t)
	col.MatrixWorld = math.Translate(0, 5, 0)

	p := Body{Position: math.Vec3{X: 1, Y: 6.25, Z: 1}, VelocityY: -2, Capsule: NewCapsule(0.5, 1)}
	res := Resolver{GroundCheck: 0.1}.Resolve(col, p, 0.5)

	assert.InDelta(t, 6.5, res.Position.Y, 1e-4)
	assert.True(t, res.OnGround)
}

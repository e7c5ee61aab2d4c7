package collision

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

// restEpsilon is trimmed from every correction so an actor at rest does not
// jitter on floating-point noise.
const restEpsilon = 1e-5

// Body is the actor state the resolver needs for one sub-step.
type Body struct {
	Position  math.Vec3 // tentative world position (capsule local origin)
	VelocityY float32   // vertical velocity after integration
	Capsule   Capsule
}

// Result is the outcome of one resolution.
type Result struct {
	Position  math.Vec3 // corrected world position
	Delta     math.Vec3 // applied correction
	OnGround  bool
	VelocityY float32 // vertical velocity after ground damping
}

// Resolver pushes a capsule out of collider triangles.
type Resolver struct {
	// GroundCheck scales the vertical push needed to count as ground.
	// Smaller values make ground detection stickier.
	GroundCheck float32
}

// Resolve moves the capsule out of every penetrating triangle, one
// triangle at a time in index traversal order, and classifies the result.
// A nil collider or index leaves the position unchanged and not grounded.
func (r Resolver) Resolve(c *Collider, p Body, dt float32) Result {
	res := Result{Position: p.Position, VelocityY: p.VelocityY}
	if c == nil || c.Index == nil {
		return res
	}

	toLocal := c.MatrixWorld.Inverse()
	actor := math.Translate(p.Position.X, p.Position.Y, p.Position.Z)
	seg := p.Capsule.Segment.ApplyMat4(actor).ApplyMat4(toLocal)
	radius := p.Capsule.Radius

	query := seg.Bounds().ExpandByScalar(radius)

	c.Index.Shapecast(Shapecast{
		IntersectsBounds: func(bounds math.Box3) bool {
			return bounds.Intersects(query)
		},
		IntersectsTriangle: func(tri math.Triangle, _ int) bool {
			dist, triPoint, capsulePoint := tri.ClosestPointToSegment(seg)
			if dist < radius {
				depth := radius - dist
				dir := capsulePoint.Sub(triPoint).Normalize()
				seg = seg.Translate(dir.Scale(depth))
			}
			return false
		},
	})

	corrected := c.MatrixWorld.TransformPoint(seg.Start)
	delta := corrected.Sub(p.Position)

	res.OnGround = delta.Y > math32.Abs(dt*p.VelocityY*r.GroundCheck)

	offset := math32.Max(0, delta.Length()-restEpsilon)
	delta = delta.Normalize().Scale(offset)

	res.Delta = delta
	res.Position = p.Position.Add(delta)
	if res.OnGround {
		res.VelocityY = math32.Abs(p.VelocityY) * 0.1
	}
	return res
}

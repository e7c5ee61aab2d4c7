// Package collision builds the static level collider and resolves the
// player capsule against it.
package collision

import (
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Shapecast is a two-phase query: IntersectsBounds prunes index nodes by
// their bounds, IntersectsTriangle is called for every triangle in a
// surviving leaf. Returning true from IntersectsTriangle stops the query.
type Shapecast struct {
	IntersectsBounds   func(bounds math.Box3) bool
	IntersectsTriangle func(tri math.Triangle, index int) bool
}

// SpatialIndex answers shapecast queries over a fixed triangle mesh in the
// mesh's local space.
type SpatialIndex interface {
	// Shapecast runs the query and reports whether a triangle callback
	// stopped it early.
	Shapecast(sc Shapecast) bool
	// Bounds returns the bounds of all indexed triangles.
	Bounds() math.Box3
}

// Capsule is a segment swept by a sphere of Radius.
type Capsule struct {
	Radius  float32
	Segment math.Segment
}

// NewCapsule returns a capsule whose segment runs from the local origin
// down by height.
func NewCapsule(radius, height float32) Capsule {
	return Capsule{
		Radius: radius,
		Segment: math.Segment{
			Start: math.Vec3{},
			End:   math.Vec3{Y: -height},
		},
	}
}

package collision

import (
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Collider is the merged static level mesh plus its spatial index. Geometry
// is in the collider's local space; MatrixWorld places it in the world.
type Collider struct {
	Geometry    *scene.Geometry
	MatrixWorld math.Mat4
	Index       SpatialIndex
}

// TriangleCount returns the number of triangles in the merged mesh.
func (c *Collider) TriangleCount() int {
	if c == nil || c.Geometry == nil {
		return 0
	}
	return c.Geometry.TriangleCount()
}

// Dispose releases the merged geometry. The collider must not be queried
// afterwards.
func (c *Collider) Dispose() {
	if c == nil {
		return
	}
	if c.Geometry != nil {
		c.Geometry.Dispose()
	}
	c.Index = nil
}

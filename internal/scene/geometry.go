package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

// ErrInvalidGeometry is returned when vertex or index data is malformed.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry is an indexed or non-indexed triangle list. Positions holds xyz
// triples; every other per-vertex stream lives in Attributes.
type Geometry struct {
	Positions  []float32
	Indices    []uint32
	Attributes map[string][]float32

	disposed bool
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return g.VertexCount() / 3
}

// Vertex returns vertex i.
func (g *Geometry) Vertex(i int) math.Vec3 {
	return math.Vec3{X: g.Positions[i*3], Y: g.Positions[i*3+1], Z: g.Positions[i*3+2]}
}

// Triangle returns triangle i.
func (g *Geometry) Triangle(i int) math.Triangle {
	if g.Indices != nil {
		return math.Triangle{
			A: g.Vertex(int(g.Indices[i*3])),
			B: g.Vertex(int(g.Indices[i*3+1])),
			C: g.Vertex(int(g.Indices[i*3+2])),
		}
	}
	return math.Triangle{A: g.Vertex(i * 3), B: g.Vertex(i*3 + 1), C: g.Vertex(i*3 + 2)}
}

// Bounds returns the box around all vertices.
func (g *Geometry) Bounds() math.Box3 {
	b := math.EmptyBox()
	for i := 0; i < g.VertexCount(); i++ {
		b = b.ExpandByPoint(g.Vertex(i))
	}
	return b
}

// Validate checks that positions are whole triples and indices are in range.
func (g *Geometry) Validate() error {
	if len(g.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrInvalidGeometry, len(g.Positions))
	}
	if g.Indices != nil && len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidGeometry, len(g.Indices))
	}
	if g.Indices == nil && g.VertexCount()%3 != 0 {
		return fmt.Errorf("%w: %d vertices do not form whole triangles", ErrInvalidGeometry, g.VertexCount())
	}
	n := uint32(g.VertexCount())
	for i, idx := range g.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (vertices=%d)", ErrInvalidGeometry, idx, i, n)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (g *Geometry) Clone() *Geometry {
	c := &Geometry{
		Positions: append([]float32(nil), g.Positions...),
	}
	if g.Indices != nil {
		c.Indices = append([]uint32(nil), g.Indices...)
	}
	if len(g.Attributes) > 0 {
		c.Attributes = make(map[string][]float32, len(g.Attributes))
		for k, v := range g.Attributes {
			c.Attributes[k] = append([]float32(nil), v...)
		}
	}
	return c
}

// ApplyMatrix transforms positions by m in place. A "normal" attribute is
// rotated with the upper 3x3 and renormalized.
func (g *Geometry) ApplyMatrix(m math.Mat4) {
	for i := 0; i < g.VertexCount(); i++ {
		p := m.TransformPoint(g.Vertex(i))
		g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2] = p.X, p.Y, p.Z
	}
	normals := g.Attributes[AttrNormal]
	normalMat := m.Inverse().Transpose()
	for i := 0; i+2 < len(normals); i += 3 {
		n := normalMat.TransformDirection(math.Vec3{X: normals[i], Y: normals[i+1], Z: normals[i+2]}).Normalize()
		normals[i], normals[i+1], normals[i+2] = n.X, n.Y, n.Z
	}
}

// StripAttributes drops every per-vertex stream except position.
func (g *Geometry) StripAttributes() {
	g.Attributes = nil
}

// Dispose releases the buffers. The geometry is empty afterwards.
func (g *Geometry) Dispose() {
	g.Positions = nil
	g.Indices = nil
	g.Attributes = nil
	g.disposed = true
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Merge concatenates position data from geoms into one indexed geometry.
// Non-indexed inputs get sequential indices.
func Merge(geoms []*Geometry) *Geometry {
	var nPos, nIdx int
	for _, g := range geoms {
		nPos += len(g.Positions)
		if g.Indices != nil {
			nIdx += len(g.Indices)
		} else {
			nIdx += g.VertexCount()
		}
	}

	out := &Geometry{
		Positions: make([]float32, 0, nPos),
		Indices:   make([]uint32, 0, nIdx),
	}
	for _, g := range geoms {
		base := uint32(out.VertexCount())
		out.Positions = append(out.Positions, g.Positions...)
		if g.Indices != nil {
			for _, idx := range g.Indices {
				out.Indices = append(out.Indices, base+idx)
			}
			continue
		}
		for i := 0; i < g.VertexCount(); i++ {
			out.Indices = append(out.Indices, base+uint32(i))
		}
	}
	return out
}

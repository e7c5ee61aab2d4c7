// Package debug generates line geometry for debug views of the collider,
// its bounds and trigger markers.
package debug

import (
	"github.com/Faultbox/gallery-walk/internal/collision"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Vertex is one line endpoint with a color.
type Vertex struct {
	X, Y, Z float32
	R, G, B float32
}

// Color is an RGB triple.
type Color [3]float32

// Debug palette.
var (
	ColliderColor = Color{0.3, 0.8, 0.3}
	BoundsColor   = Color{0.9, 0.9, 0.2}
	MarkerColor   = Color{0.2, 0.6, 1.0}
	ActiveColor   = Color{1.0, 0.5, 0.1}
)

// BoxVertexCount is the number of vertices in a box wireframe (12 edges x 2).
const BoxVertexCount = 24

func vertex(p math.Vec3, c Color) Vertex {
	return Vertex{X: p.X, Y: p.Y, Z: p.Z, R: c[0], G: c[1], B: c[2]}
}

func line(out []Vertex, a, b math.Vec3, c Color) []Vertex {
	return append(out, vertex(a, c), vertex(b, c))
}

// BoxLines returns the 12 edges of b.
func BoxLines(b math.Box3, c Color) []Vertex {
	lo, hi := b.Min, b.Max
	corner := func(x, y, z bool) math.Vec3 {
		p := lo
		if x {
			p.X = hi.X
		}
		if y {
			p.Y = hi.Y
		}
		if z {
			p.Z = hi.Z
		}
		return p
	}

	out := make([]Vertex, 0, BoxVertexCount)
	for _, y := range []bool{false, true} {
		out = line(out, corner(false, y, false), corner(true, y, false), c)
		out = line(out, corner(true, y, false), corner(true, y, true), c)
		out = line(out, corner(true, y, true), corner(false, y, true), c)
		out = line(out, corner(false, y, true), corner(false, y, false), c)
	}
	for _, xz := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		out = line(out, corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]), c)
	}
	return out
}

// ColliderLines returns every triangle edge of the collider in world space.
func ColliderLines(col *collision.Collider, c Color) []Vertex {
	n := col.TriangleCount()
	if n == 0 {
		return nil
	}
	out := make([]Vertex, 0, n*6)
	for i := 0; i < n; i++ {
		tri := col.Geometry.Triangle(i)
		a := col.MatrixWorld.TransformPoint(tri.A)
		b := col.MatrixWorld.TransformPoint(tri.B)
		cc := col.MatrixWorld.TransformPoint(tri.C)
		out = line(out, a, b, c)
		out = line(out, b, cc, c)
		out = line(out, cc, a, c)
	}
	return out
}

// ArrowLines returns a downward-pointing arrow with its tip at tip.
func ArrowLines(tip math.Vec3, size float32, c Color) []Vertex {
	top := tip.Add(math.Vec3{Y: size * 2})
	out := make([]Vertex, 0, 10)
	out = line(out, top, tip, c)
	for _, d := range []math.Vec3{{X: size}, {X: -size}, {Z: size}, {Z: -size}} {
		out = line(out, tip, tip.Add(d.Add(math.Vec3{Y: size})), c)
	}
	return out
}

// Flatten packs vertices as [x, y, z, r, g, b] for upload.
func Flatten(vs []Vertex) []float32 {
	out := make([]float32, 0, len(vs)*6)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return out
}

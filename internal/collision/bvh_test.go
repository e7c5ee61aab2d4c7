package collision

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// gridGeometry returns an n x n grid of unit quads on the XZ plane.
func gridGeometry(n int) *scene.Geometry {
	g := &scene.Geometry{}
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			fx, fz := float32(x), float32(z)
			g.Positions = append(g.Positions,
				fx, 0, fz, fx+1, 0, fz, fx+1, 0, fz+1,
				fx, 0, fz, fx+1, 0, fz+1, fx, 0, fz+1,
			)
		}
	}
	return g
}

func collect(idx SpatialIndex, query math.Box3) []int {
	var hits []int
	idx.Shapecast(Shapecast{
		IntersectsBounds: func(b math.Box3) bool { return b.Intersects(query) },
		IntersectsTriangle: func(tri math.Triangle, i int) bool {
			if tri.Bounds().Intersects(query) {
				hits = append(hits, i)
			}
			return false
		},
	})
	sort.Ints(hits)
	return hits
}

func TestBVHMatchesBruteForce(t *testing.T) {
	g := gridGeometry(8)
	bvh := NewBVH(g)
	require.Equal(t, 128, bvh.TriangleCount())

	queries := []math.Box3{
		{Min: math.Vec3{X: 2.5, Y: -1, Z: 2.5}, Max: math.Vec3{X: 3.5, Y: 1, Z: 3.5}},
		{Min: math.Vec3{X: -5, Y: -1, Z: -5}, Max: math.Vec3{X: 0.1, Y: 1, Z: 0.1}},
		{Min: math.Vec3{X: 0, Y: 2, Z: 0}, Max: math.Vec3{X: 8, Y: 3, Z: 8}},
		{Min: math.Vec3{X: 7.9, Y: 0, Z: 0}, Max: math.Vec3{X: 9, Y: 0, Z: 8}},
	}

	for _, q := range queries {
		var want []int
		for i := 0; i < g.TriangleCount(); i++ {
			if g.Triangle(i).Bounds().Intersects(q) {
				want = append(want, i)
			}
		}
		assert.Equal(t, want, collect(bvh, q), "query %+v", q)
	}
}

func TestBVHIsLazy(t *testing.T) {
	bvh := NewBVH(gridGeometry(8))
	assert.Zero(t, bvh.splits, "construction must not partition")

	collect(bvh, math.Box3{Min: math.Vec3{X: 0, Y: -1, Z: 0}, Max: math.Vec3{X: 1, Y: 1, Z: 1}})
	first := bvh.splits
	assert.Positive(t, first)
	assert.Less(t, first, 31, "only the visited path is partitioned")

	collect(bvh, math.Box3{Min: math.Vec3{X: 0, Y: -1, Z: 0}, Max: math.Vec3{X: 1, Y: 1, Z: 1}})
	assert.Equal(t, first, bvh.splits, "repeat query reuses existing nodes")
}

func TestBVHBounds(t *testing.T) {
	bvh := NewBVH(gridGeometry(3))
	b := bvh.Bounds()
	assert.Equal(t, math.Vec3{}, b.Min)
	assert.Equal(t, math.Vec3{X: 3, Z: 3}, b.Max)

	empty := NewBVH(&scene.Geometry{})
	assert.True(t, empty.Bounds().IsEmpty())
	called := false
	stopped := empty.Shapecast(Shapecast{
		IntersectsBounds:   func(math.Box3) bool { called = true; return true },
		IntersectsTriangle: func(math.Triangle, int) bool { called = true; return true },
	})
	assert.False(t, stopped)
	assert.False(t, called)
}

func TestBVHStopsEarly(t *testing.T) {
	bvh := NewBVH(gridGeometry(4))
	visits := 0
	stopped := bvh.Shapecast(Shapecast{
		IntersectsBounds: func(math.Box3) bool { return true },
		IntersectsTriangle: func(math.Triangle, int) bool {
			visits++
			return visits == 3
		},
	})
	assert.True(t, stopped)
	assert.Equal(t, 3, visits)
}

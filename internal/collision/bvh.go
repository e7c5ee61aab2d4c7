package collision

import (
	"sort"

	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// maxTrianglesPerLeaf is the threshold for splitting BVH nodes.
const maxTrianglesPerLeaf = 4

// bvhNode is either an unsplit leaf holding triangle indices or an internal
// node with two children. Nodes above the leaf threshold are split the first
// time a query reaches them.
type bvhNode struct {
	bounds      math.Box3
	triangles   []int
	left, right *bvhNode
}

func (n *bvhNode) isLeaf() bool {
	return n.left == nil
}

// BVH is a bounding volume hierarchy over a geometry's triangles with lazy
// node generation: construction only computes root bounds, and each node is
// partitioned on first visit. Not safe for concurrent queries.
type BVH struct {
	geometry  *scene.Geometry
	bounds    []math.Box3
	centroids []math.Vec3
	root      *bvhNode
	splits    int
}

// NewBVH indexes g. The geometry must not change while the BVH is in use.
func NewBVH(g *scene.Geometry) *BVH {
	count := g.TriangleCount()
	b := &BVH{
		geometry:  g,
		bounds:    make([]math.Box3, count),
		centroids: make([]math.Vec3, count),
	}
	if count == 0 {
		return b
	}

	all := make([]int, count)
	for i := range all {
		tri := g.Triangle(i)
		b.bounds[i] = tri.Bounds()
		b.centroids[i] = tri.Centroid()
		all[i] = i
	}
	b.root = b.newNode(all)
	return b
}

func (b *BVH) newNode(triangles []int) *bvhNode {
	box := math.EmptyBox()
	for _, t := range triangles {
		box = box.Union(b.bounds[t])
	}
	return &bvhNode{bounds: box, triangles: triangles}
}

// split partitions a node at the centroid median along its longest axis.
func (b *BVH) split(n *bvhNode) {
	if !n.isLeaf() || len(n.triangles) <= maxTrianglesPerLeaf {
		return
	}

	axis := n.bounds.LongestAxis()
	tris := n.triangles
	sort.Slice(tris, func(i, j int) bool {
		return b.centroids[tris[i]].Component(axis) < b.centroids[tris[j]].Component(axis)
	})

	mid := len(tris) / 2
	n.left = b.newNode(tris[:mid])
	n.right = b.newNode(tris[mid:])
	n.triangles = nil
	b.splits++
}

// Bounds implements SpatialIndex.
func (b *BVH) Bounds() math.Box3 {
	if b.root == nil {
		return math.EmptyBox()
	}
	return b.root.bounds
}

// TriangleCount returns the number of indexed triangles.
func (b *BVH) TriangleCount() int {
	return len(b.bounds)
}

// Shapecast implements SpatialIndex.
func (b *BVH) Shapecast(sc Shapecast) bool {
	if b.root == nil {
		return false
	}
	return b.shapecast(b.root, sc)
}

func (b *BVH) shapecast(n *bvhNode, sc Shapecast) bool {
	if sc.IntersectsBounds != nil && !sc.IntersectsBounds(n.bounds) {
		return false
	}

	b.split(n)

	if n.isLeaf() {
		for _, t := range n.triangles {
			if sc.IntersectsTriangle(b.geometry.Triangle(t), t) {
				return true
			}
		}
		return false
	}

	if b.shapecast(n.left, sc) {
		return true
	}
	return b.shapecast(n.right, sc)
}

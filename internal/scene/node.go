// Package scene holds the walkthrough scene graph: named nodes with local
// transforms, optional geometry and user data, plus the YAML level loader.
package scene

import (
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// UserData carries per-node flags read by the collider builder and the
// trigger scanner. Zero values mean "unset".
type UserData struct {
	NonPhysical  bool    `yaml:"nonphysical"`
	Text         string  `yaml:"text"`
	Radius       float32 `yaml:"radius"`
	BobAmplitude float32 `yaml:"bob_amplitude"`
	BobSpeed     float32 `yaml:"bob_speed"`
}

// Node is one element of the scene graph.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	Geometry *Geometry
	UserData UserData

	parent      *Node
	children    []*Node
	matrixWorld math.Mat4
}

// NewNode returns a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:        name,
		Rotation:    math.QuatIdentity(),
		Scale:       math.Vec3{X: 1, Y: 1, Z: 1},
		matrixWorld: math.Identity(),
	}
}

// NewMesh returns a node drawing g.
func NewMesh(name string, g *Geometry) *Node {
	n := NewNode(name)
	n.Geometry = g
	return n
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child. It reports whether child was attached to n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the attached children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// UpdateMatrixWorld recomputes cached world matrices for n and its subtree,
// parents before children.
func (n *Node) UpdateMatrixWorld() {
	parent := math.Identity()
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	}
	n.updateMatrixWorld(parent)
}

func (n *Node) updateMatrixWorld(parent math.Mat4) {
	n.matrixWorld = parent.Mul(n.LocalMatrix())
	for _, c := range n.children {
		c.updateMatrixWorld(n.matrixWorld)
	}
}

// MatrixWorld returns the world matrix cached by the last UpdateMatrixWorld.
func (n *Node) MatrixWorld() math.Mat4 {
	return n.matrixWorld
}

// WorldMatrix computes the world matrix from the current local transforms
// of n and its ancestors, ignoring the cache.
func (n *Node) WorldMatrix() math.Mat4 {
	var chain []*Node
	for p := n; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	m := math.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		m = m.Mul(chain[i].LocalMatrix())
	}
	return m
}

// WorldPosition returns the node origin in world space, freshly sampled.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Position()
}

// Traverse calls fn for n and every descendant, depth-first, parents first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Walk is Traverse with pruning: when fn returns false the node's children
// are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node named name in the subtree, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// MarkNonPhysical flags n and its whole subtree so collider builds skip it.
func (n *Node) MarkNonPhysical() {
	n.Traverse(func(c *Node) {
		c.UserData.NonPhysical = true
	})
}

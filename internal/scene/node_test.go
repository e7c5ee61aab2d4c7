package scene

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

func TestWorldMatrixComposesParents(t *testing.T) {
	root := NewNode("root")
	root.Position = math.Vec3{X: 10}

	arm := NewNode("arm")
	arm.Rotation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, float32(gomath.Pi/2))
	arm.Scale = math.Vec3{X: 2, Y: 2, Z: 2}

	hand := NewNode("hand")
	hand.Position = math.Vec3{X: 1}

	root.Add(arm)
	arm.Add(hand)
	root.UpdateMatrixWorld()

	got := hand.MatrixWorld().Position()
	assert.InDelta(t, 10, got.X, 1e-5)
	assert.InDelta(t, 0, got.Y, 1e-5)
	assert.InDelta(t, -2, got.Z, 1e-5)
	assert.Equal(t, hand.MatrixWorld(), hand.WorldMatrix())
}

func TestWorldPositionIsFresh(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.Add(child)
	root.UpdateMatrixWorld()

	root.Position = math.Vec3{Y: 5}

	assert.Equal(t, math.Vec3{}, child.MatrixWorld().Position(), "cache untouched until update")
	assert.Equal(t, math.Vec3{Y: 5}, child.WorldPosition())
}

func TestAddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")

	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	assert.Same(t, b, c.Parent())
	assert.False(t, a.Remove(c))
}

func TestWalkPrunes(t *testing.T) {
	root := NewNode("root")
	skip := NewNode("skip")
	skip.Add(NewNode("hidden"))
	root.Add(skip, NewNode("visible"))

	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.Name != "skip"
	})

	assert.Equal(t, []string{"root", "skip", "visible"}, seen)
}

func TestFindAndMarkNonPhysical(t *testing.T) {
	root := NewNode("root")
	trigger := NewNode("TextTrigger_intro")
	inner := NewMesh("inner", PlaneGeometry(1, 1))
	trigger.Add(inner)
	root.Add(NewNode("wall"), trigger)

	found := root.Find("inner")
	require.NotNil(t, found)
	assert.Same(t, inner, found)
	assert.Nil(t, root.Find("missing"))

	trigger.MarkNonPhysical()
	assert.True(t, trigger.UserData.NonPhysical)
	assert.True(t, inner.UserData.NonPhysical)
	assert.False(t, root.UserData.NonPhysical)
}

package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

const testLevel = `
name: hall
spawn:
  position: [0, 1.5, 4]
  direction: [0, 0, -2]
nodes:
  - name: Floor
    plane: {width: 20, depth: 20}
  - name: Room
    position: [0, 0, -5]
    children:
      - name: Pillar
        position: [2, 1, 0]
        box: {size: [1, 2, 1]}
      - name: TextTrigger_intro
        position: [0, 1, 0]
        box: {size: [1, 1, 1]}
        user_data:
          text: "Hello"
          radius: 3
  - name: Ramp
    rotation: [0, 0, 30]
    scale: [2, 1, 1]
    triangles:
      positions: [0, 0, 0, 1, 0, 0, 0, 0, 1]
`

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel([]byte(testLevel))
	require.NoError(t, err)

	assert.Equal(t, "hall", lvl.Name)
	assert.Equal(t, math.Vec3{Y: 1.5, Z: 4}, lvl.Spawn.Position)
	assert.Equal(t, math.Vec3{Z: -1}, lvl.Spawn.Direction)

	pillar := lvl.Root.Find("Pillar")
	require.NotNil(t, pillar)
	require.NotNil(t, pillar.Geometry)
	assert.Equal(t, 12, pillar.Geometry.TriangleCount())
	assert.Equal(t, math.Vec3{X: 2, Y: 1, Z: -5}, pillar.MatrixWorld().Position())

	trig := lvl.Root.Find("TextTrigger_intro")
	require.NotNil(t, trig)
	assert.Equal(t, "Hello", trig.UserData.Text)
	assert.Equal(t, float32(3), trig.UserData.Radius)

	ramp := lvl.Root.Find("Ramp")
	require.NotNil(t, ramp)
	assert.Nil(t, ramp.Geometry.Indices)
	assert.Equal(t, float32(2), ramp.Scale.X)
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"two shapes", "nodes:\n  - name: x\n    box: {size: [1,1,1]}\n    plane: {width: 1, depth: 1}\n"},
		{"bad triangles", "nodes:\n  - name: x\n    triangles: {positions: [0, 0, 0, 1]}\n"},
		{"unknown key", "nodes:\n  - name: x\n    colour: red\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLevel), 0644))

	lvl, err := LoadLevel(path)
	require.NoError(t, err)
	assert.Len(t, lvl.Root.Children(), 3)

	_, err = LoadLevel(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBundledGallery(t *testing.T) {
	lvl, err := LoadLevel(filepath.Join("..", "..", "levels", "gallery.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gallery", lvl.Name)
	assert.Equal(t, math.Vec3{Z: -1}, lvl.Spawn.Direction)

	var triggers []string
	lvl.Root.Traverse(func(n *Node) {
		if strings.HasPrefix(n.Name, "TextTrigger") {
			triggers = append(triggers, n.Name)
		}
	})
	assert.Len(t, triggers, 6)

	sculpture := lvl.Root.Find("Sculpture")
	require.NotNil(t, sculpture)
	assert.InDelta(t, 1.5, sculpture.WorldPosition().Y, 1e-5)
}

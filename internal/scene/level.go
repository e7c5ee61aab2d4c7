package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Level is a loaded level: the scene root plus spawn pose.
type Level struct {
	Name  string
	Root  *Node
	Spawn Spawn
}

// Spawn is where the actor starts and which way it faces.
type Spawn struct {
	Position  math.Vec3
	Direction math.Vec3 // zero means "keep the default facing"
}

type levelFile struct {
	Name  string     `yaml:"name"`
	Spawn spawnFile  `yaml:"spawn"`
	Nodes []nodeFile `yaml:"nodes"`
}

type spawnFile struct {
	Position  [3]float32 `yaml:"position"`
	Direction [3]float32 `yaml:"direction"`
}

type nodeFile struct {
	Name      string         `yaml:"name"`
	Position  [3]float32     `yaml:"position"`
	Rotation  [3]float32     `yaml:"rotation"` // Euler XYZ, degrees
	Scale     *[3]float32    `yaml:"scale"`
	Box       *boxFile       `yaml:"box"`
	Plane     *planeFile     `yaml:"plane"`
	Triangles *trianglesFile `yaml:"triangles"`
	UserData  UserData       `yaml:"user_data"`
	Children  []nodeFile     `yaml:"children"`
}

type boxFile struct {
	Size [3]float32 `yaml:"size"`
}

type planeFile struct {
	Width float32 `yaml:"width"`
	Depth float32 `yaml:"depth"`
}

type trianglesFile struct {
	Positions []float32 `yaml:"positions"`
	Indices   []uint32  `yaml:"indices"`
}

// LoadLevel reads a level from a YAML file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// ParseLevel decodes level YAML.
func ParseLevel(data []byte) (*Level, error) {
	var lf levelFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&lf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding level: %w", err)
	}

	root := NewNode(lf.Name)
	for i := range lf.Nodes {
		n, err := lf.Nodes[i].build()
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	root.UpdateMatrixWorld()

	return &Level{
		Name: lf.Name,
		Root: root,
		Spawn: Spawn{
			Position:  vec3(lf.Spawn.Position),
			Direction: vec3(lf.Spawn.Direction).Normalize(),
		},
	}, nil
}

func (nf *nodeFile) build() (*Node, error) {
	n := NewNode(nf.Name)
	n.Position = vec3(nf.Position)
	n.Rotation = math.QuatFromEulerXYZ(radians(nf.Rotation[0]), radians(nf.Rotation[1]), radians(nf.Rotation[2]))
	if nf.Scale != nil {
		n.Scale = vec3(*nf.Scale)
	}
	n.UserData = nf.UserData

	shapes := 0
	if nf.Box != nil {
		n.Geometry = BoxGeometry(nf.Box.Size[0], nf.Box.Size[1], nf.Box.Size[2])
		shapes++
	}
	if nf.Plane != nil {
		n.Geometry = PlaneGeometry(nf.Plane.Width, nf.Plane.Depth)
		shapes++
	}
	if nf.Triangles != nil {
		n.Geometry = &Geometry{Positions: nf.Triangles.Positions, Indices: nf.Triangles.Indices}
		shapes++
	}
	if shapes > 1 {
		return nil, fmt.Errorf("node %q: box, plane and triangles are mutually exclusive", nf.Name)
	}
	if n.Geometry != nil {
		if err := n.Geometry.Validate(); err != nil {
			return nil, fmt.Errorf("node %q: %w", nf.Name, err)
		}
	}

	for i := range nf.Children {
		c, err := nf.Children[i].build()
		if err != nil {
			return nil, err
		}
		n.Add(c)
	}
	return n, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

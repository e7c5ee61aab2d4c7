package scene

// Attribute names understood by the loaders.
const (
	AttrNormal = "normal"
	AttrUV     = "uv"
)

// BoxGeometry returns an axis-aligned box centred on the origin, four
// vertices per face so each face carries its own normal.
func BoxGeometry(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2

	type face struct {
		n       [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}

	g := &Geometry{
		Positions:  make([]float32, 0, 6*4*3),
		Indices:    make([]uint32, 0, 6*6),
		Attributes: map[string][]float32{AttrNormal: make([]float32, 0, 6*4*3), AttrUV: make([]float32, 0, 6*4*2)},
	}
	for i, f := range faces {
		base := uint32(i * 4)
		for _, c := range f.corners {
			g.Positions = append(g.Positions, c[0], c[1], c[2])
			g.Attributes[AttrNormal] = append(g.Attributes[AttrNormal], f.n[0], f.n[1], f.n[2])
		}
		g.Attributes[AttrUV] = append(g.Attributes[AttrUV], 0, 0, 1, 0, 1, 1, 0, 1)
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// PlaneGeometry returns a horizontal quad in the XZ plane facing +Y.
func PlaneGeometry(width, depth float32) *Geometry {
	hx, hz := width/2, depth/2
	return &Geometry{
		Positions: []float32{
			-hx, 0, hz,
			hx, 0, hz,
			hx, 0, -hz,
			-hx, 0, -hz,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Attributes: map[string][]float32{
			AttrNormal: {0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0},
			AttrUV:     {0, 0, 1, 0, 1, 1, 0, 1},
		},
	}
}

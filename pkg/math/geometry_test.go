package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func TestBox3(t *testing.T) {
	b := EmptyBox()
	assert.True(t, b.IsEmpty())

	b = b.ExpandByPoint(Vec3{1, 2, 3}).ExpandByPoint(Vec3{-1, 0, 5})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3{-1, 0, 3}, b.Min)
	assert.Equal(t, Vec3{1, 2, 5}, b.Max)
	assert.Equal(t, 0, b.LongestAxis())

	grown := b.ExpandByScalar(0.5)
	assert.Equal(t, Vec3{-1.5, -0.5, 2.5}, grown.Min)
	assert.True(t, grown.ContainsPoint(Vec3{1.25, 2.25, 5.25}))

	other := Box3{Min: Vec3{1, 2, 5}, Max: Vec3{4, 4, 8}}
	assert.True(t, b.Intersects(other), "touching boxes intersect")
	assert.False(t, b.Intersects(Box3{Min: Vec3{2, 2, 2}, Max: Vec3{3, 3, 3}}))
}

func TestSegmentClosestPointToPoint(t *testing.T) {
	s := Segment{Start: Vec3{0, 0, 0}, End: Vec3{0, 2, 0}}

	tests := []struct {
		name string
		p    Vec3
		want Vec3
	}{
		{"interior", Vec3{1, 1, 0}, Vec3{0, 1, 0}},
		{"before start", Vec3{0, -3, 0}, Vec3{0, 0, 0}},
		{"past end", Vec3{0, 5, 1}, Vec3{0, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec3(t, tt.want, s.ClosestPointToPoint(tt.p), 1e-6)
		})
	}

	degenerate := Segment{Start: Vec3{1, 1, 1}, End: Vec3{1, 1, 1}}
	assert.Equal(t, float32(0), degenerate.ClosestPointToPointParameter(Vec3{4, 4, 4}))
}

func TestClosestPointsSegmentToSegment(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Segment
		wantA Vec3
		wantB Vec3
	}{
		{
			name:  "crossing",
			a:     Segment{Vec3{-1, 0, 0}, Vec3{1, 0, 0}},
			b:     Segment{Vec3{0, 1, -1}, Vec3{0, 1, 1}},
			wantA: Vec3{0, 0, 0},
			wantB: Vec3{0, 1, 0},
		},
		{
			name:  "clamped endpoints",
			a:     Segment{Vec3{0, 0, 0}, Vec3{1, 0, 0}},
			b:     Segment{Vec3{2, 1, 0}, Vec3{3, 1, 0}},
			wantA: Vec3{1, 0, 0},
			wantB: Vec3{2, 1, 0},
		},
		{
			name:  "parallel",
			a:     Segment{Vec3{0, 0, 0}, Vec3{1, 0, 0}},
			b:     Segment{Vec3{0, 1, 0}, Vec3{1, 1, 0}},
			wantA: Vec3{0, 0, 0},
			wantB: Vec3{0, 1, 0},
		},
		{
			name:  "point segment",
			a:     Segment{Vec3{0, 0, 0}, Vec3{2, 0, 0}},
			b:     Segment{Vec3{1, 3, 0}, Vec3{1, 3, 0}},
			wantA: Vec3{1, 0, 0},
			wantB: Vec3{1, 3, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta, tb := ClosestPointsSegmentToSegment(tt.a, tt.b)
			assertVec3(t, tt.wantA, tt.a.At(ta), 1e-5)
			assertVec3(t, tt.wantB, tt.b.At(tb), 1e-5)
		})
	}
}

func TestTriangleClosestPointToPoint(t *testing.T) {
	tri := Triangle{A: Vec3{0, 0, 0}, B: Vec3{2, 0, 0}, C: Vec3{0, 0, 2}}

	tests := []struct {
		name string
		p    Vec3
		want Vec3
	}{
		{"above face", Vec3{0.5, 3, 0.5}, Vec3{0.5, 0, 0.5}},
		{"vertex A region", Vec3{-1, 1, -1}, Vec3{0, 0, 0}},
		{"vertex B region", Vec3{3, 0, -1}, Vec3{2, 0, 0}},
		{"edge AB region", Vec3{1, 0, -1}, Vec3{1, 0, 0}},
		{"hypotenuse region", Vec3{2, 0, 2}, Vec3{1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec3(t, tt.want, tri.ClosestPointToPoint(tt.p), 1e-5)
		})
	}
}

func TestTriangleClosestPointToSegment(t *testing.T) {
	floor := Triangle{A: Vec3{-10, 0, -10}, B: Vec3{-10, 0, 10}, C: Vec3{10, 0, -10}}

	// Vertical segment hovering above the face: nearest is the lower endpoint.
	s := Segment{Start: Vec3{-1, 1.5, -1}, End: Vec3{-1, 0.3, -1}}
	dist, onTri, onSeg := floor.ClosestPointToSegment(s)
	assert.InDelta(t, 0.3, dist, 1e-5)
	assertVec3(t, Vec3{-1, 0, -1}, onTri, 1e-5)
	assertVec3(t, Vec3{-1, 0.3, -1}, onSeg, 1e-5)

	// Horizontal segment passing beside an edge.
	wall := Triangle{A: Vec3{0, 0, 0}, B: Vec3{0, 2, 0}, C: Vec3{0, 0, 2}}
	s = Segment{Start: Vec3{1, 1, -1}, End: Vec3{1, 1, 3}}
	dist, _, _ = wall.ClosestPointToSegment(s)
	assert.InDelta(t, 1.0, dist, 1e-5)
}

package math

import "github.com/chewxy/math32"

// Triangle is three vertices in world or local space.
type Triangle struct {
	A, B, C Vec3
}

// Bounds returns the triangle's bounding box.
func (t Triangle) Bounds() Box3 {
	return EmptyBox().ExpandByPoint(t.A).ExpandByPoint(t.B).ExpandByPoint(t.C)
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// Normal returns the unit face normal, or zero for a degenerate triangle.
func (t Triangle) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// ClosestPointToPoint returns the point on the triangle nearest to p using
// Voronoi region classification.
func (t Triangle) ClosestPointToPoint(p Vec3) Vec3 {
	a, b, c := t.A, t.B, t.C
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.AddScaled(ab, v)
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.AddScaled(ac, w)
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.AddScaled(c.Sub(b), w)
	}

	denom := va + vb + vc
	if denom == 0 {
		// Degenerate (collinear) triangle: fall back to the nearest edge point.
		return t.closestEdgePoint(p)
	}
	inv := 1 / denom
	v := vb * inv
	w := vc * inv
	return a.AddScaled(ab, v).AddScaled(ac, w)
}

func (t Triangle) closestEdgePoint(p Vec3) Vec3 {
	best := Segment{t.A, t.B}.ClosestPointToPoint(p)
	bestD := best.DistanceSq(p)
	for _, e := range []Segment{{t.B, t.C}, {t.C, t.A}} {
		q := e.ClosestPointToPoint(p)
		if d := q.DistanceSq(p); d < bestD {
			best, bestD = q, d
		}
	}
	return best
}

// ClosestPointToSegment returns the distance between the triangle and the
// segment along with the closest point on each. The minimum is taken over
// the three triangle edges against the segment and the two segment endpoints
// against the triangle face; a segment piercing the face is not detected.
func (t Triangle) ClosestPointToSegment(s Segment) (dist float32, onTriangle, onSegment Vec3) {
	minDistSq := math32.Inf(1)

	edges := [3]Segment{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
	for _, edge := range edges {
		te, ts := ClosestPointsSegmentToSegment(edge, s)
		pe := edge.At(te)
		ps := s.At(ts)
		if d := pe.DistanceSq(ps); d < minDistSq {
			minDistSq = d
			onTriangle = pe
			onSegment = ps
		}
	}

	for _, p := range [2]Vec3{s.Start, s.End} {
		q := t.ClosestPointToPoint(p)
		if d := q.DistanceSq(p); d < minDistSq {
			minDistSq = d
			onTriangle = q
			onSegment = p
		}
	}

	return math32.Sqrt(minDistSq), onTriangle, onSegment
}

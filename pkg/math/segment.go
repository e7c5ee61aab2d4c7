package math

import "github.com/chewxy/math32"

// Segment is a finite line segment from Start to End.
type Segment struct {
	Start, End Vec3
}

// Delta returns End - Start.
func (s Segment) Delta() Vec3 {
	return s.End.Sub(s.Start)
}

// At returns the point at parameter t along the segment.
func (s Segment) At(t float32) Vec3 {
	return s.Start.AddScaled(s.Delta(), t)
}

// ClosestPointToPointParameter returns the clamped parameter in [0, 1] of
// the point on the segment nearest to p. A zero-length segment returns 0.
func (s Segment) ClosestPointToPointParameter(p Vec3) float32 {
	d := s.Delta()
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return 0
	}
	t := p.Sub(s.Start).Dot(d) / lenSq
	return clamp01(t)
}

// ClosestPointToPoint returns the point on the segment nearest to p.
func (s Segment) ClosestPointToPoint(p Vec3) Vec3 {
	return s.At(s.ClosestPointToPointParameter(p))
}

// ApplyMat4 transforms both endpoints by m.
func (s Segment) ApplyMat4(m Mat4) Segment {
	return Segment{Start: m.TransformPoint(s.Start), End: m.TransformPoint(s.End)}
}

// Translate moves both endpoints by v.
func (s Segment) Translate(v Vec3) Segment {
	return Segment{Start: s.Start.Add(v), End: s.End.Add(v)}
}

// Bounds returns the box spanned by the endpoints.
func (s Segment) Bounds() Box3 {
	return EmptyBox().ExpandByPoint(s.Start).ExpandByPoint(s.End)
}

// ClosestPointsSegmentToSegment returns the parameters (ta, tb) of the closest
// pair of points between segments a and b, each clamped to [0, 1].
func ClosestPointsSegmentToSegment(a, b Segment) (float32, float32) {
	ta, tb := closestPointLineToLine(a, b)

	switch {
	case ta >= 0 && ta <= 1 && tb >= 0 && tb <= 1:
		return ta, tb

	case ta >= 0 && ta <= 1:
		// Clamp b, then re-project onto a.
		tb = clamp01(tb)
		ta = a.ClosestPointToPointParameter(b.At(tb))
		return ta, tb

	case tb >= 0 && tb <= 1:
		ta = clamp01(ta)
		tb = b.ClosestPointToPointParameter(a.At(ta))
		return ta, tb

	default:
		// Both out of range: try both clamped endpoints and keep the closer pair.
		ca := clamp01(ta)
		cb := b.ClosestPointToPointParameter(a.At(ca))
		d1 := a.At(ca).DistanceSq(b.At(cb))

		cb2 := clamp01(tb)
		ca2 := a.ClosestPointToPointParameter(b.At(cb2))
		d2 := a.At(ca2).DistanceSq(b.At(cb2))

		if d1 <= d2 {
			return ca, cb
		}
		return ca2, cb2
	}
}

// closestPointLineToLine solves for the closest points between the infinite
// lines through a and b. Parallel lines return (0, projection of a.Start).
func closestPointLineToLine(a, b Segment) (float32, float32) {
	v0 := a.Start
	v10 := a.Delta()
	v2 := b.Start
	v32 := b.Delta()
	v02 := v0.Sub(v2)

	d0232 := v02.Dot(v32)
	d3210 := v32.Dot(v10)
	d3232 := v32.Dot(v32)
	d0210 := v02.Dot(v10)
	d1010 := v10.Dot(v10)

	if d3232 == 0 {
		// b is a point.
		return a.ClosestPointToPointParameter(v2), 0
	}

	denom := d1010*d3232 - d3210*d3210
	var d float32
	if denom != 0 {
		d = (d0232*d3210 - d0210*d3232) / denom
	}
	return d, (d0232 + d*d3210) / d3232
}

func clamp01(t float32) float32 {
	return math32.Max(0, math32.Min(1, t))
}

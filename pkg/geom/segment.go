package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Tolerance is the absolute distance (cm) below which two points are
// considered coincident.
const Tolerance = 1e-6

// Segment is a straight line from A to B.
type Segment struct {
	A, B r2.Vec
}

// Vector returns B - A.
func (s Segment) Vector() r2.Vec { return r2.Sub(s.B, s.A) }

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return r2.Norm(s.Vector()) }

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() r2.Vec { return s.At(0.5) }

// At returns the point at parameter t, where t=0 is A and t=1 is B.
func (s Segment) At(t float64) r2.Vec {
	return r2.Add(s.A, r2.Scale(t, s.Vector()))
}

// Reversed returns the segment with its endpoints swapped.
func (s Segment) Reversed() Segment { return Segment{A: s.B, B: s.A} }

// Degenerate reports whether the segment is shorter than [Tolerance].
func (s Segment) Degenerate() bool { return s.Length() < Tolerance }

// Bounds returns the axis-aligned bounding box of the segment.
func (s Segment) Bounds() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Min(s.A.X, s.B.X), Y: math.Min(s.A.Y, s.B.Y)},
		Max: r2.Vec{X: math.Max(s.A.X, s.B.X), Y: math.Max(s.A.Y, s.B.Y)},
	}
}

// Project returns the parameter of the point on the segment's supporting line
// closest to p. The result is not clamped to [0, 1].
func (s Segment) Project(p r2.Vec) float64 {
	v := s.Vector()
	l2 := r2.Norm2(v)
	if l2 == 0 {
		return 0
	}
	return r2.Dot(r2.Sub(p, s.A), v) / l2
}

// ClosestPoint returns the point on the segment closest to p.
func (s Segment) ClosestPoint(p r2.Vec) r2.Vec {
	return s.At(clamp01(s.Project(p)))
}

// Distance returns the distance from p to the closest point of the segment.
func (s Segment) Distance(p r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, s.ClosestPoint(p)))
}

// Contains reports whether p lies on the segment within tol.
func (s Segment) Contains(p r2.Vec, tol float64) bool {
	return s.Distance(p) <= tol
}

// Orientation returns twice the signed area of the triangle abc. It is
// positive when c lies to the left of the directed line ab.
func Orientation(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

// Dist returns the distance between two points.
func Dist(p, q r2.Vec) float64 { return r2.Norm(r2.Sub(p, q)) }

// Near reports whether p and q are within tol of each other.
func Near(p, q r2.Vec, tol float64) bool { return Dist(p, q) <= tol }

// IntersectionKind classifies the result of [Intersect].
type IntersectionKind int

const (
	// Disjoint means the segments share no point.
	Disjoint IntersectionKind = iota
	// Point means the segments meet at exactly one point.
	Point
	// Overlap means the segments are collinear and share a stretch of
	// positive length.
	Overlap
)

// Intersection describes how two segments meet.
//
// For [Point], P is the meeting point and S, T are its parameters on the
// first and second segment. For [Overlap], P and Q are the ends of the
// shared stretch and S, T hold the parameters of P and Q on the first
// segment.
type Intersection struct {
	Kind IntersectionKind
	P, Q r2.Vec
	S, T float64
}

// Intersect computes the intersection of segments s and t using [Tolerance].
func Intersect(s, t Segment) Intersection {
	r, q := s.Vector(), t.Vector()
	lr, lq := r2.Norm(r), r2.Norm(q)

	switch {
	case lr < Tolerance && lq < Tolerance:
		if Near(s.A, t.A, Tolerance) {
			return Intersection{Kind: Point, P: s.A}
		}
		return Intersection{}
	case lr < Tolerance:
		if t.Contains(s.A, Tolerance) {
			return Intersection{Kind: Point, P: s.A, T: clamp01(t.Project(s.A))}
		}
		return Intersection{}
	case lq < Tolerance:
		if s.Contains(t.A, Tolerance) {
			return Intersection{Kind: Point, P: t.A, S: clamp01(s.Project(t.A))}
		}
		return Intersection{}
	}

	qp := r2.Sub(t.A, s.A)
	denom := r2.Cross(r, q)

	if math.Abs(denom) <= 1e-12*lr*lq {
		// Parallel. Collinear only if t.A lies on the line through s.
		if math.Abs(r2.Cross(qp, r))/lr > Tolerance {
			return Intersection{}
		}
		return collinear(s, t, lr)
	}

	ts := r2.Cross(qp, q) / denom
	us := r2.Cross(qp, r) / denom
	es, et := Tolerance/lr, Tolerance/lq
	if ts < -es || ts > 1+es || us < -et || us > 1+et {
		return Intersection{}
	}
	ts, us = clamp01(ts), clamp01(us)
	p := s.At(ts)
	// Snap to an existing endpoint so touching segments report exact vertices.
	for _, e := range [...]r2.Vec{s.A, s.B, t.A, t.B} {
		if Near(p, e, Tolerance) {
			p = e
			break
		}
	}
	return Intersection{Kind: Point, P: p, S: ts, T: us}
}

func collinear(s, t Segment, lr float64) Intersection {
	t0, t1 := s.Project(t.A), s.Project(t.B)
	lo, hi := math.Max(0, math.Min(t0, t1)), math.Min(1, math.Max(t0, t1))
	e := Tolerance / lr
	if hi < lo-e {
		return Intersection{}
	}
	if (hi-lo)*lr <= Tolerance {
		m := clamp01((lo + hi) / 2)
		return Intersection{Kind: Point, P: s.At(m), S: m, T: clamp01(t.Project(s.At(m)))}
	}
	return Intersection{Kind: Overlap, P: s.At(lo), Q: s.At(hi), S: lo, T: hi}
}

// Crosses reports whether the interiors of s and t meet. Segments that only
// share an endpoint, or where one segment's endpoint rests on the other, do
// not cross. Collinear segments overlapping with positive length do.
func Crosses(s, t Segment) bool {
	in := Intersect(s, t)
	switch in.Kind {
	case Overlap:
		return true
	case Point:
		return interior(s, in.P) && interior(t, in.P)
	}
	return false
}

func interior(s Segment, p r2.Vec) bool {
	return !Near(p, s.A, Tolerance) && !Near(p, s.B, Tolerance)
}

// Angle returns the direction of the segment in degrees from vertical,
// positive when the segment leans right going upward. The result lies in
// [-90, 90]: a segment and its reverse report the same angle.
func (s Segment) Angle() float64 {
	v := s.Vector()
	if v.Y < 0 || (v.Y == 0 && v.X < 0) {
		v = r2.Scale(-1, v)
	}
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.X, v.Y) * 180 / math.Pi
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

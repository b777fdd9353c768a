package geom

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is a simple ring of vertices. The ring is implicitly closed: the
// last vertex connects back to the first and is not repeated.
type Polygon []r2.Vec

// NewPolygon builds a polygon from pts, dropping consecutive duplicates and
// an explicit closing vertex if present.
func NewPolygon(pts []r2.Vec) Polygon {
	out := make(Polygon, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && Near(out[len(out)-1], p, Tolerance) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && Near(out[0], out[len(out)-1], Tolerance) {
		out = out[:len(out)-1]
	}
	return out
}

// SignedArea returns the shoelace area, positive for counter-clockwise rings.
func (p Polygon) SignedArea() float64 {
	var a float64
	for i, v := range p {
		w := p[(i+1)%len(p)]
		a += v.X*w.Y - w.X*v.Y
	}
	return a / 2
}

// Area returns the absolute enclosed area.
func (p Polygon) Area() float64 { return math.Abs(p.SignedArea()) }

// CCW returns the polygon with counter-clockwise winding.
func (p Polygon) CCW() Polygon {
	if p.SignedArea() >= 0 {
		return p
	}
	q := slices.Clone(p)
	slices.Reverse(q)
	return q
}

// Edges returns the boundary segments in ring order.
func (p Polygon) Edges() []Segment {
	edges := make([]Segment, len(p))
	for i, v := range p {
		edges[i] = Segment{A: v, B: p[(i+1)%len(p)]}
	}
	return edges
}

// Perimeter returns the total boundary length.
func (p Polygon) Perimeter() float64 {
	var l float64
	for _, e := range p.Edges() {
		l += e.Length()
	}
	return l
}

// Bounds returns the axis-aligned bounding box.
func (p Polygon) Bounds() r2.Box {
	if len(p) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		b.Min.X, b.Min.Y = math.Min(b.Min.X, v.X), math.Min(b.Min.Y, v.Y)
		b.Max.X, b.Max.Y = math.Max(b.Max.X, v.X), math.Max(b.Max.Y, v.Y)
	}
	return b
}

// Centroid returns the area centroid, or the vertex mean for degenerate rings.
func (p Polygon) Centroid() r2.Vec {
	a := p.SignedArea()
	if math.Abs(a) < Tolerance {
		var c r2.Vec
		for _, v := range p {
			c = r2.Add(c, v)
		}
		return r2.Scale(1/float64(max(len(p), 1)), c)
	}
	var cx, cy float64
	for i, v := range p {
		w := p[(i+1)%len(p)]
		f := v.X*w.Y - w.X*v.Y
		cx += (v.X + w.X) * f
		cy += (v.Y + w.Y) * f
	}
	return r2.Vec{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Contains reports whether pt lies strictly inside the ring by the even-odd
// rule. Points on the boundary give an unspecified answer; combine with
// [Polygon.OnBoundary] when that matters.
func (p Polygon) Contains(pt r2.Vec) bool {
	in := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				in = !in
			}
		}
	}
	return in
}

// DistanceToBoundary returns the distance from pt to the nearest boundary
// edge.
func (p Polygon) DistanceToBoundary(pt r2.Vec) float64 {
	d := math.Inf(1)
	for _, e := range p.Edges() {
		d = math.Min(d, e.Distance(pt))
	}
	return d
}

// SignedDistance is positive inside the polygon and negative outside.
func (p Polygon) SignedDistance(pt r2.Vec) float64 {
	d := p.DistanceToBoundary(pt)
	if p.Contains(pt) {
		return d
	}
	return -d
}

// OnBoundary reports whether pt lies within tol of the boundary.
func (p Polygon) OnBoundary(pt r2.Vec, tol float64) bool {
	return p.DistanceToBoundary(pt) <= tol
}

// CoversPoint reports whether pt is inside the polygon or within tol of its
// boundary.
func (p Polygon) CoversPoint(pt r2.Vec, tol float64) bool {
	return p.Contains(pt) || p.OnBoundary(pt, tol)
}

// Covers reports whether every point of seg is inside the polygon or within
// tol of its boundary.
//
// The segment is split at every boundary contact. Between two consecutive
// contacts it cannot change sides, so probing each piece's midpoint decides
// the whole piece.
func (p Polygon) Covers(seg Segment, tol float64) bool {
	if !p.CoversPoint(seg.A, tol) || !p.CoversPoint(seg.B, tol) {
		return false
	}
	ts := []float64{0, 1}
	for _, e := range p.Edges() {
		in := Intersect(seg, e)
		switch in.Kind {
		case Point:
			ts = append(ts, in.S)
		case Overlap:
			ts = append(ts, in.S, in.T)
		}
	}
	slices.Sort(ts)
	l := seg.Length()
	for i := 1; i < len(ts); i++ {
		if (ts[i]-ts[i-1])*l <= Tolerance {
			continue
		}
		if !p.CoversPoint(seg.At((ts[i-1]+ts[i])/2), tol) {
			return false
		}
	}
	return true
}

// Intersections returns the distinct points where seg meets the boundary,
// ordered by distance from seg.A. Collinear contacts contribute both ends of
// the shared stretch.
func (p Polygon) Intersections(seg Segment) []r2.Vec {
	type hit struct {
		t  float64
		pt r2.Vec
	}
	var hits []hit
	for _, e := range p.Edges() {
		in := Intersect(seg, e)
		switch in.Kind {
		case Point:
			hits = append(hits, hit{in.S, in.P})
		case Overlap:
			hits = append(hits, hit{in.S, in.P}, hit{in.T, in.Q})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		switch {
		case a.t < b.t:
			return -1
		case a.t > b.t:
			return 1
		}
		return 0
	})
	var out []r2.Vec
	for _, h := range hits {
		if len(out) > 0 && Near(out[len(out)-1], h.pt, Tolerance) {
			continue
		}
		out = append(out, h.pt)
	}
	return out
}

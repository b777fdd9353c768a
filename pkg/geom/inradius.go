package geom

import (
	"container/heap"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Inradius returns the pole of inaccessibility of p (the interior point
// farthest from the boundary) and its distance to the boundary, which is the
// radius of the largest circle inscribed in p. The radius is exact to within
// precision; a non-positive precision selects 0.1% of the shorter bounding
// box side.
//
// The search covers the bounding box with square cells, then repeatedly
// splits the cell whose centre distance plus half-diagonal promises the
// largest radius, discarding cells that cannot beat the best radius found by
// more than precision.
func Inradius(p Polygon, precision float64) (r2.Vec, float64) {
	if len(p) < 3 {
		return p.Centroid(), 0
	}
	b := p.Bounds()
	w, h := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	size := math.Min(w, h)
	if size < Tolerance {
		return p.Centroid(), 0
	}
	if precision <= 0 {
		precision = size * 1e-3
	}

	q := &cellQueue{}
	half := size / 2
	for x := b.Min.X; x < b.Max.X; x += size {
		for y := b.Min.Y; y < b.Max.Y; y += size {
			heap.Push(q, newCell(r2.Vec{X: x + half, Y: y + half}, half, p))
		}
	}

	best := newCell(p.Centroid(), 0, p)
	if c := newCell(r2.Vec{X: b.Min.X + w/2, Y: b.Min.Y + h/2}, 0, p); c.d > best.d {
		best = c
	}

	for q.Len() > 0 {
		c := heap.Pop(q).(cell)
		if c.d > best.d {
			best = c
		}
		if c.max-best.d <= precision {
			continue
		}
		hh := c.h / 2
		for _, o := range [...]r2.Vec{{X: -hh, Y: -hh}, {X: hh, Y: -hh}, {X: -hh, Y: hh}, {X: hh, Y: hh}} {
			heap.Push(q, newCell(r2.Add(c.c, o), hh, p))
		}
	}
	return best.c, math.Max(best.d, 0)
}

// cell is a square search region: centre c, half-size h, signed distance d
// from c to the polygon boundary and the best distance any point inside the
// cell could reach.
type cell struct {
	c   r2.Vec
	h   float64
	d   float64
	max float64
}

func newCell(c r2.Vec, h float64, p Polygon) cell {
	d := p.SignedDistance(c)
	return cell{c: c, h: h, d: d, max: d + h*math.Sqrt2}
}

// cellQueue is a max-heap on cell.max.
type cellQueue []cell

func (q cellQueue) Len() int           { return len(q) }
func (q cellQueue) Less(i, j int) bool { return q[i].max > q[j].max }
func (q cellQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x any)        { *q = append(*q, x.(cell)) }
func (q *cellQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[:n-1]
	return c
}

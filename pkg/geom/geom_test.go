package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func v(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func rect(w, h float64) Polygon {
	return NewPolygon([]r2.Vec{v(0, 0), v(w, 0), v(w, h), v(0, h)})
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		s, u Segment
		kind IntersectionKind
		p    r2.Vec
	}{
		{"crossing", Segment{v(0, 0), v(10, 10)}, Segment{v(0, 10), v(10, 0)}, Point, v(5, 5)},
		{"shared endpoint", Segment{v(0, 0), v(10, 0)}, Segment{v(10, 0), v(10, 10)}, Point, v(10, 0)},
		{"t-junction", Segment{v(0, 0), v(10, 0)}, Segment{v(5, 0), v(5, 10)}, Point, v(5, 0)},
		{"disjoint", Segment{v(0, 0), v(10, 0)}, Segment{v(0, 1), v(10, 1)}, Disjoint, r2.Vec{}},
		{"apart on line", Segment{v(0, 0), v(1, 0)}, Segment{v(2, 0), v(3, 0)}, Disjoint, r2.Vec{}},
		{"overlap", Segment{v(0, 0), v(10, 0)}, Segment{v(5, 0), v(15, 0)}, Overlap, v(5, 0)},
		{"miss", Segment{v(0, 0), v(1, 1)}, Segment{v(3, 0), v(2, 1)}, Disjoint, r2.Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Intersect(tt.s, tt.u)
			require.Equal(t, tt.kind, in.Kind)
			if tt.kind != Disjoint {
				assert.InDelta(t, tt.p.X, in.P.X, 1e-9)
				assert.InDelta(t, tt.p.Y, in.P.Y, 1e-9)
			}
		})
	}
}

func TestCrosses(t *testing.T) {
	base := Segment{v(0, 0), v(10, 10)}
	assert.True(t, Crosses(base, Segment{v(0, 10), v(10, 0)}), "diagonals cross")
	assert.False(t, Crosses(base, Segment{v(10, 10), v(20, 0)}), "shared endpoint only touches")
	assert.False(t, Crosses(base, Segment{v(5, 5), v(10, 0)}), "endpoint resting on interior touches")
	assert.True(t, Crosses(base, Segment{v(5, 5), v(15, 15)}), "collinear overlap")
	assert.False(t, Crosses(base, Segment{v(1, 0), v(11, 10)}), "parallel")
}

func TestSegmentAngle(t *testing.T) {
	assert.InDelta(t, 0, Segment{v(0, 0), v(0, 100)}.Angle(), 1e-9)
	assert.InDelta(t, 0, Segment{v(0, 100), v(0, 0)}.Angle(), 1e-9)
	assert.InDelta(t, 90, Segment{v(0, 0), v(100, 0)}.Angle(), 1e-9)
	assert.InDelta(t, math.Atan(0.5)*180/math.Pi, Segment{v(0, 0), v(50, 100)}.Angle(), 1e-9)
	assert.InDelta(t, -45, Segment{v(10, 0), v(0, 10)}.Angle(), 1e-9)
}

func TestPolygonBasics(t *testing.T) {
	p := NewPolygon([]r2.Vec{v(0, 0), v(200, 0), v(200, 100), v(0, 100), v(0, 0)})
	require.Len(t, p, 4, "closing vertex dropped")
	assert.InDelta(t, 20000, p.Area(), 1e-9)
	assert.InDelta(t, 600, p.Perimeter(), 1e-9)
	assert.True(t, p.Contains(v(100, 50)))
	assert.False(t, p.Contains(v(250, 50)))
	assert.InDelta(t, 50, p.DistanceToBoundary(v(100, 50)), 1e-9)
	assert.Less(t, p.SignedDistance(v(-1, 50)), 0.0)

	cw := NewPolygon([]r2.Vec{v(0, 0), v(0, 100), v(200, 100), v(200, 0)})
	assert.Less(t, cw.SignedArea(), 0.0)
	assert.Greater(t, cw.CCW().SignedArea(), 0.0)
}

func TestPolygonCovers(t *testing.T) {
	// L-shaped frame: the notch at the top right is outside.
	l := NewPolygon([]r2.Vec{v(0, 0), v(100, 0), v(100, 50), v(50, 50), v(50, 100), v(0, 100)})

	tests := []struct {
		name string
		seg  Segment
		want bool
	}{
		{"inside", Segment{v(10, 10), v(40, 90)}, true},
		{"boundary to boundary", Segment{v(0, 20), v(100, 20)}, true},
		{"along edge", Segment{v(0, 0), v(100, 0)}, true},
		{"cuts notch", Segment{v(100, 10), v(20, 100)}, false},
		{"outside", Segment{v(120, 10), v(130, 20)}, false},
		{"within tolerance", Segment{v(-0.05, 10), v(-0.05, 20)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Covers(tt.seg, 0.1))
		})
	}
}

func TestPolygonIntersections(t *testing.T) {
	p := rect(200, 100)
	pts := p.Intersections(Segment{v(-50, 50), v(250, 50)})
	require.Len(t, pts, 2)
	assert.InDelta(t, 0, pts[0].X, 1e-9)
	assert.InDelta(t, 200, pts[1].X, 1e-9)
}

func TestNode(t *testing.T) {
	segs := []Segment{
		{v(0, 0), v(10, 10)},
		{v(0, 10), v(10, 0)},
	}
	noded := Node(segs)
	assert.Len(t, noded, 4)
	for i := range noded {
		for j := i + 1; j < len(noded); j++ {
			assert.False(t, Crosses(noded[i], noded[j]))
		}
	}

	// Duplicate and overlapping input collapses.
	noded = Node([]Segment{{v(0, 0), v(10, 0)}, {v(0, 0), v(10, 0)}, {v(5, 0), v(15, 0)}})
	var total float64
	for _, s := range noded {
		total += s.Length()
	}
	assert.InDelta(t, 15, total, 1e-9)
}

func TestPolygonize(t *testing.T) {
	frame := rect(200, 100).Edges()

	t.Run("empty frame", func(t *testing.T) {
		faces := Polygonize(frame)
		require.Len(t, faces, 1)
		assert.InDelta(t, 20000, faces[0].Area(), 1e-6)
	})

	t.Run("one divider", func(t *testing.T) {
		segs := append(append([]Segment{}, frame...), Segment{v(100, 0), v(100, 100)})
		faces := Polygonize(segs)
		require.Len(t, faces, 2)
		for _, f := range faces {
			assert.InDelta(t, 10000, f.Area(), 1e-6)
		}
	})

	t.Run("crossing diagonals", func(t *testing.T) {
		segs := append(append([]Segment{}, frame...),
			Segment{v(0, 0), v(200, 100)},
			Segment{v(0, 100), v(200, 0)})
		faces := Polygonize(segs)
		require.Len(t, faces, 4)
		var total float64
		for _, f := range faces {
			total += f.Area()
		}
		assert.InDelta(t, 20000, total, 1e-6)
	})

	t.Run("dangling edge ignored", func(t *testing.T) {
		segs := append(append([]Segment{}, frame...), Segment{v(100, 0), v(100, 50)})
		faces := Polygonize(segs)
		require.Len(t, faces, 1)
		assert.InDelta(t, 20000, faces[0].Area(), 1e-6)
	})

	t.Run("open chain", func(t *testing.T) {
		assert.Empty(t, Polygonize(frame[:3]))
	})
}

func TestInradius(t *testing.T) {
	c, r := Inradius(rect(200, 100), 0.01)
	assert.InDelta(t, 50, r, 0.01)
	assert.InDelta(t, 50, c.Y, 0.5)

	tri := NewPolygon([]r2.Vec{v(0, 0), v(3, 0), v(0, 4)})
	_, r = Inradius(tri, 1e-4)
	assert.InDelta(t, 1, r, 1e-3) // (a+b-c)/2 for a 3-4-5 right triangle
}

package anchor

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/railfill/pkg/geom"
	"github.com/matzehuels/railfill/pkg/railing"
)

func v(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func newRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }

func rectFrame(t *testing.T) *railing.Frame {
	t.Helper()
	f, err := railing.FrameFromVertices([]r2.Vec{v(0, 0), v(200, 0), v(200, 100), v(0, 100)}, 0.5)
	require.NoError(t, err)
	return f
}

func TestIsVertical(t *testing.T) {
	tests := []struct {
		name string
		seg  geom.Segment
		want bool
	}{
		{"upright", geom.Segment{A: v(0, 0), B: v(0, 100)}, true},
		{"upright reversed", geom.Segment{A: v(0, 100), B: v(0, 0)}, true},
		{"slight lean", geom.Segment{A: v(0, 0), B: v(5, 100)}, true},
		{"at threshold", geom.Segment{A: v(0, 0), B: v(10, 100)}, false},
		{"ratio 0.5", geom.Segment{A: v(0, 0), B: v(50, 100)}, false},
		{"horizontal", geom.Segment{A: v(0, 0), B: v(100, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVertical(tt.seg))
		})
	}
}

func TestSpacing(t *testing.T) {
	s := Spacing{Vertical: 15, Other: 5}
	assert.Equal(t, 15.0, s.For(true))
	assert.Equal(t, 5.0, s.For(false))
	assert.Equal(t, Spacing{Vertical: 8, Other: 8}, Uniform(8))
	assert.NoError(t, s.Validate())
	assert.Error(t, Spacing{Vertical: 0, Other: 5}.Validate())
}

func TestGenerate(t *testing.T) {
	f := rectFrame(t)
	spacing := Spacing{Vertical: 15, Other: 5}
	anchors := Generate(f, Options{Spacing: spacing}, newRand(7))
	require.NotEmpty(t, anchors)

	perSegment := map[int]int{}
	for _, a := range anchors {
		perSegment[a.Segment]++
		assert.InDelta(t, 0, f.Boundary().DistanceToBoundary(a.Position), 1e-9, "anchor on boundary")

		rod := f.Rod(a.Segment)
		assert.GreaterOrEqual(t, geom.Dist(a.Position, rod.Start), DefaultMargin-1e-9)
		assert.GreaterOrEqual(t, geom.Dist(a.Position, rod.End), DefaultMargin-1e-9)
		assert.Equal(t, IsVertical(rod.Segment()), a.Vertical)
		assert.Equal(t, 0, a.Layer)
		assert.False(t, a.Used)
	}

	// 196 usable cm at 5 cm spacing on the rails, 96 cm at 15 cm on the posts,
	// minus at most one anchor per corner.
	assert.Equal(t, 4, len(perSegment))
	assert.LessOrEqual(t, len(anchors), 39+6+39+6)
	assert.GreaterOrEqual(t, len(anchors), 39+6+39+6-4)

	for i, a := range anchors {
		for _, b := range anchors[i+1:] {
			if a.Segment == b.Segment {
				continue
			}
			limit := math.Min(spacing.For(a.Vertical), spacing.For(b.Vertical))
			assert.GreaterOrEqual(t, geom.Dist(a.Position, b.Position), limit)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	f := rectFrame(t)
	opts := Options{Spacing: Uniform(10)}
	a := Generate(f, opts, newRand(42))
	b := Generate(f, opts, newRand(42))
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Position, b[i].Position)
	}
}

func TestGenerateWithoutJitter(t *testing.T) {
	f := rectFrame(t)
	anchors := Generate(f, Options{Spacing: Uniform(49), Jitter: -1}, newRand(1))
	var bottom []r2.Vec
	for _, a := range anchors {
		if a.Segment == 0 {
			bottom = append(bottom, a.Position)
		}
	}
	// 196/49 = 4 anchors spread over [2, 198].
	require.Len(t, bottom, 4)
	assert.InDelta(t, 2, bottom[0].X, 1e-9)
	assert.InDelta(t, 2+196.0/3, bottom[1].X, 1e-9)
	assert.InDelta(t, 198, bottom[3].X, 1e-9)
}

func TestGenerateSkipsShortRods(t *testing.T) {
	f, err := railing.FrameFromVertices([]r2.Vec{v(0, 0), v(100, 0), v(100, 100), v(0, 100), v(0, 97)}, 0.5)
	require.NoError(t, err)
	for _, a := range Generate(f, Options{Spacing: Uniform(5)}, newRand(3)) {
		assert.NotEqual(t, 3, a.Segment, "3 cm rod cannot fit two 2 cm margins")
	}
}

func TestGenerateCorners(t *testing.T) {
	f := rectFrame(t)
	anchors := Generate(f, Options{Spacing: Uniform(10), Jitter: -1}, newRand(1))

	perSegment := map[int][]r2.Vec{}
	for _, a := range anchors {
		perSegment[a.Segment] = append(perSegment[a.Segment], a.Position)
	}
	// Each rod loses the anchor next to its start corner; the bottom rail
	// loses it to the closing corner with the left post.
	assert.Len(t, perSegment[0], 19-1)
	assert.Len(t, perSegment[1], 9-1)
	assert.Len(t, perSegment[2], 19-1)
	assert.Len(t, perSegment[3], 9-1)
	assert.InDelta(t, 2+196.0/18, perSegment[0][0].X, 1e-9)
	assert.InDelta(t, 2, perSegment[3][len(perSegment[3])-1].Y, 1e-9, "left post keeps its last anchor")
}

func TestGenerateNeighbourRodsOnly(t *testing.T) {
	f, err := railing.FrameFromVertices([]r2.Vec{v(0, 0), v(200, 0), v(200, 8), v(0, 8)}, 0.5)
	require.NoError(t, err)
	anchors := Generate(f, Options{Spacing: Uniform(10), Jitter: -1}, newRand(1))

	var bottom, top int
	for _, a := range anchors {
		switch a.Segment {
		case 0:
			bottom++
		case 2:
			top++
		default:
			t.Errorf("post anchor at %v sits within 10 cm of a rail anchor", a.Position)
		}
	}
	// The rails are 8 cm apart but never share a corner, so both keep all
	// of their anchors.
	assert.Equal(t, 19, bottom)
	assert.Equal(t, 19, top)
}

func TestGenerateJitterCap(t *testing.T) {
	f := rectFrame(t)
	anchors := Generate(f, Options{Spacing: Uniform(20), Jitter: 0.5}, newRand(17))
	require.NotEmpty(t, anchors)

	// 9 slots over [2, 198] on the rails; the offset is capped at 30% of
	// the 2 cm margin rather than half of the spacing.
	step := 196.0 / 8
	for _, a := range anchors {
		if a.Segment != 0 {
			continue
		}
		slot := math.Round((a.Position.X - 2) / step)
		assert.LessOrEqual(t, math.Abs(a.Position.X-2-slot*step), 0.3*DefaultMargin+1e-9)
	}
}

func TestDistribute(t *testing.T) {
	f := rectFrame(t)
	anchors := Generate(f, Options{Spacing: Uniform(5)}, newRand(11))
	first := anchors[0]

	for _, n := range []int{1, 2, 3, 4, 7} {
		pools := Distribute(anchors, n, newRand(5))
		require.Len(t, pools, n)

		counts := Counts(pools)
		lo, hi := counts[0], counts[0]
		total := 0
		for _, c := range counts {
			lo, hi = min(lo, c), max(hi, c)
			total += c
		}
		assert.LessOrEqual(t, hi-lo, 1, "layers=%d counts=%v", n, counts)
		assert.Equal(t, len(anchors), total)

		for i, p := range pools {
			assert.Equal(t, i+1, p.Layer())
			for _, a := range p.Anchors() {
				assert.Equal(t, i+1, a.Layer)
			}
		}
	}
	assert.Same(t, first, anchors[0], "input order kept")
	assert.Nil(t, Distribute(anchors, 0, newRand(1)))
}

func TestDistributeDeterministic(t *testing.T) {
	f := rectFrame(t)
	anchors := Generate(f, Options{Spacing: Uniform(5)}, newRand(11))
	a := Distribute(anchors, 3, newRand(99))
	b := Distribute(anchors, 3, newRand(99))
	for i := range a {
		assert.Equal(t, a[i].Anchors(), b[i].Anchors())
	}
}

func TestPool(t *testing.T) {
	pts := []*railing.AnchorPoint{
		{Position: v(0, 0)},
		{Position: v(10, 0)},
		{Position: v(20, 0)},
		{Position: v(30, 0)},
	}
	p := NewPool(1, pts)
	assert.Equal(t, 4, p.Len())

	assert.Same(t, pts[1], p.Nearest(v(11, 1), nil))
	assert.Same(t, pts[2], p.Nearest(v(11, 1), pts[1]))

	pts[2].Used = true
	pts[1].Used = true
	assert.Same(t, pts[0], p.Nearest(v(14, 0), nil))
	assert.Equal(t, 2, p.UnusedCount())

	a, b := p.RandomPair(newRand(1))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotSame(t, a, b)
	assert.False(t, a.Used || b.Used)

	pts[0].Used = true
	pts[3].Used = true
	assert.Nil(t, p.Random(newRand(1)))
	assert.Nil(t, p.Nearest(v(0, 0), nil))
	a, b = p.RandomPair(newRand(1))
	assert.Nil(t, a)
	assert.Nil(t, b)

	p.Reset()
	assert.Equal(t, 4, p.UnusedCount())
	assert.NotNil(t, p.Random(newRand(1)))

	empty := NewPool(2, nil)
	assert.Nil(t, empty.Nearest(v(0, 0), nil))
}

package geom

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Node returns the noded form of segs: every segment is split wherever it
// meets another one (crossings, T-junctions and the ends of collinear
// overlaps), vertices closer than [Tolerance] are merged, and duplicate or
// collapsed pieces are dropped. The result contains no two segments whose
// interiors meet.
func Node(segs []Segment) []Segment {
	g := buildGraph(segs)
	out := make([]Segment, len(g.edges))
	for i, e := range g.edges {
		out[i] = Segment{A: g.sites[e[0]], B: g.sites[e[1]]}
	}
	return out
}

// planarGraph is the noded network: unique vertex sites and undirected edges
// between them, each edge stored once with the smaller site index first.
type planarGraph struct {
	sites []r2.Vec
	edges [][2]int
}

type cut struct {
	t  float64
	pt r2.Vec
}

func buildGraph(segs []Segment) planarGraph {
	// 1. Split crossing edges.
	cuts := make([][]cut, len(segs))
	boxes := make([]r2.Box, len(segs))
	for i, s := range segs {
		cuts[i] = []cut{{0, s.A}, {1, s.B}}
		boxes[i] = s.Bounds()
	}
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if !boxesTouch(boxes[i], boxes[j]) {
				continue
			}
			in := Intersect(segs[i], segs[j])
			switch in.Kind {
			case Point:
				cuts[i] = append(cuts[i], cut{in.S, in.P})
				cuts[j] = append(cuts[j], cut{in.T, in.P})
			case Overlap:
				cuts[i] = append(cuts[i], cut{in.S, in.P}, cut{in.T, in.Q})
				cuts[j] = append(cuts[j],
					cut{segs[j].Project(in.P), in.P},
					cut{segs[j].Project(in.Q), in.Q})
			}
		}
	}

	// 2. Snap vertices to sites and 3. build the edge set.
	sn := newSnapper(Tolerance)
	seen := make(map[[2]int]bool)
	var g planarGraph
	for i := range segs {
		cs := cuts[i]
		slices.SortStableFunc(cs, func(a, b cut) int {
			switch {
			case a.t < b.t:
				return -1
			case a.t > b.t:
				return 1
			}
			return 0
		})
		prev := sn.site(cs[0].pt)
		for _, c := range cs[1:] {
			cur := sn.site(c.pt)
			if cur == prev {
				continue
			}
			key := [2]int{min(prev, cur), max(prev, cur)}
			if !seen[key] {
				seen[key] = true
				g.edges = append(g.edges, key)
			}
			prev = cur
		}
	}
	g.sites = sn.sites
	return g
}

func boxesTouch(a, b r2.Box) bool {
	return a.Min.X <= b.Max.X+Tolerance && b.Min.X <= a.Max.X+Tolerance &&
		a.Min.Y <= b.Max.Y+Tolerance && b.Min.Y <= a.Max.Y+Tolerance
}

// snapper maps points to unique sites. Points within radius of an existing
// site reuse it. Sites are bucketed on a grid of radius-sized cells so each
// lookup only inspects the 3x3 neighbourhood.
type snapper struct {
	radius float64
	sites  []r2.Vec
	grid   map[[2]int64][]int
}

func newSnapper(radius float64) *snapper {
	return &snapper{radius: radius, grid: make(map[[2]int64][]int)}
}

func (s *snapper) key(p r2.Vec) [2]int64 {
	return [2]int64{int64(math.Floor(p.X / s.radius)), int64(math.Floor(p.Y / s.radius))}
}

func (s *snapper) site(p r2.Vec) int {
	k := s.key(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, id := range s.grid[[2]int64{k[0] + dx, k[1] + dy}] {
				if Near(s.sites[id], p, s.radius) {
					return id
				}
			}
		}
	}
	id := len(s.sites)
	s.sites = append(s.sites, p)
	s.grid[k] = append(s.grid[k], id)
	return id
}

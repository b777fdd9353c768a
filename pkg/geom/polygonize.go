package geom

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygonize nodes segs and returns every bounded face of the resulting
// planar graph as a counter-clockwise [Polygon].
//
// Dangling edges (chains that end without closing a region) are pruned
// first; they do not enclose area. A connected component floating inside
// another face is reported as its own faces but is not subtracted from the
// enclosing face.
func Polygonize(segs []Segment) []Polygon {
	g := buildGraph(segs)
	adj := g.adjacency()
	pruneDangles(adj)

	// Sort each vertex's neighbours counter-clockwise by outgoing angle.
	for v, ns := range adj {
		o := g.sites[v]
		slices.SortFunc(ns, func(a, b int) int {
			aa := math.Atan2(g.sites[a].Y-o.Y, g.sites[a].X-o.X)
			ab := math.Atan2(g.sites[b].Y-o.Y, g.sites[b].X-o.X)
			switch {
			case aa < ab:
				return -1
			case aa > ab:
				return 1
			}
			return 0
		})
		adj[v] = ns
	}

	visited := make(map[[2]int]bool)
	var faces []Polygon
	for u := range adj {
		for _, v := range adj[u] {
			if visited[[2]int{u, v}] {
				continue
			}
			ring := g.traceFace(adj, u, v, visited)
			p := NewPolygon(ring)
			if len(p) >= 3 && p.SignedArea() > Tolerance {
				faces = append(faces, p)
			}
		}
	}
	return faces
}

// traceFace walks the face to the left of the half-edge u→v. At each vertex
// it turns onto the next edge clockwise from the one it arrived on, which
// keeps the face on the left and yields counter-clockwise rings for bounded
// faces.
func (g planarGraph) traceFace(adj [][]int, u, v int, visited map[[2]int]bool) []r2.Vec {
	start := [2]int{u, v}
	var ring []r2.Vec
	for {
		visited[[2]int{u, v}] = true
		ring = append(ring, g.sites[u])
		ns := adj[v]
		k := slices.Index(ns, u)
		w := ns[(k-1+len(ns))%len(ns)]
		u, v = v, w
		if [2]int{u, v} == start || visited[[2]int{u, v}] {
			break
		}
	}
	return ring
}

func (g planarGraph) adjacency() [][]int {
	adj := make([][]int, len(g.sites))
	for _, e := range g.edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	return adj
}

// pruneDangles repeatedly removes vertices of degree one together with
// their edge.
func pruneDangles(adj [][]int) {
	var stack []int
	for v, ns := range adj {
		if len(ns) == 1 {
			stack = append(stack, v)
		}
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(adj[v]) != 1 {
			continue
		}
		w := adj[v][0]
		adj[v] = nil
		adj[w] = slices.DeleteFunc(adj[w], func(x int) bool { return x == v })
		if len(adj[w]) == 1 {
			stack = append(stack, w)
		}
	}
}

package anchor

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/railfill/pkg/railing"
)

// Pool is the set of anchors dealt to one layer.
//
// A Pool is owned by a single generation run and is not safe for concurrent
// use.
type Pool struct {
	layer   int
	anchors []*railing.AnchorPoint
	tree    *kdtree.Tree
}

// NewPool builds a pool for layer over anchors, keeping their order.
func NewPool(layer int, anchors []*railing.AnchorPoint) *Pool {
	p := &Pool{layer: layer, anchors: anchors}
	if len(anchors) > 0 {
		ns := make(nodes, len(anchors))
		for i, a := range anchors {
			ns[i] = node{pos: a.Position, a: a}
		}
		p.tree = kdtree.New(ns, false)
	}
	return p
}

// Layer returns the layer number the pool serves.
func (p *Pool) Layer() int { return p.layer }

// Len returns the number of anchors in the pool, used or not.
func (p *Pool) Len() int { return len(p.anchors) }

// Anchors returns the pool's anchors in dealt order.
func (p *Pool) Anchors() []*railing.AnchorPoint { return p.anchors }

// Unused returns the free anchors in dealt order.
func (p *Pool) Unused() []*railing.AnchorPoint {
	var out []*railing.AnchorPoint
	for _, a := range p.anchors {
		if !a.Used {
			out = append(out, a)
		}
	}
	return out
}

// UnusedCount returns the number of free anchors.
func (p *Pool) UnusedCount() int {
	n := 0
	for _, a := range p.anchors {
		if !a.Used {
			n++
		}
	}
	return n
}

// Random returns a uniformly chosen free anchor, or nil if none is left.
func (p *Pool) Random(rng *rand.Rand) *railing.AnchorPoint {
	free := p.Unused()
	if len(free) == 0 {
		return nil
	}
	return free[rng.IntN(len(free))]
}

// RandomPair returns two distinct free anchors chosen uniformly, or nils if
// fewer than two are left.
func (p *Pool) RandomPair(rng *rand.Rand) (*railing.AnchorPoint, *railing.AnchorPoint) {
	free := p.Unused()
	if len(free) < 2 {
		return nil, nil
	}
	i := rng.IntN(len(free))
	j := rng.IntN(len(free) - 1)
	if j >= i {
		j++
	}
	return free[i], free[j]
}

// Nearest returns the free anchor closest to q, ignoring exclude. It returns
// nil when no such anchor exists.
func (p *Pool) Nearest(q r2.Vec, exclude *railing.AnchorPoint) *railing.AnchorPoint {
	if p.tree == nil {
		return nil
	}
	k := freeKeeper{NKeeper: kdtree.NewNKeeper(1), exclude: exclude}
	p.tree.NearestSet(k, node{pos: q})

	var best *railing.AnchorPoint
	bestDist := math.Inf(1)
	for _, c := range k.Heap {
		if c.Comparable == nil {
			continue
		}
		if c.Dist < bestDist {
			best, bestDist = c.Comparable.(node).a, c.Dist
		}
	}
	return best
}

// Reset marks every anchor in the pool as free again.
func (p *Pool) Reset() {
	for _, a := range p.anchors {
		a.Used = false
	}
}

// freeKeeper retains the nearest anchor that is neither used nor excluded.
// Filtering in Keep lets the tree prune with the best free distance found so
// far instead of the best overall.
type freeKeeper struct {
	*kdtree.NKeeper
	exclude *railing.AnchorPoint
}

func (k freeKeeper) Keep(c kdtree.ComparableDist) {
	n := c.Comparable.(node)
	if n.a.Used || n.a == k.exclude {
		return
	}
	k.NKeeper.Keep(c)
}

// node adapts an anchor to kdtree.Comparable. Distances are squared, as
// kdtree expects.
type node struct {
	pos r2.Vec
	a   *railing.AnchorPoint
}

func (n node) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(node)
	if d == 0 {
		return n.pos.X - q.pos.X
	}
	return n.pos.Y - q.pos.Y
}

func (n node) Dims() int { return 2 }

func (n node) Distance(c kdtree.Comparable) float64 {
	return r2.Norm2(r2.Sub(n.pos, c.(node).pos))
}

type nodes []node

func (n nodes) Index(i int) kdtree.Comparable { return n[i] }
func (n nodes) Len() int                      { return len(n) }
func (n nodes) Pivot(d kdtree.Dim) int        { return plane{nodes: n, Dim: d}.Pivot() }
func (n nodes) Slice(start, end int) kdtree.Interface {
	return n[start:end]
}

// plane sorts nodes along one dimension for median partitioning.
type plane struct {
	kdtree.Dim
	nodes
}

func (p plane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.nodes[i].pos.X < p.nodes[j].pos.X
	}
	return p.nodes[i].pos.Y < p.nodes[j].pos.Y
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.nodes = p.nodes[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
}

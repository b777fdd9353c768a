package placer

import (
	"context"

	"github.com/matzehuels/railfill/pkg/railing"
)

// Simple joins random pairs of free anchors with no directional bias. Each
// rod goes to the layer furthest behind its share of the target count.
type Simple struct {
	Params Params
}

// Name implements [Placer].
func (s *Simple) Name() Strategy { return StrategySimple }

// Place implements [Placer].
func (s *Simple) Place(ctx context.Context, in Input) *Arrangement {
	r := newRun(ctx, in, s.Params)
	v := NewValidator(in.Frame, s.Params)
	targets := LayerTargets(s.Params.NumRods, len(in.Pools))
	layers := make([][]railing.Rod, len(in.Pools))

	for len(r.arr.Rods) < s.Params.NumRods {
		if r.exhausted() {
			break
		}
		li := pickLayer(in, targets, layers)
		if li < 0 {
			r.arr.Statistics.NoAnchorsLeft++
			break
		}
		r.tick()

		a, b := in.Pools[li].RandomPair(in.Rand)
		rod := connect(a, b, li+1, s.Params.WeightPerMeter)
		if rej := v.Check(rod, layers[li]); rej != Accepted {
			r.arr.Statistics.Record(rej)
			continue
		}
		a.Used, b.Used = true, true
		layers[li] = append(layers[li], rod)
		r.arr.Rods = append(r.arr.Rods, rod)
	}

	r.logger.Debug("simple placement finished",
		"rods", len(r.arr.Rods), "requested", s.Params.NumRods,
		"iterations", r.arr.Iterations, "rejections", r.arr.Statistics.String())
	return r.finish()
}

// pickLayer returns the index of the layer with the largest remaining quota
// that still has two free anchors, or -1 if none qualifies.
func pickLayer(in Input, targets []int, layers [][]railing.Rod) int {
	best, bestGap := -1, 0
	for i, p := range in.Pools {
		gap := targets[i] - len(layers[i])
		if gap > bestGap && p.UnusedCount() >= 2 {
			best, bestGap = i, gap
		}
	}
	return best
}

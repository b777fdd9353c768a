package placer

import (
	"context"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/railfill/pkg/anchor"
	"github.com/matzehuels/railfill/pkg/geom"
	"github.com/matzehuels/railfill/pkg/railing"
)

// MaxConsecutiveFailures is how many failed attempts in a row a layer
// tolerates before it drops its rods, frees its anchors and starts over.
const MaxConsecutiveFailures = 300

// anchorTolerance is the distance (cm) within which a boundary hit is taken
// to be the start anchor itself.
const anchorTolerance = 0.01

// Directional places rods layer by layer along per-layer main directions.
type Directional struct {
	Params Params
}

// Name implements [Placer].
func (d *Directional) Name() Strategy { return StrategyDirectional }

// Place implements [Placer]. Layers are filled in order; each layer only
// uses anchors from its own pool.
func (d *Directional) Place(ctx context.Context, in Input) *Arrangement {
	r := newRun(ctx, in, d.Params)
	v := NewValidator(in.Frame, d.Params)
	targets := LayerTargets(d.Params.NumRods, len(in.Pools))
	dirs := MainDirections(len(in.Pools), d.Params.DirectionMin, d.Params.DirectionMax)
	reach := projectionLength(in.Frame)

	for li, pool := range in.Pools {
		layer := li + 1
		rods, stopped := d.placeLayer(r, v, pool, layer, targets[li], dirs[li], reach)
		r.arr.Rods = append(r.arr.Rods, rods...)

		r.logger.Debug("layer placed",
			"layer", layer, "direction", dirs[li],
			"rods", len(rods), "target", targets[li],
			"iterations", r.arr.Iterations)
		if stopped {
			break
		}
	}
	return r.finish()
}

// placeLayer fills one layer. It reports stopped when a budget ran out, in
// which case no further layers should be attempted.
func (d *Directional) placeLayer(r *run, v *Validator, pool *anchor.Pool, layer, target int, dir, reach float64) (rods []railing.Rod, stopped bool) {
	failures := 0
	for len(rods) < target {
		if r.exhausted() {
			return rods, true
		}
		if pool.UnusedCount() < 2 {
			r.arr.Statistics.NoAnchorsLeft++
			return rods, false
		}
		r.tick()

		if failures >= MaxConsecutiveFailures {
			r.logger.Debug("resetting layer", "layer", layer, "failures", failures, "discarded", len(rods))
			rods = nil
			pool.Reset()
			failures = 0
			continue
		}

		start := pool.Random(r.in.Rand)
		angle := dir + (r.in.Rand.Float64()*2-1)*d.Params.RandomDeviation
		end := farEnd(r.in.Frame.Boundary(), pool, start, angle, reach)
		if end == nil {
			r.arr.Statistics.NoEndAnchor++
			failures++
			continue
		}

		rod := connect(start, end, layer, d.Params.WeightPerMeter)
		if rej := v.Check(rod, rods); rej != Accepted {
			r.arr.Statistics.Record(rej)
			failures++
			continue
		}
		start.Used, end.Used = true, true
		rods = append(rods, rod)
		failures = 0
	}
	return rods, false
}

// projectionLength is long enough for a line through any boundary point to
// leave the frame in both directions.
func projectionLength(f *railing.Frame) float64 {
	b := f.Bounds()
	return 2 * math.Max(b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)
}

// farEnd casts a line through start at angle degrees from vertical, in both
// directions, and returns the free anchor nearest to where the line meets
// the boundary on the far side of the frame.
func farEnd(boundary geom.Polygon, pool *anchor.Pool, start *railing.AnchorPoint, angle, reach float64) *railing.AnchorPoint {
	target, ok := opposite(boundary, start.Position, angle, reach)
	if !ok {
		return nil
	}
	return pool.Nearest(target, start)
}

// opposite finds the boundary point across the frame from p along the line
// at angle degrees from vertical. The nearest hit reached through the
// interior wins; for a convex frame that is the only other hit. When no hit
// is reached through the interior the farthest hit is used.
func opposite(boundary geom.Polygon, p r2.Vec, angle, reach float64) (r2.Vec, bool) {
	rad := angle * math.Pi / 180
	d := r2.Vec{X: reach * math.Sin(rad), Y: reach * math.Cos(rad)}
	line := geom.Segment{A: r2.Sub(p, d), B: r2.Add(p, d)}

	var near, far r2.Vec
	nearDist, farDist := math.Inf(1), 0.0
	for _, h := range boundary.Intersections(line) {
		dist := geom.Dist(p, h)
		if dist <= anchorTolerance {
			continue
		}
		if dist > farDist {
			far, farDist = h, dist
		}
		mid := r2.Scale(0.5, r2.Add(p, h))
		if dist < nearDist && boundary.Contains(mid) {
			near, nearDist = h, dist
		}
	}
	switch {
	case !math.IsInf(nearDist, 1):
		return near, true
	case farDist > 0:
		return far, true
	}
	return r2.Vec{}, false
}

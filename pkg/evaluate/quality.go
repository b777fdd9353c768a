package evaluate

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/railfill/pkg/anchor"
	"github.com/matzehuels/railfill/pkg/geom"
	"github.com/matzehuels/railfill/pkg/holes"
	"github.com/matzehuels/railfill/pkg/railing"
)

// inradiusPrecision is the accuracy (cm) of hole incircle radii.
const inradiusPrecision = 0.5

// endpointTolerance is how far (cm) a rod endpoint may sit from a frame rod
// and still count as anchored on it.
const endpointTolerance = 1e-3

// Quality scores arrangements on hole, angle and spacing criteria.
type Quality struct {
	Params Params
}

// Name implements [Evaluator].
func (q *Quality) Name() Kind { return KindQuality }

// Evaluate implements [Evaluator].
func (q *Quality) Evaluate(infill *railing.Infill, frame *railing.Frame) Result {
	var rods []railing.Rod
	if infill != nil {
		rods = infill.Rods
	}
	hs := holes.Detect(frame, rods)

	scores := Scores{
		HoleUniformity:     uniformity(holes.Areas(hs)),
		IncircleUniformity: uniformity(incircleRadii(hs)),
		AngleDistribution:  q.angleScore(rods),
	}
	if frame != nil {
		scores.SpacingVertical, scores.SpacingOther = spacingScores(frame, rods)
	}
	fitness := floats.Dot(q.Params.Weights.vector(), scores.vector())

	res := Result{
		Fitness: math.Max(0, math.Min(1, fitness)),
		Scores:  &scores,
		Holes:   hs,
	}
	for _, h := range hs {
		if h.Area > q.Params.MaxHoleArea {
			res.Rejections.HoleTooLarge = 1
		}
		if q.Params.MinHoleArea > 0 && h.Area < q.Params.MinHoleArea {
			res.Rejections.HoleTooSmall = 1
		}
	}
	res.Acceptable = res.Rejections.Total() == 0
	return res
}

// uniformity maps the spread of xs to [0, 1] as 1/(1+CV). Fewer than two
// values are trivially uniform.
func uniformity(xs []float64) float64 {
	if len(xs) < 2 {
		return 1
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if mean <= 0 {
		return 0
	}
	return 1 / (1 + std/mean)
}

func incircleRadii(hs []holes.Hole) []float64 {
	out := make([]float64, len(hs))
	for i, h := range hs {
		_, out[i] = geom.Inradius(h.Polygon, inradiusPrecision)
	}
	return out
}

// angleScore averages the per-rod angle scores. An empty infill scores 0.
func (q *Quality) angleScore(rods []railing.Rod) float64 {
	if len(rods) == 0 {
		return 0
	}
	s := make([]float64, len(rods))
	for i, r := range rods {
		a := math.Abs(r.AngleFromVertical())
		var off float64
		switch {
		case a < q.Params.IdealAngleMin:
			off = q.Params.IdealAngleMin - a
		case a > q.Params.IdealAngleMax:
			off = a - q.Params.IdealAngleMax
		}
		s[i] = math.Max(0, 1-off/q.Params.AngleFalloff)
	}
	return stat.Mean(s, nil)
}

// spacingScores measures how evenly rod endpoints are spread along the
// frame rods of each class. Gaps run from one end of a frame rod through its
// sorted endpoints to the other end, so an unused frame rod contributes its
// full length.
func spacingScores(frame *railing.Frame, rods []railing.Rod) (vertical, other float64) {
	segs := frame.Segments()
	along := make([][]float64, len(segs))
	for _, r := range rods {
		for _, p := range []r2.Vec{r.Start, r.End} {
			if i := nearestSegment(segs, p); i >= 0 {
				along[i] = append(along[i], segs[i].Project(p)*segs[i].Length())
			}
		}
	}

	var vg, og []float64
	for i, s := range segs {
		g := gaps(along[i], s.Length())
		if anchor.IsVertical(s) {
			vg = append(vg, g...)
		} else {
			og = append(og, g...)
		}
	}
	return uniformity(vg), uniformity(og)
}

func nearestSegment(segs []geom.Segment, p r2.Vec) int {
	best, bestDist := -1, endpointTolerance
	for i, s := range segs {
		if d := s.Distance(p); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func gaps(pos []float64, length float64) []float64 {
	pts := append([]float64{0}, pos...)
	pts = append(pts, length)
	slices.Sort(pts)
	out := make([]float64, len(pts)-1)
	for i := range out {
		out[i] = pts[i+1] - pts[i]
	}
	return out
}

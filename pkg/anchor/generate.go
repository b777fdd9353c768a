package anchor

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/geom"
	"github.com/matzehuels/railfill/pkg/railing"
)

// VerticalRatio is the largest horizontal-to-vertical displacement ratio a
// frame rod may have and still count as vertical.
const VerticalRatio = 0.1

// Defaults for [Options].
const (
	DefaultMargin = 2.0 // cm kept free at each end of a frame rod
	DefaultJitter = 0.2 // fraction of the spacing
)

// IsVertical reports whether seg is steep enough to count as vertical:
// its vertical displacement is non-zero and the horizontal displacement is
// less than [VerticalRatio] of it.
func IsVertical(seg geom.Segment) bool {
	dx := math.Abs(seg.B.X - seg.A.X)
	dy := math.Abs(seg.B.Y - seg.A.Y)
	return dy > 0 && dx/dy < VerticalRatio
}

// Spacing holds the minimum anchor distance for vertical and other frame
// rods, in centimetres.
type Spacing struct {
	Vertical float64 `json:"vertical" toml:"vertical"`
	Other    float64 `json:"other" toml:"other"`
}

// Uniform returns a spacing that uses d for both classes.
func Uniform(d float64) Spacing { return Spacing{Vertical: d, Other: d} }

// For returns the spacing for a frame rod of the given class.
func (s Spacing) For(vertical bool) float64 {
	if vertical {
		return s.Vertical
	}
	return s.Other
}

// Validate checks that both distances are positive.
func (s Spacing) Validate() error {
	return errors.Join(
		errors.ValidatePositive("vertical anchor spacing", s.Vertical),
		errors.ValidatePositive("other anchor spacing", s.Other),
	)
}

// Options controls [Generate].
type Options struct {
	Spacing Spacing
	// Margin is kept free of anchors at both ends of every frame rod.
	// Zero selects DefaultMargin.
	Margin float64
	// Jitter bounds the random offset as a fraction of the spacing. The
	// offset is further capped at 30% of the margin so it never pushes an
	// anchor off its rod. Zero selects DefaultJitter; negative disables it.
	Jitter float64
}

func (o Options) withDefaults() Options {
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Jitter == 0 {
		o.Jitter = DefaultJitter
	}
	return o
}

// Generate places anchors along every frame rod.
//
// For a rod of length L the usable stretch is L - 2*margin; rods with no
// usable stretch get no anchors. The anchor count is max(usable/spacing, 1),
// spread evenly (a single anchor sits in the middle). Each anchor is then
// shifted by a uniform random offset and clamped back inside the margins.
//
// Only neighbouring frame rods are compared afterwards: when the first
// anchor of a rod is closer than the smaller of the two spacings to the
// last anchor of the previous rod, it is dropped. The frame closes, so the
// first rod is compared with the last rod the same way. Anchors on rods
// that do not share a corner are never compared.
func Generate(frame *railing.Frame, opts Options, rng *rand.Rand) []*railing.AnchorPoint {
	opts = opts.withDefaults()
	perRod := make([][]*railing.AnchorPoint, frame.RodCount())

	for i := range frame.RodCount() {
		rod := frame.Rod(i)
		seg := rod.Segment()
		vertical := IsVertical(seg)
		spacing := opts.Spacing.For(vertical)
		length := seg.Length()
		usable := length - 2*opts.Margin
		if usable <= 0 || spacing <= 0 {
			continue
		}

		n := max(int(usable/spacing), 1)
		maxOffset := 0.0
		if opts.Jitter > 0 {
			maxOffset = math.Min(opts.Jitter*spacing, 0.3*opts.Margin)
		}

		anchors := make([]*railing.AnchorPoint, 0, n)
		for k := range n {
			pos := usable / 2
			if n > 1 {
				pos = float64(k) / float64(n-1) * usable
			}
			pos += opts.Margin
			if maxOffset > 0 {
				pos += (rng.Float64()*2 - 1) * maxOffset
			}
			pos = math.Max(opts.Margin, math.Min(length-opts.Margin, pos))

			anchors = append(anchors, &railing.AnchorPoint{
				Position:     seg.At(pos / length),
				Segment:      i,
				Vertical:     vertical,
				SegmentAngle: rod.AngleFromVertical(),
			})
		}
		if i > 0 {
			if prev := perRod[i-1]; len(prev) > 0 && crowded(prev[len(prev)-1], anchors[0], opts.Spacing) {
				anchors = anchors[1:]
			}
		}
		perRod[i] = anchors
	}

	if n := len(perRod); n > 1 {
		first, last := perRod[0], perRod[n-1]
		if len(first) > 0 && len(last) > 0 && crowded(last[len(last)-1], first[0], opts.Spacing) {
			perRod[0] = first[1:]
		}
	}

	var out []*railing.AnchorPoint
	for _, anchors := range perRod {
		out = append(out, anchors...)
	}
	return out
}

// crowded reports whether two anchors on neighbouring frame rods are closer
// than the smaller of their spacings.
func crowded(a, b *railing.AnchorPoint, s Spacing) bool {
	limit := math.Min(s.For(a.Vertical), s.For(b.Vertical))
	return geom.Dist(a.Position, b.Position) < limit
}

package placer

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/railfill/pkg/geom"
	"github.com/matzehuels/railfill/pkg/railing"
)

// Rejection is the reason a candidate rod was turned down.
type Rejection int

const (
	Accepted Rejection = iota
	TooShort
	TooLong
	OutsideBoundary
	AngleTooLarge
	CrossesSameLayer
)

func (r Rejection) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case TooShort:
		return "too short"
	case TooLong:
		return "too long"
	case OutsideBoundary:
		return "outside boundary"
	case AngleTooLarge:
		return "angle too large"
	case CrossesSameLayer:
		return "crosses same layer"
	}
	return fmt.Sprintf("rejection(%d)", int(r))
}

// Validator checks candidate rods against the placement constraints.
type Validator struct {
	MinLength float64
	MaxLength float64
	MaxAngle  float64
	Boundary  geom.Polygon
	Tolerance float64
}

// NewValidator returns a validator for frame under p.
func NewValidator(frame *railing.Frame, p Params) *Validator {
	return &Validator{
		MinLength: p.MinLength,
		MaxLength: p.MaxLength,
		MaxAngle:  p.MaxAngleDeviation,
		Boundary:  frame.Boundary(),
		Tolerance: BoundaryTolerance,
	}
}

// Check returns the first constraint rod violates, or Accepted. layerRods
// are the rods already kept in rod's layer. Checks run cheapest first:
// length, containment, angle, then same-layer crossings. A rod lying flush
// along a frame rod counts as outside the boundary.
func (v *Validator) Check(rod railing.Rod, layerRods []railing.Rod) Rejection {
	l := rod.Length()
	seg := rod.Segment()
	switch {
	case l < v.MinLength:
		return TooShort
	case l > v.MaxLength:
		return TooLong
	case !v.Boundary.Covers(seg, v.Tolerance),
		v.Boundary.OnBoundary(seg.Midpoint(), v.Tolerance):
		return OutsideBoundary
	case math.Abs(rod.AngleFromVertical()) > v.MaxAngle:
		return AngleTooLarge
	}
	for _, other := range layerRods {
		if geom.Crosses(seg, other.Segment()) {
			return CrossesSameLayer
		}
	}
	return Accepted
}

// Statistics counts why candidate rods were rejected during placement.
type Statistics struct {
	TooShort         int `json:"too_short"`
	TooLong          int `json:"too_long"`
	OutsideBoundary  int `json:"outside_boundary"`
	AngleTooLarge    int `json:"angle_too_large"`
	CrossesSameLayer int `json:"crosses_same_layer"`
	NoAnchorsLeft    int `json:"no_anchors_left"`
	NoEndAnchor      int `json:"no_end_anchor"`
}

// Record counts one rejection. Accepted is ignored.
func (s *Statistics) Record(r Rejection) {
	switch r {
	case TooShort:
		s.TooShort++
	case TooLong:
		s.TooLong++
	case OutsideBoundary:
		s.OutsideBoundary++
	case AngleTooLarge:
		s.AngleTooLarge++
	case CrossesSameLayer:
		s.CrossesSameLayer++
	}
}

// Add accumulates o into s.
func (s *Statistics) Add(o Statistics) {
	s.TooShort += o.TooShort
	s.TooLong += o.TooLong
	s.OutsideBoundary += o.OutsideBoundary
	s.AngleTooLarge += o.AngleTooLarge
	s.CrossesSameLayer += o.CrossesSameLayer
	s.NoAnchorsLeft += o.NoAnchorsLeft
	s.NoEndAnchor += o.NoEndAnchor
}

// Total returns the number of failed placement attempts.
func (s Statistics) Total() int {
	return s.TooShort + s.TooLong + s.OutsideBoundary + s.AngleTooLarge +
		s.CrossesSameLayer + s.NoAnchorsLeft + s.NoEndAnchor
}

type counter struct {
	name  string
	count int
}

func (s Statistics) counters() []counter {
	return []counter{
		{"too short", s.TooShort},
		{"too long", s.TooLong},
		{"outside boundary", s.OutsideBoundary},
		{"angle too large", s.AngleTooLarge},
		{"crosses same layer", s.CrossesSameLayer},
		{"no anchors left", s.NoAnchorsLeft},
		{"no end anchor", s.NoEndAnchor},
	}
}

// MostFrequent returns the most common failure and its count, or "" and 0
// when nothing failed. Ties go to the cheaper check.
func (s Statistics) MostFrequent() (string, int) {
	var best counter
	for _, c := range s.counters() {
		if c.count > best.count {
			best = c
		}
	}
	return best.name, best.count
}

// String lists the non-zero counters, e.g. "too long=12, outside boundary=3".
func (s Statistics) String() string {
	var parts []string
	for _, c := range s.counters() {
		if c.count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", c.name, c.count))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

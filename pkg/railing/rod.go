package railing

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/geom"
)

// FrameLayer is the layer number of frame rods.
const FrameLayer = 0

// Rod is a straight bar between Start and End. Coordinates are centimetres.
type Rod struct {
	Start          r2.Vec  `json:"start"`
	End            r2.Vec  `json:"end"`
	StartCutAngle  float64 `json:"start_cut_angle_deg"` // mitre at Start, degrees from perpendicular
	EndCutAngle    float64 `json:"end_cut_angle_deg"`   // mitre at End, degrees from perpendicular
	WeightPerMeter float64 `json:"weight_kg_m"`
	Layer          int     `json:"layer"`
}

// Segment returns the rod's geometry.
func (r Rod) Segment() geom.Segment { return geom.Segment{A: r.Start, B: r.End} }

// Length returns the rod length in centimetres.
func (r Rod) Length() float64 { return r.Segment().Length() }

// Weight returns the rod weight in kilograms.
func (r Rod) Weight() float64 { return r.Length() / 100 * r.WeightPerMeter }

// AngleFromVertical returns the rod direction in degrees from vertical, in
// [-90, 90]. Positive angles lean right going up.
func (r Rod) AngleFromVertical() float64 { return r.Segment().Angle() }

// Validate checks the rod's own invariants.
func (r Rod) Validate() error {
	switch {
	case r.Segment().Degenerate():
		return errors.New(errors.ErrCodeDegenerateGeometry, "rod has zero length at (%.2f, %.2f)", r.Start.X, r.Start.Y)
	case r.Layer < 0:
		return errors.New(errors.ErrCodeInvalidInput, "rod layer must not be negative, got %d", r.Layer)
	}
	return errors.Join(
		errors.ValidatePositive("weight per meter", r.WeightPerMeter),
		errors.ValidateRange("start cut angle", r.StartCutAngle, -90, 90),
		errors.ValidateRange("end cut angle", r.EndCutAngle, -90, 90),
	)
}

// BOMEntry is one line of a bill of materials.
type BOMEntry struct {
	ID            int     `json:"id"`
	Layer         int     `json:"layer"`
	Length        float64 `json:"length_cm"`
	StartCutAngle float64 `json:"start_cut_angle_deg"`
	EndCutAngle   float64 `json:"end_cut_angle_deg"`
	Weight        float64 `json:"weight_kg"`
}

// BOMEntry returns the rod as a bill-of-materials line. Length is rounded to
// 0.01 cm, angles to 0.1° and weight to grams.
func (r Rod) BOMEntry(id int) BOMEntry {
	return BOMEntry{
		ID:            id,
		Layer:         r.Layer,
		Length:        round(r.Length(), 2),
		StartCutAngle: round(r.StartCutAngle, 1),
		EndCutAngle:   round(r.EndCutAngle, 1),
		Weight:        round(r.Weight(), 3),
	}
}

// NormalizeCutAngle folds an angle in degrees into [-90, 90]. Angles past
// ±90° are measured from the other side of the rod.
func NormalizeCutAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	switch {
	case deg > 180:
		deg -= 360
	case deg < -180:
		deg += 360
	}
	switch {
	case deg > 90:
		deg = 180 - deg
	case deg < -90:
		deg = -180 - deg
	}
	return deg
}

// CutAngle returns the mitre between a rod at rodAngle and the frame segment
// at segmentAngle it ends on, both in degrees from vertical.
func CutAngle(rodAngle, segmentAngle float64) float64 {
	return NormalizeCutAngle(rodAngle - segmentAngle)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

package railing

import (
	"encoding/json"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/geom"
)

// Frame is the closed outline of a railing: its layer-0 rods and the
// boundary polygon they enclose. A Frame is immutable once built.
type Frame struct {
	rods     []Rod
	boundary geom.Polygon
}

// NewFrame builds a frame from layer-0 rods. The rods may be given in any
// order and direction but must enclose exactly one region.
func NewFrame(rods []Rod) (*Frame, error) {
	if len(rods) < 3 {
		return nil, errors.New(errors.ErrCodeDegenerateGeometry, "frame needs at least 3 rods, got %d", len(rods))
	}
	segs := make([]geom.Segment, len(rods))
	for i, r := range rods {
		if r.Layer != FrameLayer {
			return nil, errors.New(errors.ErrCodeInvalidFrame, "frame rod %d has layer %d, want %d", i, r.Layer, FrameLayer)
		}
		if err := r.Validate(); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "frame rod %d", i)
		}
		segs[i] = r.Segment()
	}

	polys := geom.Polygonize(segs)
	switch len(polys) {
	case 0:
		return nil, errors.New(errors.ErrCodeDegenerateGeometry, "frame rods do not form a closed loop")
	case 1:
	default:
		return nil, errors.New(errors.ErrCodeDegenerateGeometry, "frame rods enclose %d regions, want 1", len(polys))
	}

	for i, seg := range segs {
		if !onOutline(polys[0], seg) {
			return nil, errors.New(errors.ErrCodeDegenerateGeometry, "frame rod %d is not part of the outline", i)
		}
	}

	return &Frame{rods: slices.Clone(rods), boundary: polys[0]}, nil
}

// outlineTolerance is how far (cm) a frame rod may stray from the boundary
// after noding snapped its vertices.
const outlineTolerance = 1e-4

// onOutline reports whether seg runs along the boundary. Polygonize drops
// dangling edges, so a rod poking into or out of the frame still yields a
// single face and has to be caught here.
func onOutline(boundary geom.Polygon, seg geom.Segment) bool {
	for _, t := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if !boundary.OnBoundary(seg.At(t), outlineTolerance) {
			return false
		}
	}
	return true
}

// FrameFromVertices builds a frame with one rod per edge of the closed ring
// pts. Every rod gets the same per-metre weight and square cuts.
func FrameFromVertices(pts []r2.Vec, weightPerMeter float64) (*Frame, error) {
	ring := geom.NewPolygon(pts)
	rods := make([]Rod, 0, len(ring))
	for _, e := range ring.Edges() {
		rods = append(rods, Rod{Start: e.A, End: e.B, WeightPerMeter: weightPerMeter})
	}
	return NewFrame(rods)
}

// Rods returns a copy of the frame rods in their original order.
func (f *Frame) Rods() []Rod { return slices.Clone(f.rods) }

// Rod returns frame rod i.
func (f *Frame) Rod(i int) Rod { return f.rods[i] }

// RodCount returns the number of frame rods.
func (f *Frame) RodCount() int { return len(f.rods) }

// Boundary returns the enclosed region as a counter-clockwise polygon.
func (f *Frame) Boundary() geom.Polygon { return f.boundary }

// Bounds returns the bounding box of the boundary.
func (f *Frame) Bounds() r2.Box { return f.boundary.Bounds() }

// Segments returns the geometry of each frame rod, in rod order.
func (f *Frame) Segments() []geom.Segment {
	segs := make([]geom.Segment, len(f.rods))
	for i, r := range f.rods {
		segs[i] = r.Segment()
	}
	return segs
}

// TotalLength returns the summed rod length in centimetres.
func (f *Frame) TotalLength() float64 { return totalLength(f.rods) }

// TotalWeight returns the summed rod weight in kilograms.
func (f *Frame) TotalWeight() float64 { return totalWeight(f.rods) }

type frameJSON struct {
	Rods []Rod `json:"rods"`
}

// MarshalJSON encodes the frame as its rod list.
func (f *Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(frameJSON{Rods: f.rods})
}

// UnmarshalJSON decodes a rod list and validates it like [NewFrame].
func (f *Frame) UnmarshalJSON(data []byte) error {
	var fj frameJSON
	if err := json.Unmarshal(data, &fj); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode frame")
	}
	nf, err := NewFrame(fj.Rods)
	if err != nil {
		return err
	}
	*f = *nf
	return nil
}

func totalLength(rods []Rod) float64 {
	var l float64
	for _, r := range rods {
		l += r.Length()
	}
	return l
}

func totalWeight(rods []Rod) float64 {
	var w float64
	for _, r := range rods {
		w += r.Weight()
	}
	return w
}

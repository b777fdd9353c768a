// Package holes finds the enclosed regions an infill leaves inside a frame.
//
// Frame and infill segments are merged, noded at every crossing and
// polygonized. Every bounded face of the resulting planar graph is a hole.
// Detection is pure: it never mutates its inputs.
package holes

import (
	"slices"

	"github.com/matzehuels/railfill/pkg/geom"
	"github.com/matzehuels/railfill/pkg/railing"
)

// Hole is one enclosed region.
type Hole struct {
	Polygon geom.Polygon `json:"polygon"`
	Area    float64      `json:"area_cm2"`
}

// Detect returns the holes left by rods inside frame, largest first. An
// empty infill yields a single hole covering the frame.
func Detect(frame *railing.Frame, rods []railing.Rod) []Hole {
	if frame == nil {
		return nil
	}
	segs := frame.Segments()
	for _, r := range rods {
		segs = append(segs, r.Segment())
	}

	faces := geom.Polygonize(segs)
	out := make([]Hole, 0, len(faces))
	for _, f := range faces {
		out = append(out, Hole{Polygon: f, Area: f.Area()})
	}
	slices.SortStableFunc(out, func(a, b Hole) int {
		switch {
		case a.Area > b.Area:
			return -1
		case a.Area < b.Area:
			return 1
		}
		return 0
	})
	return out
}

// Areas returns the hole areas in order.
func Areas(holes []Hole) []float64 {
	out := make([]float64, len(holes))
	for i, h := range holes {
		out[i] = h.Area
	}
	return out
}

// Largest returns the hole with the greatest area and false if there is none.
func Largest(holes []Hole) (Hole, bool) {
	if len(holes) == 0 {
		return Hole{}, false
	}
	best := holes[0]
	for _, h := range holes[1:] {
		if h.Area > best.Area {
			best = h
		}
	}
	return best, true
}

// TotalArea sums the hole areas.
func TotalArea(holes []Hole) float64 {
	total := 0.0
	for _, h := range holes {
		total += h.Area
	}
	return total
}

package railing

import (
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/railfill/pkg/geom"
)

// Infill is a generated set of rods with layer >= 1. Treat it as read-only;
// use [NewInfill] and [Infill.WithRun] to derive new values.
type Infill struct {
	Rods []Rod    `json:"rods"`
	Run  *RunInfo `json:"run,omitempty"`
}

// RunInfo describes the evaluated run that produced an infill.
type RunInfo struct {
	Fitness    float64       `json:"fitness"`
	Iterations int           `json:"iterations"`
	Duration   time.Duration `json:"duration"`
}

// NewInfill returns an infill holding a copy of rods.
func NewInfill(rods []Rod) *Infill {
	return &Infill{Rods: slices.Clone(rods)}
}

// WithRun returns a copy of the infill annotated with run.
func (in *Infill) WithRun(run RunInfo) *Infill {
	return &Infill{Rods: slices.Clone(in.Rods), Run: &run}
}

// RodCount returns the number of rods.
func (in *Infill) RodCount() int {
	if in == nil {
		return 0
	}
	return len(in.Rods)
}

// TotalLength returns the summed rod length in centimetres.
func (in *Infill) TotalLength() float64 { return totalLength(in.Rods) }

// TotalWeight returns the summed rod weight in kilograms.
func (in *Infill) TotalWeight() float64 { return totalWeight(in.Rods) }

// Segments returns the rod geometries.
func (in *Infill) Segments() []geom.Segment {
	segs := make([]geom.Segment, len(in.Rods))
	for i, r := range in.Rods {
		segs[i] = r.Segment()
	}
	return segs
}

// ByLayer groups rods by layer number.
func (in *Infill) ByLayer() map[int][]Rod {
	out := make(map[int][]Rod)
	for _, r := range in.Rods {
		out[r.Layer] = append(out[r.Layer], r)
	}
	return out
}

// Layers returns the layer numbers in use, ascending.
func (in *Infill) Layers() []int {
	return slices.Sorted(maps.Keys(in.ByLayer()))
}

// BOM returns the bill of materials, numbering rods from 1.
func (in *Infill) BOM() []BOMEntry {
	out := make([]BOMEntry, len(in.Rods))
	for i, r := range in.Rods {
		out[i] = r.BOMEntry(i + 1)
	}
	return out
}

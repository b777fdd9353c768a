package railing

import "gonum.org/v1/gonum/spatial/r2"

// AnchorPoint is a place on the frame where an infill rod may end.
type AnchorPoint struct {
	Position     r2.Vec
	Segment      int     // index of the frame rod the point lies on
	Vertical     bool    // whether that frame rod counts as vertical
	SegmentAngle float64 // frame rod angle from vertical, degrees
	Layer        int     // 0 while unassigned
	Used         bool
}

// Assigned reports whether the anchor belongs to a layer.
func (a *AnchorPoint) Assigned() bool { return a.Layer > 0 }

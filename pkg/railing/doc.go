// Package railing defines the value types shared by every stage of infill
// generation: rods, the frame they hang in, the generated infill and the
// anchor points rods attach to.
//
// # Rods
//
// A [Rod] is a straight piece of bar stock between two points. Layer 0 is
// reserved for the frame; infill rods use layers 1 and up. Rods in the same
// layer never cross, rods in different layers may, which is what gives a
// layered infill its woven look. Length and weight are derived from the
// geometry and the per-metre weight, never stored.
//
// Cut angles describe how each rod end is mitred against the frame segment it
// meets, measured from perpendicular in degrees and folded into [-90, 90]
// with [NormalizeCutAngle].
//
// # Frames
//
// [NewFrame] turns a set of layer-0 rods into a [Frame]. The rods may be in
// any order; they must enclose exactly one region. Zero-length rods, open
// chains and rod sets that split into several regions are rejected with
// [errors.ErrCodeDegenerateGeometry]:
//
//	frame, err := railing.FrameFromVertices([]r2.Vec{
//	    {X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100},
//	}, 0.5)
//
// # Infill
//
// An [Infill] is the output of a generation run. [Infill.Run] is set only
// when the arrangement went through evaluation.
//
// # Anchor Points
//
// [AnchorPoint] values are scratch state owned by a single generation run.
// They record where on the frame a rod may start or end, which layer may use
// the point and whether a rod already does.
package railing

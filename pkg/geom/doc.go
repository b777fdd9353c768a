// Package geom provides the planar geometry used by railfill: line segments,
// simple polygons, segment noding and polygonization.
//
// # Overview
//
// Points are [r2.Vec] values from gonum's spatial/r2 package. All lengths are
// in centimetres and all predicates use the absolute [Tolerance], which is
// small relative to the millimetre precision a railing is built to.
//
// # Segments
//
// A [Segment] is a closed straight line between two points. [Intersect]
// classifies how two segments meet (not at all, at one point, or along a
// shared collinear stretch). [Crosses] is the stricter relation used for
// layer constraints: the interiors of both segments must meet. Segments that
// only touch at an endpoint do not cross.
//
// # Polygons
//
// A [Polygon] is a simple ring stored without a closing vertex. It answers
// containment ([Polygon.Contains]), distance ([Polygon.DistanceToBoundary])
// and coverage ([Polygon.Covers]) queries. Coverage is what rod placement
// needs: a rod is acceptable when every part of it lies inside or on the
// boundary, which for non-convex frames cannot be decided from the endpoints
// alone.
//
// # Noding and Polygonization
//
// Rods of different layers cross mid-span. Extracting enclosed regions from
// such a network only works after every crossing has become an explicit
// vertex. [Node] performs that split; [Polygonize] nodes its input and then
// walks the faces of the resulting planar graph:
//
//	segs := append(frame.Segments(), infill...)
//	for _, p := range geom.Polygonize(segs) {
//	    fmt.Println(p.Area())
//	}
//
// Skipping the noding step does not fail loudly. It silently merges or drops
// regions next to crossings, which is why [Polygonize] always nodes first.
//
// # Inscribed Circles
//
// [Inradius] finds the pole of inaccessibility of a polygon, the interior
// point farthest from the boundary, using a quadtree-style cell refinement
// driven by a priority queue. The distance from that point to the boundary is
// the radius of the largest inscribed circle.
package geom

// Package anchor places candidate rod endpoints along a frame and splits
// them into per-layer pools.
//
// # Generation
//
// [Generate] walks the frame rods and spreads anchors evenly along each one,
// keeping a margin clear at both ends. Frame rods are classified with
// [IsVertical]; posts and stiles usually want wider spacing than rails, so
// [Spacing] carries one distance per class. Each anchor is nudged by a small
// random offset to break up the lattice, and anchors that end up too close to
// an anchor on a neighbouring frame rod are dropped.
//
// # Distribution
//
// [Distribute] shuffles the anchors with the run's random source and deals
// them round-robin into one [Pool] per layer, so pool sizes differ by at most
// one. A pool only ever hands out its own anchors, and iterates them in the
// dealt order, which keeps seeded runs reproducible.
//
// # Pools
//
// A [Pool] tracks which anchors are still free. [Pool.Nearest] answers "which
// free anchor is closest to this point" with a k-d tree built once per pool,
// skipping used anchors during the search rather than rebuilding the tree.
package anchor

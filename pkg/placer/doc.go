// Package placer turns per-layer anchor pools into infill rods.
//
// # Strategies
//
// Two interchangeable strategies implement [Placer]:
//
//   - [Simple] picks the layer furthest behind its quota and joins two random
//     free anchors from that layer's pool. There is no directional bias.
//   - [Directional] gives every layer a main direction spread across a
//     configured angle range ([MainDirections]). For each rod it starts at a
//     random free anchor, casts a line at the layer direction plus a random
//     deviation, finds where that line leaves the frame on the far side and
//     ends the rod at the free anchor nearest to that exit.
//
// [New] maps a [Strategy] name from configuration to a concrete placer.
//
// # Constraints
//
// Every candidate rod goes through a [Validator] before it is kept. A rod is
// rejected when its length falls outside the configured range, when any part
// of it leaves the frame, when it leans further from vertical than allowed,
// or when it crosses a rod already placed in the same layer. Rejections are
// counted in [Statistics], which is the first place to look when a parameter
// set is over-constrained.
//
// # Budgets
//
// Placement stops when the rod target is met, when the context is done, when
// the iteration budget is spent or when the per-arrangement duration runs
// out. Iterations are counted across all layers, not per layer. Failed
// attempts are retried silently; only the budgets bound them.
package placer

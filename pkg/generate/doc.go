// Package generate drives infill generation for a railing frame.
//
// # Overview
//
// A [Generator] runs two nested loops. The inner loop builds one
// arrangement: it generates anchors along the frame, deals them to layers
// and lets the configured placement strategy place rods until the rod
// target or the placement budget is reached. The outer loop repeats that up
// to MaxEvaluationAttempts times (or until MaxEvaluationDuration elapses),
// scores each complete arrangement with the configured evaluator and keeps
// the best. It stops early once an arrangement reaches
// MinAcceptableFitness.
//
// # Outcomes
//
// Every run that starts ends in one of three statuses:
//
//   - [StatusCompleted]: at least one arrangement was complete and accepted
//     by the evaluator. The best one is returned.
//   - [StatusCancelled]: the context was cancelled (or [Generator.Cancel]
//     was called). The best arrangement so far is returned, possibly empty.
//   - [StatusExhausted]: the budgets ran out before any arrangement was
//     accepted. The most complete partial arrangement is returned together
//     with the rejection counters that explain why.
//
// Cancellation and exhaustion are statuses, not errors. [Generator.Run]
// only returns an error when it cannot start: another run is active on the
// same generator, or the frame is missing or degenerate.
//
// # Events
//
// An [Observer] receives progress, best-improved, completed and failed
// events on the goroutine that called Run. Progress is throttled to one
// event per [DefaultThrottle]; best-improved fires only when the best
// fitness strictly increases.
//
// # Reproducibility
//
// Each run draws from its own PCG generator seeded from Params.Seed (zero
// picks a time-based seed, recorded on the [Result]). Two runs with the
// same seed, frame and parameters produce the same infill as long as no
// duration budget cuts them short.
package generate

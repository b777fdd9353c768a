// Package evaluate scores candidate infill arrangements.
//
// # Evaluators
//
// An [Evaluator] turns an infill and its frame into a [Result]: a fitness
// in [0, 1] (higher is better), an acceptance verdict and, when rejected,
// the [RejectionReasons] behind it. Two evaluators exist:
//
//   - [PassThrough] accepts everything with fitness 1.0. Use it when a quick
//     arrangement matters more than a good one.
//   - [Quality] detects the holes the infill leaves (see package holes) and
//     combines five criteria into a weighted fitness.
//
// [New] builds an evaluator from [Params], selected by [Kind].
//
// # Quality Criteria
//
// Each criterion yields a score in [0, 1]:
//
//   - Hole uniformity: 1/(1+CV) over hole areas, where CV is the coefficient
//     of variation.
//   - Incircle uniformity: 1/(1+CV) over the radii of the largest circle
//     inscribed in each hole.
//   - Angle distribution: the mean per-rod score, 1 inside the ideal angle
//     band and falling linearly to 0 over AngleFalloff degrees outside it.
//   - Vertical and other spacing: 1/(1+CV) over the gaps between rod
//     endpoints along frame rods of each class, frame corners included.
//
// Fitness is the weighted sum of the scores, clamped to [0, 1]. Acceptance
// is a separate hard check: any hole larger than MaxHoleArea rejects the
// arrangement whatever its fitness, as does any hole smaller than
// MinHoleArea when that bound is set.
package evaluate

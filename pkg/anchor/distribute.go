package anchor

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/railfill/pkg/railing"
)

// Distribute shuffles anchors and deals them round-robin into layers
// numbered 1..n, setting each anchor's Layer. It returns one pool per layer,
// pools[i] serving layer i+1. The input slice is not reordered.
func Distribute(anchors []*railing.AnchorPoint, n int, rng *rand.Rand) []*Pool {
	if n < 1 {
		return nil
	}
	shuffled := slices.Clone(anchors)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	dealt := make([][]*railing.AnchorPoint, n)
	for i, a := range shuffled {
		a.Layer = i%n + 1
		dealt[i%n] = append(dealt[i%n], a)
	}

	pools := make([]*Pool, n)
	for i := range pools {
		pools[i] = NewPool(i+1, dealt[i])
	}
	return pools
}

// Counts returns the number of anchors in each pool.
func Counts(pools []*Pool) []int {
	out := make([]int, len(pools))
	for i, p := range pools {
		out[i] = p.Len()
	}
	return out
}

package colour

import "math/rand/v2"

// Search effort for SelectDistinct.
const (
	SelectorSamplePairs = 512
	SelectorIterations  = 14
	SelectorAttempts    = 4
)

// capacityProbe is the per-side colour demand used to saturate the pool when
// estimating capacity.
const capacityProbe = 1000

// Selection is the result of a distinct colour search.
type Selection struct {
	// Threshold is the minimum pairwise distance guaranteed across Colours.
	Threshold float64
	// Colours holds at most the requested number of colours.
	Colours []RGB
}

// SelectDistinct searches for the largest threshold at which total colours can
// be drawn from the pool with every pairwise distance at or above it.
//
// The search is a bounded binary search over greedy samples, so it is not
// exhaustive. When the pool cannot supply total colours at any threshold the
// selection is shorter than requested; this is never an error.
func SelectDistinct(pool *Pool, total int, rng *rand.Rand) Selection {
	if total <= 0 || pool == nil || pool.Len() == 0 {
		return Selection{}
	}

	n := pool.Len()
	hi := 0.0
	for range SelectorSamplePairs {
		i := rng.IntN(n)
		j := rng.IntN(n)
		if i == j {
			continue
		}
		if d := Distance(pool.labs[i], pool.labs[j]); d > hi {
			hi = d
		}
	}

	lo := 0.0
	best := 0.0
	var bestIdx []int

	for range SelectorIterations {
		mid := (lo + hi) * 0.5
		var picked []int
		for range SelectorAttempts {
			attempt := pickGreedy(pool.labs, shuffledOrder(n, rng), mid, total)
			if len(attempt) >= total {
				picked = attempt
				break
			}
		}

		if picked != nil {
			best = mid
			bestIdx = picked
			lo = mid
		} else {
			hi = mid
		}
	}

	if len(bestIdx) < total {
		bestIdx = pickGreedy(pool.labs, shuffledOrder(n, rng), best, total)
	}

	if len(bestIdx) > total {
		bestIdx = bestIdx[:total]
	}
	colours := make([]RGB, len(bestIdx))
	for i, idx := range bestIdx {
		colours[i] = pool.colours[idx]
	}
	return Selection{Threshold: best, Colours: colours}
}

// Capacity estimates how many tags with the given side count the pool can
// supply, by asking for far more colours than it could hold. Always >= 1.
func Capacity(pool *Pool, sides int, rng *rand.Rand) int {
	if sides <= 0 {
		return 0
	}
	sel := SelectDistinct(pool, capacityProbe*sides, rng)
	return max(len(sel.Colours)/sides, 1)
}

// pickGreedy walks order and accepts each index whose distance to every
// already accepted index is at least threshold, stopping at limit.
func pickGreedy(labs []Lab, order []int, threshold float64, limit int) []int {
	picked := make([]int, 0, limit)
	for _, i := range order {
		ok := true
		for _, p := range picked {
			if Distance(labs[p], labs[i]) < threshold {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		picked = append(picked, i)
		if len(picked) >= limit {
			break
		}
	}
	return picked
}

func shuffledOrder(n int, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

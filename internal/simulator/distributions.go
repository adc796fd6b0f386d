package simulator

import (
	"math"
	"math/rand"
)

// weightedIndex draws an index from a discrete weighted distribution. Weights
// need not sum to one; zero-weight entries are never chosen. The last index is
// returned as a guard against floating point drift.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// uniformBetween draws from U[min, max).
func uniformBetween(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func uniformWithin(rng *rand.Rand, r Range) float64 {
	return uniformBetween(rng, r.Min, r.Max)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

// Package stats provides sampling helpers on top of plain summary
// statistics: weighted random selection among pattern candidates (used
// by the playout policy), and a Dirichlet root exploration-noise draw
// (not called by the search driver).
package stats

import (
	"math/rand"

	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// WeightedSample draws one index with probability proportional to its
// weight, via a cumulative-sum scan over a single uniform draw. Falls
// back to a uniform draw if every weight is non-positive.
func WeightedSample(rng *rand.Rand, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	target := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// DirichletNoise draws one sample from a symmetric Dirichlet(alpha,
// ..., alpha) distribution over n outcomes, for mixing a small amount
// of exploration noise into root move priors — the same root-noise
// idea Elvenson-alphabeth's tree.go applies via
// gonum.org/v1/gonum/stat/distmv.NewDirichlet, generalized here from a
// fixed action space to however many legal root moves this position
// has.
func DirichletNoise(n int, alpha float64, seed uint64) []float64 {
	alphaVec := make([]float64, n)
	for i := range alphaVec {
		alphaVec[i] = alpha
	}
	d := distmv.NewDirichlet(alphaVec, distrand.NewSource(seed))
	return d.Rand(nil)
}

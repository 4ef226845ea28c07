package stats

import (
	"math/rand"
	"testing"
)

func TestWeightedSampleFavoursLargerWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	counts := make([]int, 2)
	weights := []float64{1, 9}
	for i := 0; i < 2000; i++ {
		counts[WeightedSample(rng, weights)]++
	}
	if counts[1] <= counts[0] {
		t.Fatalf("expected the 9x-weighted index to win far more often, got %v", counts)
	}
}

func TestWeightedSampleAllNonPositiveIsUniformFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	idx := WeightedSample(rng, []float64{0, 0, 0})
	if idx < 0 || idx > 2 {
		t.Fatalf("expected a valid index in range, got %d", idx)
	}
}

func TestWeightedSampleEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := WeightedSample(rng, nil); got != -1 {
		t.Fatalf("expected -1 for no weights, got %d", got)
	}
}

func TestDirichletNoiseSumsToOne(t *testing.T) {
	noise := DirichletNoise(5, 0.3, 42)
	if len(noise) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(noise))
	}
	sum := 0.0
	for _, v := range noise {
		if v < 0 {
			t.Fatalf("expected every Dirichlet sample to be non-negative, got %v", v)
		}
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Fatalf("expected a Dirichlet sample to sum to ~1, got %v", sum)
	}
}

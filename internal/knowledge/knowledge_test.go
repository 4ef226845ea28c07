package knowledge

import (
	"math"
	"testing"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/point"
)

func TestCombinePlainIsScaleTimesRaw(t *testing.T) {
	p := NewRuleBasedPredictor(2.0)
	if got, want := Combine(p, 0.5, 10, 1), 1.0; got != want {
		t.Fatalf("Combine plain: got %v, want %v", got, want)
	}
}

func TestCombineProbabilityBasedZeroRaw(t *testing.T) {
	g := NewGreenpeepPredictor(nil, 19, func() point.Point { return point.NullMove })
	if got := Combine(g, 0, 10, 1); got != 0 {
		t.Fatalf("expected 0 for non-positive raw, got %v", got)
	}
}

func TestMultipleCombinationKinds(t *testing.T) {
	values := []float64{0.5, 2.0}
	cases := map[CombinationType]float64{
		CombineMultiply: 1.0,
		CombineSum:      2.5,
		CombineAverage:  1.25,
		CombineMax:      2.0,
	}
	for kind, want := range cases {
		if got := Multiple(kind, values); math.Abs(got-want) > 1e-9 {
			t.Fatalf("Multiple(%v): got %v, want %v", kind, got, want)
		}
	}
}

func TestMultipleEmpty(t *testing.T) {
	if got := Multiple(CombineSum, nil); got != 0 {
		t.Fatalf("expected 0 for no predictors, got %v", got)
	}
}

func TestRuleBasedPredictorRewardsCapture(t *testing.T) {
	bd := board.NewBoard(9, board.DefaultRules())
	p := NewRuleBasedPredictor(1.0)

	baseline := p.Value(bd, point.Pass)
	if baseline != 0 {
		t.Fatalf("expected 0 value for a pass move, got %v", baseline)
	}

	// White E5 ends up in atari (last liberty E4) with Black to move.
	setup := []struct {
		vertex string
		c      board.Color
	}{{"D5", board.Black}, {"E5", board.White}, {"F5", board.Black}, {"A9", board.White}, {"E6", board.Black}, {"A8", board.White}}
	for _, mv := range setup {
		pt, ok := bd.Geometry().Parse(mv.vertex)
		if !ok {
			t.Fatalf("bad vertex %q", mv.vertex)
		}
		if err := bd.Play(pt, mv.c); err != nil {
			t.Fatalf("play %s %s: %v", mv.c, mv.vertex, err)
		}
	}
	capture, _ := bd.Geometry().Parse("E4")
	if v := p.Value(bd, capture); v < p.weights.Capture {
		t.Fatalf("expected the capturing move to score at least the capture weight %v, got %v", p.weights.Capture, v)
	}
}

func TestGreenpeepPredictorFlavorSwitchesOnBoardSize(t *testing.T) {
	small := NewGreenpeepPredictor(nil, 9, func() point.Point { return point.NullMove })
	large := NewGreenpeepPredictor(nil, 19, func() point.Point { return point.NullMove })
	if small.Flavor() != FlavorPlain {
		t.Fatalf("expected a plain flavour on a small board")
	}
	if large.Flavor() != FlavorProbabilityBased {
		t.Fatalf("expected a probability-based flavour on a large board")
	}
}

func TestGreenpeepPredictorFloorsAtMinimum(t *testing.T) {
	bd := board.NewBoard(9, board.DefaultRules())
	g := NewGreenpeepPredictor(nil, 9, bd.KoPoint)
	v := g.Value(bd, bd.Geometry().Of(4, 4))
	if v != g.minimum() {
		t.Fatalf("expected the flavour's minimum with a nil table, got %v", v)
	}
}

func TestComputePriorProducesAProbabilityLikeMean(t *testing.T) {
	bd := board.NewBoard(9, board.DefaultRules())
	seed := ComputePrior(bd, bd.Geometry().Of(4, 4), DefaultSeedWeight)
	if seed.Mean < 0 || seed.Mean > 1 {
		t.Fatalf("expected a mean in [0,1], got %v", seed.Mean)
	}
	if seed.MoveCount != DefaultSeedWeight || seed.RaveCount != DefaultSeedWeight {
		t.Fatalf("expected the seed weight to be threaded through, got %+v", seed)
	}
}

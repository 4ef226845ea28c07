// Package knowledge implements prior-knowledge seeding (synthetic
// initial statistics for a freshly expanded node's children) and
// additive predictors (per-move bias terms consulted during
// selection). Both are grounded on Fuego's GoUctAdditiveKnowledge
// family: GoUctAdditiveKnowledgeFuego (rule-based, "plain"),
// GoUctAdditiveKnowledgeGreenpeep (table-driven, probability-based on
// large boards), and GoUctAdditiveKnowledgeMultiple (the N-way
// combinator).
package knowledge

import (
	"math"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/pattern"
	"github.com/uctgo/gouct/internal/point"
)

// Flavor selects how a single predictor's raw value is folded into
// the selection score.
type Flavor int

const (
	FlavorPlain Flavor = iota
	FlavorProbabilityBased
	FlavorPUCB
)

// Predictor is a stateless function from (position, candidate move) to
// a raw value; Flavor says how Combine should turn that raw value into
// a selection-score bias.
type Predictor interface {
	Flavor() Flavor
	Scale() float64
	Value(pos board.Position, move point.Point) float64
}

// Combine turns one predictor's raw per-move value into the additive
// bias term spec.md §4.7 adds into the UCT selection score. total is
// the parent's visit count and max is the largest raw value among all
// of this node's candidate moves (both needed by the probability and
// PUCB flavours' sqrt(total)/sqrt(total*max) normalisation).
func Combine(p Predictor, raw, total, max float64) float64 {
	scale := p.Scale()
	switch p.Flavor() {
	case FlavorProbabilityBased:
		if raw <= 0 {
			return 0
		}
		return scale * math.Sqrt(total) / math.Sqrt(raw)
	case FlavorPUCB:
		if raw <= 0 {
			return 0
		}
		return scale * math.Sqrt(total*max) / raw
	default: // FlavorPlain
		return scale * raw
	}
}

// CombinationType selects how Multiple merges several predictors'
// already-combined bias values into one.
type CombinationType int

const (
	CombineMultiply CombinationType = iota
	CombineGeometricMean
	CombineSum
	CombineAverage
	CombineMax
)

// Multiple merges the bias values produced by several predictors for
// the same move, per spec.md §4.7's "multiple wrapper" /
// GoUctAdditiveKnowledgeMultiple.
func Multiple(kind CombinationType, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch kind {
	case CombineMultiply:
		v := 1.0
		for _, x := range values {
			v *= x
		}
		return v
	case CombineGeometricMean:
		v := 1.0
		n := 0
		for _, x := range values {
			if x <= 0 {
				continue
			}
			v *= x
			n++
		}
		if n == 0 {
			return 0
		}
		return math.Pow(v, 1.0/float64(n))
	case CombineSum:
		s := 0.0
		for _, x := range values {
			s += x
		}
		return s
	case CombineAverage:
		s := 0.0
		for _, x := range values {
			s += x
		}
		return s / float64(len(values))
	case CombineMax:
		m := values[0]
		for _, x := range values[1:] {
			if x > m {
				m = x
			}
		}
		return m
	default:
		return 0
	}
}

// FeatureWeights holds the per-feature weights RuleBasedPredictor sums,
// loaded from the embedded feature-weight blob (internal/data) instead
// of being hardcoded, so a retuned blob changes prior behaviour without
// a rebuild.
type FeatureWeights struct {
	Capture   float64
	Save      float64
	Pattern   float64
	Proximity float64
	ThirdLine float64
}

// DefaultFeatureWeights are used when no blob-provided weights are
// supplied, matching GoUctAdditiveKnowledgeFuego's hand-tuned constants.
var DefaultFeatureWeights = FeatureWeights{
	Capture:   1.0,
	Save:      0.7,
	Pattern:   0.3,
	Proximity: 0.2,
	ThirdLine: 0.1,
}

// RuleBasedPredictor is the "Plain" flavour: a hand-tuned feature sum
// grounded on GoUctAdditiveKnowledgeFuego's rule-based prior features.
// It sums weighted terms for capturing an adjacent opponent block in
// atari, saving an adjacent own block in atari, a 3x3 pattern match,
// distance to the last move, and the third/fourth line from the edge.
type RuleBasedPredictor struct {
	scale   float64
	weights FeatureWeights
}

func NewRuleBasedPredictor(scale float64) *RuleBasedPredictor {
	return &RuleBasedPredictor{scale: scale, weights: DefaultFeatureWeights}
}

// NewRuleBasedPredictorWithWeights builds a predictor using a
// blob-provided feature weighting instead of the built-in defaults.
func NewRuleBasedPredictorWithWeights(scale float64, weights FeatureWeights) *RuleBasedPredictor {
	return &RuleBasedPredictor{scale: scale, weights: weights}
}

func (r *RuleBasedPredictor) Flavor() Flavor { return FlavorPlain }
func (r *RuleBasedPredictor) Scale() float64 { return r.scale }

func (r *RuleBasedPredictor) Value(pos board.Position, move point.Point) float64 {
	if move == point.Pass {
		return 0
	}
	v := 0.0
	mover := pos.ToPlay()
	opp := mover.Opponent()
	geom := pos.Geometry()

	for _, nb := range geom.Neighbors4(move) {
		if pos.ColorAt(nb) == opp && pos.InAtari(nb) {
			v += r.weights.Capture
		}
		if pos.ColorAt(nb) == mover && pos.InAtari(nb) {
			v += r.weights.Save
		}
	}
	if pattern.Match(pos, move) {
		v += r.weights.Pattern
	}
	last := pos.LastMove()
	if last != point.NullMove && last != point.Pass {
		lx, ly := geom.XY(last)
		mx, my := geom.XY(move)
		dist := abs(lx-mx) + abs(ly-my)
		if dist <= 2 {
			v += r.weights.Proximity / float64(1+dist)
		}
	}
	line := geom.LineFromEdge(move)
	if line == 3 || line == 4 {
		v += r.weights.ThirdLine
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GreenpeepTable is the minimal interface this package needs from an
// embedded Greenpeep table (internal/data loads the table).
type GreenpeepTable interface {
	ValueAt(context uint32) float64
}

// GreenpeepPredictor reads a gamma/probability value out of an
// embedded table keyed by the 12-point diamond context. Flavor switches
// to probability-based on boards large enough to need it, matching
// GoUctAdditiveKnowledgeGreenpeep::ProbabilityBased (board size >= 15).
type GreenpeepPredictor struct {
	table      GreenpeepTable
	boardSize  int
	koPoint    func() point.Point
}

func NewGreenpeepPredictor(table GreenpeepTable, boardSize int, koPoint func() point.Point) *GreenpeepPredictor {
	return &GreenpeepPredictor{table: table, boardSize: boardSize, koPoint: koPoint}
}

func (g *GreenpeepPredictor) Flavor() Flavor {
	if g.boardSize >= 15 {
		return FlavorProbabilityBased
	}
	return FlavorPlain
}

func (g *GreenpeepPredictor) Scale() float64 { return 0.03 }

func (g *GreenpeepPredictor) minimum() float64 {
	if g.Flavor() == FlavorProbabilityBased {
		return 0.0001
	}
	return 0.05
}

func (g *GreenpeepPredictor) Value(pos board.Position, move point.Point) float64 {
	if move == point.Pass || g.table == nil {
		return g.minimum()
	}
	ctx := pattern.DiamondContext(pos, move, g.koPoint())
	v := g.table.ValueAt(ctx)
	if v < g.minimum() {
		return g.minimum()
	}
	return v
}

// PriorSeed is the synthetic-statistics bundle seeded once into a
// freshly expanded child (spec.md §4.7 "Prior knowledge").
type PriorSeed struct {
	Mean       float64
	MoveCount  int32
	RaveValue  float64
	RaveCount  int32
}

// DefaultSeedWeight is the default synthetic visit count a single
// prior-knowledge computation contributes; ComputePrior takes the
// weight as a parameter, so callers can configure it.
const DefaultSeedWeight = 6

// ComputePrior derives the prior seed for one candidate child move
// from the same rule-based features RuleBasedPredictor uses, mapped
// into a [0,1] mean via a logistic squashing so it behaves like a
// plausible win probability rather than an unbounded feature sum.
func ComputePrior(pos board.Position, move point.Point, weight int32) PriorSeed {
	raw := NewRuleBasedPredictor(1.0).Value(pos, move)
	mean := 1.0 / (1.0 + math.Exp(-raw))
	return PriorSeed{
		Mean:      mean,
		MoveCount: weight,
		RaveValue: mean,
		RaveCount: weight,
	}
}

package search

import (
	"math"
	"math/rand"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/knowledge"
	"github.com/uctgo/gouct/internal/tree"
)

// selectChild implements spec.md §4.5 step 1: picks the child
// maximising Q + c*sqrt(ln(parent_count)/child_count) + additive_bias +
// rave_term, ties broken by a thread-local random draw so concurrent
// threads do not phase-lock onto the same path.
func (s *Searcher) selectChild(node *tree.Node, pos board.Position, rng *rand.Rand) *tree.Node {
	children := node.Children()
	if len(children) == 0 {
		return nil
	}
	parentVisits := float64(node.RealVisits())
	lnParent := 0.0
	if parentVisits > 1 {
		lnParent = math.Log(parentVisits)
	}

	var rawPerChild [][]float64
	var maxRaw []float64
	if len(s.predictors) > 0 {
		rawPerChild = make([][]float64, len(s.predictors))
		maxRaw = make([]float64, len(s.predictors))
		for pi, p := range s.predictors {
			rawPerChild[pi] = make([]float64, len(children))
			for ci, c := range children {
				v := p.Value(pos, c.Move)
				rawPerChild[pi][ci] = v
				if v > maxRaw[pi] {
					maxRaw[pi] = v
				}
			}
		}
	}

	var best *tree.Node
	bestScore := math.Inf(-1)
	ties := 0
	for ci, c := range children {
		visits := float64(c.RealVisits())
		var q float64
		if visits <= 0 {
			q = s.params.FirstPlayUrgency
		} else {
			q = c.MeanValue()
		}
		if vl := float64(c.VirtualLoss()); vl > 0 {
			// Outstanding virtual loss counts as that many lost playouts.
			q = q * visits / (visits + vl)
		}
		explore := 0.0
		if visits > 0 && s.params.UCTConst != 0 {
			explore = s.params.UCTConst * math.Sqrt(lnParent/visits)
		}
		additive := 0.0
		if len(s.predictors) > 0 {
			biases := make([]float64, len(s.predictors))
			for pi, p := range s.predictors {
				biases[pi] = knowledge.Combine(p, rawPerChild[pi][ci], parentVisits, maxRaw[pi])
			}
			additive = knowledge.Multiple(s.combineKind, biases)
		}
		rave := raveTerm(c, q, s.params.RAVEBeta)
		score := q + explore + additive + rave

		if best == nil || score > bestScore {
			best = c
			bestScore = score
			ties = 1
		} else if score == bestScore {
			ties++
			if rng.Intn(ties) == 0 {
				best = c
			}
		}
	}
	return best
}

// raveTerm returns the additive correction that mixes the node's RAVE
// mean into its UCT mean by the standard weight
// rave_count/(rave_count+move_count+4*beta*rave_count*move_count),
// expressed as the delta added to q so that q+raveTerm equals the
// mixed estimate (spec.md §4.5).
func raveTerm(c *tree.Node, q, beta float64) float64 {
	raveVisits := float64(c.RAVEVisits())
	if raveVisits <= 0 {
		return 0
	}
	moveVisits := float64(c.RealVisits())
	weight := raveVisits / (raveVisits + moveVisits + 4*beta*raveVisits*moveVisits)
	return weight * (c.RAVEValue() - q)
}

// Package policy implements the default playout policy: the move
// generator a simulation uses once it runs past the expanded part of
// the tree. It tries, in order, a nakade heuristic, atari capture,
// atari defence, low-liberty moves, 3x3 pattern moves, global capture,
// and finally a pure random legal move — the same cascade order
// GoUctPlayoutPolicy documents, evolved from the original MoGo
// heuristics.
package policy

import (
	"math/rand"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/pattern"
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/stats"
)

// Type identifies which generator produced a playout move, used for
// statistics collection (spec §4.6's "recording the move type for the
// statistics option").
type Type int

const (
	TypeFillBoard Type = iota
	TypeNakade
	TypeAtariCapture
	TypeAtariDefense
	TypeLowLib
	TypePattern
	TypeGammaPattern
	TypeCapture
	TypeRandom
	TypePass
)

func (t Type) String() string {
	switch t {
	case TypeFillBoard:
		return "FillBoard"
	case TypeNakade:
		return "Nakade"
	case TypeAtariCapture:
		return "AtariCapture"
	case TypeAtariDefense:
		return "AtariDefense"
	case TypeLowLib:
		return "LowLib"
	case TypePattern:
		return "Pattern"
	case TypeGammaPattern:
		return "GammaPattern"
	case TypeCapture:
		return "Capture"
	case TypeRandom:
		return "Random"
	case TypePass:
		return "Pass"
	default:
		return "?"
	}
}

// Params mirrors GoUctPlayoutPolicyParam's switches (spec §4.6).
type Params struct {
	FillboardTries       int
	UseNakadeHeuristic   bool
	UsePatternsInRollout bool
	UseGammaWeighting    bool
	PatternGammaMin      float64
	StatisticsEnabled    bool
}

// DefaultParams mirrors the teacher's constructor defaults translated
// to this domain: patterns and nakade on, gamma weighting off (plain
// uniform choice among matching patterns, as the original MoGo paper
// did), statistics off (has "a negative impact on performance").
func DefaultParams() Params {
	return Params{
		FillboardTries:       0,
		UseNakadeHeuristic:   true,
		UsePatternsInRollout: true,
		UseGammaWeighting:    false,
		PatternGammaMin:      0.02,
		StatisticsEnabled:    false,
	}
}

// GammaTable supplies per-pattern-code gamma weights for the
// gamma-weighted pattern generator (internal/data loads the embedded
// table; nil means fall back to uniform choice).
type GammaTable interface {
	Gamma(code uint32) float64
}

// Stat accumulates the playout-move-type histogram (spec §4.6
// "GoUctPlayoutPolicyStat").
type Stat struct {
	NumMoves     int
	MoveTypeFreq [int(TypePass) + 1]int
}

func (s *Stat) record(t Type) {
	s.NumMoves++
	s.MoveTypeFreq[t]++
}

// Policy generates moves for one playout. It is not safe for
// concurrent use — one instance per search worker, matching the
// teacher's one-GameOperations-per-worker pattern.
type Policy struct {
	params Params
	rng    *rand.Rand
	gamma  GammaTable
	stat   Stat
}

func New(params Params, rng *rand.Rand, gamma GammaTable) *Policy {
	return &Policy{params: params, rng: rng, gamma: gamma}
}

func (p *Policy) Statistics() Stat { return p.stat }
func (p *Policy) ClearStatistics() { p.stat = Stat{} }

// GenerateMove picks the next playout move on pb for the side to move.
func (p *Policy) GenerateMove(pb *board.PlayoutBoard) (point.Point, Type) {
	toPlay := pb.ToPlay()

	if p.params.FillboardTries > 0 {
		if mv, ok := p.generateFillBoard(pb, toPlay); ok {
			p.maybeRecord(TypeFillBoard)
			return mv, TypeFillBoard
		}
	}
	if p.params.UseNakadeHeuristic {
		if mv, ok := p.generateNakade(pb, toPlay); ok {
			p.maybeRecord(TypeNakade)
			return mv, TypeNakade
		}
	}
	if mv, ok := p.generateAtariCapture(pb, toPlay); ok {
		p.maybeRecord(TypeAtariCapture)
		return mv, TypeAtariCapture
	}
	if mv, ok := p.generateAtariDefense(pb, toPlay); ok {
		p.maybeRecord(TypeAtariDefense)
		return mv, TypeAtariDefense
	}
	if mv, ok := p.generateLowLib(pb, toPlay); ok {
		p.maybeRecord(TypeLowLib)
		return mv, TypeLowLib
	}
	if p.params.UsePatternsInRollout {
		if p.params.UseGammaWeighting && p.gamma != nil {
			if mv, ok := p.generateGammaPattern(pb, toPlay); ok {
				p.maybeRecord(TypeGammaPattern)
				return mv, TypeGammaPattern
			}
		} else if mv, ok := p.generatePattern(pb, toPlay); ok {
			p.maybeRecord(TypePattern)
			return mv, TypePattern
		}
	}
	if mv, ok := p.generateGlobalCapture(pb, toPlay); ok {
		p.maybeRecord(TypeCapture)
		return mv, TypeCapture
	}
	if mv, ok := p.generatePureRandom(pb, toPlay); ok {
		p.maybeRecord(TypeRandom)
		return mv, TypeRandom
	}
	p.maybeRecord(TypePass)
	return point.Pass, TypePass
}

func (p *Policy) maybeRecord(t Type) {
	if p.params.StatisticsEnabled {
		p.stat.record(t)
	}
}

// generateFillBoard tries up to FillboardTries random empty points that
// have no stone neighbour of either colour and accepts the first legal
// one found (GoUctPureRandomGenerator::GenerateFillboardMove). Disabled
// by default; only useful for early, spread-out playouts on otherwise
// empty boards.
func (p *Policy) generateFillBoard(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	pts := pb.IterBoard()
	if len(pts) == 0 {
		return point.NullMove, false
	}
	geom := pb.Geometry()
	for i := 0; i < p.params.FillboardTries; i++ {
		pt := pts[p.rng.Intn(len(pts))]
		if pb.ColorAt(pt) != board.Empty {
			continue
		}
		hasNeighbor := false
		for _, nb := range geom.Neighbors4(pt) {
			if pb.ColorAt(nb) != board.Empty {
				hasNeighbor = true
				break
			}
		}
		if hasNeighbor {
			continue
		}
		if pb.Legal(pt, toPlay) {
			return pt, true
		}
	}
	return point.NullMove, false
}

// generateNakade looks for a small, fully-enclosed empty region next
// to the last move and proposes its vital point to kill the group
// before it can make two eyes. Fuego's GoEyeUtil matches this against
// a dictionary of named eye shapes up to 6 points; this is a bounded
// approximation of the same idea: any empty region of at most 6 points,
// not touching the board edge, all of whose bordering stones are of the
// opponent's colour (in one block or several) is treated as
// nakade-vulnerable, and its centroid-nearest point is proposed.
func (p *Policy) generateNakade(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	opp := toPlay.Opponent()
	last := pb.LastMove()
	if last == point.NullMove || last == point.Pass {
		return point.NullMove, false
	}
	geom := pb.Geometry()
	for _, nb := range geom.Neighbors4(last) {
		if pb.ColorAt(nb) != board.Empty {
			continue
		}
		region, enclosedBy, ok := floodEmptyRegion(pb, nb, 6)
		if !ok || enclosedBy != opp {
			continue
		}
		vital := centroidPoint(geom, region)
		if pb.Legal(vital, toPlay) {
			return vital, true
		}
	}
	return point.NullMove, false
}

// floodEmptyRegion flood-fills the empty region containing start, up
// to maxSize points, and reports the single stone colour bordering it
// if the whole region is bordered by exactly one colour.
func floodEmptyRegion(pb *board.PlayoutBoard, start point.Point, maxSize int) ([]point.Point, board.Color, bool) {
	geom := pb.Geometry()
	seen := map[point.Point]bool{start: true}
	queue := []point.Point{start}
	region := []point.Point{start}
	border := board.Empty
	borderSet := false
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range geom.Neighbors4(cur) {
			if seen[nb] {
				continue
			}
			c := pb.ColorAt(nb)
			if c == board.Empty {
				seen[nb] = true
				if len(region) >= maxSize {
					return nil, board.Empty, false
				}
				region = append(region, nb)
				queue = append(queue, nb)
				continue
			}
			if c == board.Border {
				return nil, board.Empty, false
			}
			if !borderSet {
				border = c
				borderSet = true
			} else if border != c {
				return nil, board.Empty, false
			}
		}
	}
	if !borderSet || len(region) > maxSize {
		return nil, board.Empty, false
	}
	return region, border, true
}

func centroidPoint(geom point.Geometry, region []point.Point) point.Point {
	var sx, sy int
	for _, p := range region {
		x, y := geom.XY(p)
		sx += x
		sy += y
	}
	cx := sx / len(region)
	cy := sy / len(region)
	best := region[0]
	bestDist := 1 << 30
	for _, p := range region {
		x, y := geom.XY(p)
		d := (x-cx)*(x-cx) + (y-cy)*(y-cy)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// generateAtariCapture plays a move capturing a block the opponent
// just put into atari against itself, or recaptures in a ko.
func (p *Policy) generateAtariCapture(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	last := pb.LastMove()
	if last == point.NullMove || last == point.Pass {
		return point.NullMove, false
	}
	if pb.ColorAt(last) == toPlay.Opponent() && pb.InAtari(last) {
		if lib, ok := pb.TheLiberty(last); ok && pb.Legal(lib, toPlay) {
			return lib, true
		}
	}
	geom := pb.Geometry()
	for _, nb := range geom.Neighbors4(last) {
		if pb.ColorAt(nb) == toPlay.Opponent() && pb.InAtari(nb) {
			if lib, ok := pb.TheLiberty(nb); ok && pb.Legal(lib, toPlay) {
				return lib, true
			}
		}
	}
	return point.NullMove, false
}

// generateAtariDefense tries to save the mover's own block if the
// opponent's last move put it in atari, by extending to the block's
// remaining liberty. Capturing the attacking stones is not tried.
func (p *Policy) generateAtariDefense(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	last := pb.LastMove()
	if last == point.NullMove || last == point.Pass {
		return point.NullMove, false
	}
	geom := pb.Geometry()
	for _, nb := range geom.Neighbors4(last) {
		if pb.ColorAt(nb) == toPlay && pb.InAtari(nb) {
			if lib, ok := pb.TheLiberty(nb); ok && pb.Legal(lib, toPlay) {
				return lib, true
			}
		}
	}
	return point.NullMove, false
}

// generateLowLib proposes playing on a liberty of a low-liberty block
// adjacent to the last move, trying to improve the mover's own shape.
func (p *Policy) generateLowLib(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	last := pb.LastMove()
	if last == point.NullMove || last == point.Pass {
		return point.NullMove, false
	}
	geom := pb.Geometry()
	var candidates []point.Point
	for _, nb := range geom.Neighbors4(last) {
		if pb.ColorAt(nb) != toPlay {
			continue
		}
		if pb.NumLiberties(nb) != 2 {
			continue
		}
		for _, nb2 := range geom.Neighbors4(nb) {
			if pb.ColorAt(nb2) == board.Empty && pb.Legal(nb2, toPlay) {
				candidates = append(candidates, nb2)
			}
		}
	}
	if len(candidates) == 0 {
		return point.NullMove, false
	}
	return candidates[p.rng.Intn(len(candidates))], true
}

// generatePattern proposes a uniformly random move among the 3x3
// pattern matches around the last move (and, per
// SECOND_LAST_MOVE_PATTERNS, the move before that).
func (p *Policy) generatePattern(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	var candidates []point.Point
	collect := func(around point.Point) {
		if around == point.NullMove || around == point.Pass {
			return
		}
		geom := pb.Geometry()
		for _, nb := range geom.Neighbors8(around) {
			if pb.ColorAt(nb) == board.Empty && pattern.Match(pb, nb) && pb.Legal(nb, toPlay) && !pb.IsSimpleEye(nb, toPlay) {
				candidates = append(candidates, nb)
			}
		}
	}
	collect(pb.LastMove())
	collect(pb.SecondLastMove())
	if len(candidates) == 0 {
		return point.NullMove, false
	}
	return candidates[p.rng.Intn(len(candidates))], true
}

// generateGammaPattern is the gamma-weighted variant: candidates are
// sampled proportional to their learned pattern weight via
// internal/stats' weighted sampler, instead of uniformly.
func (p *Policy) generateGammaPattern(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	var candidates []point.Point
	var weights []float64
	consider := func(around point.Point) {
		if around == point.NullMove || around == point.Pass {
			return
		}
		geom := pb.Geometry()
		for _, nb := range geom.Neighbors8(around) {
			if pb.ColorAt(nb) != board.Empty || !pb.Legal(nb, toPlay) || pb.IsSimpleEye(nb, toPlay) {
				continue
			}
			code := pattern.DiamondContext(pb, nb, pb.KoPoint())
			g := p.gamma.Gamma(code)
			if g < p.params.PatternGammaMin {
				continue
			}
			candidates = append(candidates, nb)
			weights = append(weights, g)
		}
	}
	consider(pb.LastMove())
	consider(pb.SecondLastMove())
	if len(candidates) == 0 {
		return point.NullMove, false
	}
	idx := stats.WeightedSample(p.rng, weights)
	return candidates[idx], true
}

// generateGlobalCapture scans the whole board for any block in atari
// that the mover can capture, used when none of the local heuristics
// around the last move fired.
func (p *Policy) generateGlobalCapture(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	opp := toPlay.Opponent()
	var candidates []point.Point
	seen := map[point.Point]bool{}
	for _, pt := range pb.IterBoard() {
		if pb.ColorAt(pt) != opp || pb.Anchor(pt) != pt {
			continue
		}
		if seen[pt] {
			continue
		}
		seen[pt] = true
		if pb.InAtari(pt) {
			if lib, ok := pb.TheLiberty(pt); ok && pb.Legal(lib, toPlay) {
				candidates = append(candidates, lib)
			}
		}
	}
	if len(candidates) == 0 {
		return point.NullMove, false
	}
	return candidates[p.rng.Intn(len(candidates))], true
}

// generatePureRandom falls back to a uniformly random legal move that
// is not a simple eye of the mover (spec §4.6). Collects every
// candidate into a fresh slice once per call and picks one by a
// random index; for a rollout calling this many times
// per game this would normally be replaced by an incrementally
// maintained free-point list (GoUctPureRandomGenerator does exactly
// that), which internal/board.PlayoutBoard.IterEmpty approximates by
// handing back a bitset iterator instead of rebuilding a slice.
func (p *Policy) generatePureRandom(pb *board.PlayoutBoard, toPlay board.Color) (point.Point, bool) {
	var candidates []point.Point
	it := pb.IterEmpty()
	for pt, ok := it.Next(); ok; pt, ok = it.Next() {
		if pb.IsSimpleEye(pt, toPlay) {
			continue
		}
		if pb.Legal(pt, toPlay) {
			candidates = append(candidates, pt)
		}
	}
	if len(candidates) == 0 {
		return point.NullMove, false
	}
	return candidates[p.rng.Intn(len(candidates))], true
}

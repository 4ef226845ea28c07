package search

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/knowledge"
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/policy"
	"github.com/uctgo/gouct/internal/tree"
)

// Searcher drives the UCT search over a fixed tree, starting from
// rootBoard's position. One Searcher runs one search at a time; Run
// blocks until the configured limiter stops the search. The per-thread
// loop structure (select, maybe expand, playout, backup) is grounded
// on the teacher's MCTS.Search/Selection functions
// (pkg/mcts/search.go), generalized to spec.md §4.5's selection
// formula and §4.8's Go-specific evaluation.
type Searcher struct {
	tree      *tree.Tree
	rootBoard *board.Board
	rules     board.Rules

	params        Params
	limiter       *Limiter
	playoutParams policy.Params
	gamma         policy.GammaTable

	predictors  []knowledge.Predictor
	combineKind knowledge.CombinationType

	playouts atomic.Uint64
}

// NewSearcher wires a tree, the authoritative board at the tree's
// root, and the search/playout/knowledge configuration into one
// driver.
func NewSearcher(
	tr *tree.Tree,
	rootBoard *board.Board,
	params Params,
	limiter *Limiter,
	playoutParams policy.Params,
	gamma policy.GammaTable,
	predictors []knowledge.Predictor,
	combineKind knowledge.CombinationType,
) *Searcher {
	return &Searcher{
		tree:          tr,
		rootBoard:     rootBoard,
		rules:         rootBoard.Rules(),
		params:        params,
		limiter:       limiter,
		playoutParams: playoutParams,
		gamma:         gamma,
		predictors:    predictors,
		combineKind:   combineKind,
	}
}

func (s *Searcher) Tree() *tree.Tree  { return s.tree }
func (s *Searcher) Limiter() *Limiter { return s.limiter }
func (s *Searcher) Playouts() uint64  { return s.playouts.Load() }

// Run launches one worker goroutine per configured thread and blocks
// until every worker has stopped, then records the stop reason.
// Cancelling ctx (or calling Limiter.SetStop) ends the search early.
func (s *Searcher) Run(ctx context.Context) {
	s.limiter.SetContext(ctx)
	s.limiter.Reset()
	s.playouts.Store(0)

	threads := s.limiter.Limits().NThreads
	if threads < 1 {
		threads = 1
	}
	if threads > s.tree.NumAllocators() {
		threads = s.tree.NumAllocators()
	}

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(idx)))
			pol := policy.New(s.playoutParams, rng, s.gamma)
			s.runWorker(idx, pol, rng)
		}(i)
	}
	wg.Wait()
	s.limiter.EvaluateStopReason(s.tree.NodeCount(), s.playouts.Load())
}

func (s *Searcher) runWorker(threadIdx int, pol *policy.Policy, rng *rand.Rand) {
	alloc := s.tree.Allocator(threadIdx)
	for s.limiter.Ok(s.tree.NodeCount(), s.playouts.Load()) {
		s.simulate(alloc, pol, rng)
		s.playouts.Add(1)
		if threadIdx == 0 && s.earlyAbortCheck() {
			s.limiter.SetStop(true)
			return
		}
	}
}

// simulate runs one select/expand/playout/backup cycle.
func (s *Searcher) simulate(alloc *tree.Allocator, pol *policy.Policy, rng *rand.Rand) {
	bd := s.rootBoard.Clone()
	node := s.tree.Root()
	path := []*tree.Node{node}
	var selMoves []point.Point

	for node.Expanded() && node.NumChildren() > 0 {
		child := s.selectChild(node, bd, rng)
		if child == nil {
			break
		}
		child.AddVirtualLoss(s.params.VirtualLossAmount)
		if err := bd.Play(child.Move, bd.ToPlay()); err != nil {
			child.RemoveVirtualLoss(s.params.VirtualLossAmount)
			break
		}
		selMoves = append(selMoves, child.Move)
		path = append(path, child)
		node = child
	}

	if s.limiter.Expand() && node.RealVisits() >= s.params.ExpansionThreshold && !node.Terminal() && !node.Expanded() {
		s.expand(alloc, node, bd)
	}
	for node.Expanding() {
		runtime.Gosched()
	}
	if node.Expanded() && node.NumChildren() > 0 {
		child := s.selectChild(node, bd, rng)
		if child != nil {
			child.AddVirtualLoss(s.params.VirtualLossAmount)
			if err := bd.Play(child.Move, bd.ToPlay()); err == nil {
				selMoves = append(selMoves, child.Move)
				path = append(path, child)
				node = child
			} else {
				child.RemoveVirtualLoss(s.params.VirtualLossAmount)
			}
		}
	}

	var rolloutMoves []point.Point
	blackValue := 0.5
	if node.Terminal() {
		blackValue = Evaluate(bd, s.rules, s.params, bd.MoveNumber())
		s.markProven(node, bd)
	} else {
		pb := board.NewPlayoutBoard(s.boardSize(), s.rules)
		pb.InitFrom(bd)
		rolloutMoves = s.playoutLoop(pb, pol)
		blackValue = Evaluate(pb, s.rules, s.params, bd.MoveNumber()+len(rolloutMoves))
	}

	s.backup(path, selMoves, rolloutMoves, blackValue)
}

// markProven records a genuinely terminal node's exact outcome (the
// final Tromp-Taylor score, not a Monte Carlo sample) as its proven
// type, from the perspective of whichever side is to move at node.
// Tree.ExtractSubtree later recomputes internal ancestors' proven
// types from children such as this one.
func (s *Searcher) markProven(node *tree.Node, bd *board.Board) {
	margin := ScoreMargin(bd, s.rules)
	if margin == 0 {
		return
	}
	blackWins := margin > 0
	toPlayWins := blackWins == (bd.ToPlay() == board.Black)
	if toPlayWins {
		node.SetProvenType(tree.ProvenWin)
	} else {
		node.SetProvenType(tree.ProvenLoss)
	}
}

func (s *Searcher) boardSize() int {
	return s.rootBoard.Geometry().BoardSize
}

// expand generates the legal-move children of node (the root's
// candidate list additionally passes through FilterRootMoves) and
// publishes them, seeding each with prior knowledge. Per spec.md §4.8's
// failure semantics, an allocator exhausted mid-expansion is not an
// error: the node simply keeps whatever children were allocated before
// the allocator ran out (zero, if the very first Alloc failed) and is
// still marked expanded, so the search treats it as settled rather
// than retrying forever.
func (s *Searcher) expand(alloc *tree.Allocator, node *tree.Node, bd *board.Board) {
	if !node.TryBeginExpand() {
		return
	}
	moves := legalMoves(bd)
	if node == s.tree.Root() {
		moves = FilterRootMoves(bd, moves)
	}
	children := make([]*tree.Node, 0, len(moves))
	for _, mv := range moves {
		terminal := mv == point.Pass && bd.LastMove() == point.Pass
		c, err := alloc.Alloc(node, mv, terminal)
		if err != nil {
			break
		}
		children = append(children, c)
	}
	tree.AttachChildren(node, children)
	if len(children) > 0 {
		s.seedPriors(children, bd)
	}
	node.FinishExpand()
}

func (s *Searcher) seedPriors(children []*tree.Node, bd *board.Board) {
	for _, c := range children {
		if c.Move == point.Pass {
			continue
		}
		seed := knowledge.ComputePrior(bd, c.Move, s.params.PriorSeedWeight)
		for i := int32(0); i < seed.MoveCount; i++ {
			c.AddOutcome(seed.Mean)
		}
		for i := int32(0); i < seed.RaveCount; i++ {
			c.AddRAVE(seed.RaveValue)
		}
	}
}

func legalMoves(bd *board.Board) []point.Point {
	var moves []point.Point
	toPlay := bd.ToPlay()
	it := bd.IterEmpty()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if bd.Legal(p, toPlay) {
			moves = append(moves, p)
		}
	}
	moves = append(moves, point.Pass)
	return moves
}

// playoutLoop runs the default playout policy from pb's current
// position until two consecutive passes, the mercy rule, or the move
// cap fires, per spec.md §4.6's termination guarantee.
func (s *Searcher) playoutLoop(pb *board.PlayoutBoard, pol *policy.Policy) []point.Point {
	var moves []point.Point
	consecutivePasses := 0
	for len(moves) < s.params.MaxPlayoutMoves {
		mv, _ := pol.GenerateMove(pb)
		if err := pb.Play(mv, pb.ToPlay()); err != nil {
			break
		}
		moves = append(moves, mv)
		if mv == point.Pass {
			consecutivePasses++
			if consecutivePasses >= 2 {
				break
			}
		} else {
			consecutivePasses = 0
		}
		if s.params.MercyThreshold > 0 {
			if diff := mercyDifference(pb); diff >= s.params.MercyThreshold || diff <= -s.params.MercyThreshold {
				break
			}
		}
	}
	return moves
}

// backup walks the visited path applying spec.md §4.5 step 5:
// add_game_result at each node with alternating perspective, plus
// sibling RAVE updates for moves appearing later in the simulation by
// the same colour.
func (s *Searcher) backup(path []*tree.Node, selMoves, rolloutMoves []point.Point, blackValue float64) {
	continuation := make([]point.Point, 0, len(selMoves)+len(rolloutMoves))
	continuation = append(continuation, selMoves...)
	continuation = append(continuation, rolloutMoves...)

	colorAtNode := s.rootBoard.ToPlay()
	for i, node := range path {
		mover := colorAtNode.Opponent()
		node.AddOutcome(valueFor(mover, blackValue))
		if i > 0 {
			node.RemoveVirtualLoss(s.params.VirtualLossAmount)
		}

		if children := node.Children(); len(children) > 0 {
			sameColor := make(map[point.Point]bool)
			for j := i; j < len(continuation); j += 2 {
				sameColor[continuation[j]] = true
			}
			raveVal := valueFor(colorAtNode, blackValue)
			for _, c := range children {
				if sameColor[c.Move] {
					c.AddRAVE(raveVal)
				}
			}
		}
		colorAtNode = colorAtNode.Opponent()
	}
}

func valueFor(c board.Color, blackValue float64) float64 {
	if c == board.Black {
		return blackValue
	}
	return 1 - blackValue
}

// earlyAbortCheck implements spec.md §4.5's early abort: once past a
// configured fraction of a finite playout budget, a decisive and
// well-visited root child ends the search without spending the rest of
// the budget. The "early pass" probe that spec.md describes alongside
// it is exposed separately as EarlyPassProbe: its territory-only check
// is cheap enough to run directly against the position rather than
// folding into this playout-budget heuristic, and its caller (the GTP
// layer's genmove) needs it both before and after running a search.
func (s *Searcher) earlyAbortCheck() bool {
	if !s.params.EarlyAbortEnabled {
		return false
	}
	limits := s.limiter.Limits()
	if limits.Playouts == DefaultPlayoutLimit {
		return false
	}
	played := s.playouts.Load()
	if float64(played) < float64(limits.Playouts)*s.params.EarlyAbortMinFraction {
		return false
	}
	children := s.tree.Root().Children()
	if len(children) == 0 {
		return false
	}
	best := bestChild(children)
	if best.RealVisits() < s.params.EarlyAbortMinVisits {
		return false
	}
	return best.MeanValue() >= s.params.EarlyAbortThreshold
}

func bestChild(children []*tree.Node) *tree.Node {
	best := children[0]
	for _, c := range children[1:] {
		if c.RealVisits() > best.RealVisits() {
			best = c
		}
	}
	return best
}

// BestMove returns the root's most-visited child's move (the standard
// "robust child" choice), or PASS if the root has no children.
func (s *Searcher) BestMove() point.Point {
	children := s.tree.Root().Children()
	if len(children) == 0 {
		return point.Pass
	}
	return bestChild(children).Move
}

// EarlyPassProbe reports whether passing now is safe: every empty
// region on the board is bordered by exactly one colour (no dame left
// to contest) and the resulting Tromp-Taylor score favours mover.
func EarlyPassProbe(pos board.Position, mover board.Color, rules board.Rules) bool {
	geom := pos.Geometry()
	visited := make(map[point.Point]bool)
	for _, p := range pos.IterBoard() {
		if pos.ColorAt(p) != board.Empty || visited[p] {
			continue
		}
		_, border := floodRegion(pos, geom, p, visited)
		if border == board.Empty {
			return false
		}
	}
	m := scoreArea(pos) - rules.Komi - rules.HandicapKomi
	if mover == board.Black {
		return m > 0
	}
	return m < 0
}

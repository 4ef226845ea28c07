package main

import (
	"context"
	"fmt"
	"time"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/book"
	"github.com/uctgo/gouct/internal/data"
	"github.com/uctgo/gouct/internal/knowledge"
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/policy"
	"github.com/uctgo/gouct/internal/search"
	"github.com/uctgo/gouct/internal/tree"
)

const (
	nodesPerThread = 1 << 18
	nodeByteSize   = 96
	defaultThreads = 4

	// defaultPlayouts bounds genmove's search when no client has set an
	// explicit budget via uct_param_player; without it the driver would
	// run forever since both sentinel defaults mean "unbounded".
	defaultPlayouts = 10000
)

// engine bundles the live board, search tree, and configuration a GTP
// session mutates command by command. One engine per process, never
// accessed from more than one goroutine at a time (the gtpio.Dispatcher
// serves one command line at a time), matching the teacher's
// one-GameOperations-per-searcher discipline generalized to the whole
// session.
type engine struct {
	tables *data.Tables
	book   *book.Book

	size   int
	rules  board.Rules
	bd     *board.Board
	tr     *tree.Tree
	search *search.Searcher

	searchParams  search.Params
	playoutParams policy.Params
	combineKind   knowledge.CombinationType

	threads  int
	movetime int // milliseconds, -1 = no movetime limit
	playouts uint64
}

func newEngine(tables *data.Tables, bk *book.Book, threads int) *engine {
	e := &engine{
		tables:        tables,
		book:          bk,
		threads:       threads,
		playoutParams: policy.DefaultParams(),
		combineKind:   knowledge.CombineMultiply,
		movetime:      search.DefaultMovetimeLimit,
		playouts:      defaultPlayouts,
	}
	return e
}

func (e *engine) resize(size int, rules board.Rules) {
	e.size = size
	e.rules = rules
	e.bd = board.NewBoard(size, rules)
	e.tr = tree.NewTree(numThreads(e.threads), nodesPerThread)
	e.searchParams = search.DefaultParams(size)
	e.rebuildSearcher()
}

func numThreads(requested int) int {
	if requested < 1 {
		return defaultThreads
	}
	return requested
}

func (e *engine) rebuildSearcher() {
	greenpeep := e.tables.ForBoardSize(e.size)
	gamma := e.tables.GammaForBoardSize(e.size)
	predictors := []knowledge.Predictor{
		knowledge.NewRuleBasedPredictorWithWeights(1.0, e.tables.Weights),
		knowledge.NewGreenpeepPredictor(greenpeep, e.size, e.bd.KoPoint),
	}
	limiter := search.NewLimiter(nodeByteSize)
	limits := search.DefaultLimits().SetThreads(numThreads(e.threads))
	if e.playouts != search.DefaultPlayoutLimit {
		limits.SetPlayouts(e.playouts)
	}
	if e.movetime != search.DefaultMovetimeLimit {
		limits.SetMovetime(e.movetime)
	}
	limiter.SetLimits(limits)
	e.search = search.NewSearcher(e.tr, e.bd, e.searchParams, limiter, e.playoutParams, gamma, predictors, e.combineKind)
}

func (e *engine) clearBoard() {
	e.resize(e.size, e.rules)
}

func (e *engine) setKomi(komi float64) {
	e.rules.Komi = komi
	e.bd = board.NewBoard(e.size, e.rules)
	e.tr = tree.NewTree(numThreads(e.threads), nodesPerThread)
	e.rebuildSearcher()
}

func (e *engine) play(colorStr string, vertex string) error {
	c, ok := parseColor(colorStr)
	if !ok {
		return fmt.Errorf("invalid color %q", colorStr)
	}
	p, ok := e.bd.Geometry().Parse(vertex)
	if !ok {
		return fmt.Errorf("invalid vertex %q", vertex)
	}
	if err := e.bd.Play(p, c); err != nil {
		return err
	}
	search.AdvanceTree(e.tr, p, 0.1)
	e.rebuildSearcher()
	return nil
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "B", "b", "black", "Black":
		return board.Black, true
	case "W", "w", "white", "White":
		return board.White, true
	default:
		return board.Empty, false
	}
}

// genmove consults the opening book first (spec.md §4.8 "Forced
// opening"/book phase), then the forced star-point opening, then an
// early-pass territory probe, then falls back to a full UCT search —
// itself followed by a second probe in case the search's own choice
// was only a safe neutral fill rather than a genuine contest.
func (e *engine) genmove(colorStr string) (string, error) {
	c, ok := parseColor(colorStr)
	if !ok {
		return "", fmt.Errorf("invalid color %q", colorStr)
	}
	if e.bd.ToPlay() != c {
		return "", fmt.Errorf("it is not %s's turn to move", colorStr)
	}

	mv := point.NullMove
	if e.book != nil {
		if bookMove, found := e.book.Lookup(e.bd.Hash()); found && e.bd.Legal(bookMove, c) {
			mv = bookMove
		}
	}
	if mv == point.NullMove {
		if opening, ok := search.ForcedOpeningMove(e.bd); ok {
			mv = opening
		}
	}
	if mv == point.NullMove && search.EarlyPassProbe(e.bd, c, e.rules) {
		mv = point.Pass
	}
	if mv == point.NullMove {
		ctx := context.Background()
		if e.movetime > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(e.movetime)*time.Millisecond)
			defer cancel()
		}
		e.search.Run(ctx)
		mv = e.search.BestMove()

		// The probe only ever fires once every empty region is
		// unambiguously bordered by one colour, so a search that still
		// wants to play an interior point at that stage is filling the
		// last dame rather than contesting territory: that move is
		// itself the "neutral fill" fallback spec.md allows instead of
		// passing outright.
		if mv != point.Pass && search.EarlyPassProbe(e.bd, c, e.rules) {
			mv = point.Pass
		}
	}

	if err := e.bd.Play(mv, c); err != nil {
		return "", err
	}
	search.AdvanceTree(e.tr, mv, 0.1)
	e.rebuildSearcher()
	return e.bd.Geometry().String(mv), nil
}

func (e *engine) undo() error {
	e.bd.Undo()
	e.tr = tree.NewTree(numThreads(e.threads), nodesPerThread)
	e.rebuildSearcher()
	return nil
}

func (e *engine) finalScore() string {
	margin := search.ScoreMargin(e.bd, e.rules)
	switch {
	case margin > 0:
		return fmt.Sprintf("B+%.1f", margin)
	case margin < 0:
		return fmt.Sprintf("W+%.1f", -margin)
	default:
		return "0"
	}
}

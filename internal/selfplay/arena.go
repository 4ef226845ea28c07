// Package selfplay plays a series of games between two engine
// configurations and tabulates the outcome, the way a strength-testing
// harness compares one parameter set against another. Adapted from
// the teacher's pkg/bench VersusArena: a fixed worker pool each running
// an independent share of the games, atomic running totals, and a
// summary assembled once every worker has finished, generalized from
// an abstract two-MCTS-agent match to a pair of Go engine
// configurations playing full games to Tromp-Taylor scoring.
package selfplay

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/data"
	"github.com/uctgo/gouct/internal/knowledge"
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/policy"
	"github.com/uctgo/gouct/internal/search"
	"github.com/uctgo/gouct/internal/tree"
)

// Config is one side's engine configuration for a match.
type Config struct {
	Name          string
	SearchParams  search.Params
	PlayoutParams policy.Params
	CombineKind   knowledge.CombinationType
	Movetime      int // milliseconds, search.DefaultMovetimeLimit for none
	Playouts      uint64
	Threads       int
}

// MatchResult is the outcome of one game from Player1's perspective.
type MatchResult int

const (
	Player1Win MatchResult = 1
	Player2Win MatchResult = -1
	Draw       MatchResult = 0
)

// Stats are running totals, safe for concurrent updates from worker
// goroutines.
type Stats struct {
	player1Wins atomic.Uint32
	player2Wins atomic.Uint32
	draws       atomic.Uint32
	blackWins   atomic.Uint32
	whiteWins   atomic.Uint32
}

func (s *Stats) Total() int       { return int(s.player1Wins.Load() + s.player2Wins.Load() + s.draws.Load()) }
func (s *Stats) Player1Wins() int { return int(s.player1Wins.Load()) }
func (s *Stats) Player2Wins() int { return int(s.player2Wins.Load()) }
func (s *Stats) Draws() int       { return int(s.draws.Load()) }
func (s *Stats) BlackWins() int   { return int(s.blackWins.Load()) }
func (s *Stats) WhiteWins() int   { return int(s.whiteWins.Load()) }

// Summary is the final report handed back once every worker finishes.
type Summary struct {
	TotalGames  int
	Player1Wins int
	Player2Wins int
	Draws       int
	BlackWins   int
	WhiteWins   int
	Workers     int
	Player1Name string
	Player2Name string
}

// Arena plays NGames games between Player1 and Player2 on a board of
// BoardSize under Rules, split across NThreads worker goroutines. Each
// game picks at random which side plays Black, so neither engine always
// enjoys (or suffers) the first-move advantage; the split is not forced
// to be even.
type Arena struct {
	Stats
	Tables    *data.Tables
	BoardSize int
	Rules     board.Rules
	Player1   Config
	Player2   Config
	NGames    int
	NThreads  int

	maxMoves int
	wg       sync.WaitGroup
}

// NewArena builds an arena with a move cap derived from the board area
// (generous enough that only a pathological engine configuration would
// hit it before both sides pass).
func NewArena(tables *data.Tables, boardSize int, rules board.Rules, p1, p2 Config) *Arena {
	return &Arena{
		Tables:    tables,
		BoardSize: boardSize,
		Rules:     rules,
		Player1:   p1,
		Player2:   p2,
		NGames:    100,
		NThreads:  4,
		maxMoves:  boardSize*boardSize*3 + 50,
	}
}

// Run plays every game and returns the final summary. It blocks until
// every worker has finished or ctx is cancelled (a cancelled game
// counts toward neither player's win total).
func (a *Arena) Run(ctx context.Context) Summary {
	nThreads := a.NThreads
	if nThreads < 1 {
		nThreads = 1
	}
	perWorker := a.NGames / nThreads
	rest := a.NGames % nThreads

	a.wg.Add(nThreads)
	for i := 0; i < nThreads; i++ {
		n := perWorker
		if i < rest {
			n++
		}
		go a.worker(ctx, i, n)
	}
	a.wg.Wait()

	return Summary{
		TotalGames:  a.Total(),
		Player1Wins: a.Player1Wins(),
		Player2Wins: a.Player2Wins(),
		Draws:       a.Draws(),
		BlackWins:   a.BlackWins(),
		WhiteWins:   a.WhiteWins(),
		Workers:     nThreads,
		Player1Name: a.Player1.Name,
		Player2Name: a.Player2.Name,
	}
}

func (a *Arena) worker(ctx context.Context, id, nGames int) {
	defer a.wg.Done()
	rng := rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(id)<<32))

	for g := 0; g < nGames; g++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		player1IsBlack := rng.Intn(2) == 0
		margin, err := a.playGame(ctx, player1IsBlack)
		if err != nil {
			continue
		}
		a.recordResult(margin, player1IsBlack)
	}
}

// playGame runs one game to a double pass or the move cap, returning
// the final Tromp-Taylor margin (positive favours Black).
func (a *Arena) playGame(ctx context.Context, player1IsBlack bool) (float64, error) {
	bd := board.NewBoard(a.BoardSize, a.Rules)

	blackCfg, whiteCfg := a.Player2, a.Player1
	if player1IsBlack {
		blackCfg, whiteCfg = a.Player1, a.Player2
	}

	consecutivePasses := 0
	for move := 0; move < a.maxMoves && consecutivePasses < 2; move++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		cfg := whiteCfg
		if bd.ToPlay() == board.Black {
			cfg = blackCfg
		}

		mv := a.searchMove(ctx, bd, cfg)
		if err := bd.Play(mv, bd.ToPlay()); err != nil {
			return 0, err
		}
		if mv == point.Pass {
			consecutivePasses++
		} else {
			consecutivePasses = 0
		}
	}

	return search.ScoreMargin(bd, a.Rules), nil
}

func (a *Arena) searchMove(ctx context.Context, bd *board.Board, cfg Config) point.Point {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	tr := tree.NewTree(threads, 1<<16)

	greenpeep := a.Tables.ForBoardSize(a.BoardSize)
	gamma := a.Tables.GammaForBoardSize(a.BoardSize)
	predictors := []knowledge.Predictor{
		knowledge.NewRuleBasedPredictorWithWeights(1.0, a.Tables.Weights),
		knowledge.NewGreenpeepPredictor(greenpeep, a.BoardSize, bd.KoPoint),
	}

	limiter := search.NewLimiter(96)
	limits := search.DefaultLimits().SetThreads(threads)
	if cfg.Playouts != 0 {
		limits.SetPlayouts(cfg.Playouts)
	}
	if cfg.Movetime > 0 {
		limits.SetMovetime(cfg.Movetime)
	}
	limiter.SetLimits(limits)

	searchCtx := ctx
	if cfg.Movetime > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Movetime)*time.Millisecond)
		defer cancel()
	}

	searcher := search.NewSearcher(tr, bd, cfg.SearchParams, limiter, cfg.PlayoutParams, gamma, predictors, cfg.CombineKind)
	searcher.Run(searchCtx)
	return searcher.BestMove()
}

func (a *Arena) recordResult(margin float64, player1IsBlack bool) {
	switch {
	case margin > 0:
		a.blackWins.Add(1)
	case margin < 0:
		a.whiteWins.Add(1)
	}

	blackWon := margin > 0
	whiteWon := margin < 0
	switch {
	case blackWon && player1IsBlack, whiteWon && !player1IsBlack:
		a.player1Wins.Add(1)
	case blackWon && !player1IsBlack, whiteWon && player1IsBlack:
		a.player2Wins.Add(1)
	default:
		a.draws.Add(1)
	}
}

// Command goselfplay plays a series of games between two engine
// configurations and reports the win/draw tally, the way the teacher's
// examples/ultimate-tic-tac-toe/bench main wires pkg/bench's
// VersusArena around two generic MCTS agents — generalized here to two
// named sets of Go engine tunables (exploration constant, RAVE beta,
// playout budget) instead of two abstract game agents.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/data"
	"github.com/uctgo/gouct/internal/knowledge"
	"github.com/uctgo/gouct/internal/policy"
	"github.com/uctgo/gouct/internal/search"
	"github.com/uctgo/gouct/internal/selfplay"
)

func main() {
	os.Exit(run())
}

func run() int {
	boardSize := flag.Int("boardsize", 9, "board size to play on")
	nGames := flag.Int("games", 20, "number of games to play")
	nThreads := flag.Int("threads", 4, "number of concurrent game workers")
	p1Exploration := flag.Float64("p1-exploration", search.DefaultParams(9).UCTConst, "player 1 UCT exploration constant")
	p2Exploration := flag.Float64("p2-exploration", search.DefaultParams(9).UCTConst, "player 2 UCT exploration constant")
	playouts := flag.Uint64("playouts", 2000, "playout budget per move for both players")
	flag.Parse()

	tables, err := data.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "goselfplay: fatal: embedded table load failed:\n%v\n", err)
		return 1
	}

	p1Params := search.DefaultParams(*boardSize)
	p1Params.UCTConst = *p1Exploration
	p2Params := search.DefaultParams(*boardSize)
	p2Params.UCTConst = *p2Exploration

	p1 := selfplay.Config{
		Name:          "p1",
		SearchParams:  p1Params,
		PlayoutParams: policy.DefaultParams(),
		CombineKind:   knowledge.CombineMultiply,
		Playouts:      *playouts,
		Threads:       1,
	}
	p2 := selfplay.Config{
		Name:          "p2",
		SearchParams:  p2Params,
		PlayoutParams: policy.DefaultParams(),
		CombineKind:   knowledge.CombineMultiply,
		Playouts:      *playouts,
		Threads:       1,
	}

	arena := selfplay.NewArena(tables, *boardSize, board.DefaultRules(), p1, p2)
	arena.NGames = *nGames
	arena.NThreads = *nThreads

	summary := arena.Run(context.Background())
	fmt.Printf("%s vs %s over %d games (%d workers)\n", summary.Player1Name, summary.Player2Name, summary.TotalGames, summary.Workers)
	fmt.Printf("  p1 wins: %d   p2 wins: %d   draws: %d\n", summary.Player1Wins, summary.Player2Wins, summary.Draws)
	fmt.Printf("  black wins: %d   white wins: %d\n", summary.BlackWins, summary.WhiteWins)
	return 0
}

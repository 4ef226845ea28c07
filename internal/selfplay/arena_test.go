package selfplay

import (
	"context"
	"testing"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/data"
	"github.com/uctgo/gouct/internal/knowledge"
	"github.com/uctgo/gouct/internal/policy"
	"github.com/uctgo/gouct/internal/search"
)

func testConfig(name string) Config {
	return Config{
		Name:          name,
		SearchParams:  search.DefaultParams(5),
		PlayoutParams: policy.DefaultParams(),
		CombineKind:   knowledge.CombineMultiply,
		Playouts:      16,
		Threads:       1,
	}
}

func TestArenaRunProducesASummary(t *testing.T) {
	tables, err := data.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a := NewArena(tables, 5, board.DefaultRules(), testConfig("p1"), testConfig("p2"))
	a.NGames = 2
	a.NThreads = 2

	summary := a.Run(context.Background())
	if summary.TotalGames != 2 {
		t.Fatalf("expected 2 finished games, got %d", summary.TotalGames)
	}
	if summary.Player1Wins+summary.Player2Wins+summary.Draws != summary.TotalGames {
		t.Fatalf("win/draw totals do not add up to total games: %+v", summary)
	}
}

func TestArenaRunHonoursCancellation(t *testing.T) {
	tables, err := data.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a := NewArena(tables, 5, board.DefaultRules(), testConfig("p1"), testConfig("p2"))
	a.NGames = 50
	a.NThreads = 2

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary := a.Run(ctx)
	if summary.TotalGames > a.NGames {
		t.Fatalf("expected at most %d games after cancellation, got %d", a.NGames, summary.TotalGames)
	}
}

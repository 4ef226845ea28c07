package policy

import (
	"math/rand"
	"testing"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/point"
)

func newPlayoutBoard(t *testing.T, size int) *board.PlayoutBoard {
	t.Helper()
	bd := board.NewBoard(size, board.DefaultRules())
	pb := board.NewPlayoutBoard(size, board.DefaultRules())
	pb.InitFrom(bd)
	return pb
}

func TestGenerateMoveOnEmptyBoardReturnsALegalNonPassMove(t *testing.T) {
	pb := newPlayoutBoard(t, 9)
	p := New(DefaultParams(), rand.New(rand.NewSource(1)), nil)

	mv, typ := p.GenerateMove(pb)
	if mv == point.Pass {
		t.Fatalf("expected a real move on an empty board, got a pass")
	}
	if typ == TypePass {
		t.Fatalf("expected a non-pass move type on an empty board, got %v", typ)
	}
	if !pb.Legal(mv, pb.ToPlay()) {
		t.Fatalf("expected the generated move to be legal")
	}
}

func TestGenerateMoveAllDisabledFallsBackToRandom(t *testing.T) {
	pb := newPlayoutBoard(t, 9)
	params := Params{}
	p := New(params, rand.New(rand.NewSource(2)), nil)

	mv, typ := p.GenerateMove(pb)
	if typ != TypeRandom && typ != TypeCapture && typ != TypePass {
		t.Fatalf("expected a random/capture/pass fallback with every heuristic disabled, got %v", typ)
	}
	_ = mv
}

func TestTypeStringCoversEveryValue(t *testing.T) {
	for typ := TypeFillBoard; typ <= TypePass; typ++ {
		if got := typ.String(); got == "?" {
			t.Fatalf("expected a name for every declared Type, got ? for %d", typ)
		}
	}
}

func TestStatisticsRecordsWhenEnabled(t *testing.T) {
	pb := newPlayoutBoard(t, 9)
	params := DefaultParams()
	params.StatisticsEnabled = true
	p := New(params, rand.New(rand.NewSource(3)), nil)

	p.GenerateMove(pb)
	if p.Statistics().NumMoves != 1 {
		t.Fatalf("expected one recorded move, got %d", p.Statistics().NumMoves)
	}
	p.ClearStatistics()
	if p.Statistics().NumMoves != 0 {
		t.Fatalf("expected statistics to reset to zero")
	}
}

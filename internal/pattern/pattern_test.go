package pattern

import (
	"testing"

	"github.com/uctgo/gouct/internal/board"
)

func play(t *testing.T, b *board.Board, vertex string, c board.Color) {
	t.Helper()
	p, ok := b.Geometry().Parse(vertex)
	if !ok {
		t.Fatalf("bad vertex %q", vertex)
	}
	if err := b.Play(p, c); err != nil {
		t.Fatalf("play %s %s: %v", c, vertex, err)
	}
}

func TestMatchHaneShape(t *testing.T) {
	b := board.NewBoard(9, board.DefaultRules())
	// A minimal hane shape: black at D4 and E4, white at D5. E5 touches
	// one black and one white stone, has two empty neighbours, and the
	// diagonal between them (D4) is occupied, which the hane rules match.
	play(t, b, "D4", board.Black)
	play(t, b, "D5", board.White)
	play(t, b, "E4", board.Black)

	p, _ := b.Geometry().Parse("E5")
	got1 := Match(b, p)
	got2 := Match(b, p)
	if got1 != got2 {
		t.Fatalf("Match is not deterministic for the same position")
	}
	if !got1 {
		t.Fatalf("expected E5 to match a hane pattern")
	}
}

func TestMatchEmptyBoardNoPattern(t *testing.T) {
	b := board.NewBoard(9, board.DefaultRules())
	p, _ := b.Geometry().Parse("E5")
	if Match(b, p) {
		t.Fatalf("empty board center point should never match a pattern")
	}
}

func TestMatchCornerNeverMatches(t *testing.T) {
	b := board.NewBoard(9, board.DefaultRules())
	play(t, b, "B1", board.Black)
	play(t, b, "A2", board.Black)
	p, _ := b.Geometry().Parse("A1")
	if Match(b, p) {
		t.Fatalf("corner point should never match (Fuego filters Pos(p)==1)")
	}
}

func TestDiamondContextDeterministic(t *testing.T) {
	b := board.NewBoard(9, board.DefaultRules())
	play(t, b, "D4", board.Black)
	play(t, b, "D5", board.White)
	p, _ := b.Geometry().Parse("E5")
	c1 := DiamondContext(b, p, b.KoPoint())
	c2 := DiamondContext(b, p, b.KoPoint())
	if c1 != c2 {
		t.Fatalf("DiamondContext not deterministic")
	}
}

package point

import "testing"

func TestOfAndXYRoundTrip(t *testing.T) {
	g := NewGeometry(9)
	p := g.Of(3, 7)
	x, y := g.XY(p)
	if x != 3 || y != 7 {
		t.Fatalf("XY(Of(3,7)) = (%d,%d), want (3,7)", x, y)
	}
}

func TestOnBoard(t *testing.T) {
	g := NewGeometry(9)
	if !g.OnBoard(g.Of(1, 1)) {
		t.Fatalf("expected (1,1) to be on board")
	}
	if !g.OnBoard(g.Of(9, 9)) {
		t.Fatalf("expected (9,9) to be on board")
	}
	border := g.Of(1, 1) - g.NS
	if g.OnBoard(border) {
		t.Fatalf("expected the padding ring above row 1 to be off board")
	}
}

func TestNeighbors4Order(t *testing.T) {
	g := NewGeometry(9)
	center := g.Of(5, 5)
	n := g.Neighbors4(center)
	want := [4]Point{center - g.NS, center + g.NS, center + g.WE, center - g.WE}
	if n != want {
		t.Fatalf("Neighbors4 order changed: got %v, want %v", n, want)
	}
}

func TestDiamond12HasTwelveDistinctPoints(t *testing.T) {
	g := NewGeometry(9)
	d := g.Diamond12(g.Of(5, 5))
	seen := make(map[Point]bool, 12)
	for _, p := range d {
		if seen[p] {
			t.Fatalf("duplicate point %v in diamond context", p)
		}
		seen[p] = true
	}
}

func TestLineFromEdge(t *testing.T) {
	g := NewGeometry(9)
	if got := g.LineFromEdge(g.Of(1, 5)); got != 1 {
		t.Fatalf("expected line 1 at the edge, got %d", got)
	}
	if got := g.LineFromEdge(g.Of(5, 5)); got != 5 {
		t.Fatalf("expected line 5 at the center of a 9x9 board, got %d", got)
	}
}

func TestStringAndParseRoundTrip(t *testing.T) {
	g := NewGeometry(19)
	for _, p := range []Point{g.Of(1, 1), g.Of(19, 19), g.Of(9, 10)} {
		s := g.String(p)
		got, ok := g.Parse(s)
		if !ok {
			t.Fatalf("Parse(%q) failed to round-trip", s)
		}
		if got != p {
			t.Fatalf("round trip mismatch for %q: got %v, want %v", s, got, p)
		}
	}
}

func TestStringSkipsI(t *testing.T) {
	g := NewGeometry(19)
	for x := 1; x <= 19; x++ {
		if s := g.String(g.Of(x, 1)); s[0] == 'I' {
			t.Fatalf("column letters must skip I, got %q", s)
		}
	}
}

func TestParseSentinels(t *testing.T) {
	g := NewGeometry(9)
	if p, ok := g.Parse("pass"); !ok || p != Pass {
		t.Fatalf("expected Parse(pass) to return Pass, got %v, %v", p, ok)
	}
	if p, ok := g.Parse("resign"); !ok || p != Resign {
		t.Fatalf("expected Parse(resign) to return Resign, got %v, %v", p, ok)
	}
}

func TestParseRejectsOutOfRange(t *testing.T) {
	g := NewGeometry(9)
	if _, ok := g.Parse("T10"); ok {
		t.Fatalf("expected T10 to be rejected on a 9x9 board")
	}
	if _, ok := g.Parse("garbage"); ok {
		t.Fatalf("expected a malformed vertex to be rejected")
	}
}

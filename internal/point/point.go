// Package point implements the padded-grid coordinate system shared by
// the board core, the playout board, and the pattern matcher.
package point

import "fmt"

// Point is an index into a padded grid of side PaddedSize(boardSize).
// The padding border lets every point have four orthogonal neighbours
// without bounds checks; border cells read as Color Border.
type Point int32

// Sentinels. They sit well outside any real grid index range so that a
// stray comparison against a valid point can never alias one of them.
const (
	Pass      Point = -1
	NullMove  Point = -2
	Resign    Point = -3
	EndPoint  Point = -4
)

// PaddedSize returns the side length of the padded grid for a board of
// the given size (one empty ring of border cells on every side).
func PaddedSize(boardSize int) int {
	return boardSize + 2
}

// Geometry holds the compile-time-constant neighbour deltas for one
// board size, computed once at construction instead of recomputed on
// every neighbour lookup.
type Geometry struct {
	BoardSize int
	Padded    int
	NS        Point // north/south stride (one padded row)
	WE        Point // west/east stride (always 1)
}

// NewGeometry builds the Geometry for a board of the given size.
func NewGeometry(boardSize int) Geometry {
	padded := PaddedSize(boardSize)
	return Geometry{
		BoardSize: boardSize,
		Padded:    padded,
		NS:        Point(padded),
		WE:        1,
	}
}

// Of converts (x, y) 1-based board coordinates (1..BoardSize) into a
// Point on the padded grid.
func (g Geometry) Of(x, y int) Point {
	return Point((y)*g.Padded + x)
}

// XY recovers the 1-based board coordinates of p.
func (g Geometry) XY(p Point) (x, y int) {
	return int(p) % g.Padded, int(p) / g.Padded
}

// Size returns the number of cells in the padded grid, enough to size
// any flat per-point array.
func (g Geometry) Size() int {
	return g.Padded * g.Padded
}

// OnBoard reports whether p lies within the real board (not the
// padding border), assuming p came from Of or a neighbour walk.
func (g Geometry) OnBoard(p Point) bool {
	x, y := g.XY(p)
	return x >= 1 && x <= g.BoardSize && y >= 1 && y <= g.BoardSize
}

// Neighbors4 returns the four orthogonal neighbours of p in a fixed
// order: north, south, east, west.
func (g Geometry) Neighbors4(p Point) [4]Point {
	return [4]Point{p - g.NS, p + g.NS, p + g.WE, p - g.WE}
}

// Neighbors8 returns all eight neighbours of p: the four orthogonal
// ones followed by the four diagonals (NE, NW, SE, SW).
func (g Geometry) Neighbors8(p Point) [8]Point {
	n4 := g.Neighbors4(p)
	return [8]Point{
		n4[0], n4[1], n4[2], n4[3],
		p - g.NS + g.WE, p - g.NS - g.WE,
		p + g.NS + g.WE, p + g.NS - g.WE,
	}
}

// Diamond12 returns the 12-point diamond context used by the additive
// predictor: the 4 orthogonal points, the 4 diagonal points, and the 4
// points at distance two along the orthogonal axes, in that order.
func (g Geometry) Diamond12(p Point) [12]Point {
	n4 := g.Neighbors4(p)
	n8 := g.Neighbors8(p)
	return [12]Point{
		n4[0], n4[1], n4[2], n4[3],
		n8[4], n8[5], n8[6], n8[7],
		p - 2*g.NS, p + 2*g.NS, p + 2*g.WE, p - 2*g.WE,
	}
}

// LineFromEdge returns the distance (1-based) of p from the nearest
// board edge, used by prior-knowledge features (§4.7).
func (g Geometry) LineFromEdge(p Point) int {
	x, y := g.XY(p)
	dx := min(x-1, g.BoardSize-x)
	dy := min(y-1, g.BoardSize-y)
	return min(dx, dy) + 1
}

// String renders the GTP-style vertex label ("A1", "Q16", "PASS", ...).
// Column letters skip 'I' as GTP requires.
func (g Geometry) String(p Point) string {
	switch p {
	case Pass:
		return "PASS"
	case NullMove:
		return "NULL"
	case Resign:
		return "RESIGN"
	}
	x, y := g.XY(p)
	return fmt.Sprintf("%c%d", columnLetter(x), y)
}

const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

func columnLetter(x int) byte {
	if x < 1 || x > len(columnLetters) {
		return '?'
	}
	return columnLetters[x-1]
}

// Parse reads a GTP-style vertex label back into a Point.
func (g Geometry) Parse(s string) (Point, bool) {
	switch s {
	case "PASS", "pass", "Pass":
		return Pass, true
	case "RESIGN", "resign":
		return Resign, true
	}
	if len(s) < 2 {
		return NullMove, false
	}
	col := -1
	for i := 0; i < len(columnLetters); i++ {
		if columnLetters[i] == upper(s[0]) {
			col = i + 1
			break
		}
	}
	if col < 0 {
		return NullMove, false
	}
	row := 0
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return NullMove, false
		}
		row = row*10 + int(c-'0')
	}
	if col > g.BoardSize || row < 1 || row > g.BoardSize {
		return NullMove, false
	}
	return g.Of(col, row), true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

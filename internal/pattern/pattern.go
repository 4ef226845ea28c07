// Package pattern implements the 3x3 local-shape matcher the playout
// policy uses to prefer hane, cut, and edge-connection replies over
// pure random moves. It is a direct transliteration of Fuego's
// GoPattern3x3 hane/cut/edge rules, matched live against a board
// position rather than through a precomputed symmetry table: the
// rules are cheap enough (a handful of neighbour/diagonal colour
// checks) that a table buys little over evaluating them directly, and
// a live matcher works unchanged for both board sizes and either of
// the two board implementations.
package pattern

import (
	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/point"
)

// Position is the subset of board.Position the matcher needs.
type Position = board.Position

func isColor(pos Position, p point.Point, c board.Color) bool {
	return pos.ColorAt(p) == c
}

func isEmpty(pos Position, p point.Point) bool {
	return pos.ColorAt(p) == board.Empty
}

// Match reports whether the empty point p is a hane, cut, or edge
// pattern for the side about to move, per Fuego's MatchAnyPattern.
func Match(pos Position, p point.Point) bool {
	nuBlack := pos.NumNeighborsOf(p, board.Black)
	nuWhite := pos.NumNeighborsOf(p, board.White)
	if nuBlack == 0 && nuWhite == 0 {
		return false
	}
	geom := pos.Geometry()
	if isCorner(geom, p) {
		return false
	}
	if geom.LineFromEdge(p) == 1 {
		return matchEdge(pos, p, nuBlack, nuWhite)
	}
	return matchHane(pos, p, nuBlack, nuWhite) || matchCut(pos, p)
}

func isCorner(geom point.Geometry, p point.Point) bool {
	x, y := geom.XY(p)
	return (x == 1 || x == geom.BoardSize) && (y == 1 || y == geom.BoardSize)
}

// upDirection returns the stride that points from the board edge
// toward the center at p, used by the edge-pattern rules. Only
// meaningful for points on the first line.
func upDirection(geom point.Geometry, p point.Point) point.Point {
	x, y := geom.XY(p)
	switch {
	case y == 1:
		return geom.NS
	case y == geom.BoardSize:
		return -geom.NS
	case x == 1:
		return geom.WE
	default:
		return -geom.WE
	}
}

func otherDir(dir point.Point, geom point.Geometry) point.Point {
	if dir == geom.NS || dir == -geom.NS {
		return geom.WE
	}
	return geom.NS
}

func numDiagonals(pos Position, p point.Point, c board.Color) int {
	geom := pos.Geometry()
	n := 0
	for _, d := range [4]point.Point{
		p - geom.NS + geom.WE, p - geom.NS - geom.WE,
		p + geom.NS + geom.WE, p + geom.NS - geom.WE,
	} {
		if isColor(pos, d, c) {
			n++
		}
	}
	return n
}

func findDir(pos Position, p point.Point, c board.Color) point.Point {
	geom := pos.Geometry()
	switch {
	case isColor(pos, p+geom.NS, c):
		return geom.NS
	case isColor(pos, p-geom.NS, c):
		return -geom.NS
	case isColor(pos, p+geom.WE, c):
		return geom.WE
	default:
		return -geom.WE
	}
}

func checkHane1(pos Position, p point.Point, c, opp board.Color, cDir, otherDir point.Point) bool {
	return isColor(pos, p+cDir, c) &&
		isColor(pos, p+cDir+otherDir, opp) &&
		isColor(pos, p+cDir-otherDir, opp) &&
		isEmpty(pos, p+otherDir) &&
		isEmpty(pos, p-otherDir)
}

func matchHane(pos Position, p point.Point, nuBlack, nuWhite int) bool {
	geom := pos.Geometry()
	numEmptyNeighbors := func() int {
		n := 0
		for _, nb := range geom.Neighbors4(p) {
			if isEmpty(pos, nb) {
				n++
			}
		}
		return n
	}
	nuEmpty := numEmptyNeighbors()
	if nuEmpty < 2 || nuEmpty > 3 {
		return false
	}
	if (nuBlack < 1 || nuBlack > 2) && (nuWhite < 1 || nuWhite > 2) {
		return false
	}
	if nuEmpty == 2 { // hane3
		if nuBlack == 1 && nuWhite == 1 {
			dirB := findDir(pos, p, board.Black)
			dirW := findDir(pos, p, board.White)
			if !isEmpty(pos, p+dirB+dirW) {
				return true
			}
		}
	} else if nuEmpty == 3 { // hane2 or hane4
		col := board.Black
		if nuWhite == 1 {
			col = board.White
		}
		opp := col.Opponent()
		dir := findDir(pos, p, col)
		other := otherDir(dir, geom)
		if isEmpty(pos, p+dir+other) && isColor(pos, p+dir-other, opp) {
			return true
		}
		if isEmpty(pos, p+dir-other) && isColor(pos, p+dir+other, opp) {
			return true
		}
		if pos.ToPlay() == opp {
			c1 := pos.ColorAt(p + dir + other)
			if c1 != board.Empty {
				c2 := pos.ColorAt(p + dir - other)
				if c1.Opponent() == c2 {
					return true // hane4
				}
			}
		}
	}

	nuBlackDiag := numDiagonals(pos, p, board.Black)
	if nuBlackDiag >= 2 && nuWhite > 0 {
		if checkHane1(pos, p, board.White, board.Black, geom.NS, geom.WE) ||
			checkHane1(pos, p, board.White, board.Black, -geom.NS, geom.WE) ||
			checkHane1(pos, p, board.White, board.Black, geom.WE, geom.NS) ||
			checkHane1(pos, p, board.White, board.Black, -geom.WE, geom.NS) {
			return true
		}
	}
	nuWhiteDiag := numDiagonals(pos, p, board.White)
	if nuWhiteDiag >= 2 && nuBlack > 0 {
		if checkHane1(pos, p, board.Black, board.White, geom.NS, geom.WE) ||
			checkHane1(pos, p, board.Black, board.White, -geom.NS, geom.WE) ||
			checkHane1(pos, p, board.Black, board.White, geom.WE, geom.NS) ||
			checkHane1(pos, p, board.Black, board.White, -geom.WE, geom.NS) {
			return true
		}
	}
	return false
}

func checkCut1(pos Position, p point.Point, c board.Color, cDir, otherDir point.Point) bool {
	return isColor(pos, p+otherDir, c) && isColor(pos, p+cDir+otherDir, c.Opponent())
}

func checkCut2(pos Position, p point.Point, c board.Color, cDir, otherDir point.Point) bool {
	opp := c.Opponent()
	if !isColor(pos, p-cDir, c) {
		return false
	}
	if isColor(pos, p+otherDir, opp) &&
		!isColor(pos, p-otherDir+cDir, c) &&
		!isColor(pos, p-otherDir-cDir, c) {
		return true
	}
	if isColor(pos, p-otherDir, opp) &&
		!isColor(pos, p+otherDir+cDir, c) &&
		!isColor(pos, p+otherDir-cDir, c) {
		return true
	}
	return false
}

func matchCut(pos Position, p point.Point) bool {
	geom := pos.Geometry()
	n8Empty := 0
	for _, nb := range geom.Neighbors8(p) {
		if isEmpty(pos, nb) {
			n8Empty++
		}
	}
	if n8Empty > 6 {
		return false
	}
	nuEmpty := 0
	for _, nb := range geom.Neighbors4(p) {
		if isEmpty(pos, nb) {
			nuEmpty++
		}
	}

	c1 := pos.ColorAt(p + geom.NS)
	if c1 != board.Empty && pos.NumNeighborsOf(p, c1) >= 2 &&
		!(pos.NumNeighborsOf(p, c1) == 3 && nuEmpty == 1) &&
		(checkCut1(pos, p, c1, geom.NS, geom.WE) || checkCut1(pos, p, c1, geom.NS, -geom.WE)) {
		return true
	}
	c2 := pos.ColorAt(p - geom.NS)
	if c2 != board.Empty && pos.NumNeighborsOf(p, c2) >= 2 &&
		!(pos.NumNeighborsOf(p, c2) == 3 && nuEmpty == 1) &&
		(checkCut1(pos, p, c2, -geom.NS, geom.WE) || checkCut1(pos, p, c2, -geom.NS, -geom.WE)) {
		return true
	}
	if c1 != board.Empty && pos.NumNeighborsOf(p, c1) == 2 &&
		pos.NumNeighborsOf(p, c1.Opponent()) > 0 && numDiagonals(pos, p, c1) <= 2 &&
		checkCut2(pos, p, c1, geom.NS, geom.WE) {
		return true
	}
	c3 := pos.ColorAt(p + geom.WE)
	if c3 != board.Empty && pos.NumNeighborsOf(p, c3) == 2 &&
		pos.NumNeighborsOf(p, c3.Opponent()) > 0 && numDiagonals(pos, p, c3) <= 2 &&
		checkCut2(pos, p, c3, geom.WE, geom.NS) {
		return true
	}
	return false
}

func matchEdge(pos Position, p point.Point, nuBlack, nuWhite int) bool {
	geom := pos.Geometry()
	up := upDirection(geom, p)
	side := otherDir(up, geom)
	nuEmpty := 0
	for _, nb := range geom.Neighbors4(p) {
		if isEmpty(pos, nb) {
			nuEmpty++
		}
	}
	upColor := pos.ColorAt(p + up)

	// edge1
	if nuEmpty > 0 && (nuBlack > 0 || nuWhite > 0) && upColor == board.Empty {
		c1 := pos.ColorAt(p + side)
		if c1 != board.Empty && pos.ColorAt(p+side+up) == c1.Opponent() {
			return true
		}
		c2 := pos.ColorAt(p - side)
		if c2 != board.Empty && pos.ColorAt(p-side+up) == c2.Opponent() {
			return true
		}
	}
	// edge2
	if upColor != board.Empty {
		if (upColor == board.Black && nuBlack == 1 && nuWhite > 0) ||
			(upColor == board.White && nuWhite == 1 && nuBlack > 0) {
			return true
		}
	}
	toPlay := pos.ToPlay()
	// edge3
	if upColor == toPlay && numDiagonals(pos, p, upColor.Opponent()) > 0 {
		return true
	}
	// edge4
	if upColor == toPlay.Opponent() && pos.NumNeighborsOf(p, upColor) <= 2 && numDiagonals(pos, p, toPlay) > 0 {
		if pos.ColorAt(p+side+up) == toPlay && pos.ColorAt(p+side) != upColor {
			return true
		}
		if pos.ColorAt(p-side+up) == toPlay && pos.ColorAt(p-side) != upColor {
			return true
		}
	}
	// edge5
	if upColor == toPlay.Opponent() && pos.NumNeighborsOf(p, upColor) == 2 && pos.NumNeighborsOf(p, toPlay) == 1 {
		if pos.ColorAt(p+side+up) == toPlay && pos.ColorAt(p+side) == upColor {
			return true
		}
		if pos.ColorAt(p-side+up) == toPlay && pos.ColorAt(p-side) == upColor {
			return true
		}
	}
	return false
}

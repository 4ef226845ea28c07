package search

import (
	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/point"
)

// FilterRootMoves removes moves judged bad by a static filter before
// the first selection, spec.md §4.8 "Root filter": losing captures,
// self-atari blunders, and single-point second-line suicides. The
// filter only ever trims the root's candidate list; it is never
// applied deeper in the tree or inside playouts.
func FilterRootMoves(b *board.Board, moves []point.Point) []point.Point {
	mover := b.ToPlay()
	out := make([]point.Point, 0, len(moves))
	for _, mv := range moves {
		if mv == point.Pass {
			out = append(out, mv)
			continue
		}
		if isLosingCapture(b, mv, mover) || isSelfAtariBlunder(b, mv, mover) || isSecondLineSuicide(b, mv, mover) {
			continue
		}
		out = append(out, mv)
	}
	if len(out) == 0 {
		return moves
	}
	return out
}

// isLosingCapture rejects a capturing move that immediately hands the
// capturing block's liberties back down to one (a "thank you" capture
// that only sets up a bigger recapture).
func isLosingCapture(b *board.Board, mv point.Point, mover board.Color) bool {
	opp := mover.Opponent()
	geom := b.Geometry()
	capturesSomething := false
	for _, nb := range geom.Neighbors4(mv) {
		if b.ColorAt(nb) == opp && b.InAtari(nb) {
			capturesSomething = true
			break
		}
	}
	if !capturesSomething {
		return false
	}
	ownLiberties := 0
	for _, nb := range geom.Neighbors4(mv) {
		if b.ColorAt(nb) == board.Empty {
			ownLiberties++
		}
		if b.ColorAt(nb) == mover && b.NumLiberties(nb) > 1 {
			ownLiberties += 2 // connects into a block with spare liberties, safe enough
		}
	}
	return ownLiberties <= 1
}

// isSelfAtariBlunder rejects a move that puts the mover's own new
// block into atari without capturing anything, unless it is itself a
// capture (handled separately above).
func isSelfAtariBlunder(b *board.Board, mv point.Point, mover board.Color) bool {
	opp := mover.Opponent()
	geom := b.Geometry()
	liberties := 0
	ownNeighbors := 0
	for _, nb := range geom.Neighbors4(mv) {
		switch b.ColorAt(nb) {
		case board.Empty:
			liberties++
		case mover:
			ownNeighbors++
			liberties += b.NumLiberties(nb) - 1
		case opp:
			if b.InAtari(nb) {
				return false // it's a capture, not a blunder
			}
		}
	}
	return liberties <= 1
}

// isSecondLineSuicide rejects a single stone played on the second line
// with no neighbouring stone of either colour, a near-always-bad shape
// move in the opening.
func isSecondLineSuicide(b *board.Board, mv point.Point, mover board.Color) bool {
	geom := b.Geometry()
	if geom.LineFromEdge(mv) != 2 {
		return false
	}
	for _, nb := range geom.Neighbors8(mv) {
		if b.ColorAt(nb) != board.Empty && b.ColorAt(nb) != board.Border {
			return false
		}
	}
	return b.MoveNumber() < 4
}

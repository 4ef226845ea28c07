package search

import (
	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/point"
)

// ForcedOpeningMove returns a star-point corner move without running
// any search, spec.md §4.8 "Forced opening: on empty large boards the
// first root move is forced to a corner/star point." Returns
// (point.NullMove, false) when the position does not qualify.
func ForcedOpeningMove(b *board.Board) (point.Point, bool) {
	size := b.Geometry().BoardSize
	if size < 13 || b.MoveNumber() != 0 {
		return point.NullMove, false
	}
	offset := 3
	if size >= 19 {
		offset = 4
	}
	x, y := offset, offset
	return b.Geometry().Of(x, y), true
}

package board

import (
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/ptset"
)

// Position is the capability set spec.md §9 "Templated BOARD variant"
// asks for: the pattern matcher and the playout policy are written
// once against this interface, and both Board and PlayoutBoard satisfy
// it, the same way the teacher writes its UCB1/RAVE selection policies
// once against the generic NodeBase[T, S] shape instead of duplicating
// per game.
type Position interface {
	Geometry() point.Geometry
	ColorAt(p point.Point) Color
	Anchor(p point.Point) point.Point
	NumNeighborsOf(p point.Point, c Color) int
	InAtari(p point.Point) bool
	TheLiberty(p point.Point) (point.Point, bool)
	Legal(p point.Point, c Color) bool
	Play(p point.Point, c Color) error
	IterEmpty() *ptset.Iterator
	IterBoard() []point.Point
	NumLiberties(p point.Point) int
	ToPlay() Color
	LastMove() point.Point
	SecondLastMove() point.Point
	MoveNumber() int
}

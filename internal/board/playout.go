package board

import (
	"github.com/uctgo/gouct/internal/engerr"
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/ptset"
)

// PlayoutBoard is the rollout-only board variant (spec.md §4.2): same
// block/liberty semantics as Board, but no undo log, simple ko only,
// and no super-ko hash search. It additionally maintains per-point
// neighbour-colour counts incrementally to accelerate the playout
// policy's atari/low-lib/pattern generators.
type PlayoutBoard struct {
	geom point.Geometry

	color  []Color
	anchor []point.Point
	blocks map[point.Point]*blockInfo

	toPlay  Color
	moveNum int
	koPoint point.Point
	rules   Rules

	lastMove [2]point.Point

	// neighborCount[p][Black], [p][White], [p][Empty] — 4-neighbour
	// colour tallies, updated incrementally on every play.
	neighborCount [][3]uint8

	boardPoints []point.Point
}

// NewPlayoutBoard allocates an empty playout board; call InitFrom to
// seed it from a tree-board position (spec.md §4.2 "Initialized by
// cloning the tree board's per-point colours").
func NewPlayoutBoard(size int, rules Rules) *PlayoutBoard {
	geom := point.NewGeometry(size)
	pb := &PlayoutBoard{
		geom:    geom,
		color:   make([]Color, geom.Size()),
		anchor:  make([]point.Point, geom.Size()),
		blocks:  make(map[point.Point]*blockInfo),
		koPoint: point.NullMove,
		rules:   rules,
		neighborCount: make([][3]uint8, geom.Size()),
		lastMove:      [2]point.Point{point.NullMove, point.NullMove},
	}
	for i := range pb.color {
		pb.color[i] = Border
	}
	pb.boardPoints = make([]point.Point, 0, size*size)
	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			p := geom.Of(x, y)
			pb.color[p] = Empty
			pb.boardPoints = append(pb.boardPoints, p)
		}
	}
	return pb
}

// InitFrom rebuilds the playout board from a Position's current
// per-point colours, rebuilding blocks from scratch (spec.md §4.2).
func (pb *PlayoutBoard) InitFrom(src Position) {
	pb.blocks = make(map[point.Point]*blockInfo)
	for i := range pb.anchor {
		pb.anchor[i] = point.Point(i)
	}
	for _, p := range pb.boardPoints {
		pb.color[p] = src.ColorAt(p)
	}
	pb.toPlay = src.ToPlay()
	pb.moveNum = src.MoveNumber()
	pb.koPoint = point.NullMove
	pb.lastMove = [2]point.Point{src.LastMove(), src.SecondLastMove()}
	pb.rebuildBlocks()
	pb.rebuildNeighborCounts()
}

func (pb *PlayoutBoard) rebuildBlocks() {
	visited := ptset.New(pb.geom.Size())
	for _, p := range pb.boardPoints {
		c := pb.color[p]
		if c != Black && c != White {
			continue
		}
		if visited.Contains(p) {
			continue
		}
		// Flood fill the block starting at p.
		blk := &blockInfo{color: c, stones: ptset.New(pb.geom.Size()), liberties: ptset.New(pb.geom.Size())}
		stack := []point.Point{p}
		visited.Add(p)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			blk.stones.Add(cur)
			pb.anchor[cur] = p
			for _, nb := range pb.geom.Neighbors4(cur) {
				switch pb.color[nb] {
				case Empty:
					blk.liberties.Add(nb)
				case c:
					if !visited.Contains(nb) {
						visited.Add(nb)
						stack = append(stack, nb)
					}
				}
			}
		}
		pb.blocks[p] = blk
	}
}

func (pb *PlayoutBoard) rebuildNeighborCounts() {
	for _, p := range pb.boardPoints {
		var cnt [3]uint8
		for _, nb := range pb.geom.Neighbors4(p) {
			switch pb.color[nb] {
			case Black:
				cnt[Black]++
			case White:
				cnt[White]++
			case Empty:
				cnt[Empty]++
			}
		}
		pb.neighborCount[p] = cnt
	}
}

func (pb *PlayoutBoard) Geometry() point.Geometry          { return pb.geom }
func (pb *PlayoutBoard) ColorAt(p point.Point) Color       { return pb.color[p] }
func (pb *PlayoutBoard) Anchor(p point.Point) point.Point  { return pb.anchor[p] }
func (pb *PlayoutBoard) ToPlay() Color                     { return pb.toPlay }
func (pb *PlayoutBoard) MoveNumber() int                   { return pb.moveNum }
func (pb *PlayoutBoard) LastMove() point.Point             { return pb.lastMove[0] }
func (pb *PlayoutBoard) SecondLastMove() point.Point       { return pb.lastMove[1] }
func (pb *PlayoutBoard) KoPoint() point.Point              { return pb.koPoint }
func (pb *PlayoutBoard) IterBoard() []point.Point          { return pb.boardPoints }

func (pb *PlayoutBoard) block(p point.Point) *blockInfo {
	return pb.blocks[pb.anchor[p]]
}

func (pb *PlayoutBoard) NumLiberties(p point.Point) int {
	blk := pb.block(p)
	if blk == nil {
		return 0
	}
	return blk.liberties.Len()
}

func (pb *PlayoutBoard) InAtari(p point.Point) bool { return pb.NumLiberties(p) == 1 }

func (pb *PlayoutBoard) TheLiberty(p point.Point) (point.Point, bool) {
	blk := pb.block(p)
	if blk == nil || blk.liberties.Len() != 1 {
		return point.NullMove, false
	}
	return blk.liberties.Any()
}

func (pb *PlayoutBoard) NumNeighborsOf(p point.Point, c Color) int {
	if c == Border {
		return 4 - int(pb.neighborCount[p][Black]) - int(pb.neighborCount[p][White]) - int(pb.neighborCount[p][Empty])
	}
	return int(pb.neighborCount[p][c])
}

func (pb *PlayoutBoard) IterEmpty() *ptset.Iterator {
	s := ptset.New(pb.geom.Size())
	for _, p := range pb.boardPoints {
		if pb.color[p] == Empty {
			s.Add(p)
		}
	}
	return s.Iter()
}

func (pb *PlayoutBoard) Legal(p point.Point, c Color) bool {
	if p == point.Pass {
		return true
	}
	if !pb.geom.OnBoard(p) || pb.color[p] != Empty {
		return false
	}
	if p == pb.koPoint {
		return false
	}
	opp := c.Opponent()
	for _, q := range pb.geom.Neighbors4(p) {
		switch pb.color[q] {
		case Empty:
			return true
		case opp:
			if pb.NumLiberties(q) == 1 {
				return true
			}
		case c:
			if pb.NumLiberties(q) > 1 {
				return true
			}
		}
	}
	return pb.rules.SuicideAllowed
}

// IsSimpleEye reports whether p is an eye-like point: every 4-neighbour
// is the mover's own colour or off-board, and at most one diagonal
// corner is held by the opponent (none at the edge) — used by the pure-random generator to
// avoid filling in the mover's own eyes (spec.md §4.6 "not a simple eye
// of the mover").
func (pb *PlayoutBoard) IsSimpleEye(p point.Point, c Color) bool {
	if pb.color[p] != Empty {
		return false
	}
	for _, nb := range pb.geom.Neighbors4(p) {
		if pb.color[nb] != c && pb.color[nb] != Border {
			return false
		}
	}
	diagOpp := 0
	diagTotal := 0
	n8 := pb.geom.Neighbors8(p)
	for _, d := range n8[4:] {
		if pb.color[d] == Border {
			continue
		}
		diagTotal++
		if pb.color[d] == c.Opponent() {
			diagOpp++
		}
	}
	allowed := 1
	if diagTotal < 4 {
		allowed = 0
	}
	return diagOpp <= allowed
}

// Play places a move on the playout board, maintaining blocks,
// liberties, and neighbour counts incrementally. No undo log is kept
// (spec.md §4.2).
func (pb *PlayoutBoard) Play(p point.Point, c Color) error {
	if p == point.Pass {
		pb.koPoint = point.NullMove
		pb.toPlay = c.Opponent()
		pb.moveNum++
		pb.lastMove[1] = pb.lastMove[0]
		pb.lastMove[0] = point.Pass
		return nil
	}
	if !pb.geom.OnBoard(p) || pb.color[p] != Empty {
		return engerr.Illegal(engerr.Occupied)
	}

	pb.color[p] = c
	pb.anchor[p] = p
	blk := &blockInfo{color: c, stones: ptset.New(pb.geom.Size()), liberties: ptset.New(pb.geom.Size())}
	blk.stones.Add(p)
	for _, q := range pb.geom.Neighbors4(p) {
		if pb.color[q] == Empty {
			blk.liberties.Add(q)
		}
	}
	pb.blocks[p] = blk
	pb.bumpNeighborCounts(p, Empty, c)

	for _, q := range pb.geom.Neighbors4(p) {
		if pb.color[q] == c && pb.anchor[q] != p {
			pb.mergeBlocks(p, q)
		}
	}
	for _, q := range pb.geom.Neighbors4(p) {
		if pb.color[q] != Empty && pb.color[q] != Border && pb.anchor[q] != pb.anchor[p] {
			pb.block(q).liberties.Remove(p)
		}
	}

	opp := c.Opponent()
	captured := 0
	capturedSingleStone := point.NullMove
	seen := map[point.Point]bool{}
	for _, q := range pb.geom.Neighbors4(p) {
		if pb.color[q] != opp {
			continue
		}
		a := pb.anchor[q]
		if seen[a] {
			continue
		}
		seen[a] = true
		victim := pb.blocks[a]
		if victim.liberties.Len() == 0 {
			n := victim.stones.Len()
			captured += n
			if n == 1 {
				s, _ := victim.stones.Any()
				capturedSingleStone = s
			}
			pb.removeBlock(victim)
		}
	}

	finalBlock := pb.blocks[pb.anchor[p]]
	if finalBlock.liberties.Len() == 0 && captured == 0 && !pb.rules.SuicideAllowed {
		// Should not happen: the policy never generates suicide moves.
		return engerr.Illegal(engerr.Suicide)
	}

	newKo := point.NullMove
	if captured == 1 && finalBlock.stones.Len() == 1 && finalBlock.liberties.Len() == 1 {
		newKo = capturedSingleStone
	}
	pb.koPoint = newKo
	pb.toPlay = c.Opponent()
	pb.moveNum++
	pb.lastMove[1] = pb.lastMove[0]
	pb.lastMove[0] = p
	return nil
}

func (pb *PlayoutBoard) bumpNeighborCounts(p point.Point, from, to Color) {
	for _, q := range pb.geom.Neighbors4(p) {
		if pb.color[q] == Border {
			continue
		}
		pb.neighborCount[q][from]--
		pb.neighborCount[q][to]++
	}
}

func (pb *PlayoutBoard) mergeBlocks(p, q point.Point) {
	dst := pb.blocks[p]
	src := pb.blocks[pb.anchor[q]]
	if dst == src {
		return
	}
	it := src.stones.Iter()
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		pb.anchor[s] = p
		dst.stones.Add(s)
	}
	dst.liberties.Union(src.liberties)
	dst.liberties.Remove(p)
	delete(pb.blocks, pb.anchor[q])
}

func (pb *PlayoutBoard) removeBlock(blk *blockInfo) {
	anchorPt, _ := blk.stones.Any()
	delete(pb.blocks, pb.anchor[anchorPt])
	it := blk.stones.Iter()
	stones := make([]point.Point, 0, blk.stones.Len())
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		stones = append(stones, s)
	}
	for _, s := range stones {
		pb.color[s] = Empty
		pb.bumpNeighborCounts(s, blk.color, Empty)
		pb.anchor[s] = s
		for _, nb := range pb.geom.Neighbors4(s) {
			if pb.color[nb] != Empty && pb.color[nb] != Border {
				pb.block(nb).liberties.Add(s)
			}
		}
	}
}

// Package board implements the Go board core (spec.md §4.1) and its
// rollout-only variant, the playout board (spec.md §4.2). Both are
// built around the same incrementally maintained block/liberty model;
// Board adds move/undo history and optional super-ko, PlayoutBoard
// drops both for speed (spec.md §9 "Templated BOARD variant").
package board

import (
	"github.com/uctgo/gouct/internal/engerr"
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/ptset"
	"github.com/uctgo/gouct/internal/zobrist"
)

// blockInfo is one maximal connected same-colour group, keyed by its
// anchor point in Board.blocks (spec.md §9 "Cyclic board/block relations":
// "Realise as an arena of blocks keyed by anchor point").
type blockInfo struct {
	color     Color
	stones    *ptset.Set
	liberties *ptset.Set
}

func (b *blockInfo) clone() *blockInfo {
	return &blockInfo{color: b.color, stones: b.stones.Clone(), liberties: b.liberties.Clone()}
}

// undoEntry is a full-state snapshot taken before a play. A snapshot
// (rather than a differential patch) is the simplest realization that
// still satisfies spec.md §3's requirement that "move history entries
// carry enough information ... to reverse a move exactly".
type undoEntry struct {
	color    []Color
	anchor   []point.Point
	blocks   map[point.Point]*blockInfo
	koPoint  point.Point
	toPlay   Color
	moveNum  int
	hash     uint64
	lastMove [2]point.Point
}

// Board is the full-featured, mutable Go position (spec.md §3 "Board state").
type Board struct {
	geom point.Geometry

	color  []Color
	anchor []point.Point
	blocks map[point.Point]*blockInfo

	toPlay  Color
	moveNum int
	koPoint point.Point
	rules   Rules

	lastMove [2]point.Point // [0]=last, [1]=second-last

	history []*undoEntry

	zt       *zobrist.Table
	hash     uint64
	koHashes *zobrist.History

	boardPoints []point.Point // all on-board points, fixed after construction
}

// NewBoard constructs an empty board of the given size with the given
// ruleset.
func NewBoard(size int, rules Rules) *Board {
	geom := point.NewGeometry(size)
	b := &Board{
		geom:     geom,
		color:    make([]Color, geom.Size()),
		anchor:   make([]point.Point, geom.Size()),
		blocks:   make(map[point.Point]*blockInfo),
		toPlay:   Black,
		koPoint:  point.NullMove,
		rules:    rules,
		zt:       zobrist.NewTable(geom.Size()),
		koHashes: zobrist.NewHistory(),
		lastMove: [2]point.Point{point.NullMove, point.NullMove},
	}
	for i := range b.color {
		b.color[i] = Border
	}
	b.boardPoints = make([]point.Point, 0, size*size)
	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			p := geom.Of(x, y)
			b.color[p] = Empty
			b.boardPoints = append(b.boardPoints, p)
		}
	}
	b.koHashes.Push(b.hash)
	return b
}

// Geometry returns the board's point geometry.
func (b *Board) Geometry() point.Geometry { return b.geom }

// ToPlay returns the side to move.
func (b *Board) ToPlay() Color { return b.toPlay }

// MoveNumber returns the number of moves played so far.
func (b *Board) MoveNumber() int { return b.moveNum }

// KoPoint returns the simple-ko prohibition point, or NullMove if none.
func (b *Board) KoPoint() point.Point { return b.koPoint }

// Rules returns the board's ruleset.
func (b *Board) Rules() Rules { return b.rules }

// ColorAt returns the colour at p (Border if off-board).
func (b *Board) ColorAt(p point.Point) Color { return b.color[p] }

// Anchor returns the canonical representative point of p's block.
// Only meaningful when ColorAt(p) is Black or White.
func (b *Board) Anchor(p point.Point) point.Point { return b.anchor[p] }

// LastMove returns the most recently played point (Pass included).
func (b *Board) LastMove() point.Point { return b.lastMove[0] }

// SecondLastMove returns the point played before LastMove.
func (b *Board) SecondLastMove() point.Point { return b.lastMove[1] }

func (b *Board) block(p point.Point) *blockInfo {
	return b.blocks[b.anchor[p]]
}

// NumLiberties returns the liberty count of the block occupying p.
func (b *Board) NumLiberties(p point.Point) int {
	blk := b.block(p)
	if blk == nil {
		return 0
	}
	return blk.liberties.Len()
}

// InAtari reports whether the block occupying p has exactly one liberty.
func (b *Board) InAtari(p point.Point) bool {
	return b.NumLiberties(p) == 1
}

// TheLiberty returns the single liberty of a block in atari.
func (b *Board) TheLiberty(p point.Point) (point.Point, bool) {
	blk := b.block(p)
	if blk == nil || blk.liberties.Len() != 1 {
		return point.NullMove, false
	}
	return blk.liberties.Any()
}

// NumNeighborsOf counts the 4-neighbours of p with the given colour.
func (b *Board) NumNeighborsOf(p point.Point, c Color) int {
	n := 0
	for _, q := range b.geom.Neighbors4(p) {
		if b.color[q] == c {
			n++
		}
	}
	return n
}

// IterEmpty returns an ordered iterator over all empty on-board points.
func (b *Board) IterEmpty() *ptset.Iterator {
	s := ptset.New(b.geom.Size())
	for _, p := range b.boardPoints {
		if b.color[p] == Empty {
			s.Add(p)
		}
	}
	return s.Iter()
}

// IterBoard returns every on-board point (fixed allocation, shared slice).
func (b *Board) IterBoard() []point.Point { return b.boardPoints }

// Legal reports whether playing c at p would succeed, without mutating
// the board (spec.md §4.1 "is_legal"). The simple-ko and liberty
// checks are cheap enough to answer without a trial move, but whether
// a capture would recreate an earlier whole-board position under
// super-ko can only be known by actually applying it, so Legal falls
// through to the same mutate-then-validate path Play uses and always
// restores afterward, win or lose.
func (b *Board) Legal(p point.Point, c Color) bool {
	if p == point.Pass {
		return true
	}
	if !b.geom.OnBoard(p) || b.color[p] != Empty {
		return false
	}
	if p == b.koPoint && b.rules.KoRule != KoNone {
		return false
	}
	if !b.wouldHaveLiberty(p, c) {
		return false
	}
	if b.rules.KoRule != KoSuper {
		return true
	}
	snap, err := b.mutatePlay(p, c)
	b.restore(snap)
	return err == nil
}

// wouldHaveLiberty checks the legality condition of spec.md §3: empty
// neighbour, or captures an opponent block, or the resulting block has
// a liberty.
func (b *Board) wouldHaveLiberty(p point.Point, c Color) bool {
	opp := c.Opponent()
	for _, q := range b.geom.Neighbors4(p) {
		switch b.color[q] {
		case Empty:
			return true
		case opp:
			if b.NumLiberties(q) == 1 {
				return true // captures
			}
		case c:
			if b.NumLiberties(q) > 1 {
				return true // connects to a block with a spare liberty
			}
		}
	}
	return b.rules.SuicideAllowed
}

// Play places a stone of colour c at p, maintaining blocks and
// liberties incrementally per spec.md §4.1 steps 1-6.
func (b *Board) Play(p point.Point, c Color) error {
	if p == point.Pass {
		b.applyPass(c)
		return nil
	}
	if !b.geom.OnBoard(p) {
		return engerr.Illegal(engerr.OffBoard)
	}
	if b.color[p] != Empty {
		return engerr.Illegal(engerr.Occupied)
	}
	if p == b.koPoint && b.rules.KoRule != KoNone {
		return engerr.Illegal(engerr.KoRepeat)
	}

	snap, err := b.mutatePlay(p, c)
	if err != nil {
		return err
	}

	b.toPlay = c.Opponent()
	b.moveNum++
	b.lastMove[1] = b.lastMove[0]
	b.lastMove[0] = p
	b.hash ^= b.zt.ToMoveKey()
	b.koHashes.Push(b.hash)

	b.history = append(b.history, snap)
	return nil
}

// mutatePlay performs steps 1-6 of spec.md §4.1 against the live board
// state: place the stone, merge blocks, update liberties, remove any
// captured opponent blocks, reject suicide, and set the ko point. It
// assumes the caller has already checked the on-board/empty/simple-ko
// preconditions. On success it returns the pre-move snapshot and
// leaves the board mutated with b.koPoint set (everything but the
// to-move/history bookkeeping Play still owns); on failure the board
// is already restored to the returned snapshot and exactly as it was.
//
// Legal reuses this to answer the super-ko question the quick checks
// can't: whether this capture would recreate an earlier whole-board
// position. It always restores afterward regardless of the result.
func (b *Board) mutatePlay(p point.Point, c Color) (*undoEntry, error) {
	snap := b.snapshot()

	// Step 1: place the stone, form a singleton block.
	b.color[p] = c
	b.anchor[p] = p
	blk := &blockInfo{color: c, stones: ptset.New(b.geom.Size()), liberties: ptset.New(b.geom.Size())}
	blk.stones.Add(p)
	for _, q := range b.geom.Neighbors4(p) {
		if b.color[q] == Empty {
			blk.liberties.Add(q)
		}
	}
	b.blocks[p] = blk
	b.hash ^= b.zt.StoneKey(c.Slot(), p)

	// Step 2: merge with same-colour neighbour blocks.
	for _, q := range b.geom.Neighbors4(p) {
		if b.color[q] == c && b.anchor[q] != p {
			b.mergeBlocks(p, q)
		}
	}

	// Step 3: subtract p from every neighbour block's liberties.
	for _, q := range b.geom.Neighbors4(p) {
		if b.color[q] != Empty && b.color[q] != Border && b.anchor[q] != b.anchor[p] {
			b.block(q).liberties.Remove(p)
		}
	}

	// Step 4: remove captured opponent blocks.
	opp := c.Opponent()
	captured := 0
	capturedSingleStone := point.NullMove
	seen := map[point.Point]bool{}
	for _, q := range b.geom.Neighbors4(p) {
		if b.color[q] != opp {
			continue
		}
		a := b.anchor[q]
		if seen[a] {
			continue
		}
		seen[a] = true
		victim := b.blocks[a]
		if victim.liberties.Len() == 0 {
			n := victim.stones.Len()
			captured += n
			if n == 1 {
				s, _ := victim.stones.Any()
				capturedSingleStone = s
			}
			b.removeBlock(victim)
		}
	}

	// Step 5: reject suicide unless allowed.
	finalBlock := b.blocks[b.anchor[p]]
	if finalBlock.liberties.Len() == 0 && captured == 0 {
		if !b.rules.SuicideAllowed {
			b.restore(snap)
			return snap, engerr.Illegal(engerr.Suicide)
		}
	}

	// Step 6: set the ko point.
	newKo := point.NullMove
	if captured == 1 && finalBlock.stones.Len() == 1 && finalBlock.liberties.Len() == 1 {
		newKo = capturedSingleStone
	}

	if b.rules.KoRule == KoSuper {
		candidateHash := b.hash ^ b.zt.ToMoveKey()
		if b.koHashes.WouldRepeat(candidateHash) {
			b.restore(snap)
			return snap, engerr.Illegal(engerr.SuperKoRepeat)
		}
	}

	b.koPoint = newKo
	return snap, nil
}

func (b *Board) applyPass(c Color) {
	snap := b.snapshot()
	b.koPoint = point.NullMove
	b.toPlay = c.Opponent()
	b.moveNum++
	b.lastMove[1] = b.lastMove[0]
	b.lastMove[0] = point.Pass
	b.hash ^= b.zt.ToMoveKey()
	b.koHashes.Push(b.hash)
	b.history = append(b.history, snap)
}

// mergeBlocks unions the block anchored at q into the block anchored at p.
func (b *Board) mergeBlocks(p, q point.Point) {
	dst := b.blocks[p]
	src := b.blocks[b.anchor[q]]
	if dst == src {
		return
	}
	it := src.stones.Iter()
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		b.anchor[s] = p
		dst.stones.Add(s)
	}
	dst.liberties.Union(src.liberties)
	dst.liberties.Remove(p) // p itself is occupied, never its own liberty
	delete(b.blocks, b.anchor[q])
}

// removeBlock takes every stone of blk off the board, restoring each
// point as a liberty of every block still adjacent to it (spec.md §4.1
// step 4).
func (b *Board) removeBlock(blk *blockInfo) {
	anchorPt, _ := blk.stones.Any()
	delete(b.blocks, b.anchor[anchorPt])
	it := blk.stones.Iter()
	stones := make([]point.Point, 0, blk.stones.Len())
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		stones = append(stones, s)
	}
	for _, s := range stones {
		b.color[s] = Empty
		b.hash ^= b.zt.StoneKey(blk.color.Slot(), s)
		b.anchor[s] = s
		for _, nb := range b.geom.Neighbors4(s) {
			if b.color[nb] != Empty && b.color[nb] != Border {
				b.block(nb).liberties.Add(s)
			}
		}
	}
}

func (b *Board) snapshot() *undoEntry {
	color := make([]Color, len(b.color))
	copy(color, b.color)
	anchor := make([]point.Point, len(b.anchor))
	copy(anchor, b.anchor)
	blocks := make(map[point.Point]*blockInfo, len(b.blocks))
	for k, v := range b.blocks {
		blocks[k] = v.clone()
	}
	return &undoEntry{
		color: color, anchor: anchor, blocks: blocks,
		koPoint: b.koPoint, toPlay: b.toPlay, moveNum: b.moveNum,
		hash: b.hash, lastMove: b.lastMove,
	}
}

func (b *Board) restore(s *undoEntry) {
	b.color = s.color
	b.anchor = s.anchor
	b.blocks = s.blocks
	b.koPoint = s.koPoint
	b.toPlay = s.toPlay
	b.moveNum = s.moveNum
	b.hash = s.hash
	b.lastMove = s.lastMove
}

// Undo reverses the most recent Play, restoring the exact prior state
// (spec.md §4.1 "undo").
func (b *Board) Undo() {
	if len(b.history) == 0 {
		return
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.koHashes.Pop()
	b.restore(last)
}

// Hash returns the current Zobrist accumulator, mixed through
// zobrist.Mix to produce the engine-wide position-hash key.
func (b *Board) Hash() uint64 {
	return zobrist.Mix(b.hash)
}

// Clone produces an independent deep copy of the board, used to give
// each search worker its own board (spec.md §5).
func (b *Board) Clone() *Board {
	nb := &Board{
		geom: b.geom, toPlay: b.toPlay, moveNum: b.moveNum,
		koPoint: b.koPoint, rules: b.rules, zt: b.zt, hash: b.hash,
		lastMove: b.lastMove, boardPoints: b.boardPoints,
	}
	nb.color = make([]Color, len(b.color))
	copy(nb.color, b.color)
	nb.anchor = make([]point.Point, len(b.anchor))
	copy(nb.anchor, b.anchor)
	nb.blocks = make(map[point.Point]*blockInfo, len(b.blocks))
	for k, v := range b.blocks {
		nb.blocks[k] = v.clone()
	}
	nb.koHashes = zobrist.NewHistory()
	nb.koHashes.Push(b.hash)
	// History is intentionally not cloned: search workers clone a fresh
	// board per simulation and never call Undo past their own plays.
	return nb
}

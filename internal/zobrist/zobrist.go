// Package zobrist implements the rolling position hash used by the
// board core's super-ko rule (spec.md §4.1 "Super-ko"). Construction
// follows the fixed-seed random-table pattern in
// bitbucket.org/zurichess/zurichess's engine/zobrist.go: one random key
// per (color, point) pair plus one key for side-to-move, xored
// incrementally as stones are placed and removed.
package zobrist

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/uctgo/gouct/internal/point"
)

// Table holds the per-(color, point) keys for one board size. Built
// once at board construction and immutable after that, the same way
// zurichess builds its ZobristPiece table once in an init() func.
type Table struct {
	stone   [2][]uint64 // [color][point]
	toMove  uint64
	size    int
}

// colorSlot maps board.Color{Black=0,White=1} to the stone table index.
// Kept as plain ints here to avoid a dependency cycle with internal/board.
const (
	SlotBlack = 0
	SlotWhite = 1
)

// NewTable builds a deterministic Zobrist table for a padded grid of
// the given cell count. A fixed seed keeps hashes reproducible across
// runs and test cases, matching zurichess's rand.New(rand.NewSource(1)).
func NewTable(paddedSize int) *Table {
	r := rand.New(rand.NewSource(1))
	t := &Table{size: paddedSize}
	t.stone[SlotBlack] = make([]uint64, paddedSize)
	t.stone[SlotWhite] = make([]uint64, paddedSize)
	for p := 0; p < paddedSize; p++ {
		t.stone[SlotBlack][p] = rand64(r)
		t.stone[SlotWhite][p] = rand64(r)
	}
	t.toMove = rand64(r)
	return t
}

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

// StoneKey returns the xor-key for placing/removing a stone of the
// given color slot at p.
func (t *Table) StoneKey(colorSlot int, p point.Point) uint64 {
	return t.stone[colorSlot][p]
}

// ToMoveKey returns the xor-key toggled whenever the side to move
// switches.
func (t *Table) ToMoveKey() uint64 {
	return t.toMove
}

// History tracks the sequence of position hashes seen so far, searched
// for repetition when the super-ko rule is enabled (spec.md §4.1).
// Lookups are mixed through xxhash.Sum64 before comparison, both to
// guard against the (vanishingly unlikely) collision of two distinct
// Zobrist keys and because the mixed value is also what gets persisted
// as the opening-book lookup key (internal/book), so the two hashes
// always agree on the same position.
type History struct {
	seen map[uint64]int // hash -> occurrence count
	path []uint64       // stack, for undo
}

// NewHistory creates an empty repetition history.
func NewHistory() *History {
	return &History{seen: make(map[uint64]int)}
}

// Push records a new position hash as reached.
func (h *History) Push(hash uint64) {
	mixed := Mix(hash)
	h.seen[mixed]++
	h.path = append(h.path, mixed)
}

// Pop undoes the most recently pushed hash.
func (h *History) Pop() {
	if len(h.path) == 0 {
		return
	}
	last := h.path[len(h.path)-1]
	h.path = h.path[:len(h.path)-1]
	h.seen[last]--
	if h.seen[last] <= 0 {
		delete(h.seen, last)
	}
}

// WouldRepeat reports whether hash has already occurred in history,
// i.e. playing into it would violate super-ko.
func (h *History) WouldRepeat(hash uint64) bool {
	return h.seen[Mix(hash)] > 0
}

// Mix runs a raw Zobrist accumulator through xxhash to produce the
// stable 64-bit key used both for super-ko repetition search and for
// opening-book lookups (internal/book), so every consumer of "the
// position hash" in this engine agrees on one definition.
func Mix(raw uint64) uint64 {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(raw >> (8 * i))
	}
	return xxhash.Sum64(buf[:])
}

package zobrist

import (
	"testing"

	"github.com/uctgo/gouct/internal/point"
)

func TestNewTableIsDeterministic(t *testing.T) {
	a := NewTable(121)
	b := NewTable(121)
	if a.StoneKey(SlotBlack, point.Point(10)) != b.StoneKey(SlotBlack, point.Point(10)) {
		t.Fatalf("expected two tables of the same size to produce identical keys")
	}
	if a.ToMoveKey() != b.ToMoveKey() {
		t.Fatalf("expected the to-move key to be deterministic across table builds")
	}
}

func TestStoneKeysDifferByColorAndPoint(t *testing.T) {
	tbl := NewTable(121)
	if tbl.StoneKey(SlotBlack, point.Point(10)) == tbl.StoneKey(SlotWhite, point.Point(10)) {
		t.Fatalf("expected different keys for the same point under different colors")
	}
	if tbl.StoneKey(SlotBlack, point.Point(10)) == tbl.StoneKey(SlotBlack, point.Point(11)) {
		t.Fatalf("expected different keys for different points")
	}
}

func TestHistoryPushPopWouldRepeat(t *testing.T) {
	h := NewHistory()
	const hash uint64 = 0xABCDEF
	if h.WouldRepeat(hash) {
		t.Fatalf("expected no repetition before any push")
	}
	h.Push(hash)
	if !h.WouldRepeat(hash) {
		t.Fatalf("expected WouldRepeat true right after pushing the same hash")
	}
	h.Pop()
	if h.WouldRepeat(hash) {
		t.Fatalf("expected WouldRepeat false after popping the only occurrence")
	}
}

func TestHistoryTracksMultipleOccurrences(t *testing.T) {
	h := NewHistory()
	const hash uint64 = 42
	h.Push(hash)
	h.Push(hash)
	h.Pop()
	if !h.WouldRepeat(hash) {
		t.Fatalf("expected the hash to still be recorded after popping one of two pushes")
	}
	h.Pop()
	if h.WouldRepeat(hash) {
		t.Fatalf("expected the hash to be cleared after popping both pushes")
	}
}

func TestMixIsDeterministic(t *testing.T) {
	if Mix(123) != Mix(123) {
		t.Fatalf("expected Mix to be a pure function of its input")
	}
	if Mix(123) == Mix(124) {
		t.Fatalf("expected different inputs to mix to different outputs (in practice)")
	}
}

package book

import (
	"testing"

	"github.com/uctgo/gouct/internal/point"
)

func TestRecordAndLookup(t *testing.T) {
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	const hash uint64 = 0xC0FFEE
	if _, found := b.Lookup(hash); found {
		t.Fatalf("expected no entry before Record")
	}
	if err := b.Record(hash, point.Point(42)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	mv, found := b.Lookup(hash)
	if !found {
		t.Fatalf("expected an entry after Record")
	}
	if mv != point.Point(42) {
		t.Fatalf("expected move 42, got %v", mv)
	}
}

func TestLookupMissingKey(t *testing.T) {
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	if _, found := b.Lookup(0xDEAD); found {
		t.Fatalf("expected no entry for an unrecorded hash")
	}
}

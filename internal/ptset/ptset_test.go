package ptset

import (
	"testing"

	"github.com/uctgo/gouct/internal/point"
)

func TestAddContainsRemove(t *testing.T) {
	s := New(400)
	p := point.Point(57)
	if s.Contains(p) {
		t.Fatalf("expected p absent before Add")
	}
	if !s.Add(p) {
		t.Fatalf("expected Add to report a new member")
	}
	if s.Add(p) {
		t.Fatalf("expected a second Add of the same point to report false")
	}
	if !s.Contains(p) {
		t.Fatalf("expected p present after Add")
	}
	if s.Len() != 1 {
		t.Fatalf("expected length 1, got %d", s.Len())
	}
	if !s.Remove(p) {
		t.Fatalf("expected Remove to report the member was present")
	}
	if s.Contains(p) {
		t.Fatalf("expected p absent after Remove")
	}
	if s.Len() != 0 {
		t.Fatalf("expected length 0 after remove, got %d", s.Len())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(400)
	s.Add(point.Point(10))
	clone := s.Clone()
	clone.Add(point.Point(20))
	if s.Contains(point.Point(20)) {
		t.Fatalf("expected the original set to be unaffected by mutating the clone")
	}
	if !clone.Contains(point.Point(10)) {
		t.Fatalf("expected the clone to carry over the original's members")
	}
}

func TestUnion(t *testing.T) {
	a := New(400)
	a.Add(point.Point(1))
	b := New(400)
	b.Add(point.Point(1))
	b.Add(point.Point(2))
	a.Union(b)
	if a.Len() != 2 {
		t.Fatalf("expected union cardinality 2, got %d", a.Len())
	}
	if !a.Contains(point.Point(2)) {
		t.Fatalf("expected the union to contain b's members")
	}
}

func TestIterOrdersAscending(t *testing.T) {
	s := New(400)
	for _, p := range []point.Point{300, 5, 150} {
		s.Add(p)
	}
	it := s.Iter()
	var got []point.Point
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	want := []point.Point{5, 150, 300}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("iteration order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestAnyOnEmptySet(t *testing.T) {
	s := New(400)
	if _, ok := s.Any(); ok {
		t.Fatalf("expected Any to report false on an empty set")
	}
}

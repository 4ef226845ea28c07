package tree

import (
	"sync"
	"testing"

	"github.com/uctgo/gouct/internal/point"
)

func TestAllocatorExhaustion(t *testing.T) {
	a := NewAllocator(2)
	if _, err := a.Alloc(nil, point.Point(1), false); err != nil {
		t.Fatalf("first alloc: %v", err)
	}
	if _, err := a.Alloc(nil, point.Point(2), false); err != nil {
		t.Fatalf("second alloc: %v", err)
	}
	if _, err := a.Alloc(nil, point.Point(3), false); err == nil {
		t.Fatalf("expected tree-full error on third alloc")
	}
}

func TestAttachChildrenPublication(t *testing.T) {
	a := NewAllocator(8)
	parent, _ := a.Alloc(nil, point.NullMove, false)
	if parent.NumChildren() != 0 {
		t.Fatalf("fresh node should have zero children")
	}
	var kids []*Node
	for i := 0; i < 3; i++ {
		c, err := a.Alloc(parent, point.Point(i), false)
		if err != nil {
			t.Fatalf("alloc child: %v", err)
		}
		kids = append(kids, c)
	}
	AttachChildren(parent, kids)
	if parent.NumChildren() != 3 {
		t.Fatalf("expected 3 children, got %d", parent.NumChildren())
	}
	got := parent.Children()
	if len(got) != 3 || got[0].Move != 0 || got[2].Move != 2 {
		t.Fatalf("unexpected child list: %+v", got)
	}
}

func TestNodeVirtualLossRoundTrip(t *testing.T) {
	a := NewAllocator(4)
	n, _ := a.Alloc(nil, point.NullMove, false)
	n.AddVirtualLoss(3)
	if n.RealVisits() != 0 {
		t.Fatalf("expected zero real visits while virtual loss outstanding, got %d", n.RealVisits())
	}
	n.AddOutcome(1.0)
	n.RemoveVirtualLoss(3)
	if n.RealVisits() != 1 {
		t.Fatalf("expected 1 real visit after outcome + removed virtual loss, got %d", n.RealVisits())
	}
	if n.MeanValue() != 1.0 {
		t.Fatalf("expected mean value 1.0, got %v", n.MeanValue())
	}
}

func TestNodeExpandRaceOnlyOneWinner(t *testing.T) {
	a := NewAllocator(4)
	n, _ := a.Alloc(nil, point.NullMove, false)

	var wg sync.WaitGroup
	wins := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- n.TryBeginExpand()
		}()
	}
	wg.Wait()
	close(wins)
	count := 0
	for w := range wins {
		if w {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one winner of TryBeginExpand, got %d", count)
	}
}

func TestTreeRootReplacement(t *testing.T) {
	tr := NewTree(1, 16)
	root := tr.Root()
	child, err := tr.Allocator(0).Alloc(root, point.Point(5), false)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	AttachChildren(root, []*Node{child})

	found := FindChildByMove(root, point.Point(5))
	if found != child {
		t.Fatalf("FindChildByMove did not find the expected child")
	}
	tr.ReplaceRoot(child)
	if tr.Root() != child || tr.Root().Parent != nil {
		t.Fatalf("ReplaceRoot did not detach the new root correctly")
	}
}

// buildExtractSource builds a small three-generation tree by hand:
// root -> {heavy (many visits), light (few visits, not proven), proven
// (few visits, but ProvenLoss)} -> heavy has its own two children.
func buildExtractSource(t *testing.T) *Node {
	t.Helper()
	src := NewTree(1, 32)
	alloc := src.Allocator(0)
	root := src.Root()

	heavy, err := alloc.Alloc(root, point.Point(1), false)
	if err != nil {
		t.Fatalf("alloc heavy: %v", err)
	}
	for i := 0; i < 50; i++ {
		heavy.AddOutcome(0.5)
	}

	light, err := alloc.Alloc(root, point.Point(2), false)
	if err != nil {
		t.Fatalf("alloc light: %v", err)
	}
	light.AddOutcome(0.5)

	proven, err := alloc.Alloc(root, point.Point(3), false)
	if err != nil {
		t.Fatalf("alloc proven: %v", err)
	}
	proven.AddOutcome(0.5)
	proven.SetProvenType(ProvenLoss)

	AttachChildren(root, []*Node{heavy, light, proven})

	grandchildA, err := alloc.Alloc(heavy, point.Point(10), false)
	if err != nil {
		t.Fatalf("alloc grandchildA: %v", err)
	}
	for i := 0; i < 20; i++ {
		grandchildA.AddOutcome(0.5)
	}
	grandchildB, err := alloc.Alloc(heavy, point.Point(11), false)
	if err != nil {
		t.Fatalf("alloc grandchildB: %v", err)
	}
	for i := 0; i < 20; i++ {
		grandchildB.AddOutcome(0.5)
	}
	AttachChildren(heavy, []*Node{grandchildA, grandchildB})

	return root
}

func TestExtractSubtreeDropsLowCountUnprovenChildren(t *testing.T) {
	src := buildExtractSource(t)
	dst := NewTree(1, 64)

	root, truncated := ExtractSubtree(src, dst, 10)
	if truncated {
		t.Fatalf("did not expect truncation with ample capacity")
	}
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("expected the low-count, non-proven child dropped, got %d children", len(children))
	}
	var sawHeavy, sawProven bool
	for _, c := range children {
		switch c.Move {
		case point.Point(1):
			sawHeavy = true
			if len(c.Children()) != 2 {
				t.Fatalf("expected the heavy child's own children to survive, got %d", len(c.Children()))
			}
		case point.Point(3):
			sawProven = true
			if c.ProvenType() != ProvenLoss {
				t.Fatalf("expected the proven child's proven type to survive the copy")
			}
		case point.Point(2):
			t.Fatalf("expected the light, non-proven child to be dropped")
		}
	}
	if !sawHeavy || !sawProven {
		t.Fatalf("expected both the heavy and proven children to survive")
	}
}

func TestExtractSubtreeRecomputesProvenFromChildren(t *testing.T) {
	src := buildExtractSource(t)
	dst := NewTree(1, 64)

	root, truncated := ExtractSubtree(src, dst, 0)
	if truncated {
		t.Fatalf("did not expect truncation with ample capacity")
	}
	if root.ProvenType() != ProvenWin {
		t.Fatalf("expected a child with ProvenLoss to make root ProvenWin, got %v", root.ProvenType())
	}
}

func TestExtractSubtreeReportsTruncationOnAllocatorFull(t *testing.T) {
	src := buildExtractSource(t)
	dst := NewTree(1, 2) // only enough room for the root copy

	_, truncated := ExtractSubtree(src, dst, 0)
	if !truncated {
		t.Fatalf("expected truncation when the target allocator runs out of room")
	}
}

func TestExtractSubtreePreservesStatistics(t *testing.T) {
	src := buildExtractSource(t)
	dst := NewTree(1, 64)

	root, _ := ExtractSubtree(src, dst, 0)
	var total int32
	for _, c := range root.Children() {
		total += c.RealVisits()
		for _, gc := range c.Children() {
			total += gc.RealVisits()
		}
	}
	var wantTotal int32
	for _, c := range src.Children() {
		wantTotal += c.RealVisits()
		for _, gc := range c.Children() {
			wantTotal += gc.RealVisits()
		}
	}
	if total != wantTotal {
		t.Fatalf("expected copied visit totals to match the source, got %d want %d", total, wantTotal)
	}
}

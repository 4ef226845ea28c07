package treeviz

import (
	"strings"
	"testing"

	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/tree"
)

func buildSampleTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.NewTree(1, 256)
	alloc := tr.Allocator(0)
	root := tr.Root()

	children := make([]*tree.Node, 0, 3)
	for i, mv := range []point.Point{point.Point(10), point.Point(20), point.Point(30)} {
		c, err := alloc.Alloc(root, mv, false)
		if err != nil {
			t.Fatalf("Alloc: %v", err)
		}
		c.AddOutcome(0.5 + 0.1*float64(i))
		children = append(children, c)
	}
	tree.AttachChildren(root, children)
	return tr
}

func TestDumpTopKProducesDot(t *testing.T) {
	tr := buildSampleTree(t)
	geom := point.NewGeometry(9)

	out, err := DumpTopK(tr.Root(), geom, 1, 2)
	if err != nil {
		t.Fatalf("DumpTopK: %v", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Fatalf("expected a DOT digraph, got %q", out)
	}
}

func TestDumpKeepsAllChildren(t *testing.T) {
	tr := buildSampleTree(t)
	geom := point.NewGeometry(9)

	out, err := Dump(tr.Root(), geom, 1)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(out, "->") != 3 {
		t.Fatalf("expected 3 edges from the root to its 3 children, got %q", out)
	}
}

func TestRankedChildrenOrdersByVisits(t *testing.T) {
	tr := buildSampleTree(t)
	children := tr.Root().Children()
	children[2].AddOutcome(0.5)
	children[2].AddOutcome(0.5)
	ranked := rankedChildren(children, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked children, got %d", len(ranked))
	}
	if ranked[0] != children[2] {
		t.Fatalf("expected the most-visited child first, got one with %d visits", ranked[0].RealVisits())
	}
}

// Package treeviz renders a bounded-depth dump of the UCT tree as a
// Graphviz DOT file, for the "dbg-tree" debug command (a
// GoGtpExtraCommands-style extension, spec.md §9 supplemented
// features). Grounded on Elvenson-alphabeth's use of
// awalterschulze/gographviz to visualize its own search tree: build a
// gographviz.Graph node/edge at a time, then render it with String().
package treeviz

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/tree"
)

// Dump renders root's subtree down to maxDepth, keeping every child at
// each level (the full branching factor can be large; callers that
// want only the principal variation plus runners-up should call
// DumpTopK instead).
func Dump(root *tree.Node, geom point.Geometry, maxDepth int) (string, error) {
	return DumpTopK(root, geom, maxDepth, 0)
}

// DumpTopK renders root's subtree down to maxDepth, keeping at most
// topK children per node ranked by real visit count (topK <= 0 means
// keep all children) — the principal-variation-plus-runners-up view
// spec.md's debug tooling wants without the full branching factor
// blowing up the rendered graph.
func DumpTopK(root *tree.Node, geom point.Geometry, maxDepth, topK int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("uct"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	id := 0
	var walkErr error
	var walk func(n *tree.Node, depth int) string
	walk = func(n *tree.Node, depth int) string {
		name := fmt.Sprintf("n%d", id)
		id++
		label := fmt.Sprintf(`"%s visits=%d mean=%.3f rave=%.3f"`,
			geom.String(n.Move), n.RealVisits(), n.MeanValue(), n.RAVEValue())
		if err := g.AddNode("uct", name, map[string]string{"label": label}); err != nil && walkErr == nil {
			walkErr = err
		}

		if depth >= maxDepth {
			return name
		}
		children := rankedChildren(n.Children(), topK)
		for _, c := range children {
			childName := walk(c, depth+1)
			if err := g.AddEdge(name, childName, true, nil); err != nil && walkErr == nil {
				walkErr = err
			}
		}
		return name
	}
	walk(root, 0)
	if walkErr != nil {
		return "", walkErr
	}
	return g.String(), nil
}

// rankedChildren returns children sorted by descending real visit
// count, truncated to the best k when k > 0.
func rankedChildren(children []*tree.Node, k int) []*tree.Node {
	ranked := make([]*tree.Node, len(children))
	copy(ranked, children)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].RealVisits() > ranked[j-1].RealVisits(); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

package search

import (
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/tree"
)

// ReuseSubtree implements spec.md §4.5 "Subtree reuse": if the tree's
// current root has a published child reached by played, that child
// becomes the new root and the rest of the old tree is dropped.
// Reports whether reuse succeeded; the caller should fall back to
// Tree.ResetAll when it didn't (the move was never explored, e.g. an
// opponent move from outside the searched distribution).
func ReuseSubtree(tr *tree.Tree, played point.Point) bool {
	child := tree.FindChildByMove(tr.Root(), played)
	if child == nil {
		return false
	}
	tr.ReplaceRoot(child)
	return true
}

// AdvanceTree reuses the subtree reached by played when possible,
// falling back to a full reset either when reuse fails outright or
// when the retained arena has too little headroom left to be worth
// keeping (spec.md §4.8 "Allocator full during subtree copy"):
// minHeadroom is the minimum fraction of total capacity that must
// remain free after reuse for the tree to stay in use.
func AdvanceTree(tr *tree.Tree, played point.Point, minHeadroom float64) {
	if !ReuseSubtree(tr, played) {
		tr.ResetAll()
		return
	}
	used := float64(tr.NodeCount())
	capacity := float64(tr.Capacity())
	if capacity > 0 && (1-used/capacity) < minHeadroom {
		tr.ResetAll()
	}
}

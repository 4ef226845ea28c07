package tree

import (
	"github.com/uctgo/gouct/internal/point"
)

// Tree owns the root node and one Allocator per search worker thread,
// following the teacher's per-thread resource model (each mcts worker
// in the teacher clones its own game state; here each worker owns its
// own node arena so that node allocation itself never contends on a
// shared lock).
type Tree struct {
	allocators []*Allocator
	root       *Node
}

// NewTree builds a tree with numThreads arenas of nodesPerThread nodes
// each. The root is carved out of allocator 0.
func NewTree(numThreads, nodesPerThread int) *Tree {
	allocs := make([]*Allocator, numThreads)
	for i := range allocs {
		allocs[i] = NewAllocator(nodesPerThread)
	}
	root, _ := allocs[0].Alloc(nil, point.NullMove, false)
	return &Tree{allocators: allocs, root: root}
}

func (t *Tree) Root() *Node { return t.root }

// Allocator returns the arena assigned to search worker threadIdx.
func (t *Tree) Allocator(threadIdx int) *Allocator { return t.allocators[threadIdx] }

// NumAllocators returns how many per-thread arenas the tree was built
// with, the upper bound on how many search workers it can serve.
func (t *Tree) NumAllocators() int { return len(t.allocators) }

// NodeCount sums nodes handed out across all worker arenas.
func (t *Tree) NodeCount() int {
	n := 0
	for _, a := range t.allocators {
		n += a.Used()
	}
	return n
}

// Capacity sums the total node budget across all worker arenas.
func (t *Tree) Capacity() int {
	n := 0
	for _, a := range t.allocators {
		n += a.Capacity()
	}
	return n
}

// ResetAll reclaims every arena, discarding the whole tree. Used when
// subtree reuse is disabled or the reused subtree is empty.
func (t *Tree) ResetAll() {
	for _, a := range t.allocators {
		a.Reset()
	}
	t.root, _ = t.allocators[0].Alloc(nil, point.NullMove, false)
}

// ReplaceRoot installs newRoot (typically the child of the old root
// reached by the move actually played) as the tree's new root,
// detaching it from its former parent so stale siblings are no longer
// reachable. The arenas are not reclaimed: old, now-unreachable nodes
// simply become garbage for the allocators that own them once those
// allocators are next Reset. Because an Allocator is a bump-pointer
// slab, unreachable nodes inside it still occupy slab space until that
// allocator's next full Reset — subtree reuse therefore only pays off
// when paired with a periodic reset once an allocator nears capacity
// (the search driver checks Tree.NodeCount against Tree.Capacity and
// falls back to ResetAll when reuse would leave too little headroom).
func (t *Tree) ReplaceRoot(newRoot *Node) {
	newRoot.Parent = nil
	t.root = newRoot
}

// FindChildByMove walks node's published children looking for one
// reached by move, for subtree-reuse lookups after a move is played.
func FindChildByMove(node *Node, move point.Point) *Node {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Move == move {
			return c
		}
	}
	return nil
}

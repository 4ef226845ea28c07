package tree

import (
	"sync/atomic"

	"github.com/uctgo/gouct/internal/engerr"
	"github.com/uctgo/gouct/internal/point"
)

// Allocator is a per-thread bump-pointer arena: it owns a fixed-size
// backing slab of Node values and hands out pointers into it with a
// single atomic increment, never individually freeing a node. A search
// worker that needs more room than its arena holds gets
// engerr.TreeFullError instead of falling back to the Go heap
// allocator mid-search, keeping simulation latency predictable (spec
// §5 "Resource Model": a bounded per-thread node budget).
type Allocator struct {
	slab []Node
	next atomic.Int64
}

// NewAllocator preallocates capacity nodes in one contiguous slab.
func NewAllocator(capacity int) *Allocator {
	return &Allocator{slab: make([]Node, capacity)}
}

// Alloc reserves and initializes the next free node in the arena.
func (a *Allocator) Alloc(parent *Node, move point.Point, terminal bool) (*Node, error) {
	idx := a.next.Add(1) - 1
	if int(idx) >= len(a.slab) {
		return nil, &engerr.TreeFullError{Context: "node allocator exhausted"}
	}
	n := &a.slab[idx]
	n.reset(parent, move, terminal)
	return n, nil
}

// Used returns the number of nodes handed out so far, capped at
// capacity: failed Alloc calls past the end still advance the internal
// cursor, but are not counted.
func (a *Allocator) Used() int {
	u := int(a.next.Load())
	if u > len(a.slab) {
		return len(a.slab)
	}
	return u
}

func (a *Allocator) Capacity() int { return len(a.slab) }

// Reset reclaims the whole slab for reuse, e.g. between moves when the
// retained subtree is copied out first (see Tree.ExtractSubtree).
func (a *Allocator) Reset() {
	a.next.Store(0)
}

// AttachChildren links a freshly allocated run of sibling nodes under
// parent and publishes them in one step: every child is fully
// initialized (by Alloc) before this call stores the sibling chain and
// then the child count, so Node.NumChildren/FirstChild never observe a
// partially-built list.
func AttachChildren(parent *Node, children []*Node) {
	for i := 0; i+1 < len(children); i++ {
		children[i].nextSibling = children[i+1]
	}
	if len(children) == 0 {
		parent.numChildren.Store(0)
		return
	}
	parent.firstChild.Store(children[0])
	parent.numChildren.Store(int32(len(children)))
}

// Package tree implements the lock-free UCT search tree: a bounded
// bump-pointer node arena per search thread, atomic node statistics,
// and ordered child-link publication so that readers walking the tree
// concurrently with an expansion never observe a half-built child
// list.
//
// The design follows the teacher's NodeBase/NodeStats split (one
// struct of atomically-accessed counters embedded in a node type) but
// replaces the teacher's []NodeBase value slice — which reallocates
// and invalidates pointers on growth, fine for a single-threaded
// chess search but unsafe under concurrent selection — with a
// singly-linked sibling list over nodes owned by a bounded arena, so
// that no node a running selection holds a pointer to ever moves or
// is freed.
package tree

import (
	"sync/atomic"

	"github.com/uctgo/gouct/internal/point"
)

// Flag bits for Node.flags, mirroring the teacher's CanExpand /
// ExpandingMask / ExpandedMask / TerminalMask bitmask.
const (
	FlagNone      uint32 = 0
	FlagExpanding uint32 = 1 << 0
	FlagExpanded  uint32 = 1 << 1
	FlagTerminal  uint32 = 1 << 2
)

// ProvenType classifies a node's outcome as exact rather than a running
// Monte Carlo estimate (spec's proven_type: NotProven/ProvenWin/
// ProvenLoss), from the perspective of whichever side is to move at
// that node. A genuinely terminal node's proven type is set directly
// from its final score; an internal node's is recomputed from its
// children during Tree.ExtractSubtree.
type ProvenType int32

const (
	NotProven ProvenType = iota
	ProvenWin
	ProvenLoss
)

// Node is one position in the search tree. All statistics fields are
// accessed exclusively through atomic operations; Move and Parent are
// written at construction and safe to read
// without synchronization afterward.
type Node struct {
	Move   point.Point
	Parent *Node

	flags uint32 // atomic

	visits      atomic.Int32
	virtualLoss atomic.Int32
	sumValue    atomic.Uint64 // fixed-point, 1e-6 units; outcomes are in [0,1], so the sum stays non-negative

	raveVisits atomic.Int32
	raveValue  atomic.Int64 // fixed-point signed, 1e-6 units

	provenType atomic.Int32

	// Additive knowledge pseudo-count and pseudo-value, stored by
	// SetPrior and returned by Prior; never backpropagated into.
	// Selection does not read them, and the search driver seeds its
	// priors through AddOutcome/AddRAVE instead of SetPrior.
	priorCount int32
	priorValue float64

	// numChildren is the publication barrier: a reader must load
	// numChildren with Acquire semantics (atomic.LoadInt32) before
	// following firstChild, and a writer must store every child's
	// fields before incrementing numChildren. This guarantees a reader
	// never observes a child whose own fields are not yet initialized.
	numChildren atomic.Int32
	firstChild  atomic.Pointer[Node]
	nextSibling *Node // write-once before publication, never mutated after
}

const fixedPointScale = 1e6

// reset reinitializes a pooled Node for reuse as a fresh node. Only
// called by an Allocator between arena generations, never while any
// search thread can observe the node.
func (n *Node) reset(parent *Node, move point.Point, terminal bool) {
	n.Move = move
	n.Parent = parent
	n.nextSibling = nil
	n.priorCount = 0
	n.priorValue = 0
	n.visits.Store(0)
	n.virtualLoss.Store(0)
	n.sumValue.Store(0)
	n.raveVisits.Store(0)
	n.raveValue.Store(0)
	n.provenType.Store(int32(NotProven))
	n.numChildren.Store(0)
	n.firstChild.Store(nil)
	f := FlagNone
	if terminal {
		f = FlagTerminal
	}
	atomic.StoreUint32(&n.flags, f)
}

// Visits returns the raw visit count, including any outstanding
// virtual loss.
func (n *Node) Visits() int32 { return n.visits.Load() }

// VirtualLoss returns the currently outstanding virtual loss.
func (n *Node) VirtualLoss() int32 { return n.virtualLoss.Load() }

// RealVisits returns visits with virtual loss backed out — the count
// a selection formula should divide by.
func (n *Node) RealVisits() int32 {
	for {
		v := n.visits.Load()
		vl := n.virtualLoss.Load()
		if vl <= v {
			return v - vl
		}
	}
}

// AddVirtualLoss applies virtual loss on the way down a selection
// path: bumps the visible visit count so sibling selections see this
// node as less attractive, without yet knowing the simulation's
// result.
func (n *Node) AddVirtualLoss(amount int32) {
	n.virtualLoss.Add(amount)
	n.visits.Add(amount)
}

// RemoveVirtualLoss undoes AddVirtualLoss, taking back both the
// outstanding virtual loss and the visit bump it added. The real
// simulation outcome is recorded separately by AddOutcome.
func (n *Node) RemoveVirtualLoss(amount int32) {
	n.virtualLoss.Add(-amount)
	n.visits.Add(-amount)
}

// AddOutcome folds a simulation result (from this node's own
// perspective, 1 = win) into the running sum and bumps the visit
// count by one real visit.
func (n *Node) AddOutcome(value float64) {
	n.sumValue.Add(uint64(int64(value * fixedPointScale)))
	n.visits.Add(1)
}

// MeanValue returns the running mean outcome from this node's
// perspective, or 0.5 if unvisited.
func (n *Node) MeanValue() float64 {
	v := n.RealVisits()
	if v <= 0 {
		return 0.5
	}
	return float64(n.sumValue.Load()) / fixedPointScale / float64(v)
}

// AddRAVE folds an all-moves-as-first outcome into this node's AMAF
// statistics (spec §4.5 RAVE).
func (n *Node) AddRAVE(value float64) {
	n.raveValue.Add(int64(value * fixedPointScale))
	n.raveVisits.Add(1)
}

func (n *Node) RAVEVisits() int32 { return n.raveVisits.Load() }

func (n *Node) RAVEValue() float64 {
	v := n.raveVisits.Load()
	if v <= 0 {
		return 0.5
	}
	return float64(n.raveValue.Load()) / fixedPointScale / float64(v)
}

// SetPrior seeds the additive-knowledge pseudo-count and pseudo-value
// for this node once, at expansion time. Not safe to call after the
// node is published to siblings.
func (n *Node) SetPrior(pseudoCount int32, pseudoValue float64) {
	n.priorCount = pseudoCount
	n.priorValue = pseudoValue
}

func (n *Node) Prior() (count int32, value float64) { return n.priorCount, n.priorValue }

func (n *Node) Terminal() bool { return atomic.LoadUint32(&n.flags)&FlagTerminal != 0 }

// ProvenType returns the node's current exact-outcome classification.
func (n *Node) ProvenType() ProvenType { return ProvenType(n.provenType.Load()) }

// SetProvenType marks the node's outcome as exact, either directly (a
// genuinely terminal node, set from its final score) or as the result
// of Tree.ExtractSubtree's children-based recomputation.
func (n *Node) SetProvenType(t ProvenType) { n.provenType.Store(int32(t)) }

// Proven reports whether this node's outcome is exact, regardless of
// which side it favours.
func (n *Node) Proven() bool { return n.ProvenType() != NotProven }

// copyStatsFrom overwrites n's accumulated statistics with a snapshot
// of src's, used by Tree.ExtractSubtree. Outstanding virtual loss is
// not carried over: the copy starts with no in-flight simulations.
func (n *Node) copyStatsFrom(src *Node) {
	n.visits.Store(src.RealVisits())
	n.sumValue.Store(src.sumValue.Load())
	n.raveVisits.Store(src.raveVisits.Load())
	n.raveValue.Store(src.raveValue.Load())
	n.priorCount = src.priorCount
	n.priorValue = src.priorValue
}

// TryBeginExpand atomically transitions an unexpanded, non-expanding
// node to "expanding", mirroring the teacher's CanExpand/FinishExpanding
// CAS pair. Returns false if another thread already claimed expansion.
func (n *Node) TryBeginExpand() bool {
	for {
		old := atomic.LoadUint32(&n.flags)
		if old&(FlagExpanding|FlagExpanded) != 0 {
			return false
		}
		if atomic.CompareAndSwapUint32(&n.flags, old, old|FlagExpanding) {
			return true
		}
	}
}

// FinishExpand publishes the node's children: numChildren must already
// have been stored with the final count by AttachChildren before this
// call flips the Expanded flag, so that a concurrent reader checking
// Expanded() and then reading numChildren/firstChild always observes a
// fully linked child list.
func (n *Node) FinishExpand() {
	for {
		old := atomic.LoadUint32(&n.flags)
		next := (old &^ FlagExpanding) | FlagExpanded
		if atomic.CompareAndSwapUint32(&n.flags, old, next) {
			return
		}
	}
}

func (n *Node) Expanded() bool  { return atomic.LoadUint32(&n.flags)&FlagExpanded != 0 }
func (n *Node) Expanding() bool { return atomic.LoadUint32(&n.flags)&FlagExpanding != 0 }

// NumChildren returns the published child count. Safe to call
// concurrently with AttachChildren on the same node: the store to
// numChildren happens-after every child's own initialization.
func (n *Node) NumChildren() int32 { return n.numChildren.Load() }

// FirstChild returns the head of the sibling list, or nil if
// NumChildren() == 0.
func (n *Node) FirstChild() *Node { return n.firstChild.Load() }

// NextSibling returns the next node in the parent's child list, or nil
// at the end. Write-once before publication, safe to read afterward
// without synchronization.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// Children returns a slice snapshot of the child list for callers
// that want random access or sorting (e.g. the final move-selection
// pass, which runs only after search has stopped and no longer needs
// the lock-free guarantees).
func (n *Node) Children() []*Node {
	count := n.NumChildren()
	if count == 0 {
		return nil
	}
	out := make([]*Node, 0, count)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

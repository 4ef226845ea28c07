package search

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

// StopReason classifies why a search stopped, mirroring the teacher's
// StopReason bitmask (pkg/mcts/limiter.go) so that more than one limit
// can fire in the same search (e.g. a user interrupt that also landed
// past the node budget).
type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1 << 0
	StopMovetime  StopReason = 1 << 1
	StopMemory    StopReason = 1 << 2
	StopPlayouts  StopReason = 1 << 3
)

func (r StopReason) String() string {
	if r == StopNone {
		return "None"
	}
	names := []struct {
		bit  StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopMemory, "Memory"},
		{StopPlayouts, "Playouts"},
	}
	out := ""
	for _, n := range names {
		if r&n.bit != 0 {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	return out
}

// Limiter tracks wall-clock and resource budgets for one search and
// decides, cycle by cycle, whether the search may continue and whether
// the tree may still grow. Grounded on the teacher's Limiter
// (pkg/mcts/limiter.go), reimplemented without its unsafe bool-to-mask
// trick: plain boolean fields read under the atomic.Bool guard instead
// of a hand-rolled bitmask built from unsafe.Pointer casts.
type Limiter struct {
	limits    *Limits
	ctx       context.Context
	start     time.Time
	stop      atomic.Bool
	expand    atomic.Bool
	maxNodes  uint64
	nodeBytes uint64
	reason    StopReason
}

// NewLimiter builds a Limiter. nodeBytes is the size in bytes of one
// tree node, used to translate a configured ByteSize limit into a node
// budget.
func NewLimiter(nodeBytes uint64) *Limiter {
	l := &Limiter{
		limits:    DefaultLimits(),
		ctx:       context.Background(),
		nodeBytes: nodeBytes,
	}
	l.expand.Store(true)
	return l
}

func (l *Limiter) SetContext(ctx context.Context) { l.ctx = ctx }
func (l *Limiter) SetLimits(lim *Limits)           { l.limits = lim }
func (l *Limiter) Limits() *Limits                 { return l.limits }

// Reset prepares the limiter for a new search: clears stop/expand
// flags, restarts the clock, and precomputes the node budget implied
// by a configured memory limit.
func (l *Limiter) Reset() {
	l.start = time.Now()
	l.stop.Store(false)
	l.expand.Store(true)
	l.reason = StopNone
	if l.limits.ByteSize != DefaultByteSizeLimit && l.nodeBytes > 0 {
		l.maxNodes = uint64(l.limits.ByteSize) / l.nodeBytes
	} else {
		l.maxNodes = math.MaxUint64
	}
}

// Elapsed returns milliseconds since Reset.
func (l *Limiter) Elapsed() uint32 {
	return uint32(time.Since(l.start).Milliseconds())
}

func (l *Limiter) SetStop(v bool) { l.stop.Store(v) }

// Stop reports whether the search has been asked to stop, either
// explicitly via SetStop or because the associated context was
// cancelled.
func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

// Expand reports whether the tree may still grow; Ok turns this off once the memory budget is spent, so the search keeps
// accruing playouts on the frozen tree instead of stopping outright.
func (l *Limiter) Expand() bool { return l.expand.Load() }

// Ok reports whether the search loop may run another cycle, given the
// current node count and playout count.
func (l *Limiter) Ok(nodeCount int, playouts uint64) bool {
	if l.Stop() {
		return false
	}
	if l.limits.Infinite {
		return true
	}
	if l.limits.Movetime != DefaultMovetimeLimit && int(l.Elapsed()) >= l.limits.Movetime {
		return false
	}
	if l.limits.Playouts != DefaultPlayoutLimit && playouts >= l.limits.Playouts {
		return false
	}
	if uint64(nodeCount) >= l.maxNodes {
		l.expand.Store(false)
	}
	return true
}

// EvaluateStopReason records, after the search loop exits, which
// budget(s) actually triggered the stop; called once by the
// coordinating thread.
func (l *Limiter) EvaluateStopReason(nodeCount int, playouts uint64) {
	var r StopReason
	if l.stop.Load() {
		r |= StopInterrupt
	}
	if l.limits.Movetime != DefaultMovetimeLimit && int(l.Elapsed()) >= l.limits.Movetime {
		r |= StopMovetime
	}
	if l.limits.Playouts != DefaultPlayoutLimit && playouts >= l.limits.Playouts {
		r |= StopPlayouts
	}
	if uint64(nodeCount) >= l.maxNodes {
		r |= StopMemory
	}
	l.reason = r
}

func (l *Limiter) StopReason() StopReason { return l.reason }

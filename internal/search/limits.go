// Package search implements the UCT search driver: the per-simulation
// select/expand/playout/evaluate/backup loop, the Go-specific terminal
// evaluation (Tromp-Taylor scoring, mercy rule, score/length
// modification), the root filter, pondering, and subtree reuse.
package search

import (
	"math"
)

// Limits mirrors the teacher's Limits struct (pkg/mcts/limits.go): a
// plain value type the caller configures with chained setters, then
// hands to a Limiter. Fields not set keep their "no limit" sentinel.
type Limits struct {
	Playouts uint64
	Movetime int // milliseconds; -1 means unset
	Infinite bool
	NThreads int
	ByteSize int64 // -1 means unset
}

const (
	DefaultPlayoutLimit  uint64 = math.MaxUint64
	DefaultMovetimeLimit int    = -1
	DefaultByteSizeLimit int64  = -1
)

// DefaultLimits matches the teacher's DefaultLimits(): infinite search,
// one worker thread, no memory cap.
func DefaultLimits() *Limits {
	return &Limits{
		Playouts: DefaultPlayoutLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		NThreads: 1,
		ByteSize: DefaultByteSizeLimit,
	}
}

func (l *Limits) SetPlayouts(n uint64) *Limits {
	l.Playouts = n
	l.Infinite = false
	return l
}

func (l *Limits) SetMovetime(ms int) *Limits {
	l.Movetime = ms
	l.Infinite = false
	return l
}

func (l *Limits) SetThreads(n int) *Limits {
	if n < 1 {
		n = 1
	}
	l.NThreads = n
	return l
}

func (l *Limits) SetByteSize(n int64) *Limits {
	l.ByteSize = n
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(v bool) { l.Infinite = v }

// Package engerr implements the typed error kinds from spec.md §7. Each
// kind is a concrete Go type with a Kind() accessor, following the
// teacher's preference (pkg/mcts/limiter.go's StopReason bitmask and
// its .String() method) for typed classification over wrapped error
// strings, rather than reaching for github.com/pkg/errors.
package engerr

import "fmt"

// Kind classifies an error for the command layer (spec.md §7).
type Kind int

const (
	KindIllegal Kind = iota
	KindTreeFull
	KindProtocol
	KindDataLoad
	KindCancelled
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindIllegal:
		return "Illegal"
	case KindTreeFull:
		return "TreeFull"
	case KindProtocol:
		return "ProtocolError"
	case KindDataLoad:
		return "DataLoad"
	case KindCancelled:
		return "Cancelled"
	case KindInvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// IllegalReason enumerates why a move was rejected (spec.md §3/§4.1).
type IllegalReason int

const (
	Occupied IllegalReason = iota
	Suicide
	KoRepeat
	SuperKoRepeat
	OffBoard
)

func (r IllegalReason) String() string {
	switch r {
	case Occupied:
		return "Occupied"
	case Suicide:
		return "Suicide"
	case KoRepeat:
		return "KoRepeat"
	case SuperKoRepeat:
		return "SuperKoRepeat"
	case OffBoard:
		return "OffBoard"
	default:
		return "Unknown"
	}
}

// IllegalError is returned by Board.Play when a move cannot be played.
type IllegalError struct {
	Reason IllegalReason
}

func (e *IllegalError) Error() string {
	return fmt.Sprintf("illegal move: %s", e.Reason)
}

func (e *IllegalError) Kind() Kind { return KindIllegal }

// Illegal constructs an IllegalError for the given reason.
func Illegal(reason IllegalReason) *IllegalError {
	return &IllegalError{Reason: reason}
}

// TreeFullError marks an aborted expansion or truncated subtree copy;
// it is always caught and logged once, never propagated as fatal
// (spec.md §4.8 "Failure semantics").
type TreeFullError struct {
	Context string
}

func (e *TreeFullError) Error() string { return "tree full: " + e.Context }
func (e *TreeFullError) Kind() Kind    { return KindTreeFull }

// ProtocolError marks a malformed line-protocol command.
type ProtocolError struct {
	Line string
	Why  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error in %q: %s", e.Line, e.Why)
}
func (e *ProtocolError) Kind() Kind { return KindProtocol }

// DataLoadError marks a missing or corrupt pattern/book/weights file.
// Fatal at init for patterns/weights, a warning for the opening book
// (spec.md §6/§7).
type DataLoadError struct {
	Path string
	Err  error
	Fatal bool
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("data load failed for %s: %v", e.Path, e.Err)
}
func (e *DataLoadError) Kind() Kind  { return KindDataLoad }
func (e *DataLoadError) Unwrap() error { return e.Err }

// CancelledError marks cooperative cancellation; callers return the
// best partial result rather than treat this as fatal.
type CancelledError struct{}

func (e *CancelledError) Error() string { return "search cancelled" }
func (e *CancelledError) Kind() Kind    { return KindCancelled }

// InvariantViolationError marks an assertion failure. In debug builds
// callers may choose to panic on it; in release builds it is logged
// and the search ends with the last known good root statistics.
type InvariantViolationError struct {
	What string
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.What
}
func (e *InvariantViolationError) Kind() Kind { return KindInvariantViolation }

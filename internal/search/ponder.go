package search

import "context"

// Ponder launches a search on the opponent's time using the current
// tree as the initial tree, spec.md §4.5 "Pondering": it runs exactly
// like Run, just under a caller-supplied context the caller cancels
// once the opponent actually moves. The returned cancel function is a
// convenience wrapper so callers don't need to build their own
// context.WithCancel.
func (s *Searcher) Ponder(ctx context.Context) (wait func(), cancel func()) {
	pctx, cancelFn := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(pctx)
	}()
	return func() { <-done }, cancelFn
}
